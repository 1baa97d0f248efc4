package app

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"go.trai.ch/pack/internal/engine/task"
)

var summaryHeader = []string{"Format", "State", "Files", "Size", "Time"}

// renderSummary writes one row per task.
func renderSummary(w io.Writer, reports []task.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(summaryHeader)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	for _, r := range reports {
		table.Append([]string{
			string(r.Format),
			string(r.State),
			strconv.Itoa(len(r.Files)),
			strconv.Itoa(r.Bytes) + " B",
			millis(r.Duration),
		})
	}
	table.Render()
}
