package app_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/app"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/engine/task"
)

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	app.RenderSummary(&buf, []task.Report{
		{
			Format:   domain.FormatESM,
			State:    task.StateDone,
			Files:    []domain.OutputFile{{Path: "dist/main.mjs", Size: 120}, {Path: "dist/chunk.mjs", Size: 30}},
			Bytes:    150,
			Duration: 12 * time.Millisecond,
		},
		{
			Format: domain.FormatCJS,
			State:  task.StateError,
		},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"FORMAT", "STATE", "FILES", "SIZE", "TIME"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"esm", "done", "2", "150", "B", "12ms"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"cjs", "error", "0", "0", "B", "0ms"}, strings.Fields(lines[2]))
}
