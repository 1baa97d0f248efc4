package define

import (
	"bytes"
	"os"
	"text/template"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/zerr"
)

var stubTemplate = template.Must(template.New("stub").Parse(`// Generated by pack. Do not edit.
{{- range .Globals}}
declare var {{.Key}}: {{.Type}};
{{- end}}

declare namespace NodeJS {
  interface ProcessEnv {
{{- range .Env}}
    readonly {{.Key}}: {{.Type}};
{{- end}}
  }
}
`))

// RenderStub renders the type declarations of every entry in table.
func RenderStub(table *domain.DefineTable) ([]byte, error) {
	if table == nil {
		table = &domain.DefineTable{}
	}
	var buf bytes.Buffer
	if err := stubTemplate.Execute(&buf, table); err != nil {
		return nil, zerr.Wrap(err, domain.ErrTypeStubWriteFailed.Error())
	}
	return buf.Bytes(), nil
}

// WriteStub renders table and writes it to path.
func WriteStub(path string, table *domain.DefineTable) error {
	data, err := RenderStub(table)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		err = zerr.Wrap(err, domain.ErrTypeStubWriteFailed.Error())
		return zerr.With(err, "path", path)
	}
	return nil
}
