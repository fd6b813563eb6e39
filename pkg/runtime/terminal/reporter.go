package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/reportato/pkg/models/api"
)

// Reporter prints the report catalog as plain text
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(reports []api.Report) error {
	tmpl := `{{range $report := .}}{{$report.Name}} ({{$report.Model}}) -> {{$report.FileName}}
{{range $i, $field := $report.Fields}}  {{$field}}: {{index $report.Headers $i}}
{{end}}{{end}}`
	t, err := template.New("reports").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, reports)
}
