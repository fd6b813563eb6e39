package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/reportato/pkg/models/api"
)

type TableConfig struct {
	NameWidth    int
	ModelWidth   int
	FileWidth    int
	HeadersWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:    20,
		ModelWidth:   16,
		FileWidth:    24,
		HeadersWidth: 60,
	}
}

// Reporter prints the report catalog as a fixed width table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(reports []api.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, model, file, headers string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ModelWidth, model,
				c.config.FileWidth, file,
				c.config.HeadersWidth, truncate(headers, c.config.HeadersWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ModelWidth+2),
				strings.Repeat("-", c.config.FileWidth+2),
				strings.Repeat("-", c.config.HeadersWidth+2))
		},
		"join": strings.Join,
	}

	tmpl := `{{separator}}
{{formatRow "Report" "Model" "File" "Headers"}}
{{separator}}
{{range .}}{{formatRow .Name .Model .FileName (join .Headers ", ")}}
{{end}}{{separator}}
`

	t, err := template.New("reports").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, reports)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 4 {
		return s
	}
	return string(r[:width-3]) + "..."
}
