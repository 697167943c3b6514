package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth   int
	ScoreWidth  int
	LevelWidth  int
	StatusWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   36,
		ScoreWidth:  7,
		LevelWidth:  12,
		StatusWidth: 16,
	}
}

// Reporter prints a summary as plain-text tables.
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

const reportTemplate = `
Legal IT Maturity Assessment{{if .Organization}} for {{.Organization}}{{end}}
Session: {{.SessionID}}{{if not .SubmittedAt.IsZero}}  Submitted: {{.SubmittedAt.Format "2006-01-02 15:04"}}{{end}}
Overall: {{score .OverallAverage}} ({{.OverallBand}})  Answered: {{.Answered}}/{{.Total}}

=== Domains ===
{{separator}}
{{formatRow "Domain" "Score" "Level" "vs benchmark"}}
{{separator}}
{{range .Domains}}{{formatRow .Name (score .Average) (print .Band) (benchmark .Benchmark)}}
{{end}}{{separator}}

=== Dimensions ===
{{range .Dimensions}}{{printf "%-14s" .Name}} {{score .Average}}  {{.Band}}
{{end}}
=== Focus areas ===
{{range $i, $f := .FocusAreas}}{{inc $i}}. {{$f.Name}} ({{score $f.Average}}, {{$f.Band}})
   {{$f.Recommendation}}
{{range $f.Controls}}   - {{.ID}} {{.Title}}
{{end}}{{end}}`

func (c *Reporter) Handle(summary *domain.Summary) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value, level, status string) string {
			return fmt.Sprintf("| %-*s | %*s | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ScoreWidth, value,
				c.config.LevelWidth, level,
				c.config.StatusWidth, status)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ScoreWidth+2),
				strings.Repeat("-", c.config.LevelWidth+2),
				strings.Repeat("-", c.config.StatusWidth+2))
		},
		"score": score,
		"benchmark": func(b domain.BenchmarkComparison) string {
			return fmt.Sprintf("%s %s", delta(b.Delta), b.Status)
		},
		"inc": func(i int) int { return i + 1 },
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}
