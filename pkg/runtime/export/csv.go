package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/scoring"
)

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the summary as one sectioned CSV document.
func WriteCSV(w io.Writer, s *domain.Summary) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("csv: write bom: %w", err)
	}
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Legal IT Maturity Assessment"},
		{"Session", cell(s.SessionID)},
		{"Organization", cell(s.Organization)},
		{"Submitted", submitted(s.SubmittedAt)},
		{},
	}

	header := []string{"Domain", "Average", "Level", "Benchmark", "Delta", "Status"}
	for _, def := range domain.DimensionDefs() {
		header = append(header, def.Name)
	}
	rows = append(rows, header)
	for _, d := range s.Domains {
		row := []string{
			d.Name,
			score(d.Average),
			string(d.Band),
			score(d.Benchmark.Reference),
			delta(d.Benchmark.Delta),
			string(d.Benchmark.Status),
		}
		for _, dim := range domain.Dimensions() {
			row = append(row, score(d.Scores[dim]))
		}
		rows = append(rows, row)
	}

	rows = append(rows, []string{}, []string{"Dimension", "Average", "Level"})
	for _, d := range s.Dimensions {
		rows = append(rows, []string{d.Name, score(d.Average), string(d.Band)})
	}

	rows = append(rows,
		[]string{},
		[]string{"Overall average", score(s.OverallAverage), string(s.OverallBand)},
		[]string{"Answered", fmt.Sprintf("%d/%d", s.Answered, s.Total)},
		[]string{},
		[]string{"Focus area", "Average", "Level", "Recommendation", "Controls"},
	)
	for _, f := range s.FocusAreas {
		ids := make([]string, 0, len(f.Controls))
		for _, c := range f.Controls {
			ids = append(ids, c.ID+" "+c.Title)
		}
		rows = append(rows, []string{f.Name, score(f.Average), string(f.Band), f.Recommendation, strings.Join(ids, "; ")})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	return nil
}

func score(v float64) string {
	return strconv.FormatFloat(scoring.Round1(v), 'f', 1, 64)
}

func delta(v float64) string {
	if v > 0 {
		return "+" + score(v)
	}
	return score(v)
}

func submitted(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// cell neutralises user-supplied text that a spreadsheet would read as a
// formula.
func cell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}
