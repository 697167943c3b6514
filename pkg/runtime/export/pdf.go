package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/go-pdf/fpdf"
)

const (
	pageWidth   = 190.0
	lineHeight  = 7.0
	fontFamily  = "Helvetica"
	reportTitle = "Legal IT Maturity Assessment"
)

// WritePDF renders the summary as a single A4 report.
func WritePDF(w io.Writer, s *domain.Summary) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(reportTitle, true)
	pdf.SetCreator("maturity-atlas", true)
	if !s.SubmittedAt.IsZero() {
		pdf.SetCreationDate(s.SubmittedAt)
	}
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(pageWidth, 12, reportTitle, "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	if s.Organization != "" {
		pdf.CellFormat(pageWidth, lineHeight, tr("Organization: "+s.Organization), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(pageWidth, lineHeight, "Session: "+s.SessionID, "", 1, "L", false, 0, "")
	if sub := submitted(s.SubmittedAt); sub != "" {
		pdf.CellFormat(pageWidth, lineHeight, "Submitted: "+sub, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(pageWidth, 9, fmt.Sprintf("Overall maturity: %s (%s)", score(s.OverallAverage), s.OverallBand), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(pageWidth, lineHeight, fmt.Sprintf("Answered %d of %d questions", s.Answered, s.Total), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionHeading(pdf, "Domain scores")
	table(pdf,
		[]string{"Domain", "Average", "Level", "Benchmark", "Delta", "Status"},
		[]float64{70, 20, 28, 24, 18, 30},
		domainRows(s),
		tr,
	)
	pdf.Ln(4)

	sectionHeading(pdf, "Dimension averages")
	dimRows := make([][]string, 0, len(s.Dimensions))
	for _, d := range s.Dimensions {
		dimRows = append(dimRows, []string{d.Name, score(d.Average), string(d.Band)})
	}
	table(pdf, []string{"Dimension", "Average", "Level"}, []float64{70, 20, 28}, dimRows, tr)
	pdf.Ln(4)

	sectionHeading(pdf, "Focus areas")
	for _, f := range s.FocusAreas {
		pdf.SetFont(fontFamily, "B", 11)
		pdf.CellFormat(pageWidth, lineHeight, tr(fmt.Sprintf("%s: %s (%s)", f.Name, score(f.Average), f.Band)), "", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.MultiCell(pageWidth, 5.5, tr(f.Recommendation), "", "L", false)
		for _, c := range f.Controls {
			pdf.MultiCell(pageWidth, 5.5, tr(fmt.Sprintf("  - %s %s (level %d)", c.ID, c.Title, c.Level)), "", "L", false)
		}
		pdf.Ln(2)
	}

	if len(s.Strengths) > 0 {
		sectionHeading(pdf, "Strengths")
		names := make([]string, 0, len(s.Strengths))
		for _, r := range s.Strengths {
			def, _ := domain.DomainInfo(r.Domain)
			names = append(names, fmt.Sprintf("%s (%s)", def.Name, score(r.Average)))
		}
		pdf.MultiCell(pageWidth, 5.5, tr(strings.Join(names, ", ")), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func domainRows(s *domain.Summary) [][]string {
	rows := make([][]string, 0, len(s.Domains))
	for _, d := range s.Domains {
		rows = append(rows, []string{
			d.Name,
			score(d.Average),
			string(d.Band),
			score(d.Benchmark.Reference),
			delta(d.Benchmark.Delta),
			string(d.Benchmark.Status),
		})
	}
	return rows
}

func sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(pageWidth, 9, title, "", 1, "L", false, 0, "")
}

func table(pdf *fpdf.Fpdf, header []string, widths []float64, rows [][]string, tr func(string) string) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 10)
	for _, row := range rows {
		for i, v := range row {
			align := "L"
			if i == 1 {
				align = "R"
			}
			pdf.CellFormat(widths[i], lineHeight, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
