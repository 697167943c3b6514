package adapters

import (
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

func MapBenchmarkDomainToApi(b domain.BenchmarkComparison) api.Benchmark {
	return api.Benchmark{
		Reference: b.Reference,
		Delta:     b.Delta,
		Status:    string(b.Status),
	}
}

func MapControlDomainToApi(c domain.Control) api.Control {
	return api.Control{
		ID:          c.ID,
		Domain:      string(c.Domain),
		Dimension:   string(c.Dimension),
		Level:       c.Level,
		Title:       c.Title,
		Description: c.Description,
	}
}

func MapControlsDomainToApi(controls []domain.Control) []api.Control {
	out := make([]api.Control, 0, len(controls))
	for _, c := range controls {
		out = append(out, MapControlDomainToApi(c))
	}
	return out
}

func MapDomainScoreDomainToApi(d domain.DomainSummary) api.DomainScore {
	scores := make(map[string]float64, len(d.Scores))
	for dim, v := range d.Scores {
		scores[string(dim)] = v
	}
	return api.DomainScore{
		ID:        string(d.Domain),
		Name:      d.Name,
		Average:   d.Average,
		Level:     string(d.Band),
		Benchmark: MapBenchmarkDomainToApi(d.Benchmark),
		Scores:    scores,
	}
}

func MapFocusAreaDomainToApi(f domain.FocusArea) api.FocusArea {
	return api.FocusArea{
		ID:             string(f.Domain),
		Name:           f.Name,
		Average:        f.Average,
		Level:          string(f.Band),
		Recommendation: f.Recommendation,
		Controls:       MapControlsDomainToApi(f.Controls),
	}
}

func MapRankingDomainToApi(r domain.DomainRanking) api.DomainRanking {
	def, _ := domain.DomainInfo(r.Domain)
	return api.DomainRanking{
		ID:      string(r.Domain),
		Name:    def.Name,
		Average: r.Average,
	}
}

func MapSummaryDomainToApi(s *domain.Summary) api.AssessmentSummary {
	out := api.AssessmentSummary{
		SessionID:      s.SessionID,
		Organization:   s.Organization,
		SubmittedAt:    s.SubmittedAt,
		Domains:        make([]api.DomainScore, 0, len(s.Domains)),
		Dimensions:     make([]api.DimensionScore, 0, len(s.Dimensions)),
		OverallAverage: s.OverallAverage,
		OverallLevel:   string(s.OverallBand),
		Answered:       s.Answered,
		Total:          s.Total,
		Completed:      s.Completed,
		FocusAreas:     make([]api.FocusArea, 0, len(s.FocusAreas)),
		Strengths:      make([]api.DomainRanking, 0, len(s.Strengths)),
	}
	for _, d := range s.Domains {
		out.Domains = append(out.Domains, MapDomainScoreDomainToApi(d))
	}
	for _, d := range s.Dimensions {
		out.Dimensions = append(out.Dimensions, api.DimensionScore{
			ID:      string(d.Dimension),
			Name:    d.Name,
			Average: d.Average,
			Level:   string(d.Band),
		})
	}
	for _, f := range s.FocusAreas {
		out.FocusAreas = append(out.FocusAreas, MapFocusAreaDomainToApi(f))
	}
	for _, r := range s.Strengths {
		out.Strengths = append(out.Strengths, MapRankingDomainToApi(r))
	}
	return out
}

func MapChartDomainToApi(c domain.Chart) api.Chart {
	out := api.Chart{Labels: c.Labels, Series: make([]api.ChartSeries, 0, len(c.Series))}
	for _, s := range c.Series {
		out.Series = append(out.Series, api.ChartSeries{Name: s.Name, Values: s.Values})
	}
	return out
}

// MapFrameworkDomainToApi describes the questionnaire. references holds
// the current benchmark value per domain.
func MapFrameworkDomainToApi(references map[domain.Domain]float64) api.Framework {
	fw := api.Framework{
		MinScore: domain.MinScore,
		MaxScore: domain.MaxScore,
	}
	for _, d := range domain.DomainDefs() {
		fw.Domains = append(fw.Domains, api.DomainDef{
			ID:             string(d.ID),
			Name:           d.Name,
			Description:    d.Description,
			Recommendation: d.Recommendation,
			Reference:      references[d.ID],
		})
	}
	for _, d := range domain.DimensionDefs() {
		fw.Dimensions = append(fw.Dimensions, api.DimensionDef{
			ID:          string(d.ID),
			Name:        d.Name,
			Description: d.Description,
		})
	}
	for _, b := range domain.Bands() {
		band := api.Band{Name: string(b.Band), Min: b.Min, Description: b.Description}
		if b.Max > 0 {
			upper := b.Max
			band.Max = &upper
		}
		fw.Bands = append(fw.Bands, band)
	}
	return fw
}
