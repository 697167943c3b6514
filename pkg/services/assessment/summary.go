package assessment

import (
	"context"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/scoring"
)

// Summarize derives every displayed figure from the stored matrix.
// Averages are kept unrounded; only presentation layers round.
func (s *service) Summarize(ctx context.Context, a *domain.Assessment) *domain.Summary {
	result := a.Result
	if result == nil {
		result = domain.NewAssessmentResult()
	}

	summary := &domain.Summary{
		SessionID:    a.SessionID,
		Organization: a.Organization,
		SubmittedAt:  a.SubmittedAt,
		Answered:     result.Answered(),
		Total:        len(domain.Domains()) * len(domain.Dimensions()),
		Completed:    result.Completed(),
	}

	for _, def := range domain.DomainDefs() {
		avg := scoring.DomainAverage(result, def.ID)
		scores := make(map[domain.Dimension]float64, len(domain.Dimensions()))
		for _, dim := range domain.Dimensions() {
			scores[dim] = result.Score(def.ID, dim)
		}
		summary.Domains = append(summary.Domains, domain.DomainSummary{
			Domain:    def.ID,
			Name:      def.Name,
			Average:   avg,
			Band:      scoring.MaturityLevel(avg),
			Benchmark: scoring.Compare(def.ID, avg, s.benchmarks.Reference(ctx, def.ID)),
			Scores:    scores,
		})
	}

	for _, def := range domain.DimensionDefs() {
		avg := scoring.DimensionAverage(result, def.ID)
		summary.Dimensions = append(summary.Dimensions, domain.DimensionSummary{
			Dimension: def.ID,
			Name:      def.Name,
			Average:   avg,
			Band:      scoring.MaturityLevel(avg),
		})
	}

	summary.OverallAverage = scoring.OverallAverage(result)
	summary.OverallBand = scoring.MaturityLevel(summary.OverallAverage)

	for _, r := range scoring.WeakestDomains(result, rankedDomains) {
		def, _ := domain.DomainInfo(r.Domain)
		summary.FocusAreas = append(summary.FocusAreas, domain.FocusArea{
			Domain:         r.Domain,
			Name:           def.Name,
			Average:        r.Average,
			Band:           scoring.MaturityLevel(r.Average),
			Recommendation: def.Recommendation,
			Controls:       s.controls.Recommended(r.Domain, r.Average),
		})
	}
	summary.Strengths = scoring.StrongestDomains(result, rankedDomains)

	return summary
}

// Chart builds radar-chart series: the respondent's domain averages and
// the benchmark references, both to one decimal.
func Chart(summary *domain.Summary) domain.Chart {
	chart := domain.Chart{
		Labels: make([]string, 0, len(summary.Domains)),
	}
	scores := domain.ChartSeries{Name: "Your score", Values: make([]float64, 0, len(summary.Domains))}
	refs := domain.ChartSeries{Name: "Industry benchmark", Values: make([]float64, 0, len(summary.Domains))}

	for _, d := range summary.Domains {
		chart.Labels = append(chart.Labels, d.Name)
		scores.Values = append(scores.Values, scoring.Round1(d.Average))
		refs.Values = append(refs.Values, scoring.Round1(d.Benchmark.Reference))
	}
	chart.Series = []domain.ChartSeries{scores, refs}
	return chart
}
