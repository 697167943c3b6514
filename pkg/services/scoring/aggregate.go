// Package scoring holds the maturity scoring engine: averages over the
// score matrix, maturity band classification, domain rankings and the
// benchmark comparison. Every function is pure.
package scoring

import "github.com/de-tools/maturity-atlas/pkg/models/domain"

// DomainAverage is the mean of the five dimension scores of d. Unanswered
// cells count as 0 and pull the mean down. A domain absent from the
// result averages to 0.
func DomainAverage(result *domain.AssessmentResult, d domain.Domain) float64 {
	if !d.Valid() || !result.HasDomain(d) {
		return 0
	}
	dims := domain.Dimensions()
	sum := 0.0
	for _, dim := range dims {
		sum += result.Score(d, dim)
	}
	return sum / float64(len(dims))
}

// DimensionAverage is the mean of dim across all eight domains, with the
// same zero-inclusion policy as DomainAverage.
func DimensionAverage(result *domain.AssessmentResult, dim domain.Dimension) float64 {
	if !dim.Valid() {
		return 0
	}
	domains := domain.Domains()
	sum := 0.0
	for _, d := range domains {
		sum += result.Score(d, dim)
	}
	return sum / float64(len(domains))
}

// OverallAverage is the mean of the eight domain averages.
func OverallAverage(result *domain.AssessmentResult) float64 {
	domains := domain.Domains()
	sum := 0.0
	for _, d := range domains {
		sum += DomainAverage(result, d)
	}
	return sum / float64(len(domains))
}

// DomainAverages returns one ranking entry per domain in registry order.
func DomainAverages(result *domain.AssessmentResult) []domain.DomainRanking {
	domains := domain.Domains()
	out := make([]domain.DomainRanking, 0, len(domains))
	for _, d := range domains {
		out = append(out, domain.DomainRanking{Domain: d, Average: DomainAverage(result, d)})
	}
	return out
}
