package scoring

import (
	"math"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

const (
	// DefaultReference is the industry reference score shown to users.
	DefaultReference = 3.2
	// BenchmarkThreshold is the rounded delta at which a domain counts as
	// above or below the reference.
	BenchmarkThreshold = 0.5
)

// Compare labels the signed, one-decimal delta between a domain average
// and the reference value.
func Compare(d domain.Domain, average, reference float64) domain.BenchmarkComparison {
	delta := Round1(average - reference)
	if delta == 0 {
		// drop the sign of a rounded-away negative delta
		delta = 0
	}

	status := domain.BenchmarkAverage
	switch {
	case delta >= BenchmarkThreshold:
		status = domain.BenchmarkAbove
	case delta <= -BenchmarkThreshold:
		status = domain.BenchmarkBelow
	}

	return domain.BenchmarkComparison{
		DomainID:  d,
		Reference: reference,
		Delta:     delta,
		Status:    status,
	}
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
