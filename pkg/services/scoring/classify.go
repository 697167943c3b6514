package scoring

import (
	"sort"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

// MaturityLevel maps a score to its band. Lower edges are inclusive and
// upper edges exclusive; 0 (no data) is Initial like any low score.
func MaturityLevel(score float64) domain.MaturityBand {
	switch {
	case score >= 4.5:
		return domain.BandOptimized
	case score >= 4.0:
		return domain.BandManaged
	case score >= 3.0:
		return domain.BandEstablished
	case score >= 2.0:
		return domain.BandDeveloping
	default:
		return domain.BandInitial
	}
}

// WeakestDomains returns the n lowest-scoring domains, ascending.
// Unanswered domains average 0 and are included.
func WeakestDomains(result *domain.AssessmentResult, n int) []domain.DomainRanking {
	return RankWeakest(DomainAverages(result), n)
}

// StrongestDomains returns the n highest-scoring domains, descending.
func StrongestDomains(result *domain.AssessmentResult, n int) []domain.DomainRanking {
	return RankStrongest(DomainAverages(result), n)
}

// RankWeakest sorts a copy of entries ascending by average. Ties keep
// input order.
func RankWeakest(entries []domain.DomainRanking, n int) []domain.DomainRanking {
	return rank(entries, n, func(a, b float64) bool { return a < b })
}

// RankStrongest sorts a copy of entries descending by average. Ties keep
// input order.
func RankStrongest(entries []domain.DomainRanking, n int) []domain.DomainRanking {
	return rank(entries, n, func(a, b float64) bool { return a > b })
}

func rank(entries []domain.DomainRanking, n int, less func(a, b float64) bool) []domain.DomainRanking {
	if n <= 0 || len(entries) == 0 {
		return []domain.DomainRanking{}
	}
	sorted := append([]domain.DomainRanking(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i].Average, sorted[j].Average)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
