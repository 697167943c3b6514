package adapters

import (
	"fmt"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/models/store"
)

func MapDomainAssessmentToStore(a *domain.Assessment) store.Assessment {
	return store.Assessment{
		SessionID:    a.SessionID,
		Organization: a.Organization,
		Scores:       a.Result.Cells(),
		SubmittedAt:  a.SubmittedAt,
	}
}

// MapStoreAssessmentToDomain rebuilds the score matrix. Unknown domain or
// dimension keys are dropped; out-of-range scores mean a corrupt blob.
func MapStoreAssessmentToDomain(a store.Assessment) (*domain.Assessment, error) {
	result, err := BuildResult(a.Scores, false)
	if err != nil {
		return nil, fmt.Errorf("assessment %s: %w", a.SessionID, err)
	}
	return &domain.Assessment{
		SessionID:    a.SessionID,
		Organization: a.Organization,
		Result:       result,
		SubmittedAt:  a.SubmittedAt,
	}, nil
}

// BuildResult fills a zeroed matrix from string-keyed scores. With strict
// set, unknown keys are errors instead of being ignored.
func BuildResult(scores map[string]map[string]float64, strict bool) (*domain.AssessmentResult, error) {
	result := domain.NewAssessmentResult()
	for _, d := range domain.Domains() {
		row, ok := scores[string(d)]
		if !ok {
			continue
		}
		for _, dim := range domain.Dimensions() {
			v, ok := row[string(dim)]
			if !ok {
				continue
			}
			if err := result.Set(d, dim, v); err != nil {
				return nil, err
			}
		}
	}
	if !strict {
		return result, nil
	}

	for d, row := range scores {
		if _, err := domain.ParseDomain(d); err != nil {
			return nil, err
		}
		for dim := range row {
			if _, err := domain.ParseDimension(dim); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}
