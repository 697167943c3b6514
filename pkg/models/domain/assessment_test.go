package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert.Len(t, Domains(), 8)
	assert.Len(t, Dimensions(), 5)
	assert.Equal(t, DomainCybersecurity, Domains()[0])
	assert.Equal(t, DomainServiceManagement, Domains()[7])

	d, err := ParseDomain("risk-compliance")
	require.NoError(t, err)
	assert.Equal(t, DomainRiskCompliance, d)

	_, err = ParseDomain("marketing")
	assert.ErrorIs(t, err, ErrUnknownDomain)
	_, err = ParseDimension("culture")
	assert.ErrorIs(t, err, ErrUnknownDimension)

	info, ok := DomainInfo(DomainKnowledgeData)
	require.True(t, ok)
	assert.Equal(t, "Knowledge & Data", info.Name)
	assert.NotEmpty(t, info.Recommendation)

	// Callers get copies.
	ds := Domains()
	ds[0] = "tampered"
	assert.Equal(t, DomainCybersecurity, Domains()[0])
}

func TestNewAssessmentResult_AllCellsPresent(t *testing.T) {
	r := NewAssessmentResult()
	cells := r.Cells()

	require.Len(t, cells, 8)
	for _, row := range cells {
		require.Len(t, row, 5)
		for _, v := range row {
			assert.Equal(t, 0.0, v)
		}
	}
	assert.Equal(t, 0, r.Answered())
	assert.False(t, r.Completed())
}

func TestAssessmentResult_Set(t *testing.T) {
	tests := []struct {
		name    string
		domain  Domain
		dim     Dimension
		score   float64
		wantErr error
	}{
		{"valid", DomainCybersecurity, DimensionPeople, 3.5, nil},
		{"zero means unanswered", DomainCybersecurity, DimensionPeople, 0, nil},
		{"upper bound", DomainCybersecurity, DimensionPeople, 5, nil},
		{"negative", DomainCybersecurity, DimensionPeople, -0.1, ErrScoreOutOfRange},
		{"too high", DomainCybersecurity, DimensionPeople, 5.01, ErrScoreOutOfRange},
		{"nan", DomainCybersecurity, DimensionPeople, math.NaN(), ErrScoreOutOfRange},
		{"unknown domain", Domain("hr"), DimensionPeople, 3, ErrUnknownDomain},
		{"unknown dimension", DomainCybersecurity, Dimension("culture"), 3, ErrUnknownDimension},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewAssessmentResult()
			err := r.Set(tc.domain, tc.dim, tc.score)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, 0.0, r.Score(tc.domain, tc.dim))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.score, r.Score(tc.domain, tc.dim))
		})
	}
}

func TestAssessmentResult_CompletedAndClone(t *testing.T) {
	r := NewAssessmentResult()
	for _, d := range Domains() {
		for _, dim := range Dimensions() {
			require.NoError(t, r.Set(d, dim, 2))
		}
	}
	assert.True(t, r.Completed())
	assert.Equal(t, 40, r.Answered())

	cp := r.Clone()
	require.NoError(t, cp.Set(DomainCybersecurity, DimensionPeople, 0))
	assert.False(t, cp.Completed())
	assert.True(t, r.Completed(), "clone must be independent")
}

func TestAssessmentResult_ZeroValue(t *testing.T) {
	var r AssessmentResult
	assert.False(t, r.HasDomain(DomainCybersecurity))
	require.NoError(t, r.Set(DomainCybersecurity, DimensionPeople, 4))
	assert.True(t, r.HasDomain(DomainCybersecurity))
	assert.Equal(t, 4.0, r.Score(DomainCybersecurity, DimensionPeople))
}
