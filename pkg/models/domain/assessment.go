package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	MinScore = 1.0
	MaxScore = 5.0
	// Unanswered marks a cell the respondent has not scored yet.
	Unanswered = 0.0
)

var ErrScoreOutOfRange = errors.New("score out of range")

// AssessmentResult is the score matrix of one respondent: every
// (Domain, Dimension) pair maps to a score in [0, 5], 0 meaning unanswered.
type AssessmentResult struct {
	scores map[Domain]map[Dimension]float64
}

// NewAssessmentResult returns a matrix with all 40 cells present and zero.
func NewAssessmentResult() *AssessmentResult {
	scores := make(map[Domain]map[Dimension]float64, len(domainRegistry))
	for _, d := range domainRegistry {
		row := make(map[Dimension]float64, len(dimensionRegistry))
		for _, dim := range dimensionRegistry {
			row[dim.ID] = Unanswered
		}
		scores[d.ID] = row
	}
	return &AssessmentResult{scores: scores}
}

// ValidateScore rejects anything outside the closed range [0, 5].
func ValidateScore(score float64) error {
	if math.IsNaN(score) || score < Unanswered || score > MaxScore {
		return fmt.Errorf("%w: %v not in [0, 5]", ErrScoreOutOfRange, score)
	}
	return nil
}

// Set records a single answer. This is the input boundary of the matrix,
// so unknown keys and out-of-range scores are rejected here.
func (r *AssessmentResult) Set(d Domain, dim Dimension, score float64) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	if !dim.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}
	if err := ValidateScore(score); err != nil {
		return fmt.Errorf("%s/%s: %w", d, dim, err)
	}
	if r.scores == nil {
		r.scores = make(map[Domain]map[Dimension]float64)
	}
	row, ok := r.scores[d]
	if !ok {
		row = make(map[Dimension]float64, len(dimensionRegistry))
		r.scores[d] = row
	}
	row[dim] = score
	return nil
}

// Score returns the stored cell, or 0 when the cell is missing.
func (r *AssessmentResult) Score(d Domain, dim Dimension) float64 {
	if r == nil {
		return Unanswered
	}
	return r.scores[d][dim]
}

// HasDomain reports whether any cell exists for the domain.
func (r *AssessmentResult) HasDomain(d Domain) bool {
	if r == nil {
		return false
	}
	_, ok := r.scores[d]
	return ok
}

// Answered counts non-zero cells among the registered pairs.
func (r *AssessmentResult) Answered() int {
	n := 0
	for _, d := range domainRegistry {
		for _, dim := range dimensionRegistry {
			if r.Score(d.ID, dim.ID) != Unanswered {
				n++
			}
		}
	}
	return n
}

func (r *AssessmentResult) Completed() bool {
	return r.Answered() == len(domainRegistry)*len(dimensionRegistry)
}

func (r *AssessmentResult) Clone() *AssessmentResult {
	out := &AssessmentResult{scores: make(map[Domain]map[Dimension]float64)}
	if r == nil {
		return out
	}
	for d, row := range r.scores {
		cp := make(map[Dimension]float64, len(row))
		for dim, v := range row {
			cp[dim] = v
		}
		out.scores[d] = cp
	}
	return out
}

// Cells returns a copy of the raw matrix, keyed by string identifiers.
func (r *AssessmentResult) Cells() map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	if r == nil {
		return out
	}
	for d, row := range r.scores {
		cp := make(map[string]float64, len(row))
		for dim, v := range row {
			cp[string(dim)] = v
		}
		out[string(d)] = cp
	}
	return out
}

// Assessment is a submitted result together with its session metadata.
type Assessment struct {
	SessionID    string
	Organization string
	Result       *AssessmentResult
	SubmittedAt  time.Time
}
