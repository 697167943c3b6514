package store

import "time"

// Assessment is the JSON blob persisted at assessments/<session_id>.
type Assessment struct {
	SessionID    string                        `json:"session_id"`
	Organization string                        `json:"organization,omitempty"`
	Scores       map[string]map[string]float64 `json:"scores"`
	SubmittedAt  time.Time                     `json:"submitted_at"`
}

// Page is the JSON blob persisted at content/<slug>.
type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	UpdatedAt time.Time `json:"updated_at"`
}
