package api

import "time"

type SubmitAssessmentRequest struct {
	SessionID    string                        `json:"session_id,omitempty" validate:"omitempty,max=64"`
	Organization string                        `json:"organization,omitempty" validate:"max=200"`
	Scores       map[string]map[string]float64 `json:"scores" validate:"required"`
}

type Benchmark struct {
	Reference float64 `json:"reference"`
	Delta     float64 `json:"delta"`
	Status    string  `json:"status"`
}

type DomainScore struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Average   float64            `json:"average"`
	Level     string             `json:"level"`
	Benchmark Benchmark          `json:"benchmark"`
	Scores    map[string]float64 `json:"scores"`
}

type DimensionScore struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Average float64 `json:"average"`
	Level   string  `json:"level"`
}

type Control struct {
	ID          string `json:"id"`
	Domain      string `json:"domain"`
	Dimension   string `json:"dimension"`
	Level       int    `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type FocusArea struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Average        float64   `json:"average"`
	Level          string    `json:"level"`
	Recommendation string    `json:"recommendation"`
	Controls       []Control `json:"controls"`
}

type DomainRanking struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Average float64 `json:"average"`
}

type AssessmentSummary struct {
	SessionID      string           `json:"session_id"`
	Organization   string           `json:"organization,omitempty"`
	SubmittedAt    time.Time        `json:"submitted_at"`
	Domains        []DomainScore    `json:"domains"`
	Dimensions     []DimensionScore `json:"dimensions"`
	OverallAverage float64          `json:"overall_average"`
	OverallLevel   string           `json:"overall_level"`
	Answered       int              `json:"answered"`
	Total          int              `json:"total"`
	Completed      bool             `json:"completed"`
	FocusAreas     []FocusArea      `json:"focus_areas"`
	Strengths      []DomainRanking  `json:"strengths"`
}

type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type Chart struct {
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

type AssessmentList struct {
	SessionIDs []string `json:"session_ids"`
}
