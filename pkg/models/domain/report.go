package domain

import "time"

// Summary is the full scored view of an assessment handed to the UI,
// export and persistence collaborators.
type Summary struct {
	SessionID      string
	Organization   string
	SubmittedAt    time.Time
	Domains        []DomainSummary
	Dimensions     []DimensionSummary
	OverallAverage float64
	OverallBand    MaturityBand
	Answered       int
	Total          int
	Completed      bool
	FocusAreas     []FocusArea
	Strengths      []DomainRanking
}

type DomainSummary struct {
	Domain    Domain
	Name      string
	Average   float64
	Band      MaturityBand
	Benchmark BenchmarkComparison
	Scores    map[Dimension]float64
}

type DimensionSummary struct {
	Dimension Dimension
	Name      string
	Average   float64
	Band      MaturityBand
}

type FocusArea struct {
	Domain         Domain
	Name           string
	Average        float64
	Band           MaturityBand
	Recommendation string
	Controls       []Control
}

// ChartSeries is a labelled set of values for a radar chart.
type ChartSeries struct {
	Name   string
	Values []float64
}

type Chart struct {
	Labels []string
	Series []ChartSeries
}
