package api

type DomainDef struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
	Reference      float64 `json:"reference"`
}

type DimensionDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Band struct {
	Name        string   `json:"name"`
	Min         float64  `json:"min"`
	Max         *float64 `json:"max,omitempty"`
	Description string   `json:"description"`
}

type Framework struct {
	Domains    []DomainDef    `json:"domains"`
	Dimensions []DimensionDef `json:"dimensions"`
	Bands      []Band         `json:"bands"`
	MinScore   int            `json:"min_score"`
	MaxScore   int            `json:"max_score"`
}

type BenchmarkOverrideRequest struct {
	Reference float64 `json:"reference" validate:"gt=0,lte=5"`
}
