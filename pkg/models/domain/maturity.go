package domain

// MaturityBand is a named score interval, ordered from Initial to Optimized.
type MaturityBand string

const (
	BandInitial     MaturityBand = "Initial"
	BandDeveloping  MaturityBand = "Developing"
	BandEstablished MaturityBand = "Established"
	BandManaged     MaturityBand = "Managed"
	BandOptimized   MaturityBand = "Optimized"
)

// BandDef describes the half-open interval [Min, Max) a band owns.
// The top band has Max = 0 meaning unbounded above.
type BandDef struct {
	Band        MaturityBand
	Min         float64
	Max         float64
	Description string
}

var bandRegistry = []BandDef{
	{Band: BandInitial, Min: 0, Max: 2.0, Description: "Ad hoc practices that depend on individuals."},
	{Band: BandDeveloping, Min: 2.0, Max: 3.0, Description: "Some repeatable practices, inconsistently applied."},
	{Band: BandEstablished, Min: 3.0, Max: 4.0, Description: "Defined, documented practices applied firm-wide."},
	{Band: BandManaged, Min: 4.0, Max: 4.5, Description: "Measured practices with active oversight."},
	{Band: BandOptimized, Min: 4.5, Max: 0, Description: "Continuously improving, benchmark-leading practices."},
}

func Bands() []BandDef {
	return append([]BandDef(nil), bandRegistry...)
}

type BenchmarkStatus string

const (
	BenchmarkAbove   BenchmarkStatus = "above"
	BenchmarkAverage BenchmarkStatus = "average"
	BenchmarkBelow   BenchmarkStatus = "below"
)

type BenchmarkComparison struct {
	DomainID  Domain
	Reference float64
	Delta     float64
	Status    BenchmarkStatus
}

// DomainRanking is a transient (domain, average) pair used for rankings.
type DomainRanking struct {
	Domain  Domain
	Average float64
}
