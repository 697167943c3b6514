package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testSummary() *domain.Summary {
	cyber, _ := domain.DomainInfo(domain.DomainCybersecurity)
	risk, _ := domain.DomainInfo(domain.DomainRiskCompliance)
	people, _ := domain.DimensionInfo(domain.DimensionPeople)

	return &domain.Summary{
		SessionID:    "abc-123",
		Organization: "=HYPERLINK(\"x\")",
		SubmittedAt:  time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		Domains: []domain.DomainSummary{
			{
				Domain:  domain.DomainCybersecurity,
				Name:    cyber.Name,
				Average: 3.66,
				Band:    domain.BandEstablished,
				Benchmark: domain.BenchmarkComparison{
					DomainID: domain.DomainCybersecurity, Reference: 3.2, Delta: 0.5, Status: domain.BenchmarkAbove,
				},
				Scores: map[domain.Dimension]float64{domain.DimensionPeople: 4},
			},
			{
				Domain:  domain.DomainRiskCompliance,
				Name:    risk.Name,
				Average: 1.2,
				Band:    domain.BandInitial,
				Benchmark: domain.BenchmarkComparison{
					DomainID: domain.DomainRiskCompliance, Reference: 3.2, Delta: -2, Status: domain.BenchmarkBelow,
				},
				Scores: map[domain.Dimension]float64{},
			},
		},
		Dimensions: []domain.DimensionSummary{
			{Dimension: domain.DimensionPeople, Name: people.Name, Average: 2.04, Band: domain.BandDeveloping},
		},
		OverallAverage: 2.43,
		OverallBand:    domain.BandDeveloping,
		Answered:       12,
		Total:          40,
		FocusAreas: []domain.FocusArea{
			{
				Domain:         domain.DomainRiskCompliance,
				Name:           risk.Name,
				Average:        1.2,
				Band:           domain.BandInitial,
				Recommendation: risk.Recommendation,
				Controls: []domain.Control{
					{ID: "RC-2", Domain: domain.DomainRiskCompliance, Level: 2, Title: "Risk register"},
				},
			},
		},
		Strengths: []domain.DomainRanking{{Domain: domain.DomainCybersecurity, Average: 3.66}},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testSummary()))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, utf8BOM))

	r := csv.NewReader(bytes.NewReader(out[len(utf8BOM):]))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Organization", "'=HYPERLINK(\"x\")"}, records[2])
	assert.Equal(t, "2026-02-03T10:00:00Z", records[3][1])

	var domainRow, overallRow, focusRow []string
	for _, rec := range records {
		switch rec[0] {
		case testSummary().Domains[0].Name:
			domainRow = rec
		case "Overall average":
			overallRow = rec
		case testSummary().FocusAreas[0].Name:
			if len(rec) == 5 {
				focusRow = rec
			}
		}
	}
	require.NotNil(t, domainRow)
	assert.Equal(t, []string{"3.7", "Established", "3.2", "+0.5", "above", "4.0", "0.0"}, domainRow[1:8])
	assert.Equal(t, []string{"Overall average", "2.4", "Developing"}, overallRow)
	require.NotNil(t, focusRow)
	assert.Equal(t, "RC-2 Risk register", focusRow[4])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, testSummary()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(testSummary()))

	out := buf.String()
	assert.Contains(t, out, "Session: abc-123")
	assert.Contains(t, out, "Overall: 2.4 (Developing)  Answered: 12/40")
	assert.Contains(t, out, "+0.5 above")
	assert.Contains(t, out, "-2.0 below")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "- RC-2 Risk register")
}

func TestWriteYAML_UsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	summary := api.AssessmentSummary{SessionID: "007", OverallAverage: 2.5, OverallLevel: "Developing"}
	require.NoError(t, WriteYAML(&buf, summary))

	assert.Contains(t, buf.String(), "overall_level: Developing")
	assert.False(t, strings.Contains(buf.String(), "{"), "block style only")

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "007", back["session_id"], "numeric-looking strings stay strings")
	assert.Equal(t, 2.5, back["overall_average"])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, api.Error{Error: "boom"}))
	assert.Equal(t, "{\n  \"error\": \"boom\"\n}\n", buf.String())
}
