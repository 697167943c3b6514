package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/maturity-atlas/pkg/metrics"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/assessment"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Submit(ctx context.Context, sub assessment.Submission) (*domain.Summary, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id string) (*domain.Summary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *mockService) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockService) Summarize(ctx context.Context, a *domain.Assessment) *domain.Summary {
	return m.Called(ctx, a).Get(0).(*domain.Summary)
}

type mockTracker struct {
	mock.Mock
}

func (m *mockTracker) Track(ctx context.Context, e domain.Event) bool {
	return m.Called(ctx, e).Bool(0)
}

func sampleSummary() *domain.Summary {
	cyber, _ := domain.DomainInfo(domain.DomainCybersecurity)
	return &domain.Summary{
		SessionID: "s-1",
		Domains: []domain.DomainSummary{{
			Domain:    domain.DomainCybersecurity,
			Name:      cyber.Name,
			Average:   3.44,
			Band:      domain.BandEstablished,
			Benchmark: domain.BenchmarkComparison{DomainID: domain.DomainCybersecurity, Reference: 3.2, Delta: 0.2, Status: domain.BenchmarkAverage},
			Scores:    map[domain.Dimension]float64{domain.DimensionPeople: 4},
		}},
		OverallAverage: 3.44,
		OverallBand:    domain.BandEstablished,
		Answered:       40,
		Total:          40,
		Completed:      true,
	}
}

func setupRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/assessments", h.Submit)
	r.Get("/assessments/{id}", h.Get)
	r.Get("/assessments/{id}/chart", h.Chart)
	r.Get("/assessments/{id}/export.csv", h.ExportCSV)
	r.Get("/assessments/{id}/export.pdf", h.ExportPDF)
	r.Get("/admin/assessments", h.List)
	return r
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mockService, *mockTracker)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "created",
			body: `{"organization":"Acme LLP","scores":{"cybersecurity":{"people":4}}}`,
			setupMock: func(m *mockService, tr *mockTracker) {
				m.On("Submit", mock.Anything, assessment.Submission{
					Organization: "Acme LLP",
					Scores:       map[string]map[string]float64{"cybersecurity": {"people": 4}},
				}).Return(sampleSummary(), nil)
				tr.On("Track", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
					return e.Name == "assessment_submitted" && e.SessionID == "s-1"
				})).Return(true)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing scores",
			body:           `{"organization":"Acme LLP"}`,
			setupMock:      func(*mockService, *mockTracker) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Scores failed required",
		},
		{
			name: "score out of range",
			body: `{"scores":{"cybersecurity":{"people":9}}}`,
			setupMock: func(m *mockService, _ *mockTracker) {
				m.On("Submit", mock.Anything, mock.Anything).
					Return(nil, domain.ErrScoreOutOfRange)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "score out of range",
		},
		{
			name: "store failure",
			body: `{"scores":{}}`,
			setupMock: func(m *mockService, _ *mockTracker) {
				m.On("Submit", mock.Anything, mock.Anything).
					Return(nil, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			tracker := &mockTracker{}
			tt.setupMock(svc, tracker)
			m := metrics.New(prometheus.NewRegistry())
			router := setupRouter(NewHandler(svc, tracker, m))

			req := httptest.NewRequest(http.MethodPost, "/assessments", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError != "" {
				var body api.Error
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Contains(t, body.Error, tt.expectedError)
				return
			}

			var body api.AssessmentSummary
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "s-1", body.SessionID)
			assert.Equal(t, "Established", body.OverallLevel)
			assert.Equal(t, "/api/v1/assessments/s-1", rec.Header().Get("Location"))
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("true")))
			svc.AssertExpectations(t)
			tracker.AssertExpectations(t)
		})
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		err            error
		expectedStatus int
	}{
		{"found", "s-1", nil, http.StatusOK},
		{"missing", "nope", assessment.ErrNotFound, http.StatusNotFound},
		{"invalid", "bad.id", assessment.ErrInvalidSessionID, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On("Get", mock.Anything, tt.id).Return(nil, tt.err)
			} else {
				svc.On("Get", mock.Anything, tt.id).Return(sampleSummary(), nil)
			}
			router := setupRouter(NewHandler(svc, nil, nil))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessments/"+tt.id, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestChart(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, "s-1").Return(sampleSummary(), nil)
	router := setupRouter(NewHandler(svc, nil, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessments/s-1/chart", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var chart api.Chart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&chart))
	require.Len(t, chart.Series, 2)
	assert.Equal(t, []float64{3.4}, chart.Series[0].Values)
	assert.Equal(t, []float64{3.2}, chart.Series[1].Values)
}

func TestExport(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, "s-1").Return(sampleSummary(), nil)
	router := setupRouter(NewHandler(svc, nil, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessments/s-1/export.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="maturity-assessment-s-1.csv"`)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\ufeff"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assessments/s-1/export.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestList(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything).Return([]string{"a", "b"}, nil)
	router := setupRouter(NewHandler(svc, nil, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/assessments", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"session_ids":["a","b"]}`, rec.Body.String())
}
