package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/metrics"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/services/admin"
	"github.com/de-tools/maturity-atlas/pkg/services/assessment"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/services/content"
	"github.com/de-tools/maturity-atlas/pkg/store/controls"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := kv.NewMemoryStore()
	benchmarks := benchmark.NewSource(benchmark.Config{Reference: 3.2}, store)
	matrix, err := controls.Parse(strings.NewReader("id,domain,dimension,level,title,description\n" +
		"CS-1,cybersecurity,people,1,Awareness training,Annual training\n"))
	require.NoError(t, err)

	assessments, err := assessment.NewService(assessment.Dependencies{
		Store:      store,
		Benchmarks: benchmarks,
		Controls:   matrix,
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	router := ConfigureRouter(Config{
		Dependencies: Dependencies{
			Assessments: assessments,
			Content:     content.NewService(store, nil),
			Benchmarks:  benchmarks,
			Controls:    matrix,
			Sessions:    admin.NewSessions("letmein", time.Hour),
			Metrics:     metrics.New(reg),
			Gatherer:    reg,
			Logger:      zerolog.New(zerolog.NewTestWriter(t)),
		},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var result T
		err := json.Unmarshal(data, &result)
		return result, err
	}
}

func do(t *testing.T, method, url, token, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestWebAPI_AssessmentFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, http.MethodPost, srv.URL+"/api/v1/assessments", "",
		`{"session_id":"flow-1","scores":{"cybersecurity":{"people":2,"process":3}}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		parseResponse  func([]byte) (interface{}, error)
		check          func(t *testing.T, v interface{})
	}{
		{
			name:           "GetAssessment",
			path:           "/api/v1/assessments/flow-1",
			expectedStatus: http.StatusOK,
			parseResponse:  unmarshalResponse[api.AssessmentSummary](),
			check: func(t *testing.T, v interface{}) {
				s := v.(api.AssessmentSummary)
				assert.Equal(t, 2, s.Answered)
				assert.Equal(t, 1.0, s.Domains[0].Average)
				assert.Len(t, s.FocusAreas, 3)
			},
		},
		{
			name:           "Chart",
			path:           "/api/v1/assessments/flow-1/chart",
			expectedStatus: http.StatusOK,
			parseResponse:  unmarshalResponse[api.Chart](),
			check: func(t *testing.T, v interface{}) {
				c := v.(api.Chart)
				assert.Len(t, c.Labels, 8)
				assert.Equal(t, 1.0, c.Series[0].Values[0])
			},
		},
		{
			name:           "MissingAssessment",
			path:           "/api/v1/assessments/nope",
			expectedStatus: http.StatusNotFound,
			parseResponse:  unmarshalResponse[api.Error](),
			check: func(t *testing.T, v interface{}) {
				assert.Equal(t, "assessment not found", v.(api.Error).Error)
			},
		},
		{
			name:           "Framework",
			path:           "/api/v1/framework",
			expectedStatus: http.StatusOK,
			parseResponse:  unmarshalResponse[api.Framework](),
			check: func(t *testing.T, v interface{}) {
				assert.Len(t, v.(api.Framework).Domains, 8)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, http.MethodGet, srv.URL+tt.path, "", "")
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			v, err := tt.parseResponse(data)
			require.NoError(t, err)
			tt.check(t, v)
		})
	}
}

func TestWebAPI_AdminFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/api/v1/admin/assessments", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/v1/admin/login", "", `{"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, data := do(t, http.MethodPost, srv.URL+"/api/v1/admin/login", "", `{"password":"letmein"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login api.LoginResponse
	require.NoError(t, json.Unmarshal(data, &login))

	resp, _ = do(t, http.MethodPut, srv.URL+"/api/v1/admin/content/about", login.Token,
		`{"title":"About","body":"Who we are","published":true}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = do(t, http.MethodGet, srv.URL+"/pages/about", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Who we are")

	resp, _ = do(t, http.MethodPut, srv.URL+"/api/v1/admin/benchmarks/cybersecurity", login.Token, `{"reference":4}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data = do(t, http.MethodGet, srv.URL+"/api/v1/framework", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fw api.Framework
	require.NoError(t, json.Unmarshal(data, &fw))
	assert.Equal(t, 4.0, fw.Domains[0].Reference)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/v1/admin/logout", login.Token, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/v1/admin/content", login.Token, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebAPI_Metrics(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/v1/analytics/events", "", `{"type":"page_view","path":"/"}`)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, data := do(t, http.MethodGet, srv.URL+"/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `maturity_atlas_http_requests_total{method="POST",route="/api/v1/analytics/events",status="202"} 1`)
}

func TestWebAPI_StartStops(t *testing.T) {
	webAPI := NewWebAPI(Config{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: time.Second,
		Dependencies:    Dependencies{Logger: zerolog.Nop()},
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- webAPI.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
