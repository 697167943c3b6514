package framework

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/store/controls"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, matrix *controls.Matrix) *chi.Mux {
	t.Helper()
	src := benchmark.NewSource(benchmark.Config{Reference: 3.0}, kv.NewMemoryStore())
	h := NewHandler(src, matrix)

	r := chi.NewRouter()
	r.Get("/framework", h.Framework)
	r.Get("/controls", h.Controls)
	return r
}

func TestFramework(t *testing.T) {
	router := setupRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/framework", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var fw api.Framework
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fw))
	require.Len(t, fw.Domains, 8)
	assert.Equal(t, "cybersecurity", fw.Domains[0].ID)
	assert.Equal(t, 3.0, fw.Domains[0].Reference)
	assert.Len(t, fw.Dimensions, 5)
	require.Len(t, fw.Bands, 5)
	assert.Nil(t, fw.Bands[4].Max)
	assert.Equal(t, 1, fw.MinScore)
	assert.Equal(t, 5, fw.MaxScore)
}

func TestControls(t *testing.T) {
	matrix, err := controls.Parse(strings.NewReader(`id,domain,dimension,level,title,description
CS-1,cybersecurity,people,1,Awareness training,Annual training
KD-2,knowledge-data,technology,2,Document management,Central DMS
`))
	require.NoError(t, err)
	router := setupRouter(t, matrix)

	tests := []struct {
		query          string
		expectedStatus int
		expectedIDs    []string
	}{
		{"", http.StatusOK, []string{"CS-1", "KD-2"}},
		{"?domain=knowledge-data", http.StatusOK, []string{"KD-2"}},
		{"?domain=service-management", http.StatusOK, []string{}},
		{"?domain=hr", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/controls"+tt.query, nil))
			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedIDs == nil {
				return
			}
			var list []api.Control
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
			ids := make([]string, 0, len(list))
			for _, c := range list {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}
