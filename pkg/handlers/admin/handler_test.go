package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/server/middleware"
	"github.com/de-tools/maturity-atlas/pkg/services/admin"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Login(ctx context.Context, password string) (admin.Session, error) {
	args := m.Called(ctx, password)
	return args.Get(0).(admin.Session), args.Error(1)
}

func (m *mockSessions) Logout(token string) {
	m.Called(token)
}

func setupRouter(sessions SessionManager, src benchmark.Source) *chi.Mux {
	h := NewHandler(sessions, src)
	r := chi.NewRouter()
	r.Post("/admin/login", h.Login)
	r.Post("/admin/logout", h.Logout)
	r.Put("/admin/benchmarks/{domain}", h.SetBenchmark)
	r.Delete("/admin/benchmarks/{domain}", h.ClearBenchmark)
	return r
}

func TestLogin(t *testing.T) {
	expires := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		setupMock      func(*mockSessions)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"password":"pw"}`,
			setupMock: func(m *mockSessions) {
				m.On("Login", mock.Anything, "pw").Return(admin.Session{Token: "tok", ExpiresAt: expires}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"password":"nope"}`,
			setupMock: func(m *mockSessions) {
				m.On("Login", mock.Anything, "nope").Return(admin.Session{}, admin.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "admin disabled",
			body: `{"password":"pw"}`,
			setupMock: func(m *mockSessions) {
				m.On("Login", mock.Anything, "pw").Return(admin.Session{}, admin.ErrDisabled)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty body",
			body:           `{}`,
			setupMock:      func(*mockSessions) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &mockSessions{}
			tt.setupMock(sessions)
			router := setupRouter(sessions, benchmark.NewSource(benchmark.Config{}, nil))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			sessions.AssertExpectations(t)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp api.LoginResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "tok", resp.Token)

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, middleware.AdminCookie, cookies[0].Name)
			assert.Equal(t, "tok", cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
		})
	}
}

func TestLogout(t *testing.T) {
	sessions := &mockSessions{}
	sessions.On("Logout", "tok").Return()
	router := setupRouter(sessions, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	sessions.AssertExpectations(t)
}

func TestBenchmarks(t *testing.T) {
	src := benchmark.NewSource(benchmark.Config{Reference: 3.2}, kv.NewMemoryStore())
	router := setupRouter(&mockSessions{}, src)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"set", http.MethodPut, "/admin/benchmarks/cybersecurity", `{"reference":3.8}`, http.StatusOK},
		{"out of range", http.MethodPut, "/admin/benchmarks/cybersecurity", `{"reference":6}`, http.StatusBadRequest},
		{"unknown domain", http.MethodPut, "/admin/benchmarks/hr", `{"reference":3}`, http.StatusNotFound},
		{"clear unknown domain", http.MethodDelete, "/admin/benchmarks/hr", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}

	ctx := context.Background()
	assert.Equal(t, 3.8, src.Reference(ctx, domain.DomainCybersecurity))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/benchmarks/cybersecurity", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 3.2, src.Reference(ctx, domain.DomainCybersecurity))
}
