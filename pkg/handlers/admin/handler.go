package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/handlers/render"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/server/middleware"
	"github.com/de-tools/maturity-atlas/pkg/services/admin"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type SessionManager interface {
	Login(ctx context.Context, password string) (admin.Session, error)
	Logout(token string)
}

type Handler struct {
	sessions   SessionManager
	benchmarks benchmark.Source
}

func NewHandler(sessions SessionManager, benchmarks benchmark.Source) *Handler {
	return &Handler{sessions: sessions, benchmarks: benchmarks}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Password)
	if errors.Is(err, admin.ErrDisabled) || errors.Is(err, admin.ErrInvalidCredentials) {
		render.Error(w, r, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		render.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	render.JSON(w, r, http.StatusOK, api.LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.AdminToken(r); token != "" {
		h.sessions.Logout(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetBenchmark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := domain.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		render.Error(w, r, http.StatusNotFound, err)
		return
	}

	var req api.BenchmarkOverrideRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	if err := h.benchmarks.SetOverride(ctx, d, req.Reference); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrScoreOutOfRange) {
			status = http.StatusBadRequest
		}
		render.Error(w, r, status, err)
		return
	}

	zerolog.Ctx(ctx).Info().
		Str("domain", string(d)).
		Float64("reference", req.Reference).
		Msg("benchmark override set")
	render.JSON(w, r, http.StatusOK, api.BenchmarkOverrideRequest{Reference: h.benchmarks.Reference(ctx, d)})
}

func (h *Handler) ClearBenchmark(w http.ResponseWriter, r *http.Request) {
	d, err := domain.ParseDomain(chi.URLParam(r, "domain"))
	if err != nil {
		render.Error(w, r, http.StatusNotFound, err)
		return
	}
	if err := h.benchmarks.ClearOverride(r.Context(), d); err != nil {
		render.Error(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
