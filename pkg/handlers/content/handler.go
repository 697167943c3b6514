package content

import (
	"context"
	"errors"
	"net/http"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/handlers/render"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/content"
	"github.com/go-chi/chi/v5"
)

type Tracker interface {
	Track(ctx context.Context, e domain.Event) bool
}

type Handler struct {
	svc     content.Service
	tracker Tracker
}

func NewHandler(svc content.Service, tracker Tracker) *Handler {
	return &Handler{svc: svc, tracker: tracker}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// Get serves published pages only; drafts look missing.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Get(r.Context(), chi.URLParam(r, "slug"))
	if err == nil && !page.Published {
		err = content.ErrNotFound
	}
	if err != nil {
		render.Error(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapPageDomainToApi(page))
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req api.SavePageRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	page, err := h.svc.Save(r.Context(), adapters.MapSavePageApiToDomain(chi.URLParam(r, "slug"), req))
	if err != nil {
		render.Error(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapPageDomainToApi(page))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		render.Error(w, r, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	pages, err := h.svc.List(r.Context(), publishedOnly)
	if err != nil {
		render.Error(w, r, http.StatusInternalServerError, err)
		return
	}
	out := make([]api.Page, 0, len(pages))
	for _, p := range pages {
		out = append(out, adapters.MapPageDomainToApi(p))
	}
	render.JSON(w, r, http.StatusOK, out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, content.ErrInvalidSlug), errors.Is(err, content.ErrInvalidPage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
