package framework

import (
	"net/http"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/handlers/render"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/store/controls"
)

type Handler struct {
	benchmarks benchmark.Source
	controls   *controls.Matrix
}

func NewHandler(benchmarks benchmark.Source, matrix *controls.Matrix) *Handler {
	return &Handler{benchmarks: benchmarks, controls: matrix}
}

func (h *Handler) Framework(w http.ResponseWriter, r *http.Request) {
	refs := h.benchmarks.References(r.Context())
	render.JSON(w, r, http.StatusOK, adapters.MapFrameworkDomainToApi(refs))
}

// Controls lists the control matrix, optionally filtered by ?domain=.
func (h *Handler) Controls(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("domain")
	if filter == "" {
		render.JSON(w, r, http.StatusOK, adapters.MapControlsDomainToApi(h.controls.All()))
		return
	}

	d, err := domain.ParseDomain(filter)
	if err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapControlsDomainToApi(h.controls.ForDomain(d)))
}
