package assessment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/handlers/render"
	"github.com/de-tools/maturity-atlas/pkg/metrics"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/runtime/export"
	"github.com/de-tools/maturity-atlas/pkg/services/assessment"
	"github.com/go-chi/chi/v5"
)

// Tracker receives interaction events; see analytics.Forwarder.
type Tracker interface {
	Track(ctx context.Context, e domain.Event) bool
}

type Handler struct {
	svc     assessment.Service
	tracker Tracker
	metrics *metrics.Metrics
}

func NewHandler(svc assessment.Service, tracker Tracker, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, tracker: tracker, metrics: m}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SubmitAssessmentRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	summary, err := h.svc.Submit(ctx, assessment.Submission{
		SessionID:    req.SessionID,
		Organization: req.Organization,
		Scores:       req.Scores,
	})
	if err != nil {
		render.Error(w, r, statusFor(err), err)
		return
	}

	if h.metrics != nil {
		h.metrics.Submissions.WithLabelValues(strconv.FormatBool(summary.Completed)).Inc()
	}
	if h.tracker != nil {
		h.tracker.Track(ctx, domain.Event{
			Type:      domain.EventInteraction,
			Name:      "assessment_submitted",
			SessionID: summary.SessionID,
			Path:      r.URL.Path,
			Properties: map[string]string{
				"answered": strconv.Itoa(summary.Answered),
				"level":    string(summary.OverallBand),
			},
			Timestamp: time.Now().UTC(),
		})
	}

	w.Header().Set("Location", "/api/v1/assessments/"+summary.SessionID)
	render.JSON(w, r, http.StatusCreated, adapters.MapSummaryDomainToApi(summary))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.load(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapSummaryDomainToApi(summary))
}

func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.load(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapChartDomainToApi(assessment.Chart(summary)))
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "text/csv; charset=utf-8", "csv", export.WriteCSV)
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "application/pdf", "pdf", export.WritePDF)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.List(r.Context())
	if err != nil {
		render.Error(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, http.StatusOK, api.AssessmentList{SessionIDs: ids})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*domain.Summary, bool) {
	summary, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, r, statusFor(err), err)
		return nil, false
	}
	return summary, true
}

// export renders into memory first so a failure can still produce a
// JSON error instead of a truncated download.
func (h *Handler) export(
	w http.ResponseWriter,
	r *http.Request,
	contentType, ext string,
	write func(io.Writer, *domain.Summary) error,
) {
	summary, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, summary); err != nil {
		render.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="maturity-assessment-%s.%s"`, summary.SessionID, ext))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, assessment.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, assessment.ErrInvalidSessionID),
		errors.Is(err, domain.ErrScoreOutOfRange),
		errors.Is(err, domain.ErrUnknownDomain),
		errors.Is(err, domain.ErrUnknownDimension):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
