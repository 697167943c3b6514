package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/handlers/render"
	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

type Tracker interface {
	Track(ctx context.Context, e domain.Event) bool
}

type Handler struct {
	tracker Tracker
	now     func() time.Time
}

func NewHandler(tracker Tracker) *Handler {
	return &Handler{tracker: tracker, now: time.Now}
}

// TrackEvent answers 202 whether or not the event survives the queue;
// drops are visible in metrics only.
func (h *Handler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req api.Event
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	event := adapters.MapEventApiToDomain(req, h.now().UTC())
	event.UserAgent = r.UserAgent()
	event.Referrer = r.Referer()
	if h.tracker != nil {
		h.tracker.Track(r.Context(), event)
	}

	w.WriteHeader(http.StatusAccepted)
}
