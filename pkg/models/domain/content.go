package domain

import "time"

// Page is a CMS-managed marketing page.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	Body      string
	Published bool
	UpdatedAt time.Time
}

// Control is one row of the static control matrix.
type Control struct {
	ID          string
	Domain      Domain
	Dimension   Dimension
	Level       int
	Title       string
	Description string
}

type EventType string

const (
	EventPageView    EventType = "page_view"
	EventInteraction EventType = "interaction"
)

// Event is a page-view or interaction forwarded to the analytics tracker.
type Event struct {
	Type       EventType
	Path       string
	Name       string
	SessionID  string
	Referrer   string
	UserAgent  string
	Properties map[string]string
	Timestamp  time.Time
}
