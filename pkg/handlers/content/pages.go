package content

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/content"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const layout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Legal IT Maturity</title>
</head>
<body>
<nav>{{range .Nav}}<a href="/pages/{{.Slug}}">{{.Title}}</a> {{end}}</nav>
<main>
<h1>{{.Title}}</h1>
{{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}
{{if .Index}}<ul>{{range .Nav}}<li><a href="/pages/{{.Slug}}">{{.Title}}</a>{{if .Summary}}: {{.Summary}}{{end}}</li>{{end}}</ul>{{end}}
</main>
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(layout))

type pageView struct {
	Title      string
	Summary    string
	Paragraphs []string
	Nav        []domain.Page
	Index      bool
}

// Index renders the landing page from the "home" page when present.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nav, err := h.svc.List(ctx, true)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list pages")
		return
	}

	view := pageView{Title: "Legal IT Maturity Assessment", Nav: nav, Index: true}
	if home, err := h.svc.Get(ctx, "home"); err == nil && home.Published {
		view.Title = home.Title
		view.Summary = home.Summary
		view.Paragraphs = paragraphs(home.Body)
	}
	h.renderPage(w, r, view)
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := h.svc.Get(ctx, chi.URLParam(r, "slug"))
	if err == nil && !page.Published {
		err = content.ErrNotFound
	}
	if err != nil {
		status := statusFor(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	nav, err := h.svc.List(ctx, true)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to list pages for navigation")
	}
	h.renderPage(w, r, pageView{
		Title:      page.Title,
		Summary:    page.Summary,
		Paragraphs: paragraphs(page.Body),
		Nav:        nav,
	})
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, view pageView) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if h.tracker != nil {
		h.tracker.Track(r.Context(), domain.Event{
			Type:      domain.EventPageView,
			Path:      r.URL.Path,
			Referrer:  r.Referer(),
			UserAgent: r.UserAgent(),
			Timestamp: time.Now().UTC(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func paragraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
