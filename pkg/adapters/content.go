package adapters

import (
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/api"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/models/store"
)

func MapPageDomainToStore(p domain.Page) store.Page {
	return store.Page{
		Slug:      p.Slug,
		Title:     p.Title,
		Summary:   p.Summary,
		Body:      p.Body,
		Published: p.Published,
		UpdatedAt: p.UpdatedAt,
	}
}

func MapPageStoreToDomain(p store.Page) domain.Page {
	return domain.Page{
		Slug:      p.Slug,
		Title:     p.Title,
		Summary:   p.Summary,
		Body:      p.Body,
		Published: p.Published,
		UpdatedAt: p.UpdatedAt,
	}
}

func MapPageDomainToApi(p domain.Page) api.Page {
	return api.Page{
		Slug:      p.Slug,
		Title:     p.Title,
		Summary:   p.Summary,
		Body:      p.Body,
		Published: p.Published,
		UpdatedAt: p.UpdatedAt,
	}
}

func MapSavePageApiToDomain(slug string, req api.SavePageRequest) domain.Page {
	return domain.Page{
		Slug:      slug,
		Title:     req.Title,
		Summary:   req.Summary,
		Body:      req.Body,
		Published: req.Published,
	}
}

func MapEventApiToDomain(e api.Event, now time.Time) domain.Event {
	return domain.Event{
		Type:       domain.EventType(e.Type),
		Path:       e.Path,
		Name:       e.Name,
		SessionID:  e.SessionID,
		Properties: e.Properties,
		Timestamp:  now,
	}
}
