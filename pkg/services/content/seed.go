package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"gopkg.in/ini.v1"
)

// LoadSeed reads initial pages from an INI file, one section per slug:
//
//	[about]
//	title = About us
//	summary = Who we are
//	published = true
//	body = """..."""
func LoadSeed(path string) ([]domain.Page, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load content seed: %w", err)
	}

	var pages []domain.Page
	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		slug := section.Name()
		if !ValidSlug(slug) {
			return nil, fmt.Errorf("%w: seed section %q", ErrInvalidSlug, slug)
		}
		published, err := section.Key("published").Bool()
		if err != nil && section.HasKey("published") {
			return nil, fmt.Errorf("seed section %q: published: %w", slug, err)
		}
		pages = append(pages, domain.Page{
			Slug:      slug,
			Title:     section.Key("title").String(),
			Summary:   section.Key("summary").String(),
			Body:      section.Key("body").String(),
			Published: published,
		})
	}
	return pages, nil
}

// Seed stores pages from path that do not exist yet and returns how many
// were written. Existing pages are never overwritten. On stores that
// support transactions a failure leaves no page behind.
func (s *service) Seed(ctx context.Context, path string) (int, error) {
	pages, err := LoadSeed(path)
	if err != nil {
		return 0, err
	}

	written := 0
	err = kv.WithinTx(ctx, s.store, func(ctx context.Context) error {
		for _, page := range pages {
			_, err := s.Get(ctx, page.Slug)
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrNotFound) {
				return err
			}
			if _, err := s.Save(ctx, page); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		if _, ok := s.store.(kv.Transactor); ok {
			written = 0
		}
		return written, err
	}
	return written, nil
}
