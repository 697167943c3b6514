package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/models/store"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/rs/zerolog"
)

const keyPrefix = "content/"

var (
	ErrNotFound    = errors.New("page not found")
	ErrInvalidSlug = errors.New("invalid page slug")
	ErrInvalidPage = errors.New("invalid page")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Service interface {
	Get(ctx context.Context, slug string) (domain.Page, error)
	List(ctx context.Context, publishedOnly bool) ([]domain.Page, error)
	Save(ctx context.Context, page domain.Page) (domain.Page, error)
	Delete(ctx context.Context, slug string) error
	Seed(ctx context.Context, path string) (int, error)
}

type service struct {
	store kv.Store
	now   func() time.Time
}

func NewService(store kv.Store, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{store: store, now: now}
}

func ValidSlug(slug string) bool {
	return len(slug) <= 128 && slugPattern.MatchString(slug)
}

func (s *service) Get(ctx context.Context, slug string) (domain.Page, error) {
	if !ValidSlug(slug) {
		return domain.Page{}, fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	raw, err := s.store.Get(ctx, keyPrefix+slug)
	if errors.Is(err, kv.ErrNotFound) {
		return domain.Page{}, ErrNotFound
	}
	if err != nil {
		return domain.Page{}, fmt.Errorf("load page %s: %w", slug, err)
	}

	var p store.Page
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Page{}, fmt.Errorf("decode page %s: %w", slug, err)
	}
	p.Slug = slug
	return adapters.MapPageStoreToDomain(p), nil
}

// List returns pages sorted by slug. Undecodable entries are skipped.
func (s *service) List(ctx context.Context, publishedOnly bool) ([]domain.Page, error) {
	logger := zerolog.Ctx(ctx)

	keys, err := s.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	pages := make([]domain.Page, 0, len(keys))
	for _, key := range keys {
		page, err := s.Get(ctx, strings.TrimPrefix(key, keyPrefix))
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("skipping unreadable page")
			continue
		}
		if publishedOnly && !page.Published {
			continue
		}
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages, nil
}

func (s *service) Save(ctx context.Context, page domain.Page) (domain.Page, error) {
	page.Slug = strings.TrimSpace(page.Slug)
	page.Title = strings.TrimSpace(page.Title)
	if !ValidSlug(page.Slug) {
		return domain.Page{}, fmt.Errorf("%w: %q", ErrInvalidSlug, page.Slug)
	}
	if page.Title == "" {
		return domain.Page{}, fmt.Errorf("%w: title is required", ErrInvalidPage)
	}
	page.UpdatedAt = s.now().UTC()

	raw, err := json.Marshal(adapters.MapPageDomainToStore(page))
	if err != nil {
		return domain.Page{}, fmt.Errorf("marshal page: %w", err)
	}
	if err := s.store.Put(ctx, keyPrefix+page.Slug, raw); err != nil {
		return domain.Page{}, fmt.Errorf("store page %s: %w", page.Slug, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("slug", page.Slug).
		Bool("published", page.Published).
		Msg("page saved")
	return page, nil
}

func (s *service) Delete(ctx context.Context, slug string) error {
	if !ValidSlug(slug) {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	err := s.store.Delete(ctx, keyPrefix+slug)
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete page %s: %w", slug, err)
	}
	return nil
}
