package benchmark

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/services/scoring"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/rs/zerolog"
)

const keyPrefix = "benchmarks/"

// Source resolves the reference score a domain average is compared to.
type Source interface {
	Reference(ctx context.Context, d domain.Domain) float64
	References(ctx context.Context) map[domain.Domain]float64
	SetOverride(ctx context.Context, d domain.Domain, value float64) error
	ClearOverride(ctx context.Context, d domain.Domain) error
}

type Config struct {
	// Reference applies to every domain without an override.
	Reference float64
	Overrides map[domain.Domain]float64
}

type source struct {
	cfg   Config
	store kv.Store
}

// NewSource layers admin overrides from store over the configured values.
// store may be nil, in which case only configuration is used.
func NewSource(cfg Config, store kv.Store) Source {
	if cfg.Reference <= 0 {
		cfg.Reference = scoring.DefaultReference
	}
	return &source{cfg: cfg, store: store}
}

func (s *source) configured(d domain.Domain) float64 {
	if v, ok := s.cfg.Overrides[d]; ok {
		return v
	}
	return s.cfg.Reference
}

// Reference never fails: store errors fall back to configuration.
func (s *source) Reference(ctx context.Context, d domain.Domain) float64 {
	fallback := s.configured(d)
	if s.store == nil {
		return fallback
	}

	raw, err := s.store.Get(ctx, keyPrefix+string(d))
	if errors.Is(err, kv.ErrNotFound) {
		return fallback
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("domain", string(d)).
			Float64("fallback", fallback).
			Msg("failed to load benchmark override")
		return fallback
	}

	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || domain.ValidateScore(v) != nil {
		zerolog.Ctx(ctx).Warn().
			Str("domain", string(d)).
			Str("value", string(raw)).
			Msg("ignoring invalid benchmark override")
		return fallback
	}
	return v
}

func (s *source) References(ctx context.Context) map[domain.Domain]float64 {
	out := make(map[domain.Domain]float64, len(domain.Domains()))
	for _, d := range domain.Domains() {
		out[d] = s.Reference(ctx, d)
	}
	return out
}

func (s *source) SetOverride(ctx context.Context, d domain.Domain, value float64) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}
	if err := domain.ValidateScore(value); err != nil {
		return err
	}
	if s.store == nil {
		return errors.New("benchmark overrides require a store")
	}
	return s.store.Put(ctx, keyPrefix+string(d), []byte(strconv.FormatFloat(value, 'f', -1, 64)))
}

func (s *source) ClearOverride(ctx context.Context, d domain.Domain) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}
	if s.store == nil {
		return nil
	}
	err := s.store.Delete(ctx, keyPrefix+string(d))
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	return err
}
