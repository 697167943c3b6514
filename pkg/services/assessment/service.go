package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/de-tools/maturity-atlas/pkg/adapters"
	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/models/store"
	"github.com/de-tools/maturity-atlas/pkg/services/benchmark"
	"github.com/de-tools/maturity-atlas/pkg/store/controls"
	"github.com/de-tools/maturity-atlas/pkg/store/kv"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	keyPrefix = "assessments/"
	// rankedDomains is how many focus areas and strengths a summary lists.
	rankedDomains = 3
)

var (
	ErrNotFound         = errors.New("assessment not found")
	ErrInvalidSessionID = errors.New("invalid session id")
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Submission is a raw questionnaire payload keyed by domain and dimension ids.
type Submission struct {
	SessionID    string
	Organization string
	Scores       map[string]map[string]float64
}

type Service interface {
	Submit(ctx context.Context, sub Submission) (*domain.Summary, error)
	Get(ctx context.Context, sessionID string) (*domain.Summary, error)
	List(ctx context.Context) ([]string, error)
	Summarize(ctx context.Context, a *domain.Assessment) *domain.Summary
}

type Dependencies struct {
	Store      kv.Store
	Benchmarks benchmark.Source
	// Controls is optional; without it focus areas carry no controls.
	Controls *controls.Matrix
	Now      func() time.Time
	NewID    func() string
}

type service struct {
	store      kv.Store
	benchmarks benchmark.Source
	controls   *controls.Matrix
	now        func() time.Time
	newID      func() string
}

func NewService(deps Dependencies) (Service, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("assessment store is nil")
	}
	if deps.Benchmarks == nil {
		deps.Benchmarks = benchmark.NewSource(benchmark.Config{}, nil)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return uuid.New().String() }
	}
	return &service{
		store:      deps.Store,
		benchmarks: deps.Benchmarks,
		controls:   deps.Controls,
		now:        deps.Now,
		newID:      deps.NewID,
	}, nil
}

// Submit validates every cell, then stores the result under its session
// id. A resubmission replaces the previous value at the same key.
func (s *service) Submit(ctx context.Context, sub Submission) (*domain.Summary, error) {
	logger := zerolog.Ctx(ctx)

	sessionID := strings.TrimSpace(sub.SessionID)
	if sessionID == "" {
		sessionID = s.newID()
	}
	if !sessionIDPattern.MatchString(sessionID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, sub.SessionID)
	}

	result, err := adapters.BuildResult(sub.Scores, true)
	if err != nil {
		return nil, err
	}

	a := &domain.Assessment{
		SessionID:    sessionID,
		Organization: strings.TrimSpace(sub.Organization),
		Result:       result,
		SubmittedAt:  s.now().UTC(),
	}

	raw, err := json.Marshal(adapters.MapDomainAssessmentToStore(a))
	if err != nil {
		return nil, fmt.Errorf("marshal assessment: %w", err)
	}
	if err := s.store.Put(ctx, keyPrefix+sessionID, raw); err != nil {
		return nil, fmt.Errorf("store assessment %s: %w", sessionID, err)
	}

	logger.Info().
		Str("session_id", sessionID).
		Int("answered", result.Answered()).
		Msg("assessment submitted")

	return s.Summarize(ctx, a), nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*domain.Summary, error) {
	if !sessionIDPattern.MatchString(sessionID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, sessionID)
	}

	raw, err := s.store.Get(ctx, keyPrefix+sessionID)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load assessment %s: %w", sessionID, err)
	}

	var stored store.Assessment
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode assessment %s: %w", sessionID, err)
	}
	if stored.SessionID == "" {
		stored.SessionID = sessionID
	}

	a, err := adapters.MapStoreAssessmentToDomain(stored)
	if err != nil {
		return nil, err
	}
	return s.Summarize(ctx, a), nil
}

func (s *service) List(ctx context.Context) ([]string, error) {
	keys, err := s.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, keyPrefix))
	}
	return ids, nil
}
