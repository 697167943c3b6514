package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultTTL = 12 * time.Hour

var (
	ErrDisabled           = errors.New("admin access is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Sessions holds issued admin tokens in memory. Restarting the process
// logs every admin out.
type Sessions struct {
	password []byte
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	tokens map[string]time.Time
}

// NewSessions with an empty password disables admin login entirely.
func NewSessions(password string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sessions{
		password: []byte(password),
		ttl:      ttl,
		now:      time.Now,
		tokens:   make(map[string]time.Time),
	}
}

func (s *Sessions) Enabled() bool {
	return len(s.password) > 0
}

func (s *Sessions) Login(ctx context.Context, password string) (Session, error) {
	logger := zerolog.Ctx(ctx)
	if !s.Enabled() {
		return Session{}, ErrDisabled
	}
	if subtle.ConstantTimeCompare(s.password, []byte(password)) != 1 {
		logger.Warn().Msg("admin login rejected")
		return Session{}, ErrInvalidCredentials
	}

	session := Session{
		Token:     uuid.New().String(),
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.pruneLocked()
	s.tokens[session.Token] = session.ExpiresAt
	s.mu.Unlock()

	logger.Info().Time("expires_at", session.ExpiresAt).Msg("admin session issued")
	return session, nil
}

func (s *Sessions) Validate(token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.tokens[token]
	if !ok {
		return ErrUnauthorized
	}
	if !s.now().Before(expires) {
		delete(s.tokens, token)
		return ErrUnauthorized
	}
	return nil
}

func (s *Sessions) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

func (s *Sessions) pruneLocked() {
	now := s.now()
	for token, expires := range s.tokens {
		if !now.Before(expires) {
			delete(s.tokens, token)
		}
	}
}
