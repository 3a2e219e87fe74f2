package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/models"
	"github.com/founderdash/dashboard/pkg/logger"
	"github.com/founderdash/dashboard/pkg/metrics"
	"github.com/sony/gobreaker"
)

// UserLookup resolves the user a session belongs to. (nil, nil) means unknown.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Service creates, validates and revokes sessions.
type Service struct {
	repo    Repository
	users   UserLookup
	now     func() time.Time
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLookupTimeout bounds each store lookup. Zero disables the bound.
func WithLookupTimeout(d time.Duration) Option { return func(s *Service) { s.timeout = d } }

// WithBreaker replaces the default circuit breaker.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option { return func(s *Service) { s.breaker = cb } }

func NewService(r Repository, users UserLookup, opts ...Option) *Service {
	s := &Service{
		repo:    r,
		users:   users,
		now:     time.Now,
		timeout: 2 * time.Second,
		breaker: NewBreaker("session-store"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewBreaker trips after 5 requests with at least 60% store failures and
// half-opens after 10s.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create stores a new session for userID expiring after ttl.
func (s *Service) Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error) {
	tok, err := newToken()
	if err != nil {
		return nil, apperr.Internal("sessions.token", err)
	}
	now := s.now().UTC()
	sess := &Session{
		Token:     tok,
		Handle:    HandleFor(tok),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, apperr.Internal("sessions.create", err)
	}
	return sess, nil
}

type lookupResult struct {
	sess *Session
	user *models.User
}

// Validate resolves token to the identity of its user. It never renews or
// deletes the session.
func (s *Service) Validate(ctx context.Context, token string) (models.Identity, error) {
	id, err := s.validate(ctx, token, s.repo.GetByToken)
	metrics.SessionValidations.WithLabelValues(validationLabel(err)).Inc()
	return id, err
}

// ValidateHandle is Validate for the handle carried by a bearer token. A
// handle is never accepted where a token is expected.
func (s *Service) ValidateHandle(ctx context.Context, handle string) (models.Identity, error) {
	id, err := s.validate(ctx, handle, s.repo.GetByHandle)
	metrics.SessionValidations.WithLabelValues(validationLabel(err)).Inc()
	return id, err
}

func (s *Service) validate(ctx context.Context, key string, fetch func(context.Context, string) (*Session, error)) (models.Identity, error) {
	if key == "" {
		return models.Identity{}, apperr.ErrUnauthenticated
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	res, err := s.breaker.Execute(func() (interface{}, error) {
		sess, err := fetch(ctx, key)
		if err != nil || sess == nil {
			return lookupResult{}, err
		}
		u, err := s.users.GetByID(ctx, sess.UserID)
		if err != nil {
			return lookupResult{}, err
		}
		return lookupResult{sess: sess, user: u}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logger.Warnf("session lookup rejected: %v", err)
		} else {
			logger.Errorf("session lookup failed: %v", err)
		}
		return models.Identity{}, apperr.Internal("sessions.lookup", err)
	}
	lr := res.(lookupResult)
	if lr.sess == nil || !lr.sess.ValidAt(s.now()) || lr.user == nil {
		return models.Identity{}, apperr.ErrSessionExpired
	}
	return lr.user.Identity(), nil
}

func validationLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, apperr.ErrSessionExpired):
		return "expired"
	default:
		return "error"
	}
}

// Revoke deletes the session. Unknown tokens are not an error.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteByToken(ctx, token); err != nil {
		return apperr.Internal("sessions.revoke", err)
	}
	return nil
}
