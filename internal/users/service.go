package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/models"
	"github.com/founderdash/dashboard/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
	cost int
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithHashCost(cost int) *Service {
	s.cost = cost
	return s
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// Register creates a password account.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if err := validation.First(
		validation.Required("name", name),
		validation.Required("email", email),
		validation.Email("email", email),
	); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, apperr.Invalid("password", "must be at least %d characters", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperr.Internal("users.hash", err)
	}
	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, &apperr.ConflictError{Message: ErrEmailTaken.Error()}
		}
		return nil, apperr.Internal("users.create", err)
	}
	return u, nil
}

// Authenticate checks email/password and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, apperr.Internal("users.lookup", err)
	}
	if u == nil || u.PasswordHash == "" {
		return nil, apperr.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	return u, nil
}

// UpsertFromClaims creates or updates a user using an OIDC claims map.
// Returns (nil, nil) when the claims carry no subject.
func (s *Service) UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*models.User, error) {
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if sub == "" {
		return nil, nil
	}
	email = normalizeEmail(email)
	if err := validation.First(validation.Required("email", email), validation.Email("email", email)); err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	u, err := s.repo.UpsertBySubject(ctx, &models.User{ID: uuid.NewString(), Subject: sub, Email: email, Name: name})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, &apperr.ConflictError{Message: ErrEmailTaken.Error()}
		}
		return nil, apperr.Internal("users.upsert", err)
	}
	return u, nil
}

// GetByID returns (nil, nil) for unknown ids.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
