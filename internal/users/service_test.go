package users

import (
	"context"
	"errors"
	"testing"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() *Service {
	return NewService(NewMemoryUserRepository()).WithHashCost(bcrypt.MinCost)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada Founder", "  Ada@Example.com ", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "ada@example.com", u.Email)
	require.NotEqual(t, "correct-horse", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "ADA@example.com", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong-password")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "correct-horse")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	var ve *apperr.ValidationError

	_, err := svc.Register(ctx, "", "a@example.com", "longenough")
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "name", ve.Field)

	_, err = svc.Register(ctx, "A", "not-an-email", "longenough")
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "email", ve.Field)

	_, err = svc.Register(ctx, "A", "a@example.com", "short")
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "password", ve.Field)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Register(ctx, "A", "a@example.com", "longenough")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "B", "A@example.com", "longenough")
	var ce *apperr.ConflictError
	require.True(t, errors.As(err, &ce))
}

func TestUpsertFromClaims(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	claims := map[string]interface{}{
		"sub":   "sub-123",
		"email": "x@example.com",
		"name":  "X User",
	}

	u, err := svc.UpsertFromClaims(ctx, claims)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "x@example.com", u.Email)
	require.False(t, u.CreatedAt.IsZero())

	// same subject keeps the id and refreshes the name
	claims["name"] = "Renamed"
	u2, err := svc.UpsertFromClaims(ctx, claims)
	require.NoError(t, err)
	require.Equal(t, u.ID, u2.ID)
	require.Equal(t, "Renamed", u2.Name)

	// IdP users cannot log in with a password
	_, err = svc.Authenticate(ctx, "x@example.com", "")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	// missing sub => nil
	u3, err := svc.UpsertFromClaims(ctx, map[string]interface{}{"email": "y@e.com"})
	require.NoError(t, err)
	require.Nil(t, u3)
}
