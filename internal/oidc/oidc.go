// Package oidc verifies ID tokens from the configured identity provider for
// the optional single sign-on login.
package oidc

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/founderdash/dashboard/internal/config"
	"github.com/founderdash/dashboard/pkg/logger"
)

// Token is a minimal interface for token payloads that allows extracting claims.
// It is satisfied by *oidc.IDToken and by test fakes.
type Token interface {
	Claims(v interface{}) error
}

// TokenVerifier checks a raw ID token.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Verifier wraps the OIDC provider and token verifier
type Verifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewVerifier creates a new OIDC verifier for the given issuer and client ID
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &Verifier{provider: provider, verifier: verifier}, nil
}

// Verify verifies the provided raw ID token using the provided context
func (v *Verifier) Verify(ctx context.Context, raw string) (Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}

// Setup returns the verifier for kc, or nil when OIDC login is not configured.
// When discovery fails and insecure tokens are allowed, the payload-only
// verifier is used instead. Allowing insecure tokens in the production
// environment is a configuration error.
func Setup(ctx context.Context, kc config.KeycloakConfig, environment string) (TokenVerifier, error) {
	issuer := kc.Issuer()
	if issuer == "" {
		return nil, nil
	}
	if kc.AllowInsecureToken && strings.EqualFold(environment, "production") {
		return nil, ErrInsecureInProduction
	}
	v, err := NewVerifier(ctx, issuer, kc.ClientID)
	if err != nil {
		if kc.AllowInsecureToken {
			logger.Warnf("oidc discovery failed (%v); ALLOW_INSECURE_TOKEN set, accepting unverified tokens", err)
			return NewInsecureVerifier(), nil
		}
		return nil, err
	}
	return v, nil
}

// Claims verifies raw and decodes its claims.
func Claims(ctx context.Context, v TokenVerifier, raw string) (map[string]interface{}, error) {
	tkn, err := v.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	var claims map[string]interface{}
	if err := tkn.Claims(&claims); err != nil {
		return nil, err
	}
	return claims, nil
}
