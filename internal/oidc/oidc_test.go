package oidc

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/founderdash/dashboard/internal/config"
	"github.com/stretchr/testify/require"
)

func fakeJWT(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"none"}`)) + "." + enc.EncodeToString([]byte(payload)) + ".sig"
}

func TestInsecureVerifierClaims(t *testing.T) {
	claims, err := Claims(context.Background(), NewInsecureVerifier(), fakeJWT(`{"sub":"kc-1","email":"ada@example.com","name":"Ada"}`))
	require.NoError(t, err)
	require.Equal(t, "kc-1", claims["sub"])
	require.Equal(t, "ada@example.com", claims["email"])

	_, err = NewInsecureVerifier().Verify(context.Background(), "garbage")
	require.Error(t, err)
}

func TestSetupDisabledWithoutIssuer(t *testing.T) {
	v, err := Setup(context.Background(), config.KeycloakConfig{}, "production")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetupFallsBackWhenInsecureAllowed(t *testing.T) {
	kc := config.KeycloakConfig{URL: "http://127.0.0.1:1", Realm: "r", ClientID: "c", AllowInsecureToken: true}
	v, err := Setup(context.Background(), kc, "development")
	require.NoError(t, err)
	require.IsType(t, &InsecureVerifier{}, v)

	kc.AllowInsecureToken = false
	_, err = Setup(context.Background(), kc, "development")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInsecureInProduction)
}

func TestSetupRefusesInsecureInProduction(t *testing.T) {
	kc := config.KeycloakConfig{URL: "http://127.0.0.1:1", Realm: "r", ClientID: "c", AllowInsecureToken: true}
	for _, env := range []string{"production", "Production"} {
		v, err := Setup(context.Background(), kc, env)
		require.ErrorIs(t, err, ErrInsecureInProduction, env)
		require.Nil(t, v)
	}
}

func TestInsecureVerifierRejectsExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	v := &InsecureVerifier{now: func() time.Time { return now }}

	_, err := v.Verify(context.Background(), fakeJWT(fmt.Sprintf(`{"sub":"kc-1","exp":%d}`, now.Unix())))
	require.ErrorIs(t, err, ErrTokenExpired)

	tkn, err := v.Verify(context.Background(), fakeJWT(fmt.Sprintf(`{"sub":"kc-1","exp":%d}`, now.Add(time.Minute).Unix())))
	require.NoError(t, err)
	var claims struct {
		Sub string `json:"sub"`
	}
	require.NoError(t, tkn.Claims(&claims))
	require.Equal(t, "kc-1", claims.Sub)

	_, err = v.Verify(context.Background(), "a.b")
	require.Error(t, err)
}
