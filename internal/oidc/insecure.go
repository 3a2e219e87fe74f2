package oidc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrInsecureInProduction is returned by Setup when unverified tokens are
// allowed in a production environment.
var ErrInsecureInProduction = errors.New("oidc: ALLOW_INSECURE_TOKEN is not permitted when SERVER_ENVIRONMENT=production")

// ErrTokenExpired is returned for payloads whose exp claim has passed.
var ErrTokenExpired = errors.New("oidc: token expired")

// payloadToken carries claims decoded from an ID token payload.
type payloadToken struct {
	raw []byte
}

func (t payloadToken) Claims(v interface{}) error {
	return json.Unmarshal(t.raw, v)
}

// InsecureVerifier reads ID token claims without checking the signature.
// Setup only falls back to it outside production, for local identity
// providers that cannot be discovered.
type InsecureVerifier struct {
	now func() time.Time
}

func NewInsecureVerifier() *InsecureVerifier { return &InsecureVerifier{now: time.Now} }

// Verify decodes the payload segment and rejects it once exp has passed.
func (v *InsecureVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, errors.New("oidc: malformed token")
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, err
	}
	var std struct {
		Exp *float64 `json:"exp"`
	}
	if err := json.Unmarshal(data, &std); err != nil {
		return nil, err
	}
	if std.Exp != nil && !v.now().Before(time.Unix(int64(*std.Exp), 0)) {
		return nil, ErrTokenExpired
	}
	return payloadToken{raw: data}, nil
}
