// Package tokens issues and parses the short-lived bearer tokens that stand
// for a session for clients that cannot use cookies.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/founderdash/dashboard/internal/config"
	"github.com/founderdash/dashboard/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned for a well-signed token without a session claim.
var ErrNoSession = errors.New("token carries no session")

// Claims is the payload of an access token. SessionHandle names the session
// the bearer acts under; the session is still looked up on every request.
// The payload is readable by anyone, so it never carries the session token.
type Claims struct {
	SessionHandle string `json:"sid"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed JWT access token for the user's session.
func GenerateAccessToken(cfg *config.Config, u models.Identity, sessionHandle string, ttl time.Duration) (string, error) {
	if cfg.JWT.Secret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}
	now := time.Now()
	claims := Claims{
		SessionHandle: sessionHandle,
		Name:          u.Name,
		Email:         u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// ParseAccessToken verifies signature and expiry and returns the session handle.
func ParseAccessToken(cfg *config.Config, raw string) (string, error) {
	if cfg.JWT.Secret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse access token: %w", err)
	}
	if claims.SessionHandle == "" {
		return "", ErrNoSession
	}
	return claims.SessionHandle, nil
}
