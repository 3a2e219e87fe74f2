package sessions

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Session maps an opaque token to a user until an absolute expiry. Handle
// identifies the session to bearer tokens without revealing Token.
type Session struct {
	Token     string    `bson:"token" json:"token"`
	Handle    string    `bson:"handle" json:"handle"`
	UserID    string    `bson:"userId" json:"userId"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ValidAt reports whether the session is still usable at t (t < expiresAt).
func (s *Session) ValidAt(t time.Time) bool {
	return t.Before(s.ExpiresAt)
}

// HandleFor returns the public handle of a session token: hex(sha256(token)).
// The token cannot be recovered from it.
func HandleFor(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
