package middleware

import (
	"context"
	"strings"

	"github.com/founderdash/dashboard/internal/api"
	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/models"
	"github.com/founderdash/dashboard/internal/sessions"
	"github.com/gin-gonic/gin"
)

const sessionHandleKey = "sessionHandle"

// SessionValidator resolves a session token, or the handle of one, to the
// identity it belongs to.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (models.Identity, error)
	ValidateHandle(ctx context.Context, handle string) (models.Identity, error)
}

// BearerParser extracts the session handle from a bearer access token.
type BearerParser func(raw string) (sessionHandle string, err error)

// SessionHandle returns the handle of the session the current request was
// authenticated with. It is safe to hand out; the token is not.
func SessionHandle(c *gin.Context) string {
	return c.GetString(sessionHandleKey)
}

// bearer returns the token of an "Authorization: Bearer <token>" header.
func bearer(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[7:])
}

// validate checks the cookie first, then a bearer access token when parse is
// set. It returns the identity and the session handle. An unreadable bearer
// token counts as expired.
func validate(c *gin.Context, v SessionValidator, cookieName string, parse BearerParser) (models.Identity, string, error) {
	ctx := c.Request.Context()
	if tok, err := c.Cookie(cookieName); err == nil && tok != "" {
		id, err := v.Validate(ctx, tok)
		return id, sessions.HandleFor(tok), err
	}
	raw := bearer(c)
	if raw == "" || parse == nil {
		id, err := v.Validate(ctx, "")
		return id, "", err
	}
	handle, err := parse(raw)
	if err != nil {
		return models.Identity{}, "", apperr.ErrSessionExpired
	}
	id, err := v.ValidateHandle(ctx, handle)
	return id, handle, err
}

// SessionAuth validates the session of every request once and stores the
// identity for the handlers. Failures answer 401 (500 for store errors).
func SessionAuth(v SessionValidator, cookieName string, parse BearerParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, handle, err := validate(c, v, cookieName, parse)
		if err != nil {
			api.Error(c, err)
			return
		}
		api.SetIdentity(c, id)
		c.Set(sessionHandleKey, handle)
		c.Next()
	}
}
