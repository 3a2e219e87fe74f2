// Package api holds the gin helpers shared by the domain handlers: identity
// lookup, request binding and error responses.
package api

import (
	"errors"

	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/models"
	"github.com/founderdash/dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// SetIdentity stores the validated identity on the request context.
func SetIdentity(c *gin.Context, id models.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the identity set by the session middleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// Owner returns the user id that scopes every record operation of the request.
// Routes using it are mounted behind the session middleware; a missing
// identity yields an empty owner that matches no records.
func Owner(c *gin.Context) string {
	id, _ := CurrentIdentity(c)
	return id.ID
}

// Error writes {"error": msg} with the status class of err. Internal failures
// are logged with detail and reported generically.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	body := gin.H{"error": apperr.PublicMessage(err)}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		body["field"] = ve.Field
	}
	c.AbortWithStatusJSON(status, body)
}

// Bind decodes the JSON body into dst and answers 400 on failure.
func Bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, apperr.Invalid("body", "%v", err))
		return false
	}
	return true
}

// Mutation is the response of every create/update: the record plus the
// refreshed aggregate figures of its collection.
type Mutation struct {
	Record  any `json:"record"`
	Summary any `json:"summary"`
}
