package handlers

import (
	"net/http"

	"github.com/founderdash/dashboard/internal/api"
	"github.com/founderdash/dashboard/internal/apperr"
	"github.com/founderdash/dashboard/internal/config"
	"github.com/founderdash/dashboard/internal/models"
	"github.com/founderdash/dashboard/internal/oidc"
	"github.com/founderdash/dashboard/internal/sessions"
	"github.com/founderdash/dashboard/internal/tokens"
	"github.com/founderdash/dashboard/internal/users"
	"github.com/founderdash/dashboard/pkg/logger"
	"github.com/founderdash/dashboard/pkg/middleware"
	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	verifier    oidc.TokenVerifier
}

// NewAuthHandler wires the auth endpoints. verifier may be nil when single
// sign-on is not configured.
func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, verifier oidc.TokenVerifier) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, verifier: verifier}
}

// Register mounts the routes under /auth. protect is the session middleware
// guarding the routes that need a valid session.
func (h *AuthHandler) Register(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/signup", h.Signup)
	a.POST("/login", h.Login)
	a.POST("/oidc", h.OIDCLogin)
	a.POST("/logout", h.Logout)
	a.GET("/me", protect, h.Me)
	a.POST("/token", protect, h.Token)
}

// startSession creates a session for u, sets the cookie and answers {user}.
func (h *AuthHandler) startSession(c *gin.Context, status int, u *models.User) {
	sess, err := h.sessionsSvc.Create(c.Request.Context(), u.ID, h.cfg.Session.TTL)
	if err != nil {
		api.Error(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, sess.Token, int(h.cfg.Session.TTL.Seconds()), "/", "", h.cfg.Session.CookieSecure, true)
	c.JSON(status, gin.H{"user": u.Identity()})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !api.Bind(c, &req) {
		return
	}
	u, err := h.usersSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		api.Error(c, err)
		return
	}
	logger.Infof("user registered id=%s", u.ID)
	h.startSession(c, http.StatusCreated, u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.Bind(c, &req) {
		return
	}
	u, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		api.Error(c, err)
		return
	}
	h.startSession(c, http.StatusOK, u)
}

// OIDCLogin exchanges a verified ID token from the identity provider for a
// dashboard session, creating the user on first login.
func (h *AuthHandler) OIDCLogin(c *gin.Context) {
	if h.verifier == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "OIDC login not configured"})
		return
	}
	var req struct {
		IDToken string `json:"idToken"`
	}
	if !api.Bind(c, &req) {
		return
	}
	if req.IDToken == "" {
		api.Error(c, apperr.Invalid("idToken", "is required"))
		return
	}
	claims, err := oidc.Claims(c.Request.Context(), h.verifier, req.IDToken)
	if err != nil {
		logger.Warnf("oidc: id token rejected: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid id token"})
		return
	}
	u, err := h.usersSvc.UpsertFromClaims(c.Request.Context(), claims)
	if err != nil {
		api.Error(c, err)
		return
	}
	if u == nil {
		api.Error(c, apperr.Invalid("idToken", "token has no subject"))
		return
	}
	h.startSession(c, http.StatusOK, u)
}

// Logout revokes the cookie's session, if any, and clears the cookie. It
// succeeds for expired or unknown sessions too.
func (h *AuthHandler) Logout(c *gin.Context) {
	if tok, err := c.Cookie(h.cfg.Session.CookieName); err == nil && tok != "" {
		if err := h.sessionsSvc.Revoke(c.Request.Context(), tok); err != nil {
			api.Error(c, err)
			return
		}
	}
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me answers {user: {id, name, email}} for the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := api.CurrentIdentity(c)
	if !ok {
		api.Error(c, apperr.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": id})
}

// Token issues a short-lived bearer JWT that stands for the current session.
func (h *AuthHandler) Token(c *gin.Context) {
	id, _ := api.CurrentIdentity(c)
	access, err := tokens.GenerateAccessToken(h.cfg, id, middleware.SessionHandle(c), h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		api.Error(c, apperr.Internal("tokens.generate", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken": access,
		"tokenType":   "Bearer",
		"expiresIn":   int(h.cfg.JWT.AccessTokenTTL.Seconds()),
	})
}
