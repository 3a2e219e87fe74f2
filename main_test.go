package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/founderdash/dashboard/internal/app"
	"github.com/founderdash/dashboard/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Backend: "memory"},
		Session: config.SessionConfig{Store: "memory", CookieName: "session-token", TTL: time.Hour},
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Minute},
	}
}

func do(t *testing.T, r http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session-token" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestRouterEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	a, err := app.Open(context.Background(), cfg)
	require.NoError(t, err)
	a.Users.WithHashCost(bcrypt.MinCost)
	r := newRouter(cfg, a, nil)

	w := do(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// protected routes reject anonymous requests
	w = do(t, r, http.MethodGet, "/api/cap-table/stakeholders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/auth/signup", map[string]string{"name": "Ada", "email": "ada@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cookie := sessionCookie(t, w)

	w = do(t, r, http.MethodPost, "/api/cap-table/stakeholders", map[string]any{"name": "Ada", "shares": 1000}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/dashboard/overview", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ov struct {
		CapTable struct {
			TotalShares int64 `json:"totalShares"`
		} `json:"capTable"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ov))
	assert.Equal(t, int64(1000), ov.CapTable.TotalShares)

	// a second account sees none of the first one's records
	w = do(t, r, http.MethodPost, "/api/auth/signup", map[string]string{"name": "Bob", "email": "bob@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	other := sessionCookie(t, w)
	w = do(t, r, http.MethodGet, "/api/cap-table/stakeholders", nil, other)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// bearer tokens wrap the session
	w = do(t, r, http.MethodPost, "/api/auth/token", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))
	req := httptest.NewRequest(http.MethodGet, "/api/roadmap/summary", nil)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	rw := httptest.NewRecorder()
	r.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusOK, rw.Code, rw.Body.String())

	w = do(t, r, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/api/burn-rate/summary", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitIsPerUserBehindSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 3}
	a, err := app.Open(context.Background(), cfg)
	require.NoError(t, err)
	a.Users.WithHashCost(bcrypt.MinCost)
	r := newRouter(cfg, a, nil)

	// both accounts come from the same client address
	w := do(t, r, http.MethodPost, "/api/auth/signup", map[string]string{"name": "Ada", "email": "ada@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	ada := sessionCookie(t, w)
	w = do(t, r, http.MethodPost, "/api/auth/signup", map[string]string{"name": "Bob", "email": "bob@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	bob := sessionCookie(t, w)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/roadmap/summary", nil, ada).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodGet, "/api/roadmap/summary", nil, ada).Code)
	// Bob has his own bucket
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/roadmap/summary", nil, bob).Code)

	// the auth routes share the client address bucket: two signups used two tokens
	w = do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "secret123"}, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", nil, nil).Code)
}

func TestReadyReportsFailingCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ready", ready([]app.ReadyCheck{
		{Name: "mongo", Check: func(context.Context) error { return nil }},
		{Name: "redis", Check: func(context.Context) error { return errors.New("down") }},
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body struct {
		Status string          `json:"status"`
		Deps   map[string]bool `json:"deps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body.Status)
	assert.True(t, body.Deps["mongo"])
	assert.False(t, body.Deps["redis"])
}

func TestReadyWithoutChecks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ready", ready(nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := app.Open(context.Background(), testConfig())
	require.NoError(t, err)
	r := newRouter(testConfig(), a, nil)
	w := do(t, r, http.MethodOptions, "/api/cap-table/stakeholders", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
