package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/founderdash/dashboard/handlers"
	"github.com/founderdash/dashboard/internal/app"
	burnhandler "github.com/founderdash/dashboard/internal/burnrate/handler"
	dochandler "github.com/founderdash/dashboard/internal/businessplan/handler"
	caphandler "github.com/founderdash/dashboard/internal/captable/handler"
	"github.com/founderdash/dashboard/internal/config"
	"github.com/founderdash/dashboard/internal/oidc"
	roadhandler "github.com/founderdash/dashboard/internal/roadmap/handler"
	"github.com/founderdash/dashboard/internal/tokens"
	"github.com/founderdash/dashboard/pkg/logger"
	"github.com/founderdash/dashboard/pkg/metrics"
	"github.com/founderdash/dashboard/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

var startTime = time.Now()

const checkTimeout = 2 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger.Infof("config loaded: storage=%s sessions=%s keycloak=%v redis=%v minio=%v",
		cfg.Storage.Backend, cfg.Session.Store, cfg.Keycloak.Issuer() != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	verifier, err := oidc.Setup(ctx, cfg.Keycloak, cfg.Server.Environment)
	if errors.Is(err, oidc.ErrInsecureInProduction) {
		return err
	}
	if err != nil {
		// password login keeps working without single sign-on
		logger.Warnf("OIDC login disabled: %v", err)
		verifier = nil
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(cfg, a, verifier)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Infof("starting dashboard on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter mounts every route. verifier may be nil.
func newRouter(cfg *config.Config, a *app.App, verifier oidc.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinMiddleware(), gin.Recovery(), cors())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", ready(a.ReadyChecks()))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	var parse middleware.BearerParser
	if cfg.JWT.Secret != "" {
		parse = func(raw string) (string, error) { return tokens.ParseAccessToken(cfg, raw) }
	}
	protect := middleware.SessionAuth(a.Sessions, cfg.Session.CookieName, parse)

	// auth routes are limited per client IP; everything behind the session
	// middleware per user
	apiGroup := r.Group("/api", rateLimit(cfg, a)...)
	handlers.NewAuthHandler(cfg, a.Users, a.Sessions, verifier).Register(apiGroup, protect)

	private := r.Group("/", append([]gin.HandlerFunc{protect}, rateLimit(cfg, a)...)...)
	caphandler.RegisterRoutes(private, a.CapTable)
	burnhandler.RegisterRoutes(private, a.BurnRate)
	dochandler.RegisterRoutes(private, a.Documents)
	roadhandler.RegisterRoutes(private, a.Roadmap)
	handlers.NewOverviewHandler(a.CapTable, a.BurnRate, a.Documents, a.Roadmap).Register(private)
	return r
}

// rateLimit returns a fresh limiter, or nothing when rate limiting is off.
func rateLimit(cfg *config.Config, a *app.App) []gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.RateLimit.UseRedis && a.Redis != nil {
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		return []gin.HandlerFunc{middleware.RedisRateLimitMiddleware(a.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)}
	}
	return []gin.HandlerFunc{middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)}
}

// ready answers 200 only when every backend check passes.
func ready(checks []app.ReadyCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		var mu sync.Mutex
		deps := map[string]bool{}
		var g errgroup.Group
		for _, p := range checks {
			g.Go(func() error {
				ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
				defer cancel()
				err := p.Check(ctx)
				if err != nil {
					logger.Warnf("readiness check %s failed: %v", p.Name, err)
				}
				mu.Lock()
				deps[p.Name] = err == nil
				mu.Unlock()
				return err
			})
		}
		uptime := time.Since(startTime).String()
		if err := g.Wait(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	}
}

// cors sets permissive headers for local front ends and answers preflight requests.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		h.Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
