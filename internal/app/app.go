// Package app opens the stores selected by configuration and builds the
// services on top of them. The HTTP server and the admin CLI share it.
package app

import (
	"context"
	"fmt"

	"github.com/founderdash/dashboard/internal/burnrate"
	"github.com/founderdash/dashboard/internal/burnrate/repository"
	burnsvc "github.com/founderdash/dashboard/internal/burnrate/service"
	"github.com/founderdash/dashboard/internal/businessplan"
	docsvc "github.com/founderdash/dashboard/internal/businessplan/service"
	"github.com/founderdash/dashboard/internal/captable"
	capsvc "github.com/founderdash/dashboard/internal/captable/service"
	"github.com/founderdash/dashboard/internal/collection"
	"github.com/founderdash/dashboard/internal/config"
	"github.com/founderdash/dashboard/internal/database"
	"github.com/founderdash/dashboard/internal/roadmap"
	roadsvc "github.com/founderdash/dashboard/internal/roadmap/service"
	"github.com/founderdash/dashboard/internal/sessions"
	"github.com/founderdash/dashboard/internal/storage"
	"github.com/founderdash/dashboard/internal/users"
	"github.com/founderdash/dashboard/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const mongoAttempts = 5

// ReadyCheck is one readiness check.
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// App holds the connected backends and the services built on them.
type App struct {
	Mongo *mongo.Client
	Redis *redis.Client

	Users    *users.Service
	Sessions *sessions.Service

	CapTable  *capsvc.Service
	BurnRate  *burnsvc.Service
	Documents *docsvc.Service
	Roadmap   *roadsvc.Service

	checks []ReadyCheck
}

type objectStore interface {
	docsvc.Exporter
	Ping(ctx context.Context) error
}

// Open connects to every backend the configuration names. Redis and MinIO
// are optional; their features fall back to in-process stores when unset.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}
	needMongo := cfg.Storage.Backend == "mongo" || cfg.Session.Store == "mongo"
	if needMongo {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoAttempts)
		if err != nil {
			return nil, err
		}
		a.Mongo = client
		a.checks = append(a.checks, ReadyCheck{Name: "mongo", Check: func(ctx context.Context) error {
			return database.Ping(ctx, client)
		}})
		logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)
	}

	if addr := cfg.Redis.Addr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			a.Close(ctx)
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", addr, err)
		}
		a.Redis = client
		a.checks = append(a.checks, ReadyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
		logger.Infof("connected to Redis at %s", addr)
	}

	if err := a.buildServices(ctx, cfg); err != nil {
		a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) buildServices(ctx context.Context, cfg *config.Config) error {
	var db *mongo.Database
	if a.Mongo != nil {
		db = a.Mongo.Database(cfg.MongoDB.Database)
	}

	var userRepo users.UserRepository = users.NewMemoryUserRepository()
	if cfg.Storage.Backend == "mongo" {
		repo, err := users.NewMongoUserRepository(ctx, db.Collection("users"))
		if err != nil {
			return err
		}
		userRepo = repo
	}
	a.Users = users.NewService(userRepo)

	var sessRepo sessions.Repository
	switch cfg.Session.Store {
	case "mongo":
		repo, err := sessions.NewMongoRepository(ctx, db.Collection("sessions"))
		if err != nil {
			return err
		}
		sessRepo = repo
	case "redis":
		sessRepo = sessions.NewRedisRepository(a.Redis, "")
	default:
		sessRepo = sessions.NewMemoryRepository()
	}
	a.Sessions = sessions.NewService(sessRepo, a.Users, sessions.WithLookupTimeout(cfg.Session.LookupTimeout))

	stakeholders, err := open[captable.Stakeholder](ctx, cfg, db, "stakeholders")
	if err != nil {
		return err
	}
	expenses, err := open[burnrate.Expense](ctx, cfg, db, "expenses")
	if err != nil {
		return err
	}
	documents, err := open[businessplan.Document](ctx, cfg, db, "documents")
	if err != nil {
		return err
	}
	milestones, err := open[roadmap.Milestone](ctx, cfg, db, "milestones")
	if err != nil {
		return err
	}

	var cash repository.CashStore = repository.NewMemoryCash()
	if a.Redis != nil {
		cash = repository.NewRedisCash(a.Redis)
	}

	var objects objectStore = storage.NewMemoryStorage()
	if cfg.MinIO.Endpoint != "" {
		mc, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		objects = mc
		a.checks = append(a.checks, ReadyCheck{Name: "minio", Check: mc.Ping})
		logger.Infof("exports go to MinIO bucket %q", cfg.MinIO.Bucket)
	}

	a.CapTable = capsvc.NewService(stakeholders, cfg.Finance.AuthorizedShares)
	a.BurnRate = burnsvc.NewService(expenses, cash, cfg.Finance.DefaultCash)
	a.Documents = docsvc.NewService(documents, objects)
	a.Roadmap = roadsvc.NewService(milestones)
	return nil
}

func open[T collection.Record](ctx context.Context, cfg *config.Config, db *mongo.Database, name string) (collection.Store[T], error) {
	if cfg.Storage.Backend != "mongo" {
		return collection.NewMemory[T](), nil
	}
	store, err := collection.NewMongo[T](ctx, db.Collection(name))
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", name, err)
	}
	return store, nil
}

// ReadyChecks lists the readiness checks for the connected backends.
func (a *App) ReadyChecks() []ReadyCheck { return a.checks }

// Close disconnects every backend.
func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.Mongo != nil {
		_ = a.Mongo.Disconnect(ctx)
	}
}
