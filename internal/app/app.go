package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/daksh-app/daksh/backend/internal/jobs"
	"github.com/daksh-app/daksh/backend/internal/middleware"
	"github.com/daksh-app/daksh/backend/internal/migrations"
	"github.com/daksh-app/daksh/backend/internal/ratelimit"
	"github.com/daksh-app/daksh/backend/internal/repositories"
	"github.com/daksh-app/daksh/backend/internal/router"
	"github.com/daksh-app/daksh/backend/internal/storage"
	"github.com/daksh-app/daksh/backend/pkg/config"
	"github.com/daksh-app/daksh/backend/pkg/firebase"
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/daksh-app/daksh/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

var App = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		newDB,
		newFirebase,
		newRepositories,
		fx.Annotate(
			newMediaStore,
			fx.As(new(storage.MediaStore)),
		),
		fx.Annotate(
			newLimiter,
			fx.As(new(ratelimit.Limiter)),
		),
		jobs.NewStatsReconciler,
		newEcho,
	),
	fx.Invoke(runMigrations),
	fx.Invoke(run),
)

func newDB(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*config.DB, error) {
	db, err := config.InitDB(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Databases connected")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.CloseDB(ctx)
		},
	})
	return db, nil
}

func newFirebase(cfg *config.Config, log logger.Logger) (*firebase.App, error) {
	fb, err := firebase.Init(context.Background(), firebase.Options{
		CredentialsPath: cfg.App.FirebaseCredentialsPath,
		ProjectID:       cfg.App.FirebaseProjectID,
	})
	if err != nil {
		return nil, err
	}
	if fb == nil {
		log.Info("Firebase credentials not configured, Firebase auth disabled")
	}
	return fb, nil
}

func newRepositories(db *config.DB) *repositories.Repositories {
	return repositories.New(db.Postgres, db.MongoDB)
}

func newMediaStore(cfg *config.Config) (*storage.S3Store, error) {
	return storage.NewS3Store(context.Background(), cfg)
}

func newLimiter(cfg *config.Config) *ratelimit.InMemoryLimiter {
	return ratelimit.NewInMemoryLimiter(cfg.App.CommentRatePer, cfg.App.CommentRateBurst)
}

func newEcho(
	cfg *config.Config,
	log logger.Logger,
	repos *repositories.Repositories,
	media storage.MediaStore,
	limiter ratelimit.Limiter,
	fb *firebase.App,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()

	deps := router.Deps{
		Repos:     repos,
		Media:     media,
		Limiter:   limiter,
		JWTSecret: cfg.App.JWTSecret,
		Logger:    log,
	}
	if fb != nil {
		var verifier middleware.IDTokenVerifier = fb.AuthClient
		deps.Firebase = verifier
	}

	router.SetupMiddleware(e, log)
	router.SetupRoutes(e, deps)
	return e
}

func runMigrations(cfg *config.Config, db *config.DB, log logger.Logger) error {
	if !cfg.App.RunMigrations {
		return nil
	}
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	if err := migrations.Up(context.Background(), sqlDB); err != nil {
		return err
	}
	log.Info("Migrations applied")
	return nil
}

func run(lc fx.Lifecycle, cfg *config.Config, log logger.Logger, e *echo.Echo, reconciler *jobs.StatsReconciler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("Starting server", "addr", cfg.Addr())
				if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", "error", err)
				}
			}()
			return reconciler.Start(cfg.App.ReconcileInterval)
		},
		OnStop: func(ctx context.Context) error {
			if err := reconciler.Stop(); err != nil {
				log.Warn("Failed to stop reconciler", "error", err)
			}
			err := e.Shutdown(ctx)
			logger.Flush()
			return err
		},
	})
}
