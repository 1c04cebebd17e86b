package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/job-portal/internal/config"
	"github.com/iliyamo/job-portal/internal/database"
	"github.com/iliyamo/job-portal/internal/handler"
	"github.com/iliyamo/job-portal/internal/logger"
	"github.com/iliyamo/job-portal/internal/repository"
	"github.com/iliyamo/job-portal/internal/router"
	"github.com/iliyamo/job-portal/internal/service"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	db, err := database.Open(ctx, cfg.DB.User, cfg.DB.Pass, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("schema up to date")
	}

	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).WithField("addr", cfg.Redis.Address()).Warn("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	jobs := repository.NewJobRepo(db)
	apps := repository.NewApplicationRepo(db)

	authSvc := service.NewAuthService(users, tokens, service.AuthConfig{
		Secret:     cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.AccessTTL(),
		BcryptCost: cfg.Auth.BcryptCost,
	}, log)
	notes := service.NewNotificationService(repository.NewNotificationRepo(db), log)

	e := router.New(router.Deps{
		Log:            log,
		Authenticator:  authSvc,
		DB:             db,
		Redis:          rdb,
		RateLimit:      cfg.RateLimit,
		RequestTimeout: cfg.RequestTimeout,
		Handlers: router.Handlers{
			Auth:          handler.NewAuthHandler(authSvc),
			Jobs:          handler.NewJobHandler(service.NewJobService(jobs, log)),
			Applications:  handler.NewApplicationHandler(service.NewApplicationService(jobs, apps, notes, log)),
			SavedJobs:     handler.NewSavedJobHandler(service.NewSavedJobService(jobs, repository.NewSavedJobRepo(db), log)),
			Profiles:      handler.NewProfileHandler(service.NewProfileService(users, repository.NewProfileRepo(db), log)),
			Notifications: handler.NewNotificationHandler(notes),
			Admin:         handler.NewAdminHandler(service.NewAdminService(users, jobs, apps, log)),
		},
	})

	go service.NewTokenSweeper(tokens, cfg.TokenSweepInterval, log).Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
