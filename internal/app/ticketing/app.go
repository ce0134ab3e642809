// Package ticketing assembles the ticketing backend: storage, cache,
// services, routes and the HTTP server lifecycle.
package ticketing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/NikolaMax/ticketing-backend/internal/cache"
	"github.com/NikolaMax/ticketing-backend/internal/config"
	"github.com/NikolaMax/ticketing-backend/internal/lib/jwt"
	"github.com/NikolaMax/ticketing-backend/internal/lib/mail"
	"github.com/NikolaMax/ticketing-backend/internal/migrations"
	authservice "github.com/NikolaMax/ticketing-backend/internal/services/auth"
	reportservice "github.com/NikolaMax/ticketing-backend/internal/services/report"
	"github.com/NikolaMax/ticketing-backend/internal/storage/assets"
	"github.com/NikolaMax/ticketing-backend/internal/storage/repository"
)

// App owns the HTTP server and its dependencies.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New builds the application from config: connects storage and cache,
// applies migrations and registers every route.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	files, err := assets.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken)
	mailer := mail.NewMailer(cfg.SMTP, cfg.ConfirmationBaseURL, logger)

	authService := authservice.NewService(db, jwtMaker, mailer, logger)
	reportService := reportservice.NewService(db, cacheRedis, cfg.RedisConnection.ChartTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, reportService, files)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run serves HTTP until the context is cancelled, then drains gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
