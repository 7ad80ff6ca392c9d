package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkotas/plantarium-backend/internal/adapter/postgres"
	"github.com/mkotas/plantarium-backend/internal/adapter/postgres/carelog"
	"github.com/mkotas/plantarium-backend/internal/adapter/postgres/frequency"
	"github.com/mkotas/plantarium-backend/internal/adapter/postgres/graveyard"
	"github.com/mkotas/plantarium-backend/internal/adapter/postgres/group"
	"github.com/mkotas/plantarium-backend/internal/adapter/postgres/plant"
	"github.com/mkotas/plantarium-backend/internal/adapter/postgres/user"
	"github.com/mkotas/plantarium-backend/internal/auth"
	"github.com/mkotas/plantarium-backend/internal/config"
	authsvc "github.com/mkotas/plantarium-backend/internal/service/auth"
	caresvc "github.com/mkotas/plantarium-backend/internal/service/care"
	groupsvc "github.com/mkotas/plantarium-backend/internal/service/group"
	plantsvc "github.com/mkotas/plantarium-backend/internal/service/plant"
	"github.com/mkotas/plantarium-backend/internal/transport/middleware"
	"github.com/mkotas/plantarium-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, assembles repositories, services and HTTP handlers, and
// serves until the context is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	groupRepo := group.New(pool)
	plantRepo := plant.New(pool)
	frequencyRepo := frequency.New(pool)
	carelogRepo := carelog.New(pool)
	graveyardRepo := graveyard.New(pool)
	userRepo := user.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, userRepo, jwtManager, cfg.Auth)
	careService := caresvc.NewService(logger, plantRepo, frequencyRepo, carelogRepo, txm)
	plantService := plantsvc.NewService(logger, cfg.Care, plantRepo, groupRepo, frequencyRepo, graveyardRepo, txm)
	groupService := groupsvc.NewService(logger, groupRepo, plantRepo, txm)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	global := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(authService),
	)

	router := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(pool, BuildVersion()),
		Auth:   rest.NewAuthHandler(authService, logger),
		Plants: rest.NewPlantHandler(plantService, logger),
		Groups: rest.NewGroupHandler(groupService, logger),
		Care:   rest.NewCareHandler(careService, logger),
	}, global)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
