// @title Event Scheduler API
// @version 1.0
// @description Bookable time slots tagged with event categories, user preferences and role-based access.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventscheduler/config"
	_ "eventscheduler/docs"
	"eventscheduler/internal/adapters/auth"
	delivery "eventscheduler/internal/delivery/http"
	"eventscheduler/internal/delivery/http/controllers"
	"eventscheduler/internal/domain"
	"eventscheduler/internal/metrics"
	"eventscheduler/internal/repository/postgres"
	"eventscheduler/internal/services"

	_ "github.com/lib/pq"
)

func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}
	logger.Info("database ready", "max_open_conns", cfg.DBMaxOpenConns)

	var (
		m        *metrics.Metrics
		observer domain.BookingObserver
	)
	if cfg.MetricsEnabled {
		m = metrics.New()
		if err := m.RegisterDB(db, "scheduler"); err != nil {
			return err
		}
		observer = m
		logger.Info("metrics enabled", "path", "/metrics")
	}

	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	preferenceRepo := postgres.NewPreferenceRepository(db)
	txManager := postgres.NewTxManager(db)

	tokens := auth.NewJWTProvider(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), auth.NewPasswordPolicy(), tokens)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	slotService := services.NewSlotService(slotRepo, categoryRepo, txManager, loc, observer)
	preferenceService := services.NewPreferenceService(preferenceRepo, txManager)

	router := delivery.NewRouter(delivery.RouterConfig{
		Logger:         logger,
		Verifier:       tokens,
		Metrics:        m,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Auth:           controllers.NewAuthController(logger, authService),
		Categories:     controllers.NewCategoryController(logger, categoryService),
		Slots:          controllers.NewSlotController(logger, slotService),
		Preferences:    controllers.NewPreferenceController(logger, preferenceService),
		Users:          controllers.NewUserController(logger, userService),
		Health:         controllers.NewHealthController(logger, db),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
