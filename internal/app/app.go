package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"osoc-selections-backend/internal/auth"
	"osoc-selections-backend/internal/config"
	"osoc-selections-backend/internal/database"
	"osoc-selections-backend/internal/handler"
	"osoc-selections-backend/internal/metrics"
	"osoc-selections-backend/internal/middleware"
	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/repository"
	"osoc-selections-backend/internal/router"
	"osoc-selections-backend/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	editionRepo := repository.NewEditionRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	slog.Info("database ready")

	signingKey, err := signingSecret(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	tokenService := auth.NewTokenService(signingKey, cfg.JWTIssuer)
	revocationStore := auth.NewRevocationStore()
	authService := service.NewAuthService(tokenService, revocationStore, userRepo,
		cfg.JWTAccessTTL, cfg.JWTRefreshTTL, cfg.BcryptCost)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	if err := seedAdmin(context.Background(), cfg, userRepo, authService); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	userService := service.NewUserService(userRepo, cfg.BcryptCost)
	editionService := service.NewEditionService(editionRepo)
	studentService := service.NewStudentService(studentRepo, editionRepo)
	projectService := service.NewProjectService(projectRepo, studentRepo, editionRepo)

	m := metrics.New()
	appRouter := router.New(cfg, authMiddleware, m, router.Handlers{
		Health:  handler.NewHealthHandler(db),
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Edition: handler.NewEditionHandler(editionService),
		Student: handler.NewStudentHandler(studentService),
		Project: handler.NewProjectHandler(projectService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

// signingSecret resolves the token signing key. Without JWT_SECRET a
// fresh secret is generated, which invalidates every outstanding token
// on the next restart.
func signingSecret(cfg *config.Config) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}

	secret, err := auth.GenerateSecret()
	if err != nil {
		return nil, err
	}

	slog.Warn("JWT_SECRET not set; generated an ephemeral signing secret, a restart will log out all users")
	return secret, nil
}

// seedAdmin creates the initial admin account when the user table is
// empty and ADMIN_EMAIL/ADMIN_PASSWORD are configured.
func seedAdmin(ctx context.Context, cfg *config.Config, users *repository.UserRepository, authService *service.AuthService) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = authService.Register(ctx, model.RegisterRequest{
		Email:    cfg.AdminEmail,
		Name:     "Administrator",
		Password: cfg.AdminPassword,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return err
	}

	slog.Info("seeded initial admin account", "email", cfg.AdminEmail)
	return nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()

	slog.Info("server stopped")
	return nil
}
