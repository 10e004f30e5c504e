package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/corvidlabs/reviewdesk/internal/adapter/handler"
	"github.com/corvidlabs/reviewdesk/internal/adapter/repository"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/config"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/database"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/events"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/logger"
	"github.com/corvidlabs/reviewdesk/internal/infrastructure/server"
	"github.com/corvidlabs/reviewdesk/internal/usecase/auth"
	"github.com/corvidlabs/reviewdesk/internal/usecase/member"
	"github.com/corvidlabs/reviewdesk/internal/usecase/project"
	"github.com/corvidlabs/reviewdesk/internal/usecase/user"
	"github.com/corvidlabs/reviewdesk/internal/usecase/version"
	"github.com/corvidlabs/reviewdesk/pkg/jwt"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(&cfg.Log)
	log.Info().Msg("Starting ReviewDesk Backend...")

	// Initialize database
	db, err := database.Init(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize JWT manager
	jwtManager := jwt.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.GetAccessTokenExpiry(),
		cfg.JWT.GetRefreshTokenExpiry(),
		cfg.JWT.Issuer,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	versionRepo := repository.NewVersionRepository(db)

	// Initialize use cases
	authUseCase := auth.NewUseCase(userRepo, refreshTokenRepo, jwtManager)
	userUseCase := user.NewUseCase(userRepo)
	projectUseCase := project.NewUseCase(projectRepo, membershipRepo)
	memberUseCase := member.NewUseCase(membershipRepo, userRepo)
	versionUseCase := version.NewUseCase(versionRepo, membershipRepo)

	// Initialize the project event hub
	hub := events.NewHub(&cfg.Events)
	defer hub.Close()

	// Initialize handlers
	handlers := &handler.Handlers{
		Auth:    handler.NewAuthHandler(authUseCase),
		User:    handler.NewUserHandler(userUseCase),
		Project: handler.NewProjectHandler(projectUseCase),
		Member:  handler.NewMemberHandler(memberUseCase),
		Version: handler.NewVersionHandler(versionUseCase, hub),
		Panel:   handler.NewPanelHandler(versionUseCase, memberUseCase, hub, jwtManager),
		Events:  handler.NewEventsHandler(memberUseCase, hub, jwtManager),
	}

	// Initialize HTTP server
	srv := server.New(&cfg.Server)
	handler.RegisterRoutes(srv.Router(), handlers, jwtManager)

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
