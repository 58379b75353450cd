package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	apictx "github.com/dtroode/eventhub-server/internal/api/http/context"
	"github.com/dtroode/eventhub-server/internal/api/http/handler"
	"github.com/dtroode/eventhub-server/internal/api/http/router"
	"github.com/dtroode/eventhub-server/internal/catalog"
	"github.com/dtroode/eventhub-server/internal/config"
	"github.com/dtroode/eventhub-server/internal/logger"
	"github.com/dtroode/eventhub-server/internal/model"
	"github.com/dtroode/eventhub-server/internal/password"
	"github.com/dtroode/eventhub-server/internal/repository/postgres"
	"github.com/dtroode/eventhub-server/internal/server"
	"github.com/dtroode/eventhub-server/internal/service"
	storage "github.com/dtroode/eventhub-server/internal/storage/minio"
	"github.com/dtroode/eventhub-server/internal/token"

	"github.com/dtroode/eventhub-server/database"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:    "eventhub",
		Usage:   "Event discovery and ticket reservation backend",
		Version: buildVersion,
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("eventhub: %v", err)
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to parse config: %w", err)
			}
			logger := logger.New(cfg.LogLevel)

			if err := database.Migrate(c.Context, cfg.Database.DSN); err != nil {
				return err
			}

			logger.Info("migrations applied")
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Action: func(c *cli.Context) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to parse config: %w", err)
			}
			return serve(c.Context, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, token.WithTTL(cfg.JWT.TTL))
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}
	tokenService := service.NewTokenService(tokenManager, logger)

	authService := service.NewAuth(userRepo, password.NewBcrypt(cfg.Password.Cost), tokenService, logger)

	eventCatalog, err := catalog.New(cfg.Ticketmaster, logger)
	if err != nil {
		return fmt.Errorf("failed to create event catalog: %w", err)
	}
	defer eventCatalog.Close()

	services := router.Services{
		Auth:   authService,
		Ticket: service.NewTicket(ticketRepo, logger),
		Review: service.NewReview(reviewRepo, userRepo, logger),
		Event:  service.NewEvent(eventCatalog, logger),
		Tokens: tokenService,
		DB:     db,
	}

	if cfg.Storage.Enabled {
		storageClient, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize storage client: %w", err)
		}
		avatarService := service.NewAvatar(storageClient, logger)
		authService.WithAvatarRemover(avatarService)
		services.Avatar = avatarService
	}

	r := router.New(
		services,
		apictx.NewManager(),
		handler.CookieConfig{Secure: cfg.IsProduction(), TTL: tokenManager.TTL()},
		cfg.HTTP.StaticDir,
		logger,
	)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	errCh := make(chan error, 1)
	go func(s model.Server) {
		logger.Info("Starting server on", "address", s.Address(), "env", cfg.Env)
		errCh <- s.Start(sl)
	}(httpServer)

	logAppVersion()

	select {
	case <-ctx.Done():
		logger.Info("received interruption signal, shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	if err := <-errCh; err != nil {
		logger.Error("server exited with error", "error", err)
	}
	logger.Info("shutdown complete")

	return nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
