package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GyroZepelix/newsboard/internal/articles"
	"github.com/GyroZepelix/newsboard/internal/audit"
	"github.com/GyroZepelix/newsboard/internal/auth"
	"github.com/GyroZepelix/newsboard/internal/cache"
	"github.com/GyroZepelix/newsboard/internal/comments"
	"github.com/GyroZepelix/newsboard/internal/database"
	"github.com/GyroZepelix/newsboard/internal/images"
	"github.com/GyroZepelix/newsboard/internal/server"
	"github.com/GyroZepelix/newsboard/internal/topics"
	"github.com/GyroZepelix/newsboard/internal/users"
)

var (
	port        int
	skipMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Connect to PostgreSQL, apply pending migrations and serve the API until
SIGINT or SIGTERM is received.

Examples:
  newsboard serve
  newsboard serve --port 9090 --skip-migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port (overrides NEWSBOARD_PORT)")
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply pending migrations on start")
}

func runServe() error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("starting newsboard",
		"port", cfg.Port,
		"dev_mode", cfg.DevMode,
		"cache", cfg.RedisURL != "",
	)

	// --- Connect to database ---
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	db, err := database.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()
	slog.Info("database connected")

	if !skipMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("migrations applied")
	}

	// --- Optional cache ---
	var refCache *cache.Cache
	if cfg.RedisURL != "" {
		cacheCtx, cacheCancel := context.WithTimeout(context.Background(), 5*time.Second)
		refCache, err = cache.New(cacheCtx, cfg.RedisURL, cfg.CacheTTL)
		cacheCancel()
		if err != nil {
			slog.Warn("redis unavailable, continuing without cache", "error", err)
			refCache = nil
		} else {
			defer refCache.Close()
			slog.Info("cache connected")
		}
	}

	// --- Audit ---
	auditService := audit.NewService(audit.NewRepository(db.Pool()))
	auditService.Start()

	// --- Feature wiring ---
	pool := db.Pool()
	checker := database.NewChecker(pool)

	authService := auth.NewService(auth.NewRepository(pool), cfg.JWTSecret, cfg.TokenTTL)
	articleService := articles.NewService(articles.NewRepository(pool), checker, auditService)
	commentService := comments.NewService(comments.NewRepository(pool), checker, auditService)
	imageRepo := images.NewRepository(pool)

	router := server.NewRouter(server.Dependencies{
		DB:             db,
		DevMode:        cfg.DevMode,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit: server.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
		Topics:         topics.NewHandler(topics.NewRepository(pool), refCache),
		Articles:       articles.NewHandler(articleService),
		Comments:       comments.NewHandler(commentService),
		Users:          users.NewHandler(users.NewRepository(pool)),
		Auth:           auth.NewHandler(authService, auditService, cfg.DevMode),
		Images:         images.NewHandler(imageRepo, refCache),
		AuthMiddleware: auth.Middleware(cfg.JWTSecret),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := server.New(addr, router)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		errCh <- srv.Start()
	}()

	// --- Graceful shutdown on SIGINT/SIGTERM ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-quit:
		slog.Info("received shutdown signal", "signal", sig.String())
	case serveErr = <-errCh:
		if serveErr != nil {
			slog.Error("server error", "error", serveErr)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	slog.Info("shutting down server (30s timeout)...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	auditService.Shutdown(shutdownCtx)
	if dropped := auditService.DroppedCount(); dropped > 0 {
		slog.Warn("audit events dropped", "count", dropped)
	}

	slog.Info("newsboard stopped")
	return serveErr
}
