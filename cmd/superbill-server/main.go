package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/superbill/superbill/internal/config"
	"github.com/superbill/superbill/internal/document/bundle"
	"github.com/superbill/superbill/internal/document/raster"
	"github.com/superbill/superbill/internal/domain/appointment"
	"github.com/superbill/superbill/internal/domain/lettertemplate"
	"github.com/superbill/superbill/internal/domain/patient"
	"github.com/superbill/superbill/internal/domain/superbill"
	"github.com/superbill/superbill/internal/domain/team"
	"github.com/superbill/superbill/internal/platform/auth"
	"github.com/superbill/superbill/internal/platform/db"
	"github.com/superbill/superbill/internal/platform/middleware"
	"github.com/superbill/superbill/internal/platform/websocket"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "superbill-server",
		Short: "Superbill API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the superbill API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	// migrate down - keep as warning
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Restore from a database backup instead.")
			return nil
		},
	})

	return cmd
}

// rasterOptions maps renderer settings from the environment config onto the
// Chromium renderer's option struct. Zero values fall through to the
// renderer's own defaults.
func rasterOptions(cfg *config.Config) raster.Options {
	return raster.Options{
		ChromePath:  cfg.ChromePath,
		WidthPx:     cfg.RenderWidthPx,
		Scale:       cfg.RenderScale,
		SettleDelay: time.Duration(cfg.RenderSettleMS) * time.Millisecond,
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M", "16M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
			JWKSURL:  cfg.AuthJWKSURL,
		}))
	}

	// API group. Document generation holds a Chromium tab for the duration
	// of a render, so the request timeout has to leave room for it.
	api := e.Group("/api")
	api.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	api.Use(middleware.RequestTimeout(90 * time.Second))

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Websocket hub for live status updates
	hub := websocket.NewHub(logger)
	wsHandler := websocket.NewHandler(hub)
	wsHandler.RegisterRoutes(e)

	// -- Register Domain Handlers --

	// Superbill domain
	sbRepo := superbill.NewRepoPG(pool)
	sbSvc := superbill.NewService(sbRepo, cfg.Clinic())
	sbSvc.SetNotifier(websocket.NewStatusNotifier(hub))
	sbHandler := superbill.NewHandler(sbSvc)
	sbHandler.RegisterRoutes(api)

	// Patient domain
	patientRepo := patient.NewRepoPG(pool)
	patientSvc := patient.NewService(patientRepo, sbSvc)
	patientHandler := patient.NewHandler(patientSvc)
	patientHandler.RegisterRoutes(api)

	// Appointment domain
	apptRepo := appointment.NewRepoPG(pool)
	apptSvc := appointment.NewService(apptRepo)
	apptHandler := appointment.NewHandler(apptSvc)
	apptHandler.RegisterRoutes(api)

	// Team domain
	teamRepo := team.NewRepoPG(pool)
	teamSvc := team.NewService(teamRepo)
	teamHandler := team.NewHandler(teamSvc)
	teamHandler.RegisterRoutes(api)

	// Letter templates
	tplRepo := lettertemplate.NewRepoPG(pool)
	tplSvc := lettertemplate.NewService(tplRepo)
	tplHandler := lettertemplate.NewHandler(tplSvc)
	tplHandler.RegisterRoutes(api)

	// Document generation pipeline
	renderer := raster.NewChromiumRenderer(rasterOptions(cfg), logger)
	generator := bundle.NewGenerator(renderer, logger)
	bundleHandler := bundle.NewHandler(sbSvc, tplSvc, generator)
	bundleHandler.RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
