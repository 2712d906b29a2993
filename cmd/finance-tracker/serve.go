package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	tokenCleanupInterval  = time.Hour
	revokedTokenRetention = 7 * 24 * time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	logger := newLogger(cfg.App.LogLevel, cfg.IsProduction())
	slog.SetDefault(logger)

	app, err := newApplication(cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond)
	e := newServer(app, limiter)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server",
			"addr", server.Addr,
			"environment", cfg.Server.Environment,
			"version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		limiter.Run(gctx)
		return nil
	})

	g.Go(func() error {
		cleanupTokens(gctx, app)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

// cleanupTokens prunes expired and long-revoked tokens every hour.
func cleanupTokens(ctx context.Context, app *application) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	jobs := []struct {
		name string
		run  func() (int64, error)
	}{
		{"refresh_tokens", func() (int64, error) {
			return app.repos.refresh.Prune(revokedTokenRetention)
		}},
		{"blacklisted_tokens", app.repos.blacklist.DeleteExpired},
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, job := range jobs {
				removed, err := job.run()
				if err != nil {
					app.logger.Warn("token cleanup failed", "job", job.name, "error", err)
					continue
				}
				if removed > 0 {
					app.logger.Info("token cleanup", "job", job.name, "removed", removed)
				}
			}
		}
	}
}

// newServer builds the echo instance with middleware and every route.
func newServer(app *application, limiter *middleware.RateLimiter) *echo.Echo {
	cfg := app.cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middleware.TraceIDHeader,
		},
	}))
	e.Use(limiter.Middleware())

	registerRoutes(e, app)
	return e
}

func registerRoutes(e *echo.Echo, app *application) {
	cfg := app.cfg
	svc := app.services

	healthHandler := handlers.NewHealthCheckHandler(app.db.DB, version)
	authHandler := handlers.NewAuthHandler(svc.auth, svc.token)
	transactionHandler := handlers.NewTransactionHandler(svc.transaction)
	savingsHandler := handlers.NewSavingsHandler(svc.savings, app.language)
	familyHandler := handlers.NewFamilyHandler(svc.family, app.language)
	dashboardHandler := handlers.NewDashboardHandler(svc.dashboard, svc.health)
	activityHandler := handlers.NewActivityHandler(svc.activity)
	adminHandler := handlers.NewAdminHandler(svc.admin, app.repos.users)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(svc.token, app.repos.blacklist, svc.adminPolicy)

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, requireAuth)

	transactions := api.Group("/transactions", requireAuth)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/categories", transactionHandler.ListCategories)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	savings := api.Group("/savings", requireAuth)
	savings.GET("", savingsHandler.ListSavings)
	savings.POST("", savingsHandler.CreateSavings)
	savings.PUT("/:id", savingsHandler.UpdateSavings)
	savings.DELETE("/:id", savingsHandler.DeleteSavings)
	savings.POST("/:id/deposit", savingsHandler.Deposit)

	families := api.Group("/families", requireAuth)
	families.POST("", familyHandler.CreateFamily)
	families.POST("/join", familyHandler.JoinFamily)
	families.POST("/leave", familyHandler.LeaveFamily)
	families.GET("/me", familyHandler.GetMyFamily)
	families.GET("/summary", familyHandler.GetSummary)
	families.GET("/transactions", familyHandler.ListTransactions)
	families.POST("/transactions", familyHandler.CreateTransaction)
	families.PUT("/transactions/:id", familyHandler.UpdateTransaction)
	families.DELETE("/transactions/:id", familyHandler.DeleteTransaction)
	families.GET("/savings", familyHandler.ListSavings)
	families.POST("/savings", familyHandler.CreateSavings)
	families.DELETE("/savings/:id", familyHandler.DeleteSavings)

	api.GET("/dashboard", dashboardHandler.GetDashboard, requireAuth)
	api.GET("/financial-health", dashboardHandler.GetFinancialHealth, requireAuth)
	api.GET("/activity", activityHandler.ListMyActivity, requireAuth)

	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin(svc.adminPolicy))
	admin.GET("/overview", adminHandler.GetOverview)
	admin.GET("/tables/:table", adminHandler.ListTable)
	admin.PATCH("/tables/:table/:id", adminHandler.UpdateRow)
	admin.DELETE("/tables/:table/:id", adminHandler.DeleteRow)
	admin.POST("/users/:userId/unlock", adminHandler.UnlockUser)

	if cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(svc.demoData)
		api.POST("/dev/seed", devHandler.SeedDemoData, requireAuth)
	}
}
