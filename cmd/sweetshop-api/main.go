package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/sweetshop-api/internal/apidoc"
	"github.com/dimitrije/sweetshop-api/internal/config"
	"github.com/dimitrije/sweetshop-api/internal/database"
	"github.com/dimitrije/sweetshop-api/internal/handlers"
	"github.com/dimitrije/sweetshop-api/internal/logger"
	authmw "github.com/dimitrije/sweetshop-api/internal/middleware"
	"github.com/dimitrije/sweetshop-api/internal/services"
	"github.com/dimitrije/sweetshop-api/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	doc, err := apidoc.Load(ctx)
	if err != nil {
		zl.Fatal("failed to load api document", zap.Error(err))
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)
	tokenService := services.NewTokenService(db)
	sweetService := services.NewSweetService(db)
	gate := services.NewGate(profileService, zl.Named("gate"))

	hub := sse.NewHub()
	go hub.Run(ctx)

	authHandler := handlers.NewAuthHandler(userService, profileService, tokenService, jwtService, zl.Named("auth"))
	sweetHandler := handlers.NewSweetHandler(sweetService, hub, zl.Named("sweets"))
	sseHandler := handlers.NewSSEHandler(hub)
	healthHandler := handlers.NewHealthHandler(db.Pool)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(authmw.RequestLogger(zl.Named("http")))

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/signout", authHandler.SignOut)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))
	protected.Use(authmw.Capabilities(gate))

	protected.Post("/auth/signout-all", authHandler.SignOutAll)
	protected.Get("/auth/session", authHandler.Session)

	protected.Get("/sweets", sweetHandler.List)
	protected.Get("/categories", sweetHandler.Categories)
	protected.Get("/sweets/:id", sweetHandler.Get)
	protected.Post("/sweets", authmw.RequireAdmin(sweetHandler.Create))
	protected.Patch("/sweets/:id", authmw.RequireAdmin(sweetHandler.Update))
	protected.Post("/sweets/:id/purchase", sweetHandler.Purchase)
	protected.Post("/sweets/:id/restock", authmw.RequireAdmin(sweetHandler.Restock))
	protected.Delete("/sweets/:id", authmw.RequireAdmin(sweetHandler.Delete))

	protected.Get("/events", sseHandler.Connect)

	api.Get("/health", healthHandler.Check)
	api.Get("/openapi.json", doc.ServeJSON)
	api.Get("/openapi.yaml", doc.ServeYAML)

	go cleanupTokens(ctx, tokenService, cfg.TokenCleanupInterval, zl.Named("cleanup"))

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		zl.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := app.Run(addr); err != nil {
			zl.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server")
}

func cleanupTokens(ctx context.Context, tokens *services.TokenService, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokens.CleanupExpired(ctx)
			if err != nil {
				logger.Warn("failed to clean up expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}

