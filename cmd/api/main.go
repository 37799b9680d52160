package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/asset-inventory/internal/auth"
	"github.com/crucial707/asset-inventory/internal/config"
	"github.com/crucial707/asset-inventory/internal/db"
	"github.com/crucial707/asset-inventory/internal/handlers"
	"github.com/crucial707/asset-inventory/internal/middleware"
	"github.com/crucial707/asset-inventory/internal/repo"
	"github.com/crucial707/asset-inventory/internal/scheduler"
)

func main() {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		slog.Error("connect to database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		slog.Error("run migrations", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.EnsureAdmin(ctx, database, cfg.AdminUser, cfg.AdminEmail, cfg.AdminPass)
	cancel()
	if err != nil {
		slog.Error("seed admin user", "err", err)
		os.Exit(1)
	}

	assetRepo := repo.NewAssetRepo(database)
	categoryRepo := repo.NewCategoryRepo(database)
	locationRepo := repo.NewLocationRepo(database)
	userRepo := repo.NewUserRepo(database)

	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour)
	validate := validator.New()

	assetHandler := &handlers.AssetHandler{Repo: assetRepo, Validate: validate}
	categoryHandler := &handlers.CategoryHandler{Repo: categoryRepo, Validate: validate}
	locationHandler := &handlers.LocationHandler{Repo: locationRepo, Validate: validate}
	authHandler := &handlers.AuthHandler{Users: userRepo, Tokens: tokens}

	stopScheduler, err := scheduler.Run(assetRepo, cfg.MetricsCron)
	if err != nil {
		slog.Error("start scheduler", "err", err)
		os.Exit(1)
	}
	defer stopScheduler()

	router := newRouter(cfg, tokens, assetHandler, categoryHandler, locationHandler, authHandler)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting API server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, router)
	} else {
		slog.Info("starting API server", "addr", addr)
		err = http.ListenAndServe(addr, router)
	}
	if err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// setupLogger installs the default slog handler in text or json format.
func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

func newRouter(
	cfg config.Config,
	tokens *auth.Manager,
	assets *handlers.AssetHandler,
	categories *handlers.CategoryHandler,
	locations *handlers.LocationHandler,
	authH *handlers.AuthHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := middleware.LoginRateLimiter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
			r.Post("/auth/login", authH.Login)
		})

		// Everything else requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

			r.Get("/auth/me", authH.Me)

			r.Get("/assets", assets.List)
			r.Post("/assets", assets.Create)
			r.Get("/assets/stats/summary", assets.Stats)
			r.Get("/assets/{id}", assets.Get)
			r.Put("/assets/{id}", assets.Update)
			r.Delete("/assets/{id}", assets.Delete)

			r.Get("/categories", categories.List)
			r.Post("/categories", categories.Create)
			r.Put("/categories/{id}", categories.Update)
			r.Delete("/categories/{id}", categories.Delete)

			r.Get("/locations", locations.List)
			r.Post("/locations", locations.Create)
			r.Put("/locations/{id}", locations.Update)
			r.Delete("/locations/{id}", locations.Delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONError(w, "Route not found", http.StatusNotFound)
	})

	return r
}
