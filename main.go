package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/strscout/backend/src/config"
	"github.com/strscout/backend/src/database"
	"github.com/strscout/backend/src/handlers"
	"github.com/strscout/backend/src/logger"
	"github.com/strscout/backend/src/processors"
	"github.com/strscout/backend/src/services"
	"github.com/strscout/backend/src/utils"
)

// newResultCache prefers Redis when configured and reachable.
func newResultCache(cfg *config.AppConfig) services.ResultCache {
	if cfg.RedisAddr != "" {
		rc := services.NewRedisResultCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheExpiration)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err := rc.Ping(ctx)
		if err == nil {
			logger.L.Info("Using Redis result cache", "addr", cfg.RedisAddr)
			return rc
		}
		logger.L.Warn("Redis unreachable, falling back to in-memory result cache", "addr", cfg.RedisAddr, "error", err)
		rc.Close()
	}
	return services.NewMemoryResultCache(cfg.CacheExpiration, cfg.CacheCleanupInterval)
}

func main() {
	config.LoadConfig()
	cfg := config.Cfg
	logger.InitLogger(cfg.LogLevel, cfg.LogFormat)

	logger.L.Info("STR Scout backend server starting...")

	// The calculators stay up without a database; stored-property routes answer 503.
	var db *sql.DB
	var ping func() error
	logger.L.Info("Initializing database...", "driver", cfg.DatabaseDriver)
	if err := database.InitDB(cfg.DatabaseDriver, cfg.DatabaseDSN()); err != nil {
		logger.L.Error("Database unavailable, continuing without persistence", "error", err)
	} else {
		db = database.DB
		ping = database.Ping
		defer db.Close()
	}

	resultCache := newResultCache(cfg)
	metricsProcessor := processors.NewMetricsProcessor()

	propertyService := services.NewPropertyService(db, resultCache)
	calculationService := services.NewCalculationService(propertyService, metricsProcessor, resultCache, cfg.CompareConcurrency)

	healthHandler := handlers.NewHealthHandler(ping, database.Dialect)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	calculationHandler := handlers.NewCalculationHandler(calculationService, metricsProcessor)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(handlers.ProxyHeadersMiddleware)
	r.Use(handlers.NewCORSMiddleware(cfg.AllowedOrigins))
	r.Use(handlers.NewRateLimitMiddleware(cfg.RateLimitInterval, cfg.RateLimitBurst))
	r.Use(handlers.NewMaxBodyMiddleware(cfg.MaxRequestBodySize))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "STR Scout backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		handlers.RegisterRoutes(r, healthHandler, propertyHandler, calculationHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			utils.SendJSONError(w, "Not found", http.StatusNotFound)
			return
		}
		http.NotFound(w, r)
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L.Info("Server starting", "address", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			stdlog.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.L.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.L.Error("Graceful shutdown failed", "error", err)
	}
}
