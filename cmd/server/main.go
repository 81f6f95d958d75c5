// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"greenverify/internal/audit"
	"greenverify/internal/common/config"
	"greenverify/internal/common/database"
	"greenverify/internal/common/logger"
	"greenverify/internal/common/observability"
	"greenverify/internal/genai"
	"greenverify/internal/model"
	"greenverify/internal/narrative"
	"greenverify/internal/predictor"
	"greenverify/internal/server"
	"greenverify/internal/session"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting greenverify server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("addr", cfg.Server.Addr()),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Load model artifacts ---
	// A failed load degrades the service instead of killing it: the process
	// still serves /health and the advisory fallbacks, and /predict reports
	// that the model is unavailable.
	var pipeline *predictor.Pipeline
	arts, err := model.Load(cfg.Models.Dir)
	if err != nil {
		zapLog.Warn("model artifacts unavailable, running degraded",
			zap.String("dir", cfg.Models.Dir),
			zap.Error(err),
		)
	} else {
		pipeline = predictor.NewPipeline(arts, log)
		zapLog.Info("model artifacts loaded",
			zap.String("dir", cfg.Models.Dir),
			zap.Int("features", len(arts.Schema.Features)),
		)
	}

	// --- Session store ---
	var sessions session.Store
	if cfg.Session.Backend == "redis" {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		sessions = session.NewRedisStore(redisClient, cfg.Session.TTL)
		zapLog.Info("Redis session store connected")
	} else {
		sessions = session.NewMemoryStore(cfg.Session.TTL)
		zapLog.Info("In-memory session store initialized",
			zap.Duration("ttl", cfg.Session.TTL),
		)
	}
	defer sessions.Close()

	// --- Optional prediction audit log ---
	var auditStore *audit.Store
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		auditStore = audit.NewStore(pg.DB, log)
		zapLog.Info("PostgreSQL audit log connected")
	}

	// --- Text-generation client ---
	// A missing API key is not fatal: the narrative layer serves its canned
	// fallback content instead.
	var genaiClient genai.Client
	client, err := genai.NewClient(cfg.GenAI, log)
	switch {
	case errors.Is(err, genai.ErrNoAPIKey):
		zapLog.Warn("no genai API key configured, narrative fallback mode active")
	case err != nil:
		zapLog.Warn("genai client unavailable, narrative fallback mode active", zap.Error(err))
	default:
		genaiClient = client
		if gemini, ok := client.(*genai.GeminiClient); ok {
			probeCtx, cancel := context.WithTimeout(ctx, cfg.GenAI.Timeout)
			resolved, err := gemini.ResolveModel(probeCtx)
			cancel()
			if err != nil {
				zapLog.Warn("no usable gemini model, narrative fallback mode active", zap.Error(err))
				genaiClient = nil
			} else {
				zapLog.Info("gemini model resolved", zap.String("model", resolved))
			}
		}
	}

	narrator := narrative.NewGenerator(genaiClient, cfg.GenAI.Timeout, log)

	srv := server.New(server.Options{
		Config:        cfg,
		Logger:        log,
		Pipeline:      pipeline,
		Sessions:      sessions,
		Narrator:      narrator,
		Audit:         auditStore,
		Observability: obs,
		TemplatesGlob: "web/templates/*.html",
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
