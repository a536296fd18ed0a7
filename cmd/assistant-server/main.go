// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"finhealth-assistant/internal/catalog"
	"finhealth-assistant/internal/common/config"
	"finhealth-assistant/internal/common/database"
	"finhealth-assistant/internal/common/errors"
	"finhealth-assistant/internal/common/logger"
	"finhealth-assistant/internal/common/observability"
	"finhealth-assistant/internal/conversation"
	"finhealth-assistant/internal/llm"
	"finhealth-assistant/internal/medical"
	"finhealth-assistant/internal/pricing"
	"finhealth-assistant/internal/session"
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
			delay *= 2
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

	zapLog.Info("Starting assistant server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	store, err := catalog.Load(cfg.Catalog.DataPath, log)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	// --- Session backend ---
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
		}, errors.GetRetryCount(errors.ErrCodeRedisConnectionFailed), 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(errors.NewRedisConnectionFailedError(err)))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")

		sessions = session.NewRedisStore(redisClient.Client, cfg.SessionTTL())
	} else {
		sessions = session.NewMemoryStore()
		zapLog.Info("Using in-memory session store")
	}

	// --- Core components ---
	engine := pricing.NewEngine(store, cfg.Pricing.UninsuredDiscount, log)

	var completer medical.Completer
	if cfg.Completion.Enabled {
		completer = llm.NewClient(cfg.Completion, log)
		zapLog.Info("Completion client enabled", zap.String("model", cfg.Completion.Model))
	}
	analyzer := medical.NewAnalyzer(store, completer, log)

	controller := conversation.NewController(store, engine, analyzer, cfg.Pricing.TopResults, log)

	api := newAPI(controller, engine, analyzer, store, sessions, obs, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", api.handleChat)
	mux.HandleFunc("/api/analyze-symptoms", api.handleAnalyzeSymptoms)
	mux.HandleFunc("/api/compare-hospitals", api.handleCompareHospitals)
	mux.HandleFunc("/api/analyze-insurance", api.handleAnalyzeInsurance)
	mux.HandleFunc("/api/conversation-summary", api.handleConversationSummary)
	mux.HandleFunc("/api/health", api.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
