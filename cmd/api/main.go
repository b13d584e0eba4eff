package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "career-coach/docs" // Swagger docs
	"career-coach/internal/api"
	"career-coach/internal/config"
	"career-coach/internal/llm"
	"career-coach/internal/logger"
)

// @title Career Coach Recommendations API
// @version 1.0
// @description Reduces job-search records to a bounded slim summary and returns schema-constrained LLM recommendations

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

func main() {
	// Load .env file
	envLoaded := godotenv.Load() == nil

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	if !envLoaded {
		log.Info(".env file not found, using environment variables")
	}
	if cfg.OpenAIAPIKey == "" {
		// Not fatal: every request will fail with a configuration error
		// until the key is set.
		log.Warn("OPENAI_API_KEY is not set; all requests will be rejected")
	}

	generator := llm.NewService(cfg.OpenAIAPIKey, cfg.Model)
	apiSrv := api.NewAPI(cfg, generator, log)
	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // the generation round-trip dominates request latency
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	log.Info("API server listening", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server failed", zap.Error(err))
	}

	<-idleConnsClosed
}
