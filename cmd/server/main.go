package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/lumenjournal/insights/internal/archive"
	"github.com/lumenjournal/insights/internal/config"
	"github.com/lumenjournal/insights/internal/journal"
	"github.com/lumenjournal/insights/internal/llm"
	"github.com/lumenjournal/insights/internal/notifications"
	"github.com/lumenjournal/insights/internal/patterns"
	"github.com/lumenjournal/insights/internal/prompts"
	"github.com/lumenjournal/insights/internal/scheduler"
	"github.com/lumenjournal/insights/internal/store"
	"github.com/lumenjournal/insights/internal/summary"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting journal insights service")

	st, err := store.New(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("Failed to open store: %v", err)
	}

	// Retry wraps every outbound generation call.
	client := llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMTimeout)
	gen := llm.WithRetry(client, cfg.LLMMaxRetries, 2*time.Second)

	analyzer := patterns.NewAnalyzer(st)
	promptService := prompts.NewService(st, st, st, analyzer, gen)
	journalService := journal.NewService(st, st, promptService)

	var blobStore archive.BlobStore
	if cfg.StorageAccount != "" {
		blobStore, err = archive.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize report archive: %v", err)
		}
	} else {
		blobStore, err = archive.NewLocalStorage(cfg.ArchiveDir)
		if err != nil {
			logrus.Fatalf("Failed to initialize local report archive: %v", err)
		}
	}

	var notifier summary.Notifier
	if cfg.DigestWebhookURL != "" || cfg.DigestEmail != "" {
		notifier = notifications.NewService(cfg)
	}

	summaryService := summary.NewService(st, st, gen, archive.NewReporter(blobStore), notifier)

	if cfg.EnableScheduler {
		schedulerService := scheduler.NewService(cfg, summaryService, st)
		if err := schedulerService.Start(); err != nil {
			logrus.Fatalf("Failed to start scheduler: %v", err)
		}
		defer schedulerService.Stop()
	}

	srv := newServer(journalService, promptService, summaryService, st)

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/metrics", srv.handleMetrics).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(srv.requireUser)
	api.HandleFunc("/entries", srv.handleCreateEntry).Methods("POST")
	api.HandleFunc("/entries", srv.handleListEntries).Methods("GET")
	api.HandleFunc("/prompt", srv.handleGetPrompt).Methods("GET")
	api.HandleFunc("/suggest", srv.handleSuggest).Methods("POST")
	api.HandleFunc("/summary/weekly", srv.handleGetWeeklySummary).Methods("GET")
	api.HandleFunc("/summary/weekly", srv.handleRegenerateWeeklySummary).Methods("POST")
	api.HandleFunc("/preferences", srv.handleGetPreferences).Methods("GET")
	api.HandleFunc("/preferences", srv.handleUpdatePreferences).Methods("PUT")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}
