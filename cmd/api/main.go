package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/tsethi/paysplit/internal/api/handlers"
	"github.com/tsethi/paysplit/internal/api/middleware"
	"github.com/tsethi/paysplit/internal/logger"
	"github.com/tsethi/paysplit/internal/pipeline"
	"github.com/tsethi/paysplit/internal/store"
	"github.com/tsethi/paysplit/internal/store/inmemory"
	"github.com/tsethi/paysplit/internal/store/postgres"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	// Parse command-line flags
	var (
		port        = flag.String("port", "8080", "HTTP server port")
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL env)")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	ctx := context.Background()

	// Initialize the transaction store. Without a database URL the service
	// falls back to the in-memory store, which loses data on restart.
	var repo store.Repository
	if *databaseURL == "" {
		log.Warn().Msg("No database configured - using in-memory transaction store")
		repo = inmemory.New()
	} else {
		pool, err := pgxpool.New(ctx, *databaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create database pool")
		}
		defer pool.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := pool.Ping(pingCtx); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		cancel()

		repo = postgres.New(pool)
	}

	// Initialize the ingestion pipeline and handlers
	ingestor := pipeline.NewIngestor(repo, log)
	uploadHandler := handlers.NewUploadHandler(ingestor, log)
	transactionsHandler := handlers.NewTransactionsHandler(repo, log)

	// Create router
	mux := http.NewServeMux()

	// Upload endpoint
	mux.HandleFunc("/api/v1/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			uploadHandler.Upload(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Transactions endpoints
	mux.HandleFunc("/api/v1/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.List(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/transactions/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.Summary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/transactions/", func(w http.ResponseWriter, r *http.Request) {
		// Extract transaction ID from path
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/transactions/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}

		switch r.Method {
		case http.MethodGet:
			transactionsHandler.Get(w, r, id)
		case http.MethodDelete:
			transactionsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(log)(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
