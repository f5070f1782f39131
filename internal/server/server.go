// Package server provides the HTTP REST API for the application tracker.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/crackats/internal/config"
	"github.com/jonathan/crackats/internal/db"
	"github.com/jonathan/crackats/internal/generate"
	"github.com/jonathan/crackats/internal/scrape"
)

// Store is the persistence layer the handlers talk to.
type Store interface {
	CreateApplication(ctx context.Context, in db.NewApplication) (*db.Application, error)
	GetApplication(ctx context.Context, id int64) (*db.Application, error)
	ListApplications(ctx context.Context, opts db.ListOptions) ([]db.Application, error)
	UpdateApplication(ctx context.Context, id int64, upd db.ApplicationUpdate) (*db.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status string) error
	DeleteApplication(ctx context.Context, id int64) error
	ResetApplications(ctx context.Context) (int64, error)
	StatusCounts(ctx context.Context) (map[string]int, error)
}

// Scraper extracts a job posting from a URL.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*scrape.Job, error)
}

// Generator runs the document generation pipeline.
type Generator interface {
	Run(ctx context.Context, jobURL string) (*generate.Result, error)
	RunWithJob(ctx context.Context, job *scrape.Job, sourceURL string) (*generate.Result, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      Store
	scraper    Scraper
	generator  Generator
	jwtService *JWTService
	authHash   string
}

// New creates a new server instance. The scraper and generator may be nil,
// in which case the corresponding endpoints respond 503.
func New(cfg *config.Config, store Store, scraper Scraper, generator Generator) (*Server, error) {
	s := &Server{
		store:     store,
		scraper:   scraper,
		generator: generator,
		authHash:  cfg.AuthPasswordHash,
	}

	if cfg.AuthEnabled() {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("POST /applications", s.handleCreateApplication)
	mux.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	mux.HandleFunc("PUT /applications/{id}", s.handleUpdateApplication)
	mux.HandleFunc("DELETE /applications/{id}", s.handleDeleteApplication)
	mux.HandleFunc("PATCH /applications/{id}/status", s.handleUpdateStatus)

	mux.HandleFunc("GET /board", s.handleBoard)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /reset", s.handleReset)

	mux.HandleFunc("POST /scrape", s.handleScrape)
	mux.HandleFunc("POST /generate", s.handleGenerate)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.withAuth(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Generation runs synchronously.
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers so the bookmarklet can post from job board pages.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a per-request ID.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()[:8]
		w.Header().Set("X-Request-ID", requestID)
		log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
