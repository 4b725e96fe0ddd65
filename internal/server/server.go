// Package server provides the HTTP REST API for the ATS resume optimizer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/atsfit/internal/analysis"
	"github.com/jonathan/atsfit/internal/db"
	"github.com/jonathan/atsfit/internal/llm"
	"github.com/jonathan/atsfit/internal/research"
	"github.com/jonathan/atsfit/internal/results"
	"github.com/jonathan/atsfit/internal/resume"
	"github.com/jonathan/atsfit/internal/scoring"
	"github.com/jonathan/atsfit/internal/trial"
)

// Config holds server configuration.
type Config struct {
	Port          int
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	APIKey        string
	TrialAttempts int
	TrialExpiry   time.Duration
	ScoreWeights  scoring.Weights // Zero value means defaults
	Verbose       bool
}

// usageStore records and reports per-user feature usage. *db.DB satisfies
// it; tests substitute a memory fake.
type usageStore interface {
	RecordUsage(ctx context.Context, userID, action string) error
	CountUsage(ctx context.Context, userID, action string, since time.Time) (int, error)
	ListUsage(ctx context.Context, userID string, limit int) ([]db.UsageRecord, error)
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	database   *db.DB
	llmClient  llm.Client

	resumes    *resume.Service
	trials     *trial.Manager
	extractor  *llm.Extractor
	researcher analysis.Researcher
	results    *results.Pipeline
	usage      usageStore
	weights    scoring.Weights

	verbose bool
}

// New creates a server with real dependencies: PostgreSQL storage, a Redis
// (or in-memory) trial store, and the Gemini client.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var trialStore trial.Store
	if cfg.RedisAddr != "" {
		redisStore, err := trial.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			database.Close()
			_ = llmClient.Close()
			return nil, fmt.Errorf("failed to connect trial store: %w", err)
		}
		trialStore = redisStore
	} else {
		log.Println("[server] No Redis address configured, trial sessions are in-memory only")
		trialStore = trial.NewMemoryStore()
	}

	var trialOpts []trial.Option
	if cfg.TrialAttempts > 0 {
		trialOpts = append(trialOpts, trial.WithMaxAttempts(cfg.TrialAttempts))
	}
	if cfg.TrialExpiry > 0 {
		trialOpts = append(trialOpts, trial.WithExpiry(cfg.TrialExpiry))
	}

	s := newServer(deps{
		resumes:    resume.NewService(database),
		trials:     trial.NewManager(trialStore, trialOpts...),
		llmClient:  llmClient,
		extractor:  llm.NewExtractor(llmClient),
		researcher: research.NewService(llmClient),
		results:    results.NewPipeline(results.NewStore()),
		usage:      database,
		weights:    cfg.ScoreWeights,
		verbose:    cfg.Verbose,
	})
	s.database = database

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for streamed optimization runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// deps bundles the collaborators so tests can inject fakes.
type deps struct {
	resumes    *resume.Service
	trials     *trial.Manager
	llmClient  llm.Client
	extractor  *llm.Extractor
	researcher analysis.Researcher
	results    *results.Pipeline
	usage      usageStore
	weights    scoring.Weights
	verbose    bool
}

func newServer(d deps) *Server {
	if d.weights == (scoring.Weights{}) {
		d.weights = scoring.DefaultWeights()
	}
	return &Server{
		resumes:    d.resumes,
		trials:     d.trials,
		llmClient:  d.llmClient,
		extractor:  d.extractor,
		researcher: d.researcher,
		results:    d.results,
		usage:      d.usage,
		weights:    d.weights,
		verbose:    d.verbose,
	}
}

// Handler builds the routed, middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Resume storage
	mux.HandleFunc("GET /api/resume", s.handleGetResume)
	mux.HandleFunc("PUT /api/resume", s.handleSaveResume)
	mux.HandleFunc("DELETE /api/resume", s.handleDeleteResume)

	// Document upload
	mux.HandleFunc("POST /api/extract-text", s.handleExtractText)

	// Scoring and keywords
	mux.HandleFunc("POST /api/ats-score", s.handleATSScore)
	mux.HandleFunc("POST /api/extract-keywords", s.handleExtractKeywords)

	// Optimization pipeline (trial-gated, SSE)
	mux.Handle("POST /api/analyze/stream", s.withTrialGate(http.HandlerFunc(s.handleAnalyzeStream)))

	// Trial session
	mux.HandleFunc("GET /api/trial", s.handleGetTrial)
	mux.HandleFunc("POST /api/trial/reset", s.handleResetTrial)

	// Usage accounting
	mux.HandleFunc("GET /api/usage", s.handleGetUsage)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(mux))
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

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// clientID identifies the caller for resume storage and trial accounting.
// The IP address serves as the scope; a trusted-proxy header scheme can
// replace this without touching the handlers.
func (s *Server) clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
