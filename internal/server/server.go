// Package server provides the HTTP REST API for the talent pipeline.
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

	"github.com/google/uuid"

	"github.com/jmtong/talentpipe/internal/cache"
	"github.com/jmtong/talentpipe/internal/db"
	"github.com/jmtong/talentpipe/internal/enrich"
	"github.com/jmtong/talentpipe/internal/interview"
	"github.com/jmtong/talentpipe/internal/llm"
	"github.com/jmtong/talentpipe/internal/match"
	"github.com/jmtong/talentpipe/internal/server/middleware"
	"github.com/jmtong/talentpipe/internal/server/ratelimit"
	"github.com/jmtong/talentpipe/internal/sourcing"
	"github.com/jmtong/talentpipe/internal/types"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it;
// tests substitute fakes.
type Store interface {
	CreateJob(ctx context.Context, userID uuid.UUID, content string) (*db.Job, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, userID uuid.UUID, limit int) ([]db.Job, error)
	UpdateJobSearchString(ctx context.Context, jobID uuid.UUID, searchString string) error
	UpdateJobTitleSummary(ctx context.Context, jobID uuid.UUID, title, summary string) error
	UpsertAgentOutput(ctx context.Context, output *types.AgentOutput) error
	GetAgentOutputByJob(ctx context.Context, jobID uuid.UUID) (*types.AgentOutput, error)
	InsertResumeMatch(ctx context.Context, jobID uuid.UUID, resumeName string, m types.ResumeMatch) (*db.ResumeMatch, error)
	ListResumeMatches(ctx context.Context, jobID uuid.UUID) ([]db.ResumeMatch, error)
	CreateInterviewSession(ctx context.Context, jobID uuid.UUID, focusArea string, questions []types.InterviewQuestion) (*db.InterviewSession, error)
	ListInterviewSessions(ctx context.Context, jobID uuid.UUID) ([]db.InterviewSession, error)
}

// SearchProvider runs web searches for sourcing.
type SearchProvider interface {
	Search(ctx context.Context, query string, page int) ([]types.SearchResult, error)
}

// ContactProvider resolves contact details for candidates.
type ContactProvider interface {
	LookupByProfile(ctx context.Context, profileURL string) (*enrich.Contact, error)
	SearchPerson(ctx context.Context, search enrich.PersonSearch) (*enrich.Contact, error)
}

// Config holds server configuration.
type Config struct {
	Port          int
	DatabaseURL   string
	GeminiAPIKey  string
	SearchAPIKey  string
	SearchCX      string
	EnrichAPIKey  string
	EnrichBaseURL string
	JWTSecret     string
	UseBrowser    bool
}

// Deps are the constructed dependencies the server routes requests to.
// Optional providers may be nil; their endpoints return 503.
type Deps struct {
	Store    Store
	LLM      llm.Client
	Cache    *cache.Store
	Searcher SearchProvider
	Enricher ContactProvider
	JWT      *JWTService
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	store       Store
	llm         llm.Client
	cache       *cache.Store
	searcher    SearchProvider
	enricher    ContactProvider
	sourcingGen *sourcing.Generator
	matcher     *match.Matcher
	interviewer *interview.Generator
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	useBrowser  bool
	database    *db.DB
}

// New connects the real dependencies from the configuration and creates a
// server instance.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	deps := Deps{
		Store: database,
		LLM:   llmClient,
		Cache: cache.New(),
	}

	if cfg.SearchAPIKey != "" && cfg.SearchCX != "" {
		searcher, err := sourcing.NewSearcher(ctx, cfg.SearchAPIKey, cfg.SearchCX)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create search client: %w", err)
		}
		deps.Searcher = searcher
	}

	if cfg.EnrichAPIKey != "" && cfg.EnrichBaseURL != "" {
		enricher, err := enrich.NewClient(cfg.EnrichBaseURL, cfg.EnrichAPIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create enrichment client: %w", err)
		}
		deps.Enricher = enricher
	}

	if cfg.JWTSecret != "" {
		jwtService, err := NewJWTService(cfg.JWTSecret)
		if err != nil {
			database.Close()
			return nil, err
		}
		deps.JWT = jwtService
	}

	s, err := NewWithDeps(cfg, deps)
	if err != nil {
		database.Close()
		return nil, err
	}
	s.database = database
	return s, nil
}

// NewWithDeps creates a server around already-constructed dependencies.
func NewWithDeps(cfg Config, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("a store is required")
	}
	if deps.LLM == nil {
		return nil, fmt.Errorf("an LLM client is required")
	}
	if deps.Cache == nil {
		deps.Cache = cache.New()
	}

	matcher, err := match.NewMatcher(deps.LLM)
	if err != nil {
		return nil, err
	}
	interviewer, err := interview.NewGenerator(deps.LLM)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:       deps.Store,
		llm:         deps.LLM,
		cache:       deps.Cache,
		searcher:    deps.Searcher,
		enricher:    deps.Enricher,
		sourcingGen: sourcing.NewGenerator(deps.LLM),
		matcher:     matcher,
		interviewer: interviewer,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		jwtService:  deps.JWT,
		useBrowser:  cfg.UseBrowser,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /jobs", s.handleCreateJob)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)

	mux.HandleFunc("POST /jobs/{id}/process", s.handleProcess)
	mux.HandleFunc("POST /jobs/{id}/process/stream", s.handleProcessStream)
	mux.HandleFunc("GET /jobs/{id}/output", s.handleGetOutput)

	mux.HandleFunc("POST /jobs/{id}/search-string", s.handleSearchString)
	mux.HandleFunc("POST /jobs/{id}/source", s.handleSource)
	mux.HandleFunc("GET /jobs/{id}/source-results", s.handleSourceResults)

	mux.HandleFunc("POST /jobs/{id}/match", s.handleMatch)
	mux.HandleFunc("GET /jobs/{id}/matches", s.handleListMatches)
	mux.HandleFunc("POST /jobs/{id}/interview-questions", s.handleInterviewQuestions)
	mux.HandleFunc("GET /jobs/{id}/interview-sessions", s.handleListInterviewSessions)

	mux.HandleFunc("POST /enrich", s.handleEnrich)
	mux.HandleFunc("POST /scrape", s.handleScrape)

	var handler http.Handler = mux
	if s.jwtService != nil {
		handler = s.withAuth(handler)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(handler))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for streamed pipeline runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.database != nil {
		s.database.Close()
	}
	if s.llm != nil {
		_ = s.llm.Close()
	}

	log.Println("Server stopped")
	return nil
}

// withAuth requires a valid bearer token on every route except the health
// check.
func (s *Server) withAuth(next http.Handler) http.Handler {
	authed := middleware.Auth(s.jwtService.AsTokenValidator())(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		authed.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
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

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr; a trusted-proxy X-Forwarded-For
// scheme can replace this later.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
