// Package server provides the HTTP REST API for the copywriting workspace.
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

	"github.com/avery/copydesk/internal/alignment"
	"github.com/avery/copydesk/internal/config"
	"github.com/avery/copydesk/internal/db"
	"github.com/avery/copydesk/internal/generation"
	"github.com/avery/copydesk/internal/llm"
	"github.com/avery/copydesk/internal/optimize"
	"github.com/avery/copydesk/internal/server/middleware"
	"github.com/avery/copydesk/internal/server/ratelimit"
	"github.com/avery/copydesk/internal/voice"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	llmClient   llm.Client
	generator   *generation.Service
	checker     *alignment.Checker
	optimizer   *optimize.Service
	sessions    *optimize.SessionManager
	importer    *voice.Importer
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	useBrowser  bool
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	UseBrowser  bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.EnsureSchema(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		db:         database,
		llmClient:  client,
		generator:  generation.NewService(client),
		checker:    alignment.NewChecker(client),
		optimizer:  optimize.NewService(client),
		sessions:   optimize.NewSessionManager(database),
		importer:   voice.NewImporter(client),
		useBrowser: cfg.UseBrowser,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Generation calls can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler builds the route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Template catalog
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("GET /api/templates/{id}", s.handleGetTemplate)

	// Generation
	mux.HandleFunc("POST /api/generate-template", s.handleGenerateTemplate)
	mux.HandleFunc("POST /api/assemble-preview", s.handleAssemblePreview)

	// Alignment and optimization
	mux.HandleFunc("POST /api/check-brand-alignment", s.handleCheckBrandAlignment)
	mux.HandleFunc("POST /api/check-persona-alignment", s.handleCheckPersonaAlignment)
	mux.HandleFunc("POST /api/optimize-copy", s.handleOptimizeCopy)

	// Optimize-and-compare sessions over stored documents
	mux.HandleFunc("POST /api/optimize-sessions", s.handleCreateOptimizeSession)
	mux.HandleFunc("GET /api/optimize-sessions/{id}", s.handleGetOptimizeSession)
	mux.HandleFunc("POST /api/optimize-sessions/{id}/accept", s.handleAcceptOptimizeSession)
	mux.HandleFunc("POST /api/optimize-sessions/{id}/reject", s.handleRejectOptimizeSession)
	mux.HandleFunc("POST /api/optimize-sessions/{id}/editing", s.handleToggleOptimizeSessionEditing)

	// Brand voice import
	mux.HandleFunc("POST /api/brand-voices/import", s.handleImportBrandVoice)

	// Brand voice persistence
	mux.HandleFunc("GET /api/db/brand-voices", s.handleGetProjectBrandVoice)
	mux.HandleFunc("POST /api/db/brand-voices", s.handleSaveBrandVoice)
	mux.HandleFunc("PUT /api/db/brand-voices/{id}", s.handleUpdateBrandVoice)
	mux.HandleFunc("DELETE /api/db/brand-voices/{id}", s.handleDeleteBrandVoice)
	mux.HandleFunc("GET /api/db/all-brand-voices", s.handleListAllBrandVoices)
	mux.HandleFunc("POST /api/db/run-migration", s.handleRunMigration)

	// Personas
	mux.HandleFunc("GET /api/db/personas", s.handleListPersonas)
	mux.HandleFunc("POST /api/db/personas", s.handleCreatePersona)
	mux.HandleFunc("GET /api/db/personas/{id}", s.handleGetPersona)
	mux.HandleFunc("PUT /api/db/personas/{id}", s.handleUpdatePersona)
	mux.HandleFunc("DELETE /api/db/personas/{id}", s.handleDeletePersona)

	// Projects and documents
	mux.HandleFunc("GET /api/db/projects", s.handleListProjects)
	mux.HandleFunc("POST /api/db/projects", s.handleCreateProject)
	mux.HandleFunc("GET /api/db/projects/{id}", s.handleGetProject)
	mux.HandleFunc("DELETE /api/db/projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("GET /api/db/documents", s.handleListDocuments)
	mux.HandleFunc("POST /api/db/documents", s.handleCreateDocument)
	mux.HandleFunc("GET /api/db/documents/{id}", s.handleGetDocument)
	mux.HandleFunc("PUT /api/db/documents/{id}", s.handleUpdateDocument)
	mux.HandleFunc("DELETE /api/db/documents/{id}", s.handleDeleteDocument)
	mux.HandleFunc("GET /api/db/documents/{id}/versions", s.handleListDocumentVersions)

	// Snippets
	mux.HandleFunc("GET /api/db/snippets", s.handleListSnippets)
	mux.HandleFunc("POST /api/db/snippets", s.handleCreateSnippet)
	mux.HandleFunc("DELETE /api/db/snippets/{id}", s.handleDeleteSnippet)

	// Authentication
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	authRequired := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("PUT /api/auth/password", authRequired(http.HandlerFunc(s.handleUpdatePassword)))

	mux.HandleFunc("GET /api/health", s.handleHealth)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
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

// errorResponseWithDetails writes an error JSON response carrying structured
// detail, e.g. per-field validation failures.
func (s *Server) errorResponseWithDetails(w http.ResponseWriter, status int, message string, details any) {
	s.jsonResponse(w, status, map[string]any{"error": message, "details": details})
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Register(w, r)
}

// handleLogin handles user login requests.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authHandler.Login(w, r)
}

// handleUpdatePassword handles password update requests for the
// authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
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
