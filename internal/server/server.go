package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/rohanv/swingsight/internal/analysis"
	"github.com/rohanv/swingsight/internal/server/api"
	"github.com/rohanv/swingsight/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir      string
	Store          *store.Store
	Engine         *analysis.Engine
	Logger         *slog.Logger
	AllowedOrigins []string
	RateLimit      int           // requests per window, 0 disables
	RateWindow     time.Duration // defaults to one minute
}

// Server represents the HTTP server for the swing analysis service.
type Server struct {
	config  Config
	mux     *http.ServeMux
	handler http.Handler
	start   time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	s.handler = s.wrap(s.mux)
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register analysis API handler if Store and Engine are configured
	if s.config.Store != nil && s.config.Engine != nil {
		analysisHandler := api.NewAnalysisHandler(s.config.Store, s.config.Engine)
		replayHandler := NewReplayHandler(s.config.Store, s.config.Logger)

		// Use a wrapper to route between the REST handler and the replay
		// WebSocket: /api/analyses/{id}/replay
		analysisRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/replay") {
				replayHandler.ServeHTTP(w, r)
				return
			}
			analysisHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/analyses", analysisRouter)
		s.mux.Handle("/api/analyses/", analysisRouter)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// wrap applies the middleware chain: rate limiting innermost, then timing,
// then CORS.
func (s *Server) wrap(h http.Handler) http.Handler {
	if s.config.RateLimit > 0 {
		window := s.config.RateWindow
		if window == 0 {
			window = time.Minute
		}
		h = api.RateLimitMiddleware(s.config.RateLimit, window)(h)
	}
	h = api.TimingMiddleware(h)

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(h)
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
