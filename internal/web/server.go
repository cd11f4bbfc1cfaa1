// Package web provides the HTTP server: chat and tool execution over
// SSE, session state routes, and a health probe.
package web

import (
	"errors"
	"net/http"

	"github.com/voyago/voyago/internal/log"
	"github.com/voyago/voyago/internal/tools"
	"github.com/voyago/voyago/internal/web/handlers"
)

// Server is the HTTP server.
type Server struct {
	mux     *http.ServeMux
	logger  log.Logger
	limiter *rateLimiter
	trust   bool
}

// ServerConfig contains configuration for creating a server.
type ServerConfig struct {
	Logger         log.Logger              // Optional: nil disables request logging
	Registry       *tools.Registry         // Required: tool lookup for streaming detection
	SessionFactory handlers.SessionFactory // Required: builds agent sessions per conversation
	RateLimitRPS   int                     // Tokens per second per IP
	RateLimitBurst int                     // Bucket size per IP
	TrustProxy     bool                    // Trust X-Real-IP/X-Forwarded-For
}

// NewServer creates a server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if cfg.SessionFactory == nil {
		return nil, errors.New("session factory is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 10
	}
	if cfg.RateLimitBurst < cfg.RateLimitRPS {
		cfg.RateLimitBurst = cfg.RateLimitRPS * 2
	}

	mux := http.NewServeMux()
	sessions := handlers.NewSessions(cfg.SessionFactory, logger)

	streaming := func(name string) bool {
		t, ok := cfg.Registry.Get(name)
		return ok && t.IsStreaming()
	}

	health := handlers.NewHealth()
	chat := handlers.NewChat(sessions, logger)
	tool := handlers.NewTools(sessions, streaming, logger)
	state := handlers.NewState(sessions, logger)

	// Health probe stays outside the middleware stack.
	mux.HandleFunc("GET /healthz", health.Check)

	mux.HandleFunc("POST /api/chat", chat.Send)
	mux.HandleFunc("POST /api/tools/{name}", tool.Execute)
	mux.HandleFunc("GET /api/sessions/{id}/components", state.Components)
	mux.HandleFunc("POST /api/sessions/{id}/clear", state.Clear)
	mux.HandleFunc("POST /api/sessions/{id}/retry", state.Retry)

	return &Server{
		mux:     mux,
		logger:  logger,
		limiter: newRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst),
		trust:   cfg.TrustProxy,
	}, nil
}

// ServeHTTP implements http.Handler with the middleware stack:
// Recovery -> Logging -> Tracing -> RateLimit -> Routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if r.URL.Path == "/healthz" {
		s.mux.ServeHTTP(w, r)
		return
	}

	var handler http.Handler = s.mux
	handler = RateLimitMiddleware(s.limiter, s.trust, s.logger)(handler)
	handler = TracingMiddleware()(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler.ServeHTTP(w, r)
}
