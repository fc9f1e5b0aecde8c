// Package server provides an importable HTTP server hosting the example pages.
// This allows E2E tests to programmatically start/stop the server without running main().
//
// Each example is served at "/<app>/Example.html". The page is rendered from a
// fresh view-model and then opens a websocket at "/ws/<app>"; every user
// action travels over that socket as an Event and comes back as DOM patches.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thesyncim/uicontracts/pkg/contract"
)

// Config holds server configuration options.
type Config struct {
	Addr           string         // Listen address (e.g., ":8080" or ":0" for random port)
	ReadTimeout    time.Duration  // HTTP read timeout
	WriteTimeout   time.Duration  // HTTP write timeout
	MetricsEnabled bool           // Expose /metrics
	Logger         *slog.Logger   // Defaults to slog.Default()
	Clock          contract.Clock // Date source for the flight booker; defaults to the system clock
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:           ":0",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MetricsEnabled: true,
	}
}

// Server hosts the example pages and their websocket sessions.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	addr       string
	mu         sync.Mutex
	running    bool

	logger   *slog.Logger
	clock    contract.Clock
	renderer *renderer
	metrics  *metrics
	upgrader websocket.Upgrader
	conns    map[*websocket.Conn]struct{}
}

// NewServer creates a new server with the given configuration.
// The server is not started until Start() is called.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = contract.SystemClock{}
	}

	r, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	s := &Server{
		logger:   logger,
		clock:    clock,
		renderer: r,
		metrics:  newMetrics(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

func (s *Server) routes(cfg Config) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(s.logger))

	engine.GET("/", s.handleIndex)
	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/static/runtime.js", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/javascript; charset=utf-8", runtimeJS)
	})
	for _, app := range contract.Apps() {
		engine.GET("/"+string(app)+"/Example.html", s.handlePage(app))
	}
	engine.GET("/ws/:app", s.handleSocket)

	if cfg.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	}

	return engine
}

// Handler exposes the router, mainly for tests that don't need a listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	// Create listener to get actual port
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped", "error", err)
		}
	}()

	s.logger.Info("server listening", "addr", s.addr)
	return s.addr, nil
}

// Shutdown gracefully shuts down the server and closes open sessions.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	err := s.httpServer.Shutdown(ctx)

	// Hijacked websocket connections are not tracked by http.Server.
	for conn := range s.conns {
		conn.Close()
	}
	return err
}

// Addr returns the address the server is listening on.
// Returns empty string if server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) trackConn(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn] = struct{}{}
}

func (s *Server) untrackConn(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
