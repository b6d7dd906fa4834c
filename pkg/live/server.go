package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hyper/pkg/hyper"
	"github.com/vango-dev/hyper/pkg/mvu"
	"github.com/vango-dev/hyper/pkg/render"
)

// App is the program a live server runs for each client.
type App struct {
	// Title is the page title.
	Title string

	// Update folds messages into the model; Update(nil, nil) is the
	// initial model.
	Update mvu.Update

	// View renders the whole model.
	View mvu.View
}

// Config holds live server settings.
type Config struct {
	// Render configures the page shell.
	Render render.Config

	// SocketPath is where the websocket is mounted. Default: "/ws".
	SocketPath string

	// MetricsPath is where Prometheus metrics are served. "-" disables
	// the endpoint. Default: "/metrics".
	MetricsPath string

	// Registry collects frame and session metrics. Default: a fresh
	// registry per server.
	Registry *prometheus.Registry

	// Tracing adds an OpenTelemetry span per frame.
	Tracing bool

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider

	// CheckOrigin is passed to the websocket upgrader. Nil applies the
	// same-origin check.
	CheckOrigin func(r *http.Request) bool

	ReadBufferSize  int
	WriteBufferSize int

	// ShutdownTimeout bounds graceful shutdown. Default: 5s.
	ShutdownTimeout time.Duration

	Logger *slog.Logger
}

// DefaultConfig returns a Config with defaults filled in.
func DefaultConfig() *Config {
	return &Config{
		SocketPath:      "/ws",
		MetricsPath:     "/metrics",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server serves one App to many clients.
type Server struct {
	app      App
	config   *Config
	router   chi.Router
	upgrader websocket.Upgrader
	registry *prometheus.Registry
	metrics  *liveMetrics
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	nextID   atomic.Uint64
}

// New creates a live server. A nil config uses DefaultConfig.
func New(app App, config *Config) *Server {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	if config.SocketPath == "" {
		config.SocketPath = defaults.SocketPath
	}
	if config.MetricsPath == "" {
		config.MetricsPath = defaults.MetricsPath
	}
	if config.ReadBufferSize == 0 {
		config.ReadBufferSize = defaults.ReadBufferSize
	}
	if config.WriteBufferSize == 0 {
		config.WriteBufferSize = defaults.WriteBufferSize
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		app:    app,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		registry: config.Registry,
		metrics:  metricsFor(config.Registry),
		logger:   logger.With("component", "live"),
		sessions: make(map[string]*Session),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get(s.config.SocketPath, s.handleSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if s.config.MetricsPath != "-" {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the chi router so callers can mount more routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// handlePage renders the initial frame into the page shell. The throwaway
// session numbers its nodes the same way the websocket session will, so
// the first push replaces identical markup.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.newSession(r.Context(), "page")
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	msg, err := sess.Render()
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := render.PageData{
		Title: s.app.Title,
		Body: []any{"div#hyper-root", hyper.Props{
			"dataset":                 hyper.Props{"live": s.config.SocketPath},
			"dangerouslySetInnerHTML": msg.HTML,
		}},
		Scripts: []render.ScriptTag{{Inline: clientScript}},
	}
	templ.Handler(render.PageComponent(page, s.config.Render)).ServeHTTP(w, r)
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already replied.
		return
	}
	defer conn.Close()

	id := strconv.FormatUint(s.nextID.Add(1), 10)
	sess, err := s.newSession(r.Context(), id)
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		return
	}
	sess.conn = conn
	sess.codec = parseCodec(r.URL.Query().Get("codec"))

	s.add(sess)
	defer s.remove(sess)

	sess.logger.Debug("session started")
	sess.serve(s)
	sess.logger.Debug("session ended")
}

func (s *Server) add(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.sessions.Inc()
}

func (s *Server) remove(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	s.metrics.sessions.Dec()
}

// Session returns a connected session by id.
func (s *Server) Session(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// SessionCount returns the number of connected clients.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// closeSessions closes every connection; their read loops then exit.
func (s *Server) closeSessions() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		sess.conn.Close()
	}
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by http.Server.
	s.closeSessions()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
