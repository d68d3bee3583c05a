package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-scholarform/internal/openapi"
	"github.com/goliatone/go-scholarform/pkg/orchestrator"
	"github.com/goliatone/go-scholarform/pkg/render/template/gotemplate"
	htmlrenderer "github.com/goliatone/go-scholarform/pkg/renderers/html"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	defaultCSRFField       = "_csrf"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	homeTitle              = "Scholarship Applications"
)

// Option customises a Server.
type Option func(*Server)

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRateLimit allows perMinute submissions per client with the given
// burst. A non-positive rate disables throttling.
func WithRateLimit(perMinute float64, burst int) Option {
	return func(s *Server) {
		s.perMinute = perMinute
		s.burst = burst
	}
}

// WithCSRFField names the hidden field carrying the CSRF token.
func WithCSRFField(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.csrfField = name
		}
	}
}

// WithCSRFKey sets the key authenticating the CSRF cookie. It must be at
// least CSRFKeyLength bytes; an empty key selects a random one.
func WithCSRFKey(key []byte) Option {
	return func(s *Server) {
		s.csrfKey = key
	}
}

// WithSecureCookies marks the CSRF cookie Secure, for deployments behind
// HTTPS.
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.secureCookies = secure
	}
}

// WithRegistry collects metrics into registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithTimeouts sets the HTTP read, write and graceful shutdown timeouts.
// Zero values keep the defaults.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
	}
}

// Server serves the application forms over HTTP.
type Server struct {
	orch     *orchestrator.Orchestrator
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
	limiter  *rateLimiter
	protect  func(http.Handler) http.Handler
	api      *openapi.Document
	pages    *gotemplate.Engine
	router   *mux.Router

	csrfField       string
	csrfKey         []byte
	secureCookies   bool
	perMinute       float64
	burst           int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

// New wires the routes of orch. It fails when the orchestrator or the
// embedded OpenAPI document are invalid.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if err := orch.Err(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		orch:            orch,
		logger:          zap.NewNop(),
		csrfField:       defaultCSRFField,
		readTimeout:     defaultReadTimeout,
		writeTimeout:    defaultWriteTimeout,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	m, err := newMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("server: register metrics: %w", err)
	}
	s.metrics = m
	s.limiter = newRateLimiter(s.perMinute, s.burst)

	protect, err := s.protection()
	if err != nil {
		return nil, err
	}
	s.protect = protect

	doc, err := openapi.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.api = doc

	pages, err := gotemplate.New(gotemplate.WithFS(embeddedTemplates))
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}
	s.pages = pages

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metrics.instrument)

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/openapi.json", s.handleOpenAPI).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.PathPrefix("/assets/").Handler(
		http.StripPrefix("/assets/", http.FileServer(http.FS(htmlrenderer.AssetsFS()))),
	).Methods(http.MethodGet)

	forms := r.PathPrefix("/forms").Subrouter()
	forms.Use(s.protect)
	forms.HandleFunc("/{kind}", s.handleForm).Methods(http.MethodGet)
	forms.Handle("/{kind}", s.limiter.Wrap(http.HandlerFunc(s.handleSubmit), s.pageTooManyRequests)).Methods(http.MethodPost)
	forms.HandleFunc("/{kind}/entries", s.handleEntries).Methods(http.MethodPost)
	forms.HandleFunc("/{kind}/print", s.handlePrint).Methods(http.MethodGet, http.MethodPost)

	r.Handle("/api/v1/forms/{kind}/submissions", s.limiter.Wrap(http.HandlerFunc(s.handleAPISubmit), s.apiTooManyRequests)).Methods(http.MethodPost)
	return r
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		ErrorLog:     zap.NewStdLog(s.logger),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		s.logger.Info("server listening", zap.String("addr", listener.Addr().String()))
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
