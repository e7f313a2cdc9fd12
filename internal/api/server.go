// Package api exposes the simulator and calculators over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ctsim/internal/jobsim"
	"ctsim/internal/store"
)

// RunStore persists simulation records for later lookup.
type RunStore interface {
	store.ResultWriter
	Get(id string) (store.Record, error)
	List() ([]string, error)
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

type metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	simulations *prometheus.CounterVec
	calcs       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ctsim_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ctsim_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		simulations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ctsim_simulations_total",
			Help: "Job simulations by outcome.",
		}, []string{"outcome"}),
		calcs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ctsim_calculations_total",
			Help: "Calculator invocations by name and outcome.",
		}, []string{"calculator", "outcome"}),
	}
}

// Server serves the HTTP API.
type Server struct {
	sim     *jobsim.Simulator
	runs    RunStore
	sink    store.ResultWriter
	log     *slog.Logger
	metrics *metrics
	reg     *prometheus.Registry
	router  *gin.Engine
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithRunStore enables run persistence and the /v1/runs routes.
func WithRunStore(rs RunStore) Option {
	return func(s *Server) { s.runs = rs }
}

// WithSink sends every simulation record to w as well.
func WithSink(w store.ResultWriter) Option {
	return func(s *Server) { s.sink = w }
}

// NewServer builds the router. Metrics go to a registry owned by the server.
func NewServer(sim *jobsim.Simulator, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		sim:     sim,
		log:     log,
		reg:     reg,
		metrics: newMetrics(reg),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	v1.POST("/simulate", s.handleSimulate)
	v1.GET("/calc", s.handleListCalculators)
	v1.POST("/calc/:name", s.handleCalc)
	v1.GET("/runs", s.handleListRuns)
	v1.GET("/runs/:id", s.handleGetRun)
	return r
}

// observe records request counts and latency per route template.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		s.metrics.requests.WithLabelValues(c.Request.Method, route, status).Inc()
		s.metrics.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		s.log.Debug("http request", "method", c.Request.Method, "route", route, "status", status)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
