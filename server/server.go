// Package server exposes the query engine over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/graph"
	"github.com/satishbabariya/forte-go/internal/debug"
	"github.com/satishbabariya/forte-go/query"
)

// Config configures the HTTP server.
type Config struct {
	Addr       string
	CORSOrigin string
	// RateLimit is requests per minute per client IP; zero disables limiting.
	RateLimit int
	RateBurst int
	Metrics   bool
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the stock server settings.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		CORSOrigin:      "*",
		RateLimit:       120,
		RateBurst:       30,
		Metrics:         true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the HTTP front end of an Engine.
type Server struct {
	cfg     Config
	engine  *query.Engine
	graphs  *graph.Store
	metrics *Metrics
	logger  *slog.Logger
	router  *gin.Engine
}

// New builds the router. graphs may be nil.
func New(cfg Config, engine *query.Engine, graphs *graph.Store) *Server {
	if graphs == nil {
		graphs = graph.Empty()
	}
	s := &Server{
		cfg:    cfg,
		engine: engine,
		graphs: graphs,
		logger: debug.With("component", "server"),
	}
	if cfg.Metrics {
		s.metrics = NewMetrics(engine)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(Logger(s.logger))
	if s.metrics != nil {
		router.Use(s.metrics.Middleware())
	}
	router.Use(CORS(s.cfg.CORSOrigin))

	router.GET("/health", s.health)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := router.Group("/api")
	api.Use(RateLimit(s.cfg.RateLimit, s.cfg.RateBurst))
	{
		api.GET("/setclasses", s.dataset)
		api.GET("/setclasses/search", s.multiField)
		api.GET("/setclasses/all", s.allFields)
		api.GET("/setclasses/by/:field", s.byField)
		api.GET("/values/:field", s.values)
		api.GET("/graphs", s.graphNames)
		api.GET("/graphs/files/*name", s.graphArtifact)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody("NotFound", "no such route"))
	})
	return router
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// LoadCatalog loads the catalog in the background and publishes it to state.
// Until then every query answers DatasetNotReady. The returned channel yields
// the load error, or nil, and is then closed.
func LoadCatalog(state *catalog.State, load func() (*catalog.Table, error)) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		start := time.Now()
		table, err := load()
		if err == nil {
			err = state.Publish(table)
		}
		if err != nil {
			debug.Error("catalog load failed", "error", err)
			done <- err
			return
		}
		debug.Info("catalog loaded", "records", table.Len(), "elapsed", time.Since(start))
		done <- nil
	}()
	return done
}
