// Package server exposes the DDL parser, the exporters and the diagram store
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tordrt/schemamap/internal/ddl"
	"github.com/tordrt/schemamap/internal/metrics"
)

// MaxBodyBytes is the largest accepted request body
const MaxBodyBytes = 5 << 20

// Options configures a Server. Store and Metrics may be nil, which disables
// the diagram routes and the /metrics endpoint respectively.
type Options struct {
	Addr    string
	Mode    string
	Parser  *ddl.Parser
	Store   DiagramStore
	Metrics *metrics.Metrics
}

// Server is the HTTP API
type Server struct {
	addr    string
	parser  *ddl.Parser
	store   DiagramStore
	metrics *metrics.Metrics
	router  *gin.Engine
}

// New builds the server and its routes
func New(opts Options) *Server {
	switch opts.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	}
	if opts.Parser == nil {
		opts.Parser = ddl.NewParser(ddl.Options{})
	}

	s := &Server{
		addr:    opts.Addr,
		parser:  opts.Parser,
		store:   opts.Store,
		metrics: opts.Metrics,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(CorrelationID(), RequestLogger(), Recovery(), LimitBody(MaxBodyBytes))
	if s.metrics != nil {
		router.Use(s.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	router.GET("/health", s.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/parse", s.Parse)
		api.POST("/export/:format", s.Export)
	}

	if s.store != nil {
		diagrams := api.Group("/diagrams")
		{
			diagrams.GET("", s.ListDiagrams)
			diagrams.POST("", s.CreateDiagram)
			diagrams.GET("/:id", s.GetDiagram)
			diagrams.PUT("/:id", s.UpdateDiagram)
			diagrams.DELETE("/:id", s.DeleteDiagram)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Route not found", c.Request.URL.Path)
	})
	return router
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"addr": s.addr}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
