// Package server exposes the HTTP API: document upload, vision extraction,
// browser form filling with a WebSocket progress stream, and run history.
package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oezhouyou/legal-form-fill/internal/config"
	"github.com/oezhouyou/legal-form-fill/internal/document"
	"github.com/oezhouyou/legal-form-fill/internal/extract"
	"github.com/oezhouyou/legal-form-fill/internal/fill"
	"github.com/oezhouyou/legal-form-fill/internal/progress"
	"github.com/oezhouyou/legal-form-fill/internal/schema"
	"github.com/oezhouyou/legal-form-fill/internal/store"
)

// FormFiller runs one browser fill pass.
type FormFiller interface {
	Fill(ctx context.Context, data *schema.FormData) (*fill.Result, error)
}

// DataExtractor extracts structured data from uploaded documents.
type DataExtractor interface {
	Extract(ctx context.Context, files map[string]string) (*extract.Result, error)
}

// Server is the HTTP API server.
type Server struct {
	cfg       *config.Config
	docs      *document.Service
	db        *store.Store
	hub       *progress.Hub
	filler    FormFiller
	extractor DataExtractor
	log       *zap.Logger
	engine    *gin.Engine
}

// New assembles the server and its routes.
func New(cfg *config.Config, docs *document.Service, db *store.Store, hub *progress.Hub,
	filler FormFiller, extractor DataExtractor, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:       cfg,
		docs:      docs,
		db:        db,
		hub:       hub,
		filler:    filler,
		extractor: extractor,
		log:       log,
		engine:    engine,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.Use(corsMiddleware())

	api := s.engine.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/upload", s.upload)
		api.POST("/extract", s.extract)
		api.POST("/fill-form", s.fillForm)
		api.GET("/screenshots/:id", s.screenshot)
		api.GET("/runs", s.runs)
	}

	s.engine.GET("/ws/progress", s.progressWS)
	s.engine.Static("/uploads", s.cfg.Storage.UploadDir)
}

// corsMiddleware allows the browser frontend, served from another origin,
// to call the API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0755); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    s.cfg.Server.Addr(),
		Handler: s.engine,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
