package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kpiawards/internal/api"
	"kpiawards/internal/config"
	"kpiawards/internal/journal"
	"kpiawards/internal/metrics"
)

// frontend dev server used in dev mode
const devFrontendURL = "http://localhost:5173"

// Server HTTP server
type Server struct {
	router  *gin.Engine
	http    *http.Server
	backend *Backend
	journal *journal.Journal
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewServer wires the API on top of an opened backend.
// The journal lives in dataDir; a journal that cannot be opened is logged and skipped.
func NewServer(cfg *config.AppConfig, dataDir string, backend *Backend, log *zap.Logger) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:  gin.New(),
		backend: backend,
		metrics: metrics.New(),
		log:     log,
	}

	j, err := journal.Open(filepath.Join(dataDir, "journal.db"))
	if err != nil {
		log.Warn("operation journal disabled", zap.Error(err))
	} else {
		s.journal = j
	}

	opts := api.Options{
		Service:   backend.Service,
		Metrics:   s.metrics,
		Backend:   backend.Name,
		UploadDir: filepath.Join(dataDir, "uploads"),
		ExportDir: filepath.Join(dataDir, "exports"),
		Logger:    log,
	}
	if s.journal != nil {
		opts.Journal = s.journal
	}

	s.setupRoutes(api.NewHandler(opts), devMode)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// setupRoutes middleware and routes
func (s *Server) setupRoutes(h *api.Handler, devMode bool) {
	s.router.Use(gin.Recovery(), s.requestLogger())

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	h.RegisterRoutes(s.router.Group("/api"))
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	if devMode {
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, devFrontendURL+c.Request.URL.Path)
		})
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Handler the routed engine (tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until Shutdown
func (s *Server) Run() error {
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener and closes the journal and the backend
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.journal != nil {
		if jerr := s.journal.Close(); jerr != nil && err == nil {
			err = jerr
		}
	}
	if berr := s.backend.Close(ctx); berr != nil && err == nil {
		err = berr
	}
	return err
}
