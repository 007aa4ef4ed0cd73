package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kpiawards/internal/journal"
	"kpiawards/internal/metrics"
	"kpiawards/internal/service/awards"
)

// Journal import/export history
type Journal interface {
	Start(kind, filename, format string) (string, error)
	Finish(id string, rows int, opErr error) error
	Recent(limit int) ([]journal.Entry, error)
	LastSuccessful(kind string) (*journal.Entry, error)
}

// Options handler dependencies; Journal and Metrics may be nil
type Options struct {
	Service   *awards.Service
	Journal   Journal
	Metrics   *metrics.Metrics
	Backend   string
	UploadDir string
	ExportDir string
	Logger    *zap.Logger
}

// Handler API handlers
type Handler struct {
	svc       *awards.Service
	journal   Journal
	metrics   *metrics.Metrics
	backend   string
	uploadDir string
	exportDir string
	downloads *exportDownloadStore
	log       *zap.Logger
}

// NewHandler creates the API handler
func NewHandler(opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	return &Handler{
		svc:       opts.Service,
		journal:   opts.Journal,
		metrics:   m,
		backend:   opts.Backend,
		uploadDir: opts.UploadDir,
		exportDir: opts.ExportDir,
		downloads: newExportDownloadStore(),
		log:       log,
	}
}

// RegisterRoutes registers the API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// records
	router.GET("/records", h.ListRecords)
	router.POST("/records", h.CreateRecord)

	// reference sequences
	router.GET("/references/:kind", h.ListReferences)
	router.GET("/references/:kind/next", h.NextReference)

	// spreadsheets
	router.POST("/import", h.Import)
	router.POST("/import/stream", h.ImportStream)
	router.POST("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)

	router.GET("/journal", h.ListJournal)
}

func (h *Handler) journalStart(kind, filename, format string) string {
	if h.journal == nil {
		return ""
	}
	id, err := h.journal.Start(kind, filename, format)
	if err != nil {
		h.log.Warn("journal start failed", zap.String("kind", kind), zap.Error(err))
		return ""
	}
	return id
}

func (h *Handler) journalFinish(id string, rows int, opErr error) {
	if h.journal == nil || id == "" {
		return
	}
	if err := h.journal.Finish(id, rows, opErr); err != nil {
		h.log.Warn("journal finish failed", zap.String("id", id), zap.Error(err))
	}
}
