package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kpiawards/internal/exporter"
	"kpiawards/internal/journal"
	"kpiawards/internal/model"
)

// ExportRequest export request. Records, when present, are written as given
// (the rows currently displayed); otherwise Filters selects them.
type ExportRequest struct {
	Format  string              `json:"format" binding:"required"`
	Filters map[string]string   `json:"filters"`
	Records []model.AwardRecord `json:"records"`
}

type exportResponse struct {
	Token       string `json:"token"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"downloadUrl"`
	Rows        int    `json:"rows"`
}

type exportProgressEvent struct {
	Type      string         `json:"type"` // start/progress/done/error
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Export writes the selected records to a spreadsheet and returns a one-shot download token
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid export request")
		return
	}

	resp, err := h.runExport(c, req, nil)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportStream same as Export with progress sent as server-sent events
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid export request")
		return
	}

	send, ok := startEventStream(c)
	if !ok {
		return
	}
	send(exportProgressEvent{Type: "start", Message: "Початок експорту", Timestamp: time.Now()})

	lastPercent := -1
	resp, err := h.runExport(c, req, func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	})
	if err != nil {
		send(exportProgressEvent{Type: "error", Message: err.Error(), Timestamp: time.Now()})
		return
	}
	send(exportProgressEvent{
		Type:    "done",
		Message: "Експорт завершено",
		Data: map[string]any{
			"percent":     100,
			"token":       resp.Token,
			"filename":    resp.Filename,
			"downloadUrl": resp.DownloadURL,
		},
		Timestamp: time.Now(),
	})
}

func (h *Handler) runExport(c *gin.Context, req ExportRequest, progress func(exporter.ProgressEvent)) (*exportResponse, error) {
	format, err := model.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}

	recs := req.Records
	if recs == nil {
		recs, err = h.svc.Search(c.Request.Context(), req.Filters)
		if err != nil {
			return nil, err
		}
	}

	filename := exportFilename(time.Now(), format)
	id := h.journalStart(journal.KindExport, filename, string(format))

	path, err := h.writeExport(recs, format, progress)
	if err != nil {
		h.metrics.Exports.WithLabelValues(string(format), "failed").Inc()
		h.journalFinish(id, 0, err)
		return nil, err
	}

	token, expired := h.downloads.put(exportDownload{filePath: path, filename: filename, format: format}, exportDownloadTTL)
	for _, item := range expired {
		_ = os.Remove(item.filePath)
	}

	h.metrics.Exports.WithLabelValues(string(format), "ok").Inc()
	h.journalFinish(id, len(recs), nil)
	h.log.Info("export completed", zap.String("filename", filename), zap.Int("records", len(recs)))

	return &exportResponse{
		Token:       token,
		Filename:    filename,
		DownloadURL: "/api/export/download/" + token,
		Rows:        len(recs),
	}, nil
}

func (h *Handler) writeExport(recs []model.AwardRecord, format model.Format, progress func(exporter.ProgressEvent)) (string, error) {
	dir := h.exportDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("export_%s.%s", uuid.NewString(), format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	err = exporter.Export(f, recs, exporter.ExportOptions{Format: format, Progress: progress})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// DownloadExport serves an export once, then removes it
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "export not found or expired", "code": codeNotFound})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file is missing", "code": codeNotFound})
		return
	}

	c.Header("Content-Disposition", contentDisposition(item.filename))
	c.Header("Content-Type", contentType(item.format))
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

func exportFilename(now time.Time, format model.Format) string {
	return fmt.Sprintf("нагороди_%s.%s", now.Format("20060102_150405"), format)
}

// contentDisposition keeps an ASCII fallback next to the UTF-8 name
func contentDisposition(filename string) string {
	fallback := "awards" + filepath.Ext(filename)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(filename))
}

func contentType(format model.Format) string {
	if format == model.FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
