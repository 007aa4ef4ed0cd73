package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kpiawards/internal/importer"
	"kpiawards/internal/journal"
	"kpiawards/internal/model"
)

type importResponse struct {
	Filename string `json:"filename"`
	Imported int    `json:"imported"`
}

// Import replaces the whole collection with the uploaded spreadsheet.
// Nothing is written unless every row reconciles.
// POST /api/import (multipart field "file")
func (h *Handler) Import(c *gin.Context) {
	upload, ok := h.receiveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(upload.FilePath)

	report, err := h.runImport(c, upload, nil)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, importResponse{Filename: report.Filename, Imported: report.Rows})
}

// ImportStream same as Import with progress sent as server-sent events
// POST /api/import/stream
func (h *Handler) ImportStream(c *gin.Context) {
	upload, ok := h.receiveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(upload.FilePath)

	send, ok := startEventStream(c)
	if !ok {
		return
	}
	// the outcome arrives as the final done/error event
	_, _ = h.runImport(c, upload, func(e importer.ProgressEvent) { send(e) })
}

// receiveUpload stores the multipart file under the upload directory
func (h *Handler) receiveUpload(c *gin.Context) (importer.ImportOptions, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return importer.ImportOptions{}, false
	}

	format, err := model.FormatOf(file.Filename)
	if err != nil {
		writeError(c, err)
		return importer.ImportOptions{}, false
	}

	dir := h.uploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("import_%s.%s", uuid.NewString(), format))
	if err := c.SaveUploadedFile(file, path); err != nil {
		h.log.Error("save upload failed", zap.String("filename", file.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload", "code": codeInternal})
		return importer.ImportOptions{}, false
	}

	return importer.ImportOptions{
		FilePath:         path,
		OriginalFilename: file.Filename,
		Format:           format,
	}, true
}

func (h *Handler) runImport(c *gin.Context, opts importer.ImportOptions, progress func(importer.ProgressEvent)) (*importer.Report, error) {
	id := h.journalStart(journal.KindImport, opts.OriginalFilename, string(opts.Format))

	report, err := h.svc.ImportFile(c.Request.Context(), opts, progress)
	if err != nil {
		h.metrics.Imports.WithLabelValues("failed").Inc()
		h.journalFinish(id, 0, err)
		return nil, err
	}

	h.metrics.Imports.WithLabelValues("ok").Inc()
	h.metrics.ImportedRecords.Set(float64(report.Rows))
	h.journalFinish(id, report.Rows, nil)
	h.log.Info("import completed", zap.String("filename", report.Filename), zap.Int("records", report.Rows))
	return report, nil
}
