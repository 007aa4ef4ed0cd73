package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kpiawards/internal/journal"
)

// StatusResponse system status
type StatusResponse struct {
	Backend    string         `json:"backend"`
	Records    int64          `json:"records"`
	Healthy    bool           `json:"healthy"`
	LastImport *journal.Entry `json:"lastImport,omitempty"`
}

// GetStatus system status
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{Backend: h.backend, Healthy: true}

	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		h.log.Warn("status count failed", zap.Error(err))
		resp.Healthy = false
	}
	resp.Records = n

	if h.journal != nil {
		last, err := h.journal.LastSuccessful(journal.KindImport)
		if err != nil {
			h.log.Warn("status journal lookup failed", zap.Error(err))
		}
		resp.LastImport = last
	}

	c.JSON(http.StatusOK, resp)
}
