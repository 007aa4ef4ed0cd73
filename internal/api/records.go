package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kpiawards/internal/model"
)

type listRecordsResponse struct {
	Items     []model.AwardRecord `json:"items"`
	Summaries []string            `json:"summaries"`
	Total     int                 `json:"total"`
}

// ListRecords searches records by exact field values; no parameters lists everything
// GET /api/records?teacher=&fac=&gram=&state_gram=&num=&year=&state_year=&prog=
func (h *Handler) ListRecords(c *gin.Context) {
	raw := make(map[string]string, len(model.Fields))
	for _, f := range model.Fields {
		raw[f] = c.Query(f)
	}

	recs, err := h.svc.Search(c.Request.Context(), raw)
	if err != nil {
		writeError(c, err)
		return
	}
	h.metrics.Searches.Inc()

	c.JSON(http.StatusOK, listRecordsResponse{
		Items:     recs,
		Summaries: h.svc.Summaries(recs),
		Total:     len(recs),
	})
}

// CreateRecord inserts one manually entered record
// POST /api/records
func (h *Handler) CreateRecord(c *gin.Context) {
	var req model.AwardRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid record payload")
		return
	}

	rec, err := h.svc.Insert(c.Request.Context(), req)
	if err != nil {
		if status, code := classify(err); status < http.StatusInternalServerError {
			h.metrics.InsertRejects.WithLabelValues(code).Inc()
		}
		writeError(c, err)
		return
	}
	h.metrics.Inserts.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"record":  rec,
		"message": "Дані були внесені",
	})
}
