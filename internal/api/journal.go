package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kpiawards/internal/journal"
)

const defaultJournalLimit = 50

// ListJournal recent imports and exports, newest first
// GET /api/journal?limit=
func (h *Handler) ListJournal(c *gin.Context) {
	if h.journal == nil {
		c.JSON(http.StatusOK, gin.H{"items": []journal.Entry{}})
		return
	}

	limit := defaultJournalLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.journal.Recent(limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}
