package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kpiawards/internal/model"
)

// ListReferences one reference sequence ordered by id
// GET /api/references/:kind
func (h *Handler) ListReferences(c *gin.Context) {
	kind, err := model.ParseReferenceKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": codeNotFound})
		return
	}

	entries, err := h.svc.References(c.Request.Context(), kind)
	if err != nil {
		writeError(c, err)
		return
	}
	if entries == nil {
		entries = []model.ReferenceEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "items": entries})
}

// NextReference the entry following name in the same sequence
// GET /api/references/:kind/next?name=
func (h *Handler) NextReference(c *gin.Context) {
	kind, err := model.ParseReferenceKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": codeNotFound})
		return
	}
	name := c.Query("name")
	if name == "" {
		badRequest(c, "name is required")
		return
	}

	next, ok, err := h.svc.NextAward(c.Request.Context(), kind, name)
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no further entry after " + name, "code": codeNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": next})
}
