package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListAudit handles GET /console/:tenant/audit?limit=.
func (h *Handler) ListAudit(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit log is not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.store.ListActions(c.Request.Context(), c.Param("tenant"), limit)
	if err != nil {
		fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
