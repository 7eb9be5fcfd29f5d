package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"risk-assessment/internal/database"
	"risk-assessment/internal/middleware"
)

const maxAuditEntries = 200

// ListAuditLogs returns the current user's most recent changes.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	limit := maxAuditEntries
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v < maxAuditEntries {
		limit = v
	}

	user, _ := middleware.CurrentUser(c)
	logs, err := database.ListAuditLogs(c.Request.Context(), h.DB, user.ID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
