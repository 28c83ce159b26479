package handlers

import (
	"net/http"

	"asset-tracker/internal/database"

	"github.com/gin-gonic/gin"
)

const auditPageSize = 200

func (h *Handler) ListAuditLogs(c *gin.Context) {
	logs, err := database.RecentAuditLogs(h.db.WithContext(c.Request.Context()), auditPageSize)
	if err != nil {
		h.fail(c, err)
		return
	}

	render(c, http.StatusOK, "audit_list.html", gin.H{
		"logs": logs,
	})
}
