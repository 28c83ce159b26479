package handlers

import (
	"net/http"

	"asset-tracker/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) IndexPage(c *gin.Context) {
	if _, ok := sessions.Default(c).Get(middleware.SessionUserID).(uint); ok {
		c.Redirect(http.StatusFound, "/asset")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Health reports whether the database answers.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
