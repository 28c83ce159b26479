package server

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"asset-tracker/internal/config"
	"asset-tracker/internal/handlers"
	"asset-tracker/internal/inventory"
	"asset-tracker/internal/middleware"
	"asset-tracker/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionName = "inventory_session"

func maskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	prefix, domain := runes[:atIdx], string(runes[atIdx:])
	if len(prefix) <= 2 {
		return string(prefix) + "***" + domain
	}
	return string(prefix[:2]) + "***" + domain
}

// formatTime renders time.Time and *time.Time values, empty for nil.
func formatTime(layout string) func(any) string {
	return func(v any) string {
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		case *time.Time:
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format(layout)
		}
		return ""
	}
}

var funcMap = template.FuncMap{
	"maskEmail": maskEmail,
	"date":      formatTime("2006-01-02"),
	"datetime":  formatTime("2006-01-02 15:04"),
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// selected reports whether a submitted option value is the given id.
	"selected": func(raw string, id uint) bool {
		return strings.TrimSpace(raw) == strconv.FormatUint(uint64(id), 10)
	},
}

func templates() *template.Template {
	return template.Must(template.New("").Funcs(funcMap).ParseFS(web.Templates, "templates/*.html"))
}

func NewRouter(cfg *config.Config, db *gorm.DB, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))

	r.SetHTMLTemplate(templates())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.InjectUser(db, log))

	h := handlers.New(db, inventory.NewService(db), log)

	r.GET("/", h.IndexPage)

	// AUTH
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// ASSETS
	auth.GET("/asset", h.ListAssets)
	auth.POST("/asset", h.CreateAsset)
	auth.GET("/asset/:id", h.ShowAsset)
	auth.POST("/asset/:id", h.UpdateAsset)
	auth.POST("/asset/:id/assign", h.AssignAsset)
	auth.POST("/asset/:id/return", h.ReturnAsset)
	auth.POST("/asset/:id/delete", h.DeleteAsset)

	// AUDIT
	auth.GET("/audit", middleware.RequireAdmin(), h.ListAuditLogs)

	r.GET("/health", h.Health)

	return r
}
