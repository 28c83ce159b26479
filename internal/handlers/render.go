package handlers

import (
	"errors"
	"net/http"

	"asset-tracker/internal/database"
	"asset-tracker/internal/forms"
	"asset-tracker/internal/inventory"
	"asset-tracker/internal/middleware"
	"asset-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// render wraps c.HTML and passes the logged-in user to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if u, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = u
		data["IsAdmin"] = u.IsAdmin
	}
	c.HTML(status, tmpl, data)
}

// fail renders the generic error page. Anything not classified as a typed
// inventory error is logged and shown as a 500.
func (h *Handler) fail(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Something went wrong. The error has been logged."

	var (
		ce *inventory.ConflictError
		re *inventory.ReferenceError
		ve *inventory.ValidationError
	)
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found."
	case errors.As(err, &ce):
		status, msg = http.StatusConflict, ce.Error()
	case errors.As(err, &re), errors.As(err, &ve):
		status, msg = http.StatusBadRequest, err.Error()
	default:
		h.log.Error("request failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	render(c, status, "error.html", gin.H{"status": status, "message": msg})
}

// fieldErrors keys a service or form error by the form field to show it
// next to. It reports false for errors that belong to no field.
func fieldErrors(err error) (map[string]string, int, bool) {
	var (
		fe inventory.FieldErrors
		ve *inventory.ValidationError
		re *inventory.ReferenceError
		ce *inventory.ConflictError
	)
	switch {
	case errors.As(err, &fe):
		out := make(map[string]string, len(fe))
		for field, msg := range fe.Map() {
			out[forms.FormField(field)] = msg
		}
		return out, http.StatusBadRequest, true
	case errors.As(err, &ve):
		return map[string]string{forms.FormField(ve.Field): ve.Reason}, http.StatusBadRequest, true
	case errors.As(err, &re):
		return map[string]string{forms.FormField(re.Field): "Not a valid choice."}, http.StatusBadRequest, true
	case errors.As(err, &ce):
		return map[string]string{forms.FormField(ce.Field): ce.Reason}, http.StatusConflict, true
	}
	return nil, 0, false
}

// audit records a change made by the logged-in user. A failed write is
// logged and does not undo the change.
func (h *Handler) audit(c *gin.Context, entity string, id uint, action, details string) {
	uid, ok := sessions.Default(c).Get(middleware.SessionUserID).(uint)
	if !ok {
		return
	}
	db := h.db.WithContext(c.Request.Context())
	if err := database.CreateAuditLog(db, uid, entity, id, action, details); err != nil {
		h.log.Warn("audit log write failed", zap.Error(err), zap.String("entity", entity), zap.Uint("entity_id", id))
	}
}

func assetLabel(a *models.Asset) string {
	if a.SerialNumber != nil {
		return a.Name + " (" + *a.SerialNumber + ")"
	}
	return a.Name
}
