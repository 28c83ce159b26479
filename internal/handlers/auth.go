package handlers

import (
	"errors"
	"net/http"

	"asset-tracker/internal/database"
	"asset-tracker/internal/forms"
	"asset-tracker/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

func (h *Handler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data."})
		return
	}

	user, err := database.Authenticate(h.db.WithContext(c.Request.Context()), form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			h.log.Error("login lookup failed", zap.Error(err))
		}
		render(c, http.StatusUnauthorized, "login.html", gin.H{
			"error": "Invalid e-mail or password.",
			"email": form.Email,
		})
		return
	}

	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionIsAdmin, user.IsAdmin)
	if err := sess.Save(); err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("user logged in", zap.Uint("user_id", user.ID))
	c.Redirect(http.StatusFound, "/asset")
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}
