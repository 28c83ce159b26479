package middleware

import (
	"errors"

	"asset-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const CurrentUserKey = "CurrentUser"

// InjectUser loads the logged-in user, if any, into the gin context.
// A session whose user no longer exists is cleared; a failed lookup leaves
// the session alone.
func InjectUser(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get(SessionUserID).(uint); ok && uid > 0 {
			var user models.User
			err := db.WithContext(c.Request.Context()).First(&user, uid).Error
			switch {
			case err == nil:
				c.Set(CurrentUserKey, user)
			case errors.Is(err, gorm.ErrRecordNotFound):
				sess.Clear()
				_ = sess.Save()
			default:
				log.Warn("load session user",
					zap.Uint("user_id", uid),
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.Error(err),
				)
			}
		}

		c.Next()
	}
}

// CurrentUser returns the user placed by InjectUser.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
