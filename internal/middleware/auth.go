package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
	"github.com/nehemiah-317/ictlogbook/internal/models"
)

const (
	SessionUserID = "user_id"
	SessionRole   = "role"
)

// RequireAuth sends anonymous visitors to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if !actor.Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if _, ok := roleSet[actor.Role]; !ok {
			appErr := apperrors.NewForbiddenError("access denied")
			c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr})
			return
		}
		c.Next()
	}
}

// Login stores user in the session.
func Login(c *gin.Context, user *models.User) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(SessionUserID, user.ID)
	sess.Set(SessionRole, string(user.Role))
	return sess.Save()
}

func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}
