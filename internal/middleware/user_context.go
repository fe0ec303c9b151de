package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/database"
	"github.com/nehemiah-317/ictlogbook/internal/models"
	"github.com/nehemiah-317/ictlogbook/internal/policy"
)

const (
	currentUserKey  = "CurrentUser"
	currentActorKey = "CurrentActor"
)

// InjectUser resolves the session's user id against the database, so
// deleted accounts and role changes take effect on the next request.
func InjectUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get(SessionUserID).(uint); ok && uid > 0 {
			user, err := database.GetUser(c.Request.Context(), db, uid)
			if err == nil {
				c.Set(currentUserKey, user)
				c.Set(currentActorKey, policy.Actor{ID: user.ID, Username: user.Username, Role: user.Role})
				c.Set(SessionUserID, user.ID)
			}
		}

		c.Next()
	}
}

// CurrentActor returns the request's actor, or the anonymous actor.
func CurrentActor(c *gin.Context) policy.Actor {
	if v, ok := c.Get(currentActorKey); ok {
		if a, ok := v.(policy.Actor); ok {
			return a
		}
	}
	return policy.Actor{}
}

func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
