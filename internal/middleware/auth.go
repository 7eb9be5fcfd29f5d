package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"risk-assessment/internal/models"
)

// Session keys.
const (
	SessionUserID  = "user_id"
	SessionEmail   = "email"
	SessionProject = "project_id"
)

// RequireAuth rejects requests without a logged-in user. InjectUser must run
// first.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

// Login stores the user in the session.
func Login(c *gin.Context, user models.User) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(SessionUserID, user.ID)
	sess.Set(SessionEmail, user.Email)
	return sess.Save()
}

func Logout(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}

// ActiveProject returns the project selected in this session, if any.
func ActiveProject(c *gin.Context) (string, bool) {
	id, ok := sessions.Default(c).Get(SessionProject).(string)
	return id, ok && id != ""
}

func SetActiveProject(c *gin.Context, id string) error {
	sess := sessions.Default(c)
	if id == "" {
		sess.Delete(SessionProject)
	} else {
		sess.Set(SessionProject, id)
	}
	return sess.Save()
}
