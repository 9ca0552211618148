package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/constants"
	apierrors "github.com/lab-annotate/cataloger-api/internal/errors"
)

// RequireAuth rejects requests without a logged-in session and exposes the
// session's user id to downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the user id stored by RequireAuth. Login writes the
// account's uint64 primary key into the session, so that is the only shape
// the context carries.
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := value.(uint64)
	return id, ok
}
