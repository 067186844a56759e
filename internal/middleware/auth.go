package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/codebusters-club/recruitment-api/internal/constants"
	apierrors "github.com/codebusters-club/recruitment-api/internal/errors"
)

// RequireAuth checks if the admin is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		adminID := session.Get(constants.ContextKeyAdmin)

		if adminID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store admin club id in context for easy access in handlers
		c.Set(constants.ContextKeyAdmin, adminID)
		c.Next()
	}
}

// GetAdminID retrieves the current admin club id from context
func GetAdminID(c *gin.Context) (string, bool) {
	adminID, exists := c.Get(constants.ContextKeyAdmin)
	if !exists {
		return "", false
	}

	id, ok := adminID.(string)
	return id, ok
}
