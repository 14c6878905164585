package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/leave-request-manager/internal/constants"
	apierrors "github.com/yukikurage/leave-request-manager/internal/errors"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/services"
	"go.uber.org/zap"
)

// RequireAuth checks if the user is authenticated via session and restores
// the user's identity for the rest of the request
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie := sessions.Default(c)
		userID, ok := toUserID(cookie.Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		session := services.NewSession()
		if _, err := authService.Restore(c.Request.Context(), session, userID); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				// the account was removed or deactivated after login
				cookie.Clear()
				_ = cookie.Save()
				apierrors.Unauthorized(c, "Session is no longer valid")
				c.Abort()
				return
			}
			zap.L().Error("session restore failed", zap.Uint64("user_id", userID), zap.Error(err))
			apierrors.ServiceUnavailable(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeySession, session)
		c.Next()
	}
}

// RequireRole allows the request only when the restored identity has role.
// It must run after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !session.HasRole(role) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession retrieves the restored session from context
func GetSession(c *gin.Context) (*services.Session, bool) {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return nil, false
	}
	session, ok := value.(*services.Session)
	return session, ok
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(c *gin.Context) (services.Identity, bool) {
	session, ok := GetSession(c)
	if !ok {
		return services.Identity{}, false
	}
	return session.Current()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

// toUserID normalises the ID stored in the cookie; gob and JSON backed stores
// hand it back with different integer types.
func toUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
