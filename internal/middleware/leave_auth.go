package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/leave-request-manager/internal/errors"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/services"
)

const contextKeyLeaveRequest = "leave_request"

// RequireLeaveRequestAccess loads the request named by the :id parameter.
// Employees may only see their own requests; admins see all of them.
func RequireLeaveRequestAccess(leaveService *services.LeaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid leave request ID")
			c.Abort()
			return
		}

		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		request, err := leaveService.GetRequest(c.Request.Context(), requestID)
		if err != nil {
			if errors.Is(err, services.ErrRequestNotFound) {
				apierrors.NotFound(c, "Leave request not found")
			} else {
				apierrors.ServiceUnavailable(c, "")
			}
			c.Abort()
			return
		}

		if identity.Role != models.RoleAdmin && request.UserID != identity.UserID {
			// Return 404 instead of 403 to avoid leaking request existence
			apierrors.NotFound(c, "Leave request not found")
			c.Abort()
			return
		}

		c.Set(contextKeyLeaveRequest, request)
		c.Next()
	}
}

// GetLeaveRequest retrieves the request loaded by RequireLeaveRequestAccess
func GetLeaveRequest(c *gin.Context) (*models.LeaveRequest, bool) {
	value, exists := c.Get(contextKeyLeaveRequest)
	if !exists {
		return nil, false
	}
	request, ok := value.(*models.LeaveRequest)
	return request, ok
}
