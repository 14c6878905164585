package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/leave-request-manager/internal/middleware"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/ratelimit"
	"github.com/yukikurage/leave-request-manager/internal/services"
)

// RegisterRoutes mounts the health check and the /api tree on r. Session
// middleware must already be installed.
func RegisterRoutes(r gin.IRouter, authService *services.AuthService, leaveService *services.LeaveService, loginLimiter ratelimit.Limiter) {
	authHandler := NewAuthHandler(authService)
	leaveHandler := NewLeaveHandler(leaveService)
	adminHandler := NewAdminHandler(leaveService, authService)

	requireAuth := middleware.RequireAuth(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Leave Request Manager is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			login := []gin.HandlerFunc{authHandler.Login}
			if loginLimiter != nil {
				login = append([]gin.HandlerFunc{middleware.LoginRateLimit(loginLimiter)}, login...)
			}
			auth.POST("/login", login...)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		api.GET("/leave-types", requireAuth, leaveHandler.ListLeaveTypes)

		// Employee routes (protected)
		leave := api.Group("/leave-requests")
		leave.Use(requireAuth)
		{
			leave.GET("", leaveHandler.ListMyLeaveRequests)
			leave.POST("", leaveHandler.SubmitLeaveRequest)
			leave.GET("/:id", middleware.RequireLeaveRequestAccess(leaveService), leaveHandler.GetLeaveRequest)
		}

		// Admin routes (protected, Admin role)
		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/leave-requests", adminHandler.ListLeaveRequests)
			admin.GET("/leave-requests/export", adminHandler.ExportLeaveRequests)
			admin.POST("/leave-requests/:id/approve", adminHandler.ApproveLeaveRequest)
			admin.POST("/leave-requests/:id/deny", adminHandler.DenyLeaveRequest)
			admin.POST("/users", adminHandler.CreateUser)
		}
	}
}
