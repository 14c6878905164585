package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/leave-request-manager/internal/constants"
	"github.com/yukikurage/leave-request-manager/internal/dto"
	apierrors "github.com/yukikurage/leave-request-manager/internal/errors"
	"github.com/yukikurage/leave-request-manager/internal/middleware"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/services"
)

// LeaveHandler serves the employee side of leave requests.
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new LeaveHandler.
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{
		leaveService: leaveService,
	}
}

// SubmitLeaveRequest represents the request body for submitting leave.
// Dates use the yyyy-MM-dd layout.
type SubmitLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	LeaveType string `json:"leave_type"`
	Reason    string `json:"reason"`
}

// ListLeaveTypes returns the leave types offered to clients.
func (h *LeaveHandler) ListLeaveTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"leave_types": models.LeaveTypes,
		"default":     constants.DefaultLeaveType,
	})
}

// ListMyLeaveRequests returns every request of the current user, newest first.
func (h *LeaveHandler) ListMyLeaveRequests(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	requests, err := h.leaveService.ListForOwner(c.Request.Context(), identity.UserID)
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LeaveRequestListResponse{
		LeaveRequests: dto.ToLeaveRequestDTOs(requests),
		Count:         len(requests),
	})
}

// SubmitLeaveRequest creates a pending request for the current user.
func (h *LeaveHandler) SubmitLeaveRequest(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "start_date and end_date are required")
		return
	}

	startDate, err := time.Parse(constants.DateLayout, req.StartDate)
	if err != nil {
		apierrors.BadRequest(c, "start_date must use the yyyy-MM-dd format")
		return
	}
	endDate, err := time.Parse(constants.DateLayout, req.EndDate)
	if err != nil {
		apierrors.BadRequest(c, "end_date must use the yyyy-MM-dd format")
		return
	}

	id, err := h.leaveService.Submit(c.Request.Context(), identity, services.SubmitInput{
		StartDate: startDate,
		EndDate:   endDate,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
	})
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitResponse{
		ID:      id,
		Message: "Leave request submitted successfully",
	})
}

// GetLeaveRequest returns a request loaded by RequireLeaveRequestAccess.
func (h *LeaveHandler) GetLeaveRequest(c *gin.Context) {
	request, ok := middleware.GetLeaveRequest(c)
	if !ok {
		apierrors.NotFound(c, "Leave request not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveRequestDTO(*request))
}
