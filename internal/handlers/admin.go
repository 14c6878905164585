package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/leave-request-manager/internal/dto"
	apierrors "github.com/yukikurage/leave-request-manager/internal/errors"
	"github.com/yukikurage/leave-request-manager/internal/export"
	"github.com/yukikurage/leave-request-manager/internal/middleware"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/services"
	"github.com/yukikurage/leave-request-manager/internal/utils"
	"go.uber.org/zap"
)

// AdminHandler serves the admin review queue and account provisioning.
type AdminHandler struct {
	leaveService *services.LeaveService
	authService  *services.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(leaveService *services.LeaveService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		leaveService: leaveService,
		authService:  authService,
	}
}

// ListLeaveRequests returns requests of all users, newest first.
func (h *AdminHandler) ListLeaveRequests(c *gin.Context) {
	status, err := utils.GetStatusFilter(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.leaveService.ListAll(c.Request.Context(), services.ListAllInput{
		Status:   status,
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	})
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPagedLeaveRequestResponse(requests, pagination.Page, pagination.Limit, total))
}

// ApproveLeaveRequest approves a pending request.
func (h *AdminHandler) ApproveLeaveRequest(c *gin.Context) {
	h.decide(c, services.DecisionApprove)
}

// DenyLeaveRequest denies a pending request.
func (h *AdminHandler) DenyLeaveRequest(c *gin.Context) {
	h.decide(c, services.DecisionDeny)
}

func (h *AdminHandler) decide(c *gin.Context, decision services.DecisionKind) {
	type DecisionRequest struct {
		Comment string `json:"comment"`
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid leave request ID")
		return
	}

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	// the comment is optional, so is the body
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	if err := h.leaveService.Decide(ctx, requestID, decision, identity, req.Comment); err != nil {
		respondLeaveError(c, err)
		return
	}

	request, err := h.leaveService.GetRequest(ctx, requestID)
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveRequestDTO(*request))
}

// ExportLeaveRequests downloads all matching requests as CSV or XLSX.
func (h *AdminHandler) ExportLeaveRequests(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		apierrors.BadRequest(c, "format must be csv or xlsx")
		return
	}
	status, err := utils.GetStatusFilter(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	requests, _, err := h.leaveService.ListAll(c.Request.Context(), services.ListAllInput{Status: status})
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, requests); err != nil {
		zap.L().Error("export failed", zap.String("format", string(format)), zap.Error(err))
		apierrors.InternalError(c, "Failed to export leave requests")
		return
	}

	fileName := export.FileName(format, time.Now().Format("20060102_1504"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// CreateUser provisions a new account.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username     string      `json:"username" binding:"required,max=100"`
		EmployeeName string      `json:"employee_name" binding:"required"`
		Email        string      `json:"email" binding:"required"`
		Password     string      `json:"password" binding:"required"`
		Role         models.Role `json:"role"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "username, employee_name, email and password are required")
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username:     req.Username,
		EmployeeName: req.EmployeeName,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
	})
	if err != nil {
		respondProvisioningError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*user))
}
