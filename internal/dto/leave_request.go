package dto

import (
	"time"

	"github.com/yukikurage/leave-request-manager/internal/constants"
	"github.com/yukikurage/leave-request-manager/internal/models"
)

// LeaveRequestDTO represents a leave request in API responses. Dates are
// rendered as yyyy-MM-dd calendar days.
type LeaveRequestDTO struct {
	ID            uint64             `json:"id"`
	UserID        uint64             `json:"user_id"`
	EmployeeName  string             `json:"employee_name"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	TotalDays     int                `json:"total_days"`
	LeaveType     string             `json:"leave_type"`
	Reason        string             `json:"reason"`
	Status        models.LeaveStatus `json:"status"`
	AdminComments *string            `json:"admin_comments"`
	RequestedAt   time.Time          `json:"requested_at"`
	ProcessedAt   *time.Time         `json:"processed_at"`
	ProcessedBy   *string            `json:"processed_by"`
}

// LeaveRequestListResponse represents a list of leave requests
type LeaveRequestListResponse struct {
	LeaveRequests []LeaveRequestDTO `json:"leave_requests"`
	Count         int               `json:"count"`
}

// PagedLeaveRequestResponse represents a paginated list of leave requests
type PagedLeaveRequestResponse struct {
	LeaveRequests []LeaveRequestDTO `json:"leave_requests"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	TotalCount    int64             `json:"total_count"`
	TotalPages    int               `json:"total_pages"`
}

// SubmitResponse is returned after a request is accepted
type SubmitResponse struct {
	ID      uint64 `json:"id"`
	Message string `json:"message"`
}

// ToLeaveRequestDTO converts a LeaveRequest model to LeaveRequestDTO
func ToLeaveRequestDTO(r models.LeaveRequest) LeaveRequestDTO {
	return LeaveRequestDTO{
		ID:            r.ID,
		UserID:        r.UserID,
		EmployeeName:  r.EmployeeName,
		StartDate:     r.Start().Format(constants.DateLayout),
		EndDate:       r.End().Format(constants.DateLayout),
		TotalDays:     r.TotalDays(),
		LeaveType:     r.LeaveType,
		Reason:        r.Reason,
		Status:        r.Status,
		AdminComments: r.AdminComments,
		RequestedAt:   r.RequestedAt,
		ProcessedAt:   r.ProcessedAt,
		ProcessedBy:   r.ProcessedBy,
	}
}

// ToLeaveRequestDTOs converts a slice of requests, never returning nil
func ToLeaveRequestDTOs(requests []models.LeaveRequest) []LeaveRequestDTO {
	dtos := make([]LeaveRequestDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, ToLeaveRequestDTO(r))
	}
	return dtos
}

// ToPagedLeaveRequestResponse builds the paginated admin listing
func ToPagedLeaveRequestResponse(requests []models.LeaveRequest, page, pageSize int, total int64) PagedLeaveRequestResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PagedLeaveRequestResponse{
		LeaveRequests: ToLeaveRequestDTOs(requests),
		Page:          page,
		PageSize:      pageSize,
		TotalCount:    total,
		TotalPages:    totalPages,
	}
}
