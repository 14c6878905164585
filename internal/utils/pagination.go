package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/leave-request-manager/internal/constants"
	"github.com/yukikurage/leave-request-manager/internal/models"
)

var ErrInvalidStatus = errors.New("status must be Pending, Approved or Denied")

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// GetPaginationParams extracts and clamps pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// GetStatusFilter reads the optional ?status= filter. Matching is case-insensitive;
// an empty value means no filter.
func GetStatusFilter(c *gin.Context) (*models.LeaveStatus, error) {
	value := strings.TrimSpace(c.Query("status"))
	if value == "" || strings.EqualFold(value, "all") {
		return nil, nil
	}
	for _, status := range []models.LeaveStatus{
		models.LeaveStatusPending,
		models.LeaveStatusApproved,
		models.LeaveStatusDenied,
	} {
		if strings.EqualFold(value, string(status)) {
			return &status, nil
		}
	}
	return nil, ErrInvalidStatus
}
