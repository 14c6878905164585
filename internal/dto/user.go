package dto

import (
	"time"

	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/services"
)

// UserDTO represents the authenticated user in API responses
type UserDTO struct {
	ID           uint64      `json:"id"`
	Username     string      `json:"username"`
	EmployeeName string      `json:"employee_name"`
	Role         models.Role `json:"role"`
}

// AccountDTO represents a provisioned account, including contact details
type AccountDTO struct {
	ID           uint64      `json:"id"`
	Username     string      `json:"username"`
	EmployeeName string      `json:"employee_name"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ToUserDTO converts a session identity to UserDTO
func ToUserDTO(identity services.Identity) UserDTO {
	return UserDTO{
		ID:           identity.UserID,
		Username:     identity.Username,
		EmployeeName: identity.EmployeeName,
		Role:         identity.Role,
	}
}

// ToAccountDTO converts a User model to AccountDTO
func ToAccountDTO(user models.User) AccountDTO {
	return AccountDTO{
		ID:           user.ID,
		Username:     user.Username,
		EmployeeName: user.EmployeeName,
		Email:        user.Email,
		Role:         user.Role,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
	}
}
