package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/leave-request-manager/internal/models"
	"go.uber.org/zap"
)

// DefaultUsers are created on an empty store. The credentials are public and
// meant for local development only.
var DefaultUsers = []CreateUserInput{
	{
		Username:     "admin",
		EmployeeName: "Administrator",
		Email:        "admin@company.com",
		Password:     "admin123",
		Role:         models.RoleAdmin,
	},
	{
		Username:     "john.doe",
		EmployeeName: "John Doe",
		Email:        "john.doe@company.com",
		Password:     "password123",
		Role:         models.RoleEmployee,
	},
}

// SeedDefaultUsers creates DefaultUsers when no user exists yet. It reports
// whether anything was created.
func (s *AuthService) SeedDefaultUsers(ctx context.Context) (bool, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, input := range DefaultUsers {
		if _, err := s.CreateUser(ctx, input); err != nil {
			return false, fmt.Errorf("failed to seed user %s: %w", input.Username, err)
		}
		s.logger.Warn("seeded default account; change or disable it outside development",
			zap.String("username", input.Username),
			zap.String("role", string(input.Role)))
	}

	return true, nil
}
