package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/leave-request-manager/internal/constants"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, bcryptCost int, logger *zap.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials against active users and records the matched
// user as the session identity.
func (s *AuthService) Login(ctx context.Context, session *Session, input LoginInput) (Identity, error) {
	user, err := s.userRepo.FindActiveByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, ErrUserNotFound
		}
		s.logger.Error("credential lookup failed", zap.String("username", input.Username), zap.Error(err))
		return Identity{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	identity := identityOf(user)
	session.set(identity)
	s.logger.Info("user logged in", zap.Uint64("user_id", user.ID), zap.String("role", string(user.Role)))
	return identity, nil
}

// Logout clears the session identity.
func (s *AuthService) Logout(session *Session) {
	session.clear()
}

// Restore re-establishes a session from a previously authenticated user ID,
// for clients that persist only the ID between calls. The user must still be active.
func (s *AuthService) Restore(ctx context.Context, session *Session, userID uint64) (Identity, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return Identity{}, err
	}
	if !user.IsActive {
		return Identity{}, ErrUserNotFound
	}

	identity := identityOf(user)
	session.set(identity)
	return identity, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return user, nil
}

// CreateUserInput represents the information needed to provision an account.
type CreateUserInput struct {
	Username     string
	EmployeeName string
	Email        string
	Password     string
	Role         models.Role
}

// CreateUser provisions a new active account.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	employeeName := strings.TrimSpace(input.EmployeeName)
	if employeeName == "" || utf8.RuneCountInString(employeeName) > constants.MaxEmployeeNameLength {
		return nil, ErrEmployeeNameNeeded
	}
	email := strings.TrimSpace(input.Email)
	if !IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !IsStrongPassword(input.Password) {
		return nil, ErrWeakPassword
	}
	if input.Role == "" {
		input.Role = models.RoleEmployee
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, ErrFailedToHash
	}

	user := &models.User{
		Username:     username,
		EmployeeName: employeeName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user provisioned", zap.Uint64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

var fieldValidator = validator.New()

// IsValidEmail reports whether email is a bare address such as a@b.example.
func IsValidEmail(email string) bool {
	return fieldValidator.Var(email, "required,email") == nil
}

// IsStrongPassword requires the minimum length plus at least one letter and one digit.
func IsStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < constants.MinPasswordLength {
		return false
	}

	hasLetter, hasDigit := false, false
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
