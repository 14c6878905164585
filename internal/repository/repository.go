package repository

import (
	"context"
	"time"

	"github.com/yukikurage/leave-request-manager/internal/models"
)

// LeaveRequestRepository defines the interface for leave request data access
type LeaveRequestRepository interface {
	// Create inserts a new leave request
	Create(ctx context.Context, request *models.LeaveRequest) error

	// FindByID finds a leave request by ID
	FindByID(ctx context.Context, id uint64) (*models.LeaveRequest, error)

	// ListActiveByUser lists the requests of a user that have not been denied
	ListActiveByUser(ctx context.Context, userID uint64) ([]models.LeaveRequest, error)

	// ListByUser lists all requests of a user, newest first
	ListByUser(ctx context.Context, userID uint64) ([]models.LeaveRequest, error)

	// List retrieves requests with filtering and pagination, newest first
	List(ctx context.Context, filter LeaveRequestFilter) ([]models.LeaveRequest, int64, error)

	// UpdateDecision records an approval or denial only while the request is
	// still pending. It reports false when no pending row matched.
	UpdateDecision(ctx context.Context, id uint64, decision Decision) (bool, error)

	// WithOwnerLock runs fn inside a transaction that holds a row lock on the
	// owning user, so submissions of one owner are serialized across processes.
	WithOwnerLock(ctx context.Context, userID uint64, fn func(repo LeaveRequestRepository) error) error
}

// LeaveRequestFilter holds filtering options for listing leave requests
type LeaveRequestFilter struct {
	Status   *models.LeaveStatus
	UserID   *uint64
	Page     int
	PageSize int
}

// Decision carries the fields written when a pending request is processed
type Decision struct {
	Status      models.LeaveStatus
	Comment     string
	ProcessedAt time.Time
	ProcessedBy string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindActiveByUsername finds an active user by case-insensitive username
	FindActiveByUsername(ctx context.Context, username string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether the username or email is already taken
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}
