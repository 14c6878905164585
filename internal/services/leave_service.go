package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/leave-request-manager/internal/constants"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DecisionKind is the admin action applied to a pending request.
type DecisionKind string

const (
	DecisionApprove DecisionKind = "approve"
	DecisionDeny    DecisionKind = "deny"
)

func (d DecisionKind) status() (models.LeaveStatus, bool) {
	switch d {
	case DecisionApprove:
		return models.LeaveStatusApproved, true
	case DecisionDeny:
		return models.LeaveStatusDenied, true
	}
	return "", false
}

// LeaveService applies the leave request lifecycle: submission of pending
// requests and their one-time approval or denial.
type LeaveService struct {
	leaveRepo repository.LeaveRequestRepository
	validator *Validator
	now       func() time.Time
	logger    *zap.Logger
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(leaveRepo repository.LeaveRequestRepository, validator *Validator, logger *zap.Logger) *LeaveService {
	if validator == nil {
		validator = NewValidator(constants.DefaultMaxLeaveDays)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{
		leaveRepo: leaveRepo,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

// SubmitInput represents the fields an employee provides for a new request
type SubmitInput struct {
	StartDate time.Time
	EndDate   time.Time
	LeaveType string
	Reason    string
}

// Submit validates a new request for owner against their non-denied requests
// and persists it as Pending. Nothing is written when validation fails.
func (s *LeaveService) Submit(ctx context.Context, owner Identity, input SubmitInput) (uint64, error) {
	leaveType := strings.TrimSpace(input.LeaveType)
	if leaveType == "" {
		leaveType = constants.DefaultLeaveType
	}

	candidate := &models.LeaveRequest{
		UserID:       owner.UserID,
		EmployeeName: owner.EmployeeName,
		StartDate:    models.NewDate(input.StartDate),
		EndDate:      models.NewDate(input.EndDate),
		LeaveType:    leaveType,
		Reason:       strings.TrimSpace(input.Reason),
		Status:       models.LeaveStatusPending,
		RequestedAt:  s.now(),
	}

	err := s.leaveRepo.WithOwnerLock(ctx, owner.UserID, func(repo repository.LeaveRequestRepository) error {
		existing, err := repo.ListActiveByUser(ctx, owner.UserID)
		if err != nil {
			return storeError("list existing requests", err)
		}

		if err := s.validator.Validate(*candidate, existing); err != nil {
			return err
		}

		if err := repo.Create(ctx, candidate); err != nil {
			return storeError("create leave request", err)
		}
		return nil
	})
	if err != nil {
		var validationErr *ValidationError
		var storeErr *StoreError
		switch {
		case errors.As(err, &validationErr):
			s.logger.Info("leave request rejected",
				zap.Uint64("user_id", owner.UserID),
				zap.String("code", string(validationErr.Code)))
			return 0, validationErr
		case errors.As(err, &storeErr):
			s.logger.Error("leave request submission failed", zap.Uint64("user_id", owner.UserID), zap.Error(err))
			return 0, storeErr
		default:
			// the owner lock itself failed
			s.logger.Error("leave request submission failed", zap.Uint64("user_id", owner.UserID), zap.Error(err))
			return 0, storeError("lock owner", err)
		}
	}

	s.logger.Info("leave request submitted",
		zap.Uint64("request_id", candidate.ID),
		zap.Uint64("user_id", owner.UserID),
		zap.Int("total_days", candidate.TotalDays()))
	return candidate.ID, nil
}

// Decide approves or denies a pending request on behalf of decider. A request
// that is no longer pending at write time yields ErrNotPending.
func (s *LeaveService) Decide(ctx context.Context, requestID uint64, decision DecisionKind, decider Identity, comment string) error {
	status, ok := decision.status()
	if !ok {
		return ErrInvalidDecision
	}
	if decider.Role != models.RoleAdmin {
		return ErrForbidden
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > constants.MaxAdminCommentLength {
		return ErrCommentTooLong
	}

	request, err := s.leaveRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return storeError("load leave request", err)
	}

	if request.Status != models.LeaveStatusPending {
		return ErrNotPending
	}

	updated, err := s.leaveRepo.UpdateDecision(ctx, requestID, repository.Decision{
		Status:      status,
		Comment:     comment,
		ProcessedAt: s.now(),
		ProcessedBy: decider.EmployeeName,
	})
	if err != nil {
		s.logger.Error("leave decision failed", zap.Uint64("request_id", requestID), zap.Error(err))
		return storeError("update leave request", err)
	}
	if !updated {
		s.logger.Warn("leave decision lost race", zap.Uint64("request_id", requestID), zap.Uint64("decider_id", decider.UserID))
		return ErrNotPending
	}

	s.logger.Info("leave request decided",
		zap.Uint64("request_id", requestID),
		zap.String("status", string(status)),
		zap.Uint64("decider_id", decider.UserID))
	return nil
}

// GetRequest returns a single request by ID
func (s *LeaveService) GetRequest(ctx context.Context, requestID uint64) (*models.LeaveRequest, error) {
	request, err := s.leaveRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, storeError("load leave request", err)
	}
	return request, nil
}

// ListForOwner returns every request of ownerID, newest first
func (s *LeaveService) ListForOwner(ctx context.Context, ownerID uint64) ([]models.LeaveRequest, error) {
	requests, err := s.leaveRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, storeError("list leave requests", err)
	}
	return requests, nil
}

// ListAllInput represents filters for the admin listing. Page and PageSize of
// zero return every matching request.
type ListAllInput struct {
	Status   *models.LeaveStatus
	Page     int
	PageSize int
}

// ListAll returns requests of all users, newest first, optionally filtered by status
func (s *LeaveService) ListAll(ctx context.Context, input ListAllInput) ([]models.LeaveRequest, int64, error) {
	requests, total, err := s.leaveRepo.List(ctx, repository.LeaveRequestFilter{
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, storeError("list leave requests", err)
	}
	return requests, total, nil
}
