package repository

import (
	"context"

	"github.com/yukikurage/leave-request-manager/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLeaveRequestRepository is a GORM implementation of LeaveRequestRepository
type GormLeaveRequestRepository struct {
	db *gorm.DB
}

// NewLeaveRequestRepository creates a new LeaveRequestRepository
func NewLeaveRequestRepository(db *gorm.DB) LeaveRequestRepository {
	return &GormLeaveRequestRepository{db: db}
}

// Create inserts a new leave request
func (r *GormLeaveRequestRepository) Create(ctx context.Context, request *models.LeaveRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(request).Error
}

// FindByID finds a leave request by ID
func (r *GormLeaveRequestRepository) FindByID(ctx context.Context, id uint64) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListActiveByUser lists the requests of a user that have not been denied
func (r *GormLeaveRequestRepository) ListActiveByUser(ctx context.Context, userID uint64) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, models.LeaveStatusDenied).
		Order("start_date ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByUser lists all requests of a user, newest first
func (r *GormLeaveRequestRepository) ListByUser(ctx context.Context, userID uint64) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("requested_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// List retrieves requests with filtering and pagination, newest first
func (r *GormLeaveRequestRepository) List(ctx context.Context, filter LeaveRequestFilter) ([]models.LeaveRequest, int64, error) {
	var requests []models.LeaveRequest

	query := r.db.WithContext(ctx).Model(&models.LeaveRequest{})

	// Apply filters
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("requested_at DESC, id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// UpdateDecision records an approval or denial only while the request is still pending.
// The status condition in the WHERE clause makes this a compare-and-swap: a second
// writer racing on the same row observes zero affected rows instead of overwriting.
func (r *GormLeaveRequestRepository) UpdateDecision(ctx context.Context, id uint64, decision Decision) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LeaveRequest{}).
		Where("id = ? AND status = ?", id, models.LeaveStatusPending).
		Updates(map[string]interface{}{
			"status":         decision.Status,
			"admin_comments": decision.Comment,
			"processed_at":   decision.ProcessedAt,
			"processed_by":   decision.ProcessedBy,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// WithOwnerLock runs fn inside a transaction holding a row lock on the owning user.
// SQLite ignores the locking clause; a concurrent writer there fails with a busy
// error rather than interleaving.
func (r *GormLeaveRequestRepository) WithOwnerLock(ctx context.Context, userID uint64, fn func(repo LeaveRequestRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&owner, userID).Error; err != nil {
			return err
		}

		return fn(&GormLeaveRequestRepository{db: tx})
	})
}
