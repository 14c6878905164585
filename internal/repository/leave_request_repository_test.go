package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"github.com/yukikurage/leave-request-manager/internal/testutil"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestLeaveRequestRepository_UpdateDecisionIsCompareAndSwap(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewLeaveRequestRepository(db)
	user := testutil.CreateUser(t, db, "john.doe", "John Doe", models.RoleEmployee)
	request := testutil.CreateLeaveRequest(t, db, user, testutil.Date(2024, 6, 10), testutil.Date(2024, 6, 14), models.LeaveStatusPending)

	processedAt := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	updated, err := repo.UpdateDecision(context.Background(), request.ID, Decision{
		Status:      models.LeaveStatusApproved,
		Comment:     "ok",
		ProcessedAt: processedAt,
		ProcessedBy: "Administrator",
	})
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.UpdateDecision(context.Background(), request.ID, Decision{
		Status:      models.LeaveStatusDenied,
		ProcessedAt: processedAt.Add(time.Hour),
		ProcessedBy: "Someone Else",
	})
	require.NoError(t, err)
	assert.False(t, updated)

	stored, err := repo.FindByID(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveStatusApproved, stored.Status)
	require.NotNil(t, stored.ProcessedBy)
	assert.Equal(t, "Administrator", *stored.ProcessedBy)
}

func TestLeaveRequestRepository_ListActiveByUser(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewLeaveRequestRepository(db)
	user := testutil.CreateUser(t, db, "john.doe", "John Doe", models.RoleEmployee)
	other := testutil.CreateUser(t, db, "jane.roe", "Jane Roe", models.RoleEmployee)

	later := testutil.CreateLeaveRequest(t, db, user, testutil.Date(2024, 8, 1), testutil.Date(2024, 8, 2), models.LeaveStatusApproved)
	earlier := testutil.CreateLeaveRequest(t, db, user, testutil.Date(2024, 7, 1), testutil.Date(2024, 7, 2), models.LeaveStatusPending)
	testutil.CreateLeaveRequest(t, db, user, testutil.Date(2024, 9, 1), testutil.Date(2024, 9, 2), models.LeaveStatusDenied)
	testutil.CreateLeaveRequest(t, db, other, testutil.Date(2024, 7, 1), testutil.Date(2024, 7, 2), models.LeaveStatusPending)

	requests, err := repo.ListActiveByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, earlier.ID, requests[0].ID)
	assert.Equal(t, later.ID, requests[1].ID)
}

func TestLeaveRequestRepository_FindByIDNotFound(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewLeaveRequestRepository(db)

	_, err := repo.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLeaveRequestRepository_WithOwnerLock(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewLeaveRequestRepository(db)
	user := testutil.CreateUser(t, db, "john.doe", "John Doe", models.RoleEmployee)

	newRequest := func() *models.LeaveRequest {
		return &models.LeaveRequest{
			UserID:       user.ID,
			EmployeeName: user.EmployeeName,
			StartDate:    models.NewDate(testutil.Date(2024, 6, 10)),
			EndDate:      models.NewDate(testutil.Date(2024, 6, 10)),
			LeaveType:    "Annual Leave",
			Reason:       "Trip",
			Status:       models.LeaveStatusPending,
			RequestedAt:  time.Now().UTC(),
		}
	}

	t.Run("commits on success", func(t *testing.T) {
		err := repo.WithOwnerLock(context.Background(), user.ID, func(tx LeaveRequestRepository) error {
			return tx.Create(context.Background(), newRequest())
		})
		require.NoError(t, err)

		requests, err := repo.ListByUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Len(t, requests, 1)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		rejected := errors.New("rejected")
		err := repo.WithOwnerLock(context.Background(), user.ID, func(tx LeaveRequestRepository) error {
			require.NoError(t, tx.Create(context.Background(), newRequest()))
			return rejected
		})
		assert.ErrorIs(t, err, rejected)

		requests, err := repo.ListByUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Len(t, requests, 1)
	})

	t.Run("unknown owner", func(t *testing.T) {
		called := false
		err := repo.WithOwnerLock(context.Background(), 9999, func(LeaveRequestRepository) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.False(t, called)
	})
}

func TestLeaveRequestRepository_UpdateDecisionSQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	mock.ExpectExec("UPDATE `leave_requests` SET .* WHERE .*id = \\? AND status = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := NewLeaveRequestRepository(db).UpdateDecision(context.Background(), 5, Decision{
		Status:      models.LeaveStatusDenied,
		ProcessedAt: time.Now().UTC(),
		ProcessedBy: "Administrator",
	})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
