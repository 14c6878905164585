// Package testutil opens throwaway databases and seeds fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/leave-request-manager/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB returns a migrated in-memory SQLite database closed at test cleanup.
// The pool is held to one connection: every connection to :memory: would
// otherwise see its own empty database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.LeaveRequest{}))
	return db
}

// CreateUser inserts an active user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username, employeeName string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		EmployeeName: employeeName,
		Email:        username + "@company.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateLeaveRequest inserts a request for user covering start..end.
func CreateLeaveRequest(t *testing.T, db *gorm.DB, user *models.User, start, end time.Time, status models.LeaveStatus) *models.LeaveRequest {
	t.Helper()

	request := &models.LeaveRequest{
		UserID:       user.ID,
		EmployeeName: user.EmployeeName,
		StartDate:    models.NewDate(start),
		EndDate:      models.NewDate(end),
		LeaveType:    "Annual Leave",
		Reason:       "Family trip",
		Status:       status,
		RequestedAt:  time.Now().UTC(),
	}
	require.NoError(t, db.Omit("User").Create(request).Error)
	return request
}

// Date is shorthand for a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
