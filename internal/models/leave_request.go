package models

import (
	"time"

	"gorm.io/datatypes"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "Pending"
	LeaveStatusApproved LeaveStatus = "Approved"
	LeaveStatusDenied   LeaveStatus = "Denied"
)

// Valid reports whether s is one of the known statuses.
func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusDenied:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveStatusApproved || s == LeaveStatusDenied
}

// LeaveTypes lists the leave types offered to clients. The stored tag is free-form.
var LeaveTypes = []string{
	"Annual Leave",
	"Sick Leave",
	"Personal Leave",
	"Maternity Leave",
	"Paternity Leave",
	"Other",
}

type LeaveRequest struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	UserID        uint64         `gorm:"not null;index" json:"user_id"`
	EmployeeName  string         `gorm:"type:varchar(100);not null" json:"employee_name"`
	StartDate     datatypes.Date `gorm:"not null" json:"start_date"`
	EndDate       datatypes.Date `gorm:"not null" json:"end_date"`
	LeaveType     string         `gorm:"type:varchar(50);not null" json:"leave_type"`
	Reason        string         `gorm:"type:varchar(500);not null" json:"reason"`
	Status        LeaveStatus    `gorm:"type:varchar(50);not null;default:'Pending';index" json:"status"`
	AdminComments *string        `gorm:"type:varchar(500)" json:"admin_comments"`
	RequestedAt   time.Time      `gorm:"not null;index" json:"requested_at"`
	ProcessedAt   *time.Time     `json:"processed_at"`
	ProcessedBy   *string        `gorm:"type:varchar(100)" json:"processed_by"`

	// Relations. Only used to declare the foreign key; never preloaded.
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

// Start returns the first day of leave as a calendar date in UTC.
func (r LeaveRequest) Start() time.Time {
	return CalendarDate(time.Time(r.StartDate))
}

// End returns the last day of leave as a calendar date in UTC.
func (r LeaveRequest) End() time.Time {
	return CalendarDate(time.Time(r.EndDate))
}

// TotalDays is the inclusive length of the leave in calendar days.
func (r LeaveRequest) TotalDays() int {
	return DaysBetween(r.Start(), r.End()) + 1
}

// CalendarDate drops the clock part of t and pins it to UTC midnight so that
// dates taken from different locations compare by their calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDate(b).Sub(CalendarDate(a)).Hours() / 24)
}

// NewDate converts a time into the date-only column type.
func NewDate(t time.Time) datatypes.Date {
	return datatypes.Date(CalendarDate(t))
}
