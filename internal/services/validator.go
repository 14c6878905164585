package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/leave-request-manager/internal/constants"
	"github.com/yukikurage/leave-request-manager/internal/models"
)

// Validator decides whether a candidate leave request is admissible. It does
// no I/O: the caller supplies the requester's existing requests.
type Validator struct {
	MaxDays int
	Now     func() time.Time
}

// NewValidator creates a Validator with the given maximum duration in days.
// A non-positive maxDays falls back to the default.
func NewValidator(maxDays int) *Validator {
	if maxDays <= 0 {
		maxDays = constants.DefaultMaxLeaveDays
	}
	return &Validator{
		MaxDays: maxDays,
		Now:     time.Now,
	}
}

// Validate runs the admissibility checks in a fixed order and returns the
// first failure as a *ValidationError. Field length bounds are checked last
// and count characters, not bytes.
func (v *Validator) Validate(candidate models.LeaveRequest, existing []models.LeaveRequest) error {
	today := models.CalendarDate(v.Now())
	start := candidate.Start()
	end := candidate.End()

	if start.Before(today) {
		return &ValidationError{Code: CodeStartDateInPast}
	}

	if end.Before(start) {
		return &ValidationError{Code: CodeEndBeforeStart}
	}

	if conflict := FindOverlap(candidate, existing); conflict != nil {
		return &ValidationError{
			Code:     CodeOverlapsExisting,
			Conflict: &DateRange{Start: conflict.Start(), End: conflict.End()},
		}
	}

	if candidate.TotalDays() > v.MaxDays {
		return &ValidationError{Code: CodeDurationTooLong, MaxDays: v.MaxDays}
	}

	reason := strings.TrimSpace(candidate.Reason)
	if reason == "" {
		return &ValidationError{Code: CodeReasonRequired}
	}

	if utf8.RuneCountInString(strings.TrimSpace(candidate.LeaveType)) > constants.MaxLeaveTypeLength {
		return &ValidationError{Code: CodeFieldTooLong, Field: "leave type"}
	}
	if utf8.RuneCountInString(reason) > constants.MaxReasonLength {
		return &ValidationError{Code: CodeFieldTooLong, Field: "reason"}
	}

	return nil
}

// FindOverlap returns the first existing request, other than the candidate
// itself and ignoring denied ones, whose inclusive date range intersects the
// candidate's.
func FindOverlap(candidate models.LeaveRequest, existing []models.LeaveRequest) *models.LeaveRequest {
	for i := range existing {
		other := &existing[i]
		if other.Status == models.LeaveStatusDenied {
			continue
		}
		if candidate.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if Overlaps(*other, candidate) {
			return other
		}
	}
	return nil
}

// Overlaps reports whether two closed date intervals share at least one day.
func Overlaps(a, b models.LeaveRequest) bool {
	return !a.Start().After(b.End()) && !a.End().Before(b.Start())
}
