package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/leave-request-manager/internal/constants"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStoreUnavailable   = errors.New("credential store unavailable")
	ErrForbidden          = errors.New("insufficient permissions")
)

// Lifecycle errors
var (
	ErrRequestNotFound = errors.New("leave request not found")
	ErrNotPending      = errors.New("leave request has already been processed")
	ErrInvalidDecision = errors.New("decision must be approve or deny")
	ErrCommentTooLong  = fmt.Errorf("admin comment cannot exceed %d characters", constants.MaxAdminCommentLength)
)

// Provisioning errors
var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmployeeNameNeeded = errors.New("employee name is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters and contain a letter and a digit", constants.MinPasswordLength)
	ErrInvalidRole        = errors.New("role must be Employee or Admin")
	ErrUserExists         = errors.New("username or email already exists")
	ErrFailedToHash       = errors.New("failed to hash password")
)

// ValidationCode identifies which admissibility check rejected a leave request.
type ValidationCode string

const (
	CodeStartDateInPast  ValidationCode = "START_DATE_IN_PAST"
	CodeEndBeforeStart   ValidationCode = "END_BEFORE_START"
	CodeOverlapsExisting ValidationCode = "OVERLAPS_EXISTING"
	CodeDurationTooLong  ValidationCode = "DURATION_TOO_LONG"
	CodeReasonRequired   ValidationCode = "REASON_REQUIRED"
	CodeFieldTooLong     ValidationCode = "FIELD_TOO_LONG"
)

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) String() string {
	return r.Start.Format(constants.DateLayout) + " to " + r.End.Format(constants.DateLayout)
}

// ValidationError is returned when a candidate leave request is not admissible.
// Conflict is set for CodeOverlapsExisting and MaxDays for CodeDurationTooLong.
type ValidationError struct {
	Code     ValidationCode
	Conflict *DateRange
	MaxDays  int
	Field    string
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeStartDateInPast:
		return "start date cannot be in the past"
	case CodeEndBeforeStart:
		return "end date cannot be before start date"
	case CodeOverlapsExisting:
		if e.Conflict != nil {
			return "overlapping leave request from " + e.Conflict.String()
		}
		return "overlapping leave request"
	case CodeDurationTooLong:
		return fmt.Sprintf("leave request cannot exceed %d days", e.MaxDays)
	case CodeReasonRequired:
		return "a reason for the leave request is required"
	case CodeFieldTooLong:
		return e.Field + " is too long"
	}
	return "invalid leave request"
}

// Is matches any ValidationError carrying the same code, so callers can use
// errors.Is(err, ErrOverlapsExisting) without caring about the conflict range.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Code == e.Code
}

var (
	ErrStartDateInPast  = &ValidationError{Code: CodeStartDateInPast}
	ErrEndBeforeStart   = &ValidationError{Code: CodeEndBeforeStart}
	ErrOverlapsExisting = &ValidationError{Code: CodeOverlapsExisting}
	ErrDurationTooLong  = &ValidationError{Code: CodeDurationTooLong}
	ErrReasonRequired   = &ValidationError{Code: CodeReasonRequired}
	ErrFieldTooLong     = &ValidationError{Code: CodeFieldTooLong}
)

// StoreError wraps a persistence failure that aborted an operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store error during " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
