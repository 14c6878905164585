package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/leave-request-manager/internal/errors"
	"github.com/yukikurage/leave-request-manager/internal/services"
	"go.uber.org/zap"
)

// validationDetails carries the data a client needs to explain a rejection
type validationDetails struct {
	Field    string              `json:"field,omitempty"`
	Conflict *services.DateRange `json:"conflict,omitempty"`
	MaxDays  int                 `json:"max_days,omitempty"`
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.InvalidCredentials(c, apierrors.ErrCodeUserNotFound, "User not found or inactive")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, apierrors.ErrCodeInvalidCredentials, "Invalid username or password")
	case errors.Is(err, services.ErrStoreUnavailable):
		zap.L().Error("auth store unavailable", zap.Error(err))
		apierrors.ServiceUnavailable(c, "Unable to reach the user store, try again later")
	default:
		zap.L().Error("unexpected auth error", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}

func respondProvisioningError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrEmployeeNameNeeded),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserExists):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyExists, err.Error())
	default:
		zap.L().Error("user provisioning failed", zap.Error(err))
		apierrors.InternalError(c, "Failed to create user")
	}
}

func respondLeaveError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var storeErr *services.StoreError

	switch {
	case errors.As(err, &validationErr):
		apierrors.UnprocessableEntity(c, string(validationErr.Code), validationErr.Error(), validationDetails{
			Field:    validationErr.Field,
			Conflict: validationErr.Conflict,
			MaxDays:  validationErr.MaxDays,
		})
	case errors.Is(err, services.ErrRequestNotFound):
		apierrors.NotFound(c, "Leave request not found")
	case errors.Is(err, services.ErrNotPending):
		apierrors.Conflict(c, apierrors.ErrCodeNotPending, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrCommentTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.As(err, &storeErr):
		apierrors.ServiceUnavailable(c, "Unable to reach the leave request store, try again later")
	default:
		zap.L().Error("unexpected leave request error", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
