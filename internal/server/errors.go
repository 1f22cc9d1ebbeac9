package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gigbridge/gigbridge/internal/authorization"
	biddomain "github.com/gigbridge/gigbridge/internal/bid/domain"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	messagedomain "github.com/gigbridge/gigbridge/internal/message/domain"
	mirrordomain "github.com/gigbridge/gigbridge/internal/mirror/domain"
	notificationdomain "github.com/gigbridge/gigbridge/internal/notification/domain"
	pipelinedomain "github.com/gigbridge/gigbridge/internal/pipeline/domain"
	profiledomain "github.com/gigbridge/gigbridge/internal/profile/domain"
	projectdomain "github.com/gigbridge/gigbridge/internal/project/domain"
	reviewdomain "github.com/gigbridge/gigbridge/internal/review/domain"
	supportdomain "github.com/gigbridge/gigbridge/internal/support/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrTooManyRequests),
		errors.Is(err, biddomain.ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, mirrordomain.ErrDisabled):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, identitydomain.ErrInvalidEmail),
		errors.Is(err, identitydomain.ErrInvalidPassword),
		errors.Is(err, identitydomain.ErrInvalidDisplayName),
		errors.Is(err, identitydomain.ErrInvalidRole),
		errors.Is(err, identitydomain.ErrInvalidID),
		errors.Is(err, profiledomain.ErrInvalidUserID),
		errors.Is(err, projectdomain.ErrInvalidTitle),
		errors.Is(err, projectdomain.ErrInvalidBudget),
		errors.Is(err, projectdomain.ErrInvalidID),
		errors.Is(err, biddomain.ErrInvalidID),
		errors.Is(err, biddomain.ErrInvalidAmount),
		errors.Is(err, biddomain.ErrInvalidDelivery),
		errors.Is(err, pipelinedomain.ErrInvalidID),
		errors.Is(err, pipelinedomain.ErrInvalidSchedule),
		errors.Is(err, messagedomain.ErrInvalidID),
		errors.Is(err, messagedomain.ErrEmptyBody),
		errors.Is(err, messagedomain.ErrInvalidRecipient),
		errors.Is(err, reviewdomain.ErrInvalidID),
		errors.Is(err, reviewdomain.ErrInvalidRating),
		errors.Is(err, supportdomain.ErrInvalidID),
		errors.Is(err, supportdomain.ErrInvalidSubject),
		errors.Is(err, notificationdomain.ErrInvalidID),
		errors.Is(err, mirrordomain.ErrInvalidAction):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, identitydomain.ErrInvalidCredentials),
		errors.Is(err, identitydomain.ErrInvalidSession),
		errors.Is(err, identitydomain.ErrSessionExpired),
		errors.Is(err, identitydomain.ErrSessionRevoked),
		errors.Is(err, projectdomain.ErrInvalidActor),
		errors.Is(err, profiledomain.ErrInvalidActor),
		errors.Is(err, biddomain.ErrInvalidActor),
		errors.Is(err, pipelinedomain.ErrInvalidActor),
		errors.Is(err, messagedomain.ErrInvalidActor),
		errors.Is(err, reviewdomain.ErrInvalidActor),
		errors.Is(err, supportdomain.ErrInvalidActor),
		errors.Is(err, notificationdomain.ErrInvalidActor),
		errors.Is(err, mirrordomain.ErrInvalidActor),
		errors.Is(err, authorization.ErrInvalidActor):
		return true
	default:
		return false
	}
}

func isForbiddenError(err error) bool {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, identitydomain.ErrUserSuspended),
		errors.Is(err, projectdomain.ErrNotOwner),
		errors.Is(err, biddomain.ErrOwnProject),
		errors.Is(err, biddomain.ErrNotBidOwner),
		errors.Is(err, pipelinedomain.ErrNotProjectOwner),
		errors.Is(err, messagedomain.ErrNotParticipant),
		errors.Is(err, reviewdomain.ErrNotParticipant),
		errors.Is(err, authorization.ErrDenied):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, identitydomain.ErrUserExists),
		errors.Is(err, projectdomain.ErrProjectNotOpen),
		errors.Is(err, projectdomain.ErrInvalidTransition),
		errors.Is(err, projectdomain.ErrProjectImmutable),
		errors.Is(err, biddomain.ErrProjectNotOpen),
		errors.Is(err, biddomain.ErrDuplicateBid),
		errors.Is(err, biddomain.ErrNotWithdrawable),
		errors.Is(err, pipelinedomain.ErrProjectNotOpen),
		errors.Is(err, pipelinedomain.ErrProjectClosed),
		errors.Is(err, pipelinedomain.ErrBidMismatch),
		errors.Is(err, pipelinedomain.ErrInvalidTransition),
		errors.Is(err, pipelinedomain.ErrProjectTransition),
		errors.Is(err, reviewdomain.ErrProjectNotCompleted),
		errors.Is(err, reviewdomain.ErrDuplicateReview),
		errors.Is(err, reviewdomain.ErrNotModeratable),
		errors.Is(err, supportdomain.ErrInvalidTransition):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	// Surface the sentinel code so clients can branch on pipeline conflicts.
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "conflict"
	}
	return msg
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, identitydomain.ErrUserNotFound),
		errors.Is(err, profiledomain.ErrNotFound),
		errors.Is(err, projectdomain.ErrNotFound),
		errors.Is(err, biddomain.ErrProjectNotFound),
		errors.Is(err, biddomain.ErrNotFound),
		errors.Is(err, pipelinedomain.ErrBidNotFound),
		errors.Is(err, pipelinedomain.ErrProjectNotFound),
		errors.Is(err, pipelinedomain.ErrCandidateNotFound),
		errors.Is(err, messagedomain.ErrProjectNotFound),
		errors.Is(err, reviewdomain.ErrProjectNotFound),
		errors.Is(err, reviewdomain.ErrNotFound),
		errors.Is(err, supportdomain.ErrNotFound),
		errors.Is(err, notificationdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
