package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	"github.com/ganges/ganges_backend/internal/dto"
	"github.com/ganges/ganges_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindInvalidAmount:       http.StatusBadRequest,
	apperrors.KindInvalidWeight:       http.StatusBadRequest,
	apperrors.KindValidation:          http.StatusBadRequest,
	apperrors.KindUnauthorized:        http.StatusUnauthorized,
	apperrors.KindForbidden:           http.StatusForbidden,
	apperrors.KindNotFound:            http.StatusNotFound,
	apperrors.KindInvalidTransition:   http.StatusConflict,
	apperrors.KindOperationInProgress: http.StatusConflict,
	apperrors.KindInsufficientFunds:   http.StatusUnprocessableEntity,
	apperrors.KindConflict:            http.StatusUnprocessableEntity,
	apperrors.KindTransient:           http.StatusServiceUnavailable,
	apperrors.KindInternal:            http.StatusInternalServerError,
}

// statusForKind maps an error kind to its HTTP status.
func statusForKind(kind apperrors.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondWithError writes the error body for err. Internal failures never
// expose the underlying message.
func respondWithError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	msg := err.Error()
	switch kind {
	case apperrors.KindInternal:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		msg = "Failed to " + action
	case apperrors.KindTransient:
		logger.Error("Gave up to "+action, slog.String("error", err.Error()))
		msg = apperrors.ErrTransient.Error()
	default:
		logger.Warn("Rejected request to "+action, slog.String("kind", string(kind)), slog.String("error", err.Error()))
	}

	if kind == apperrors.KindTransient || kind == apperrors.KindOperationInProgress {
		c.Header("Retry-After", "1")
	}
	c.JSON(status, dto.ErrorResponse{
		Error:     msg,
		Kind:      string(kind),
		Retryable: apperrors.IsRetryable(kind),
	})
}

// respondBadRequest reports a malformed or invalid request body.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: msg,
		Kind:  string(apperrors.KindValidation),
	})
}

// requireActor returns the authenticated caller or writes 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Kind:  string(apperrors.KindUnauthorized),
		})
	}
	return actor, ok
}
