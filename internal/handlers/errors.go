package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/dto"
	"github.com/SscSPs/ledger_desk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes err with the status code of its class. Validation
// problems are listed in full; transport details never reach the body.
func respondError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromContext(c)
	status := statusFor(err)

	body := dto.ErrorResponse{Error: apperrors.UserMessage(err)}
	var verrs apperrors.ValidationErrors
	var verr apperrors.ValidationError
	switch {
	case errors.As(err, &verrs):
		body.Errors = verrs
	case errors.As(err, &verr):
		body.Errors = []apperrors.ValidationError{verr}
	}

	if status >= http.StatusInternalServerError {
		logger.Error(logMsg, slog.String("error", err.Error()), slog.Int("status", status))
	} else {
		logger.Warn(logMsg, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrMalformedReference):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrTransient), errors.Is(err, apperrors.ErrRemote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondBindError answers a request whose body or query could not be bound.
func respondBindError(c *gin.Context, err error, logMsg string) {
	middleware.GetLoggerFromContext(c).Warn(logMsg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
