package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledgerbook/internal/apperrors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	// Field and LineIndex are set for validation failures tied to a request field or journal line.
	Field     string  `json:"field,omitempty"`
	LineIndex *int    `json:"lineIndex,omitempty"`
	Amount    *string `json:"amount,omitempty"`
}

// respondError maps a service error onto an HTTP status. Validation is checked
// before not-found so that an unknown account in a request body is a 400.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, validationResponse(err))
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: apperrors.ErrUnauthorized.Error()})
	default:
		logger.Error("Failed "+action, slog.String("error", err.Error()),
			slog.Bool("dependency_failure", errors.Is(err, apperrors.ErrInternal)))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed " + action})
	}
}

func validationResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
		if ve.LineIndex >= 0 {
			idx := ve.LineIndex
			resp.LineIndex = &idx
		}
		if ve.Amount != nil {
			s := ve.Amount.String()
			resp.Amount = &s
		}
	}
	return resp
}

// badRequest reports a request that failed binding.
func badRequest(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error()})
}
