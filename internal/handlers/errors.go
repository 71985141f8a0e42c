package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps err to its status code. Client errors echo the error text; server
// errors other than partial failures and store outages only carry fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()), slog.Int("status", status))
		if !errors.Is(err, apperrors.ErrPartialFailure) && !errors.Is(err, apperrors.ErrTransport) {
			msg = fallback
		}
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

// badRequest rejects a request that failed binding.
func badRequest(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
