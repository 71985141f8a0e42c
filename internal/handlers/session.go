package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// openSession loads the caller's ledger. It writes the error response itself and
// returns nil when the session cannot be opened.
func openSession(c *gin.Context, sessions portssvc.SessionSvc) portssvc.LedgerSession {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Customer ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil
	}
	session, err := sessions.Open(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Failed to load ledger")
		return nil
	}
	return session
}
