package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	sessionService  portssvc.SessionSvc
}

func registerCustomerRoutes(rg *gin.RouterGroup, cs portssvc.CustomerSvcFacade, ss portssvc.SessionSvc) {
	h := &customerHandler{customerService: cs, sessionService: ss}

	rg.GET("/customers/me", h.getMe)
	rg.GET("/dashboard", h.getDashboard)
}

// getMe godoc
// @Summary Current customer
// @Description Returns the authenticated customer's profile
// @Tags customers
// @Produce json
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/me [get]
func (h *customerHandler) getMe(c *gin.Context) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// getDashboard godoc
// @Summary Ledger dashboard
// @Description Active and closed accounts with balances, per-currency totals of the active accounts and the most recent transactions
// @Tags customers
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Ledger store unavailable"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *customerHandler) getDashboard(c *gin.Context) {
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(session.Snapshot()))
}
