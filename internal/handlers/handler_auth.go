package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration and login.
type authHandler struct {
	customerService portssvc.CustomerSvcFacade
	tokenService    portssvc.TokenSvc
}

func newAuthHandler(cs portssvc.CustomerSvcFacade, ts portssvc.TokenSvc) *authHandler {
	return &authHandler{customerService: cs, tokenService: ts}
}

// registerAuthRoutes sets up the public authentication routes. loginLimit may be nil.
func registerAuthRoutes(r *gin.Engine, cs portssvc.CustomerSvcFacade, ts portssvc.TokenSvc, loginLimit gin.HandlerFunc) {
	h := newAuthHandler(cs, ts)

	loginChain := []gin.HandlerFunc{h.login}
	if loginLimit != nil {
		loginChain = append([]gin.HandlerFunc{loginLimit}, loginChain...)
	}

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", loginChain...)
	}
}

// login godoc
// @Summary Customer login
// @Description Authenticates a customer by email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	customer, err := h.customerService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to authenticate")
		return
	}

	token, err := h.tokenService.GenerateToken(customer.CustomerID)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Customer logged in", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, CustomerID: customer.CustomerID})
}

// register godoc
// @Summary Register a customer
// @Description Creates a customer. Emails are unique regardless of case.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	customer, err := h.customerService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register customer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}
