package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/SscSPs/retail_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts. Every request works on
// a session so that only the caller's accounts are visible.
type accountHandler struct {
	sessionService portssvc.SessionSvc
}

func newAccountHandler(ss portssvc.SessionSvc) *accountHandler {
	return &accountHandler{sessionService: ss}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ss portssvc.SessionSvc) {
	h := newAccountHandler(ss)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/number/:accountNumber", h.getAccountByNumber)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/balances", h.listBalances)
		accounts.DELETE("/:accountID", h.closeAccount)
		accounts.PUT("/:accountID/restore", h.restoreAccount)
		accounts.POST("/:accountID/deposits", h.deposit)
		accounts.POST("/:accountID/withdrawals", h.withdraw)
	}
}

// createAccount godoc
// @Summary Open an account
// @Description Opens an ACTIVE account for the caller, optionally funded by an initial deposit
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse "Account opened but the initial deposit failed"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}

	account, err := session.CreateAccount(c.Request.Context(), req)
	if err != nil {
		if account != nil && errors.Is(err, apperrors.ErrPartialFailure) {
			logger.Error("Account opened but initial deposit failed",
				slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   err.Error(),
				"account": dto.ToAccountResponse(account),
			})
			return
		}
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the caller's accounts, optionally only ACTIVE or only CLOSED ones
// @Tags accounts
// @Produce json
// @Param status query string false "ACTIVE or CLOSED"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}

	snap := session.Snapshot()
	var accounts []domain.Account
	switch params.Status {
	case domain.AccountActive:
		accounts = snap.ActiveAccounts()
	case domain.AccountClosed:
		accounts = snap.ClosedAccounts()
	default:
		accounts = snap.Accounts
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountSummary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	snap := session.Snapshot()
	account, ok := snap.Account(c.Param("accountID"))
	if !ok {
		respondError(c, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, c.Param("accountID")), "Account not found")
		return
	}
	c.JSON(http.StatusOK, dto.AccountSummary{
		AccountResponse: dto.ToAccountResponse(&account),
		Balances:        dto.ToListBalanceResponse(snap.Balances[account.AccountID]),
	})
}

// getAccountByNumber godoc
// @Summary Get an account by number
// @Description Looks up one of the caller's accounts by its account number
// @Tags accounts
// @Produce json
// @Param accountNumber path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/number/{accountNumber} [get]
func (h *accountHandler) getAccountByNumber(c *gin.Context) {
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	number := c.Param("accountNumber")
	for _, a := range session.Snapshot().Accounts {
		if a.AccountNumber == number {
			c.JSON(http.StatusOK, dto.ToAccountResponse(&a))
			return
		}
	}
	respondError(c, fmt.Errorf("%w: account number %s", apperrors.ErrNotFound, number), "Account not found")
}

// listBalances godoc
// @Summary List balances
// @Description Every currency balance of one of the caller's accounts
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.ListBalancesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/balances [get]
func (h *accountHandler) listBalances(c *gin.Context) {
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	accountID := c.Param("accountID")
	snap := session.Snapshot()
	if !snap.Owns(accountID) {
		respondError(c, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID), "Account not found")
		return
	}
	c.JSON(http.StatusOK, dto.ListBalancesResponse{
		AccountID: accountID,
		Balances:  dto.ToListBalanceResponse(snap.Balances[accountID]),
	})
}

// closeAccount godoc
// @Summary Close an account
// @Description Soft-deletes an account whose balances sum to zero. Balances and history are kept.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Non-zero balance or already closed"
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) closeAccount(c *gin.Context) {
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	account, err := session.CloseAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to close account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// restoreAccount godoc
// @Summary Restore an account
// @Description Reactivates a CLOSED account
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account already active"
// @Security BearerAuth
// @Router /accounts/{accountID}/restore [put]
func (h *accountHandler) restoreAccount(c *gin.Context) {
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	account, err := session.RestoreAccount(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to restore account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit cash
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param movement body dto.MovementRequest true "Amount and currency"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account inactive"
// @Security BearerAuth
// @Router /accounts/{accountID}/deposits [post]
func (h *accountHandler) deposit(c *gin.Context) {
	h.movement(c, portssvc.LedgerSession.Deposit, "Failed to deposit")
}

// withdraw godoc
// @Summary Withdraw cash
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param movement body dto.MovementRequest true "Amount and currency"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Security BearerAuth
// @Router /accounts/{accountID}/withdrawals [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	h.movement(c, portssvc.LedgerSession.Withdraw, "Failed to withdraw")
}

type movementFunc func(portssvc.LedgerSession, context.Context, string, dto.MovementRequest) (*domain.Transaction, error)

func (h *accountHandler) movement(c *gin.Context, move movementFunc, failure string) {
	var req dto.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	txn, err := move(session, c.Request.Context(), c.Param("accountID"), req)
	if err != nil {
		respondError(c, err, failure)
		return
	}
	respondWithTransaction(c, session, txn)
}

// respondWithTransaction returns the transaction together with the refreshed dashboard.
func respondWithTransaction(c *gin.Context, session portssvc.LedgerSession, txn *domain.Transaction) {
	snap := session.Snapshot()
	c.JSON(http.StatusCreated, dto.TransferResponse{
		Transaction: dto.ToTransactionResponse(*txn, snap.Direction(*txn)),
		Dashboard:   dto.ToDashboardResponse(snap),
	})
}
