package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	sessionService  portssvc.SessionSvc
	transferService portssvc.TransferAuditSvc
}

func registerTransferRoutes(rg *gin.RouterGroup, ss portssvc.SessionSvc, ts portssvc.TransferAuditSvc) {
	h := &transferHandler{sessionService: ss, transferService: ts}

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.transfer)
		transfers.GET("/incomplete", h.listIncomplete)
	}
}

// transfer godoc
// @Summary Transfer money
// @Description Moves money out of one of the caller's accounts, either to another ledger account (INTERNAL) or to an outside account (EXTERNAL)
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid amount, same account or missing recipient"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Account inactive"
// @Failure 422 {object} ErrorResponse "Insufficient funds"
// @Failure 500 {object} ErrorResponse "Transfer stopped half way and needs reconciliation"
// @Failure 502 {object} ErrorResponse "Ledger store unavailable"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}

	txn, err := session.Transfer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to transfer")
		return
	}
	respondWithTransaction(c, session, txn)
}

// listIncomplete godoc
// @Summary Incomplete transfers
// @Description Lists PENDING transfers touching the caller's accounts that were recorded longer ago than olderThan
// @Tags transfers
// @Produce json
// @Param olderThan query string false "Go duration, default 15m"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/incomplete [get]
func (h *transferHandler) listIncomplete(c *gin.Context) {
	var params dto.ListIncompleteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	olderThan, err := time.ParseDuration(params.OlderThan)
	if err != nil || olderThan < 0 {
		respondError(c, fmt.Errorf("%w: olderThan must be a non-negative duration", apperrors.ErrValidation), "Invalid olderThan")
		return
	}
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}

	pending, err := h.transferService.ListIncompleteTransfers(c.Request.Context(), olderThan)
	if err != nil {
		respondError(c, err, "Failed to list incomplete transfers")
		return
	}

	snap := session.Snapshot()
	res := dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}}
	for _, t := range pending {
		if touchesOwned(snap, t) {
			res.Transactions = append(res.Transactions, dto.ToTransactionResponse(t, snap.Direction(t)))
		}
	}
	c.JSON(http.StatusOK, res)
}
