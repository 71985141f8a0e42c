package handlers

import (
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/SscSPs/retail_ledger/internal/apperrors"
	"github.com/SscSPs/retail_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/retail_ledger/internal/core/ports/services"
	"github.com/SscSPs/retail_ledger/internal/dto"
	"github.com/SscSPs/retail_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	sessionService portssvc.SessionSvc
	historyService portssvc.HistorySvc
}

func registerTransactionRoutes(rg *gin.RouterGroup, ss portssvc.SessionSvc, hs portssvc.HistorySvc) {
	h := &transactionHandler{sessionService: ss, historyService: hs}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/reference/:reference", h.getByReference)
	}
}

// listTransactions godoc
// @Summary Transaction history
// @Description The caller's transactions, newest first, each classified as INCOMING, OUTGOING or NEUTRAL
// @Tags transactions
// @Produce json
// @Param accountID query string false "Only transactions touching this account"
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Param type query string false "DEPOSIT, WITHDRAWAL or TRANSFER"
// @Param limit query int false "Page size (1-200, default 50)"
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	snap := session.Snapshot()
	if params.AccountID != "" && !snap.Owns(params.AccountID) {
		respondError(c, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, params.AccountID), "Account not found")
		return
	}

	seq := domain.FilterTransactions(snap.History.All(), params.Filter())
	if params.NextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			respondError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err), "Invalid nextToken")
			return
		}
		seq = skipUntilAfter(seq, cursorAt, cursorID)
	}

	res := dto.ListTransactionsResponse{Transactions: make([]dto.TransactionResponse, 0, params.Limit)}
	var last domain.Transaction
	for t := range seq {
		if len(res.Transactions) == params.Limit {
			token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
			res.NextToken = &token
			break
		}
		res.Transactions = append(res.Transactions, dto.ToTransactionResponse(t, snap.Direction(t)))
		last = t
	}
	c.JSON(http.StatusOK, res)
}

// getByReference godoc
// @Summary Get a transaction by reference
// @Tags transactions
// @Produce json
// @Param reference path string true "Reference number, e.g. TXN-1700000000000"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/reference/{reference} [get]
func (h *transactionHandler) getByReference(c *gin.Context) {
	session := openSession(c, h.sessionService)
	if session == nil {
		return
	}
	reference := c.Param("reference")
	txn, err := h.historyService.GetByReference(c.Request.Context(), reference)
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}

	snap := session.Snapshot()
	if !touchesOwned(snap, *txn) {
		respondError(c, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, reference), "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn, snap.Direction(*txn)))
}

// touchesOwned reports whether either leg of t is an account of the snapshot's owner.
func touchesOwned(snap *domain.LedgerSnapshot, t domain.Transaction) bool {
	return (t.DebitAccountID != nil && snap.Owns(*t.DebitAccountID)) ||
		(t.CreditAccountID != nil && snap.Owns(*t.CreditAccountID))
}

// skipUntilAfter drops the elements of seq up to and including the cursor.
func skipUntilAfter(seq iter.Seq[domain.Transaction], cursorAt time.Time, cursorID string) iter.Seq[domain.Transaction] {
	return func(yield func(domain.Transaction) bool) {
		for t := range seq {
			if !pagination.IsAfter(t.CreatedAt, t.TransactionID, cursorAt, cursorID) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
