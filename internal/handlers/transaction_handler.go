package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/pagination"
	"fiscus/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	Type              models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount            decimal.Decimal        `json:"amount" binding:"required"`
	Description       string                 `json:"description" binding:"omitempty,max=500"`
	Date              time.Time              `json:"date"`
	CategoryID        *string                `json:"category_id"`
	CustomBudgetID    *string                `json:"custom_budget_id"`
	FinancialPriority *models.Priority       `json:"financial_priority" binding:"omitempty,financial_priority"`
	IsCashWallet      bool                   `json:"is_cash_wallet"`
	CurrencyCode      string                 `json:"currency_code" binding:"omitempty,iso4217"`
}

// MarkPaidRequest represents the request payload for settling a transaction.
type MarkPaidRequest struct {
	PaidDate time.Time `json:"paid_date"`
}

// ListTransactionsQuery represents the query parameters for listing transactions.
type ListTransactionsQuery struct {
	pagination.PageRequest
	FromDate       *time.Time              `form:"from_date" time_format:"2006-01-02"`
	ToDate         *time.Time              `form:"to_date" time_format:"2006-01-02"`
	Type           *models.TransactionType `form:"type" binding:"omitempty,transaction_type"`
	CategoryID     *string                 `form:"category_id"`
	CustomBudgetID *string                 `form:"custom_budget_id"`
	IsPaid         *bool                   `form:"is_paid"`
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Description Record a new income or expense transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category or budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		req.Type, req.Amount, req.Description, req.Date,
		req.CategoryID, req.CustomBudgetID, req.FinancialPriority,
		req.IsCashWallet, req.CurrencyCode,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// GetTransactions handles listing transactions with filters.
// @Summary     List transactions
// @Description Get a paginated, filtered list of transactions
// @Tags        transactions
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       from_date query string false "Start date (YYYY-MM-DD)"
// @Param       to_date query string false "End date (YYYY-MM-DD)"
// @Param       type query string false "Transaction type"
// @Param       is_paid query bool false "Paid state"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{
		FromDate:       query.FromDate,
		ToDate:         query.ToDate,
		Type:           query.Type,
		CategoryID:     query.CategoryID,
		CustomBudgetID: query.CustomBudgetID,
		IsPaid:         query.IsPaid,
	}

	result, err := h.transactionService.GetTransactions(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles fetching a single transaction.
// @Summary     Get a transaction
// @Description Get a transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transaction, err := h.transactionService.GetTransactionByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// MarkTransactionPaid handles the unpaid→paid transition.
// @Summary     Mark a transaction paid
// @Description Settle an unpaid transaction, optionally with an explicit paid date
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Param       request body MarkPaidRequest false "Settlement details"
// @Success     200 {object} models.Transaction "Transaction settled"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Already paid"
// @Router      /transactions/{id}/pay [post]
func (h *TransactionHandler) MarkTransactionPaid(c *gin.Context) {
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.MarkTransactionPaid(c.Param("id"), req.PaidDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete a transaction
// @Description Delete a transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
