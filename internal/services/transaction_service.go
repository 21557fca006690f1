package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fiscus/internal/config"
	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new income or expense transaction. Amount is
// always positive; the sign of its effect follows the type.
func (s *transactionService) CreateTransaction(
	transactionType models.TransactionType,
	amount decimal.Decimal,
	description string,
	date time.Time,
	categoryID, customBudgetID *string,
	financialPriority *models.Priority,
	isCashWallet bool,
	currencyCode string,
) (*models.Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	if currencyCode == "" {
		currencyCode = config.Get().DefaultCurrency
	}

	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *categoryID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	}
	if customBudgetID != nil {
		var count int64
		if err := s.db.Model(&models.CustomBudget{}).Where("id = ?", *customBudgetID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrBudgetNotFound
		}
	}

	transaction := &models.Transaction{
		Type:              transactionType,
		Amount:            amount,
		Description:       description,
		Date:              date,
		CategoryID:        categoryID,
		CustomBudgetID:    customBudgetID,
		FinancialPriority: financialPriority,
		IsCashWallet:      isCashWallet,
		CurrencyCode:      currencyCode,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// applyTransactionFilters adds the optional filter clauses to a query.
func applyTransactionFilters(base *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.CustomBudgetID != nil {
		base = base.Where("custom_budget_id = ?", *filter.CustomBudgetID)
	}
	if filter.IsPaid != nil {
		base = base.Where("is_paid = ?", *filter.IsPaid)
	}
	return base
}

// GetTransactions returns a paginated, filtered transaction list, newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").
		Scopes(pagination.Paginate(page), pagination.NewestFirst("date")).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a transaction by ID.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// MarkTransactionPaid performs the unpaid→paid transition. A defaulted
// paidDate becomes the current time. Paid transactions cannot transition
// again; amounts and dates are otherwise immutable.
func (s *transactionService) MarkTransactionPaid(transactionID string, paidDate time.Time) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.IsPaid {
		return nil, apperrors.ErrAlreadyPaid
	}
	if paidDate.IsZero() {
		paidDate = time.Now().UTC()
	}

	updates := map[string]interface{}{
		"is_paid":   true,
		"paid_date": paidDate,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction.IsPaid = true
	transaction.PaidDate = &paidDate
	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
