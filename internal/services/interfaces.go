package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fiscus/internal/engine"
	"fiscus/internal/models"
	"fiscus/internal/pagination"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType, priority models.Priority, description, icon, color string) (*models.Category, error)
	GetCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID, name, description, icon, color string, priority *models.Priority) (*models.Category, error)
	DeleteCategory(categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate       *time.Time
	ToDate         *time.Time
	Type           *models.TransactionType
	CategoryID     *string
	CustomBudgetID *string
	IsPaid         *bool
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(
		transactionType models.TransactionType,
		amount decimal.Decimal,
		description string,
		date time.Time,
		categoryID, customBudgetID *string,
		financialPriority *models.Priority,
		isCashWallet bool,
		currencyCode string,
	) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	MarkTransactionPaid(transactionID string, paidDate time.Time) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
}

// CashAllocationInput declares one per-currency cash amount for a new budget.
type CashAllocationInput struct {
	CurrencyCode string
	Amount       decimal.Decimal
}

// TransactionSettlement pairs a transaction with its cross-period annotation.
type TransactionSettlement struct {
	TransactionID string                `json:"transaction_id"`
	Info          engine.SettlementInfo `json:"info"`
}

// BudgetOverview is one custom budget's stats and settlement annotations
// for a viewed month.
type BudgetOverview struct {
	Budget      models.CustomBudget     `json:"budget"`
	Stats       engine.BudgetStats      `json:"stats"`
	Settlements []TransactionSettlement `json:"settlements,omitempty"`
}

// CustomBudgetServicer defines the contract for custom budget business logic.
type CustomBudgetServicer interface {
	CreateCustomBudget(name string, allocated decimal.Decimal, startDate, endDate time.Time, cashAllocations []CashAllocationInput) (*models.CustomBudget, error)
	GetCustomBudgets(page pagination.PageRequest, status *models.BudgetStatus) (*pagination.PageResponse[models.CustomBudget], error)
	GetCustomBudgetByID(budgetID string) (*models.CustomBudget, error)
	ActivateBudget(budgetID string, now time.Time) (*models.CustomBudget, error)
	CompleteBudget(budgetID string) (*models.CustomBudget, error)
	ReactivateBudget(budgetID string) (*models.CustomBudget, error)
	DeleteCustomBudget(budgetID string) error
	GetBudgetStats(budgetID string, year int, month time.Month) (*engine.BudgetStats, error)
	GetMonthOverview(year int, month time.Month) ([]BudgetOverview, error)
}

// GoalProjection combines a goal's progress percentage with its estimated
// completion date at the planned contribution rate.
type GoalProjection struct {
	Progress            decimal.Decimal `json:"progress"`
	ProjectedCompletion *time.Time      `json:"projected_completion,omitempty"`
}

// GoalServicer defines the contract for savings goal business logic.
type GoalServicer interface {
	CreateGoal(
		name string,
		targetAmount decimal.Decimal,
		deadline time.Time,
		fundingType models.FundingType,
		fundingAmount, fundingPercentage decimal.Decimal,
		frequency models.FundingFrequency,
	) (*models.Goal, error)
	GetGoals(page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(goalID string) (*models.Goal, error)
	UpdateGoalStatus(goalID string, status models.GoalStatus) (*models.Goal, error)
	Deposit(goalID string, amount decimal.Decimal, source, notes string) (*models.Goal, error)
	AuditGoal(goalID string, year int, month time.Month, now time.Time) (*engine.FeasibilityAudit, error)
	GetGoalProjection(goalID string, now time.Time) (*GoalProjection, error)
	PendingSettlements(now time.Time) ([]models.Goal, error)
}

// SystemBudgetView pairs a materialized system budget with its stats.
type SystemBudgetView struct {
	Budget models.SystemBudget `json:"budget"`
	Stats  engine.BudgetStats  `json:"stats"`
}

// SyncResult reports what a synchronization pass did.
type SyncResult struct {
	Skipped bool `json:"skipped"`
	Created int  `json:"created"`
	Updated int  `json:"updated"`
}

// BudgetGoalInput is one priority's target percentage.
type BudgetGoalInput struct {
	Priority         models.Priority
	TargetPercentage decimal.Decimal
}

// SystemBudgetServicer defines the contract for the system budget
// synchronizer and its read side.
type SystemBudgetServicer interface {
	Sync(year int, month time.Month, monthlyIncome decimal.Decimal, force bool, now time.Time) (*SyncResult, error)
	GetMonthBudgets(year int, month time.Month) ([]SystemBudgetView, error)
	SetBudgetGoals(inputs []BudgetGoalInput) ([]models.BudgetGoal, error)
	GetBudgetGoals() ([]models.BudgetGoal, error)
}

// ProjectionServicer defines the contract for monthly income/expense
// projection charts.
type ProjectionServicer interface {
	GetMonthlyChart(year int, month time.Month, now time.Time) (*engine.MonthlyChart, error)
}
