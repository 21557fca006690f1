package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fiscus/internal/handlers"
	"fiscus/internal/logger"
	"fiscus/internal/middleware"
	"fiscus/internal/models"
	"fiscus/internal/services"
	"fiscus/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Category{},
		&models.Transaction{},
		&models.CustomBudget{},
		&models.CashAllocation{},
		&models.SystemBudget{},
		&models.BudgetGoal{},
		&models.Goal{},
		&models.GoalLedgerEntry{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	customBudgetService := services.NewCustomBudgetService(db)
	goalService := services.NewGoalService(db)
	systemBudgetService := services.NewSystemBudgetService(db)
	projectionService := services.NewProjectionService(db)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	customBudgetHandler := handlers.NewCustomBudgetHandler(customBudgetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	systemBudgetHandler := handlers.NewSystemBudgetHandler(systemBudgetService)
	projectionHandler := handlers.NewProjectionHandler(projectionService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.POST("/:id/pay", transactionHandler.MarkTransactionPaid)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	customBudgets := v1.Group("/custom-budgets")
	customBudgets.POST("", customBudgetHandler.CreateCustomBudget)
	customBudgets.GET("", customBudgetHandler.GetCustomBudgets)
	customBudgets.GET("/:id", customBudgetHandler.GetCustomBudgetByID)
	customBudgets.POST("/:id/activate", customBudgetHandler.ActivateBudget)
	customBudgets.POST("/:id/complete", customBudgetHandler.CompleteBudget)
	customBudgets.POST("/:id/reactivate", customBudgetHandler.ReactivateBudget)
	customBudgets.DELETE("/:id", customBudgetHandler.DeleteCustomBudget)
	customBudgets.GET("/:id/stats/:year/:month", customBudgetHandler.GetBudgetStats)
	customBudgets.GET("/overview/:year/:month", customBudgetHandler.GetMonthOverview)

	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/pending-settlements", goalHandler.GetPendingSettlements)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id/status", goalHandler.UpdateGoalStatus)
	goals.POST("/:id/deposits", goalHandler.Deposit)
	goals.GET("/:id/audit/:year/:month", goalHandler.AuditGoal)
	goals.GET("/:id/projection", goalHandler.GetGoalProjection)

	systemBudgets := v1.Group("/system-budgets")
	systemBudgets.POST("/sync", systemBudgetHandler.Sync)
	systemBudgets.GET("/:year/:month", systemBudgetHandler.GetMonthBudgets)

	budgetGoals := v1.Group("/budget-goals")
	budgetGoals.PUT("", systemBudgetHandler.SetBudgetGoals)
	budgetGoals.GET("", systemBudgetHandler.GetBudgetGoals)

	projections := v1.Group("/projections")
	projections.GET("/:year/:month", projectionHandler.GetMonthlyChart)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONList parses the response body into a slice.
func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON list: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// jsonDecimal converts a decoded JSON field into a decimal for comparison.
func jsonDecimal(t *testing.T, v interface{}) decimal.Decimal {
	t.Helper()
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			t.Fatalf("invalid decimal %q: %v", n, err)
		}
		return d
	case float64:
		return decimal.NewFromFloat(n)
	default:
		t.Fatalf("unexpected decimal type %T", v)
		return decimal.Zero
	}
}

// createCategory creates a category through the API and returns its ID.
func (app *testApp) createCategory(t *testing.T, name, categoryType, priority string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"type":%q,"priority":%q}`, name, categoryType, priority)
	rec := app.request("POST", "/api/v1/categories", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(string)
}
