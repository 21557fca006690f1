package main

import (
	"fmt"
	"net/http"
	"os"

	"fiscus/internal/config"
	"fiscus/internal/database"
	"fiscus/internal/handlers"
	"fiscus/internal/logger"
	"fiscus/internal/middleware"
	"fiscus/internal/services"
	"fiscus/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fiscus/internal/docs" // Import swagger docs
)

// @title           Fiscus API
// @version         1.0
// @description     Fiscus is a personal budgeting engine that tracks transactions, computes budget usage, audits savings goals, and projects month-end cashflow.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	customBudgetService := services.NewCustomBudgetService(db)
	goalService := services.NewGoalService(db)
	systemBudgetService := services.NewSystemBudgetService(db)
	projectionService := services.NewProjectionService(db)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	customBudgetHandler := handlers.NewCustomBudgetHandler(customBudgetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	systemBudgetHandler := handlers.NewSystemBudgetHandler(systemBudgetService)
	projectionHandler := handlers.NewProjectionHandler(projectionService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.POST("/:id/pay", transactionHandler.MarkTransactionPaid)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Custom budget routes
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

	// Goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/pending-settlements", goalHandler.GetPendingSettlements)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id/status", goalHandler.UpdateGoalStatus)
	goals.POST("/:id/deposits", goalHandler.Deposit)
	goals.GET("/:id/audit/:year/:month", goalHandler.AuditGoal)
	goals.GET("/:id/projection", goalHandler.GetGoalProjection)

	// System budget routes
	systemBudgets := v1.Group("/system-budgets")
	systemBudgets.POST("/sync", systemBudgetHandler.Sync)
	systemBudgets.GET("/:year/:month", systemBudgetHandler.GetMonthBudgets)

	// Budget goal routes
	budgetGoals := v1.Group("/budget-goals")
	budgetGoals.PUT("", systemBudgetHandler.SetBudgetGoals)
	budgetGoals.GET("", systemBudgetHandler.GetBudgetGoals)

	// Projection routes
	projections := v1.Group("/projections")
	projections.GET("/:year/:month", projectionHandler.GetMonthlyChart)

	log.Infof("Starting Fiscus backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
