// Package router assembles the gin engine shared by the API binary and the
// end-to-end tests.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/prubianes/guit-app-api/internal/config"
	_ "github.com/prubianes/guit-app-api/internal/docs" // Import swagger docs
	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/handlers"
	"github.com/prubianes/guit-app-api/internal/middleware"
	"github.com/prubianes/guit-app-api/internal/services"
	"github.com/prubianes/guit-app-api/internal/storage"
	"github.com/prubianes/guit-app-api/internal/validator"
)

// New wires services and handlers on db and returns the HTTP engine.
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	validator.Register()

	// Services
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(storage.NewGormLedger(db), cfg.UpdatePolicy)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.JWTExpirationDur)
	userHandler := handlers.NewUserHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.ErrorHandler())
	r.Use(cors())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		middleware.RespondError(c, apperrors.ErrNotFound)
	})

	// A no-op unless AUTH_REQUIRED is set.
	authed := middleware.AuthMiddleware(cfg.JWTSecret, cfg.AuthRequired)

	// Public routes
	r.POST("/auth/login", authHandler.Login)
	r.POST("/user", userHandler.CreateUser)
	r.GET("/categories", categoryHandler.ListCategories)
	r.GET("/categories/:id", categoryHandler.GetCategoryByID)

	r.GET("/user", authed, userHandler.ListUsers)

	// Categories are shared; any signed-in user may change them.
	categories := r.Group("/categories", authed)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Per-user routes
	user := r.Group("/user/:id", authed, middleware.SameUser("id"))
	user.GET("", userHandler.GetUser)
	user.PUT("", userHandler.UpdateUser)
	user.DELETE("", userHandler.DeleteUser)

	accounts := user.Group("/account")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetUserAccounts)
	accounts.GET("/:accountId", accountHandler.GetAccountByID)
	accounts.PUT("/:accountId", accountHandler.UpdateAccount)
	accounts.DELETE("/:accountId", accountHandler.DeleteAccount)

	budgets := user.Group("/budget")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetUserBudgets)
	budgets.GET("/:budgetId", budgetHandler.GetBudgetByID)
	budgets.PUT("/:budgetId", budgetHandler.UpdateBudget)
	budgets.DELETE("/:budgetId", budgetHandler.DeleteBudget)
	budgets.GET("/:budgetId/progress", budgetHandler.GetBudgetProgress)

	transactions := user.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:transactionId", transactionHandler.GetTransactionByID)
	transactions.PUT("/:transactionId", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:transactionId", transactionHandler.DeleteTransaction)

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
