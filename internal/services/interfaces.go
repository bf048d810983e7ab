package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
	"github.com/prubianes/guit-app-api/internal/storage"
)

// UserUpdate carries the optional fields of a user update.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, name, email, password string) (*models.User, error)
	ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) (*models.User, error)
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(ctx context.Context, userID uint, name string, accountType models.AccountType, openingBalance decimal.Decimal) (*models.Account, error)
	GetUserAccounts(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(ctx context.Context, userID, accountID uint) (*models.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID uint, name *string, accountType *models.AccountType) (*models.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID uint) (*models.Account, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, name string, categoryType models.CategoryType) (*models.Category, error)
	ListCategories(ctx context.Context, page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(ctx context.Context, categoryID uint) (*models.Category, error)
	UpdateCategory(ctx context.Context, categoryID uint, name *string, categoryType *models.CategoryType) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID uint) (*models.Category, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter = storage.TransactionFilter

// TransactionInput is the payload of a create or update. A nil Date means
// now on create and the stored date on update; a nil Description means
// empty on create and the stored text on update.
type TransactionInput struct {
	AccountID   uint
	CategoryID  uint
	Amount      decimal.Decimal
	Type        models.TransactionType
	Date        *time.Time
	Description *string
}

// TransactionServicer is the balance reconciliation engine. Every mutation
// writes the transaction and its balance effect as one unit.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID uint, input TransactionInput) (*models.Transaction, error)
	GetUserTransactions(ctx context.Context, userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(ctx context.Context, userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID uint, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID uint) (*models.Transaction, error)
}

// BudgetUpdate carries the optional fields of a budget update.
type BudgetUpdate struct {
	CategoryID *uint
	Amount     *decimal.Decimal
	Period     *models.BudgetPeriod
}

// BudgetProgress contains spending vs budget data for a budget's current period.
type BudgetProgress struct {
	BudgetID    uint            `json:"budgetId"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Budgeted    decimal.Decimal `json:"budgeted"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(ctx context.Context, userID, categoryID uint, amount decimal.Decimal, period models.BudgetPeriod) (*models.Budget, error)
	GetUserBudgets(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(ctx context.Context, userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID uint, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID uint) (*models.Budget, error)
	GetBudgetProgress(ctx context.Context, userID, budgetID uint) (*BudgetProgress, error)
}
