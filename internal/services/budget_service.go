package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
	"github.com/prubianes/guit-app-api/internal/storage"
)

var hundred = decimal.NewFromInt(100)

// budgetService handles budget-related business logic.
type budgetService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db, now: time.Now}
}

// CreateBudget creates a budget for one of the user's spending categories.
func (s *budgetService) CreateBudget(ctx context.Context, userID, categoryID uint, amount decimal.Decimal, period models.BudgetPeriod) (*models.Budget, error) {
	if amount.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if err := ensureUserExists(ctx, s.db, userID); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Period:     period,
	}
	if err := s.db.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCreation, err)
	}
	return budget, nil
}

// GetUserBudgets retrieves a paginated list of budgets for a user.
func (s *budgetService) GetUserBudgets(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).Order("id ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID retrieves a budget by ID for a specific user.
func (s *budgetService) GetBudgetByID(ctx context.Context, userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget's fields.
func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID uint, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.CategoryID != nil {
		if err := s.ensureCategory(ctx, *update.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.Amount != nil {
		if update.Amount.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
		}
		updates["amount"] = *update.Amount
	}
	if update.Period != nil {
		updates["period"] = *update.Period
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrUpdate, err)
		}
	}
	return budget, nil
}

// DeleteBudget deletes a budget and returns it.
func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID uint) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Budget{}, budget.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDeletion, err)
	}
	return budget, nil
}

// GetBudgetProgress calculates spending vs budget for the current period.
func (s *budgetService) GetBudgetProgress(ctx context.Context, userID, budgetID uint) (*BudgetProgress, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	periodStart, periodEnd := periodWindow(budget.Period, s.now().UTC())

	spent, err := s.spentInWindow(ctx, userID, budget.CategoryID, periodStart, periodEnd)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}

	percentage := decimal.Zero
	if budget.Amount.IsPositive() {
		percentage = spent.Div(budget.Amount).Mul(hundred).Round(2)
	}

	return &BudgetProgress{
		BudgetID:    budget.ID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Budgeted:    budget.Amount,
		Spent:       spent,
		Remaining:   budget.Amount.Sub(spent),
		Percentage:  percentage,
	}, nil
}

// spentInWindow sums expense transactions for the category within
// [start, end). SQLite's SUM works on doubles, so there the amounts are
// added up as decimals in Go.
func (s *budgetService) spentInWindow(ctx context.Context, userID, categoryID uint, start, end time.Time) (decimal.Decimal, error) {
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND category_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, categoryID, models.TransactionTypeExpense, start, end)

	if storage.IsSQLite(s.db) {
		var amounts []decimal.Decimal
		if err := q.Pluck("amount", &amounts).Error; err != nil {
			return decimal.Zero, err
		}
		return decimal.Sum(decimal.Zero, amounts...), nil
	}

	var spent decimal.Decimal
	if err := q.Select("COALESCE(SUM(amount), 0)").Row().Scan(&spent); err != nil {
		return decimal.Zero, err
	}
	return spent, nil
}

func (s *budgetService) ensureCategory(ctx context.Context, categoryID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrRetrieval, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// periodWindow returns the half-open [start, end) window of the period containing now.
// Weeks start on Monday.
func periodWindow(period models.BudgetPeriod, now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case models.BudgetPeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case models.BudgetPeriodYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0)
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	}
}
