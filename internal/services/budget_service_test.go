package services

import (
	"context"
	"testing"
	"time"

	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
	"github.com/prubianes/guit-app-api/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		budget, err := svc.CreateBudget(ctx, user.ID, cat.ID, testutil.Dec(t, "500"), models.BudgetPeriodMonthly)
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		testutil.AssertDecimal(t, budget.Amount, "500")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(ctx, user.ID, cat.ID, testutil.Dec(t, "-1"), models.BudgetPeriodMonthly)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(ctx, user.ID, 99999, testutil.Dec(t, "10"), models.BudgetPeriodWeekly)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(ctx, 99999, cat.ID, testutil.Dec(t, "10"), models.BudgetPeriodWeekly)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetUserBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	testutil.CreateTestBudget(t, db, user.ID, cat.ID)
	testutil.CreateTestBudget(t, db, user.ID, cat.ID)
	testutil.CreateTestBudget(t, db, other.ID, cat.ID)

	result, err := svc.GetUserBudgets(context.Background(), user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Errorf("expected 2 budgets, got %d", result.TotalItems)
	}
}

func TestUpdateBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("changes_amount_and_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
		created := testutil.CreateTestBudget(t, db, user.ID, cat.ID)

		amount := testutil.Dec(t, "750.5")
		period := models.BudgetPeriodYearly
		budget, err := svc.UpdateBudget(ctx, user.ID, created.ID, BudgetUpdate{Amount: &amount, Period: &period})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, budget.Amount, "750.5")
		if budget.Period != models.BudgetPeriodYearly {
			t.Errorf("expected yearly, got %s", budget.Period)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
		created := testutil.CreateTestBudget(t, db, user.ID, cat.ID)

		missing := uint(99999)
		_, err := svc.UpdateBudget(ctx, user.ID, created.ID, BudgetUpdate{CategoryID: &missing})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
		created := testutil.CreateTestBudget(t, db, user.ID, cat.ID)

		amount := testutil.Dec(t, "1")
		_, err := svc.UpdateBudget(ctx, other.ID, created.ID, BudgetUpdate{Amount: &amount})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	user := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	created := testutil.CreateTestBudget(t, db, user.ID, cat.ID)

	deleted, err := svc.DeleteBudget(ctx, user.ID, created.ID)
	testutil.AssertNoError(t, err)
	if deleted.ID != created.ID {
		t.Errorf("expected deleted snapshot %d, got %d", created.ID, deleted.ID)
	}

	_, err = svc.GetBudgetByID(ctx, user.ID, created.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestGetBudgetProgress(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	now := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)
	svc := &budgetService{db: db, now: func() time.Time { return now }}

	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID)
	groceries := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	salary := testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)
	budget := testutil.CreateTestBudget(t, db, user.ID, groceries.ID)

	record := func(categoryID uint, txType models.TransactionType, amount string, date time.Time) {
		t.Helper()
		txn := &models.Transaction{
			UserID: user.ID, AccountID: account.ID, CategoryID: categoryID,
			Type: txType, Amount: testutil.Dec(t, amount), Date: date,
		}
		if err := db.Create(txn).Error; err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
	}
	record(groceries.ID, models.TransactionTypeExpense, "20.5", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	record(groceries.ID, models.TransactionTypeExpense, "4.5", time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC))
	// Outside the window or not spending: ignored.
	record(groceries.ID, models.TransactionTypeExpense, "99", time.Date(2025, time.February, 28, 23, 0, 0, 0, time.UTC))
	record(groceries.ID, models.TransactionTypeExpense, "99", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	record(salary.ID, models.TransactionTypeIncome, "1000", time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC))

	progress, err := svc.GetBudgetProgress(ctx, user.ID, budget.ID)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, progress.Budgeted, "100")
	testutil.AssertDecimal(t, progress.Spent, "25")
	testutil.AssertDecimal(t, progress.Remaining, "75")
	testutil.AssertDecimal(t, progress.Percentage, "25")
	if !progress.PeriodStart.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected period start %s", progress.PeriodStart)
	}

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetBudgetProgress(ctx, user.ID, 99999)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestGetBudgetProgress_ExactDecimal(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	now := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC)
	svc := &budgetService{db: db, now: func() time.Time { return now }}

	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, user.ID)
	category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	budget := testutil.CreateTestBudget(t, db, user.ID, category.ID)

	for _, amount := range []string{"0.1", "0.2"} {
		txn := &models.Transaction{
			UserID: user.ID, AccountID: account.ID, CategoryID: category.ID,
			Type: models.TransactionTypeExpense, Amount: testutil.Dec(t, amount), Date: now,
		}
		if err := db.Create(txn).Error; err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
	}

	progress, err := svc.GetBudgetProgress(ctx, user.ID, budget.ID)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, progress.Spent, "0.3")
	testutil.AssertDecimal(t, progress.Remaining, "99.7")
	testutil.AssertDecimal(t, progress.Percentage, "0.3")
}

func TestPeriodWindow(t *testing.T) {
	// Wednesday.
	now := time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    models.BudgetPeriod
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"weekly_starts_monday", models.BudgetPeriodWeekly, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)},
		{"monthly", models.BudgetPeriodMonthly, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{"yearly", models.BudgetPeriodYearly, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"unknown_defaults_to_monthly", models.BudgetPeriod("daily"), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := periodWindow(tt.period, now)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("got [%s, %s), want [%s, %s)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}

	t.Run("sunday_belongs_to_previous_week", func(t *testing.T) {
		sunday := time.Date(2025, time.March, 16, 8, 0, 0, 0, time.UTC)
		start, _ := periodWindow(models.BudgetPeriodWeekly, sunday)
		if !start.Equal(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected Monday March 10, got %s", start)
		}
	})
}
