package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
)

// GormLedger implements Ledger on a *gorm.DB.
type GormLedger struct {
	db *gorm.DB
}

var _ Ledger = (*GormLedger)(nil)

// NewGormLedger creates a Ledger backed by db.
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// WithinTransaction runs fn inside one database transaction. The Ledger
// handed to fn is bound to that transaction; returning an error rolls
// back everything it wrote.
func (l *GormLedger) WithinTransaction(ctx context.Context, fn func(l Ledger) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormLedger{db: tx})
	})
}

// FindAccount loads an account owned by userID.
func (l *GormLedger) FindAccount(ctx context.Context, userID, accountID uint) (*models.Account, error) {
	var account models.Account
	err := l.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&account).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

// CategoryExists reports whether a category with the given id exists.
func (l *GormLedger) CategoryExists(ctx context.Context, categoryID uint) (bool, error) {
	var count int64
	if err := l.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindTransaction loads a transaction owned by userID.
func (l *GormLedger) FindTransaction(ctx context.Context, userID, transactionID uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := l.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&txn).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &txn, nil
}

// ListTransactions returns one page of a user's transactions, newest first,
// together with the total number of matching rows.
func (l *GormLedger) ListTransactions(ctx context.Context, userID uint, page pagination.PageRequest, filter TransactionFilter) ([]models.Transaction, int64, error) {
	base := l.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").Order("id DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}
	return transactions, totalItems, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	return q
}

// InsertTransaction persists a new transaction and fills in its id.
func (l *GormLedger) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	return l.db.WithContext(ctx).Create(txn).Error
}

// SaveTransaction overwrites every column of an existing transaction.
func (l *GormLedger) SaveTransaction(ctx context.Context, txn *models.Transaction) error {
	result := l.db.WithContext(ctx).
		Model(txn).
		Select("account_id", "category_id", "amount", "type", "date", "description", "updated_at").
		Updates(txn)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveTransaction hard-deletes a transaction row.
func (l *GormLedger) RemoveTransaction(ctx context.Context, txn *models.Transaction) error {
	result := l.db.WithContext(ctx).Delete(&models.Transaction{}, txn.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustBalance adds delta to an account balance. PostgreSQL does the
// addition on its NUMERIC column. SQLite would do it in floating point, so
// there the balance is read and rewritten with decimal arithmetic inside a
// transaction; the single SQLite connection serialises writers.
func (l *GormLedger) AdjustBalance(ctx context.Context, accountID uint, delta decimal.Decimal) error {
	if IsSQLite(l.db) {
		return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var account models.Account
			if err := tx.Select("id", "balance").First(&account, accountID).Error; err != nil {
				return notFound(err)
			}
			return tx.Model(&account).Update("balance", account.Balance.Add(delta)).Error
		})
	}

	result := l.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsSQLite reports whether db talks to SQLite, whose NUMERIC columns hold
// IEEE doubles and so cannot be trusted with SQL-side decimal arithmetic.
func IsSQLite(db *gorm.DB) bool {
	return db.Dialector.Name() == "sqlite"
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
