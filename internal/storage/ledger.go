// Package storage is the persistence collaborator of the reconciliation
// engine. The engine only sees the Ledger interface; GormLedger backs it
// with a relational database.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
)

// ErrNotFound is returned when a looked-up record does not exist or is not
// visible to the requesting user.
var ErrNotFound = errors.New("storage: record not found")

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	AccountID  *uint
	CategoryID *uint
	Type       *models.TransactionType
	FromDate   *time.Time
	ToDate     *time.Time
}

// Ledger is the set of persistence operations the reconciliation engine
// needs. Implementations must make every call issued through the Ledger
// passed to fn part of one atomic unit.
type Ledger interface {
	WithinTransaction(ctx context.Context, fn func(l Ledger) error) error

	FindAccount(ctx context.Context, userID, accountID uint) (*models.Account, error)
	CategoryExists(ctx context.Context, categoryID uint) (bool, error)

	FindTransaction(ctx context.Context, userID, transactionID uint) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID uint, page pagination.PageRequest, filter TransactionFilter) ([]models.Transaction, int64, error)
	InsertTransaction(ctx context.Context, txn *models.Transaction) error
	SaveTransaction(ctx context.Context, txn *models.Transaction) error
	RemoveTransaction(ctx context.Context, txn *models.Transaction) error

	// AdjustBalance adds delta to the stored balance of accountID with
	// exact decimal arithmetic. It must not lose a concurrent adjustment.
	AdjustBalance(ctx context.Context, accountID uint, delta decimal.Decimal) error
}
