package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prubianes/guit-app-api/internal/config"
	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/logger"
	"github.com/prubianes/guit-app-api/internal/models"
	"github.com/prubianes/guit-app-api/internal/pagination"
	"github.com/prubianes/guit-app-api/internal/storage"
	"github.com/prubianes/guit-app-api/internal/validator"
)

// transactionService keeps account balances consistent with the
// transactions recorded against them.
type transactionService struct {
	ledger storage.Ledger
	policy config.UpdatePolicy
}

// NewTransactionService creates a new TransactionServicer. An empty policy
// selects config.UpdatePolicyInverseOfNew.
func NewTransactionService(ledger storage.Ledger, policy config.UpdatePolicy) TransactionServicer {
	if policy == "" {
		policy = config.UpdatePolicyInverseOfNew
	}
	return &transactionService{ledger: ledger, policy: policy}
}

// CreateTransaction records a transaction and applies its effect to the
// account balance.
func (s *transactionService) CreateTransaction(ctx context.Context, userID uint, input TransactionInput) (*models.Transaction, error) {
	if err := validator.ValidateTransactionInput(input.AccountID, input.CategoryID, input.Amount, input.Type); err != nil {
		return nil, err
	}
	effect, err := balanceEffect(input.Type, input.Amount)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   input.AccountID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        dateOrNow(input.Date),
		Description: stringOrEmpty(input.Description),
	}

	err = s.ledger.WithinTransaction(ctx, func(l storage.Ledger) error {
		if err := s.checkReferences(ctx, l, userID, input.AccountID, input.CategoryID, apperrors.ErrCreation); err != nil {
			return err
		}
		if err := l.InsertTransaction(ctx, transaction); err != nil {
			return apperrors.Wrap(apperrors.ErrCreation, err)
		}
		return s.adjust(ctx, l, input.AccountID, effect, "create", apperrors.ErrCreation)
	})
	if err != nil {
		return nil, asAppError(err, apperrors.ErrCreation)
	}
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of a user's transactions.
func (s *transactionService) GetUserTransactions(ctx context.Context, userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	transactions, totalItems, err := s.ledger.ListTransactions(ctx, userID, page, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRetrieval, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID uint) (*models.Transaction, error) {
	transaction, err := s.ledger.FindTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrTransactionNotFound, apperrors.ErrRetrieval)
	}
	return transaction, nil
}

// UpdateTransaction overwrites a transaction and reconciles the balance
// according to the configured update policy.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID uint, input TransactionInput) (*models.Transaction, error) {
	if err := validator.ValidateTransactionInput(input.AccountID, input.CategoryID, input.Amount, input.Type); err != nil {
		return nil, err
	}
	newEffect, err := balanceEffect(input.Type, input.Amount)
	if err != nil {
		return nil, err
	}

	var updated *models.Transaction
	err = s.ledger.WithinTransaction(ctx, func(l storage.Ledger) error {
		existing, err := l.FindTransaction(ctx, userID, transactionID)
		if err != nil {
			return lookupError(err, apperrors.ErrTransactionNotFound, apperrors.ErrUpdate)
		}
		if err := s.checkReferences(ctx, l, userID, input.AccountID, input.CategoryID, apperrors.ErrUpdate); err != nil {
			return err
		}

		// The stored effect is needed before anything is written.
		var oldInverse decimal.Decimal
		if s.policy == config.UpdatePolicyReapply {
			if oldInverse, err = inverseEffect(existing.Type, existing.Amount); err != nil {
				return err
			}
		}
		oldAccountID := existing.AccountID

		existing.AccountID = input.AccountID
		existing.CategoryID = input.CategoryID
		existing.Amount = input.Amount
		existing.Type = input.Type
		if input.Date != nil {
			existing.Date = input.Date.UTC()
		}
		if input.Description != nil {
			existing.Description = *input.Description
		}
		if err := l.SaveTransaction(ctx, existing); err != nil {
			return lookupError(err, apperrors.ErrTransactionNotFound, apperrors.ErrUpdate)
		}

		switch s.policy {
		case config.UpdatePolicyReapply:
			if err := s.adjust(ctx, l, oldAccountID, oldInverse, "update-revert", apperrors.ErrUpdate); err != nil {
				return err
			}
			if err := s.adjust(ctx, l, input.AccountID, newEffect, "update-apply", apperrors.ErrUpdate); err != nil {
				return err
			}
		default:
			if err := s.adjust(ctx, l, input.AccountID, newEffect.Neg(), "update", apperrors.ErrUpdate); err != nil {
				return err
			}
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, asAppError(err, apperrors.ErrUpdate)
	}
	return updated, nil
}

// DeleteTransaction removes a transaction, reverses its balance effect and
// returns the deleted record.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID uint) (*models.Transaction, error) {
	var deleted *models.Transaction
	err := s.ledger.WithinTransaction(ctx, func(l storage.Ledger) error {
		transaction, err := l.FindTransaction(ctx, userID, transactionID)
		if err != nil {
			return lookupError(err, apperrors.ErrTransactionNotFound, apperrors.ErrDeletion)
		}
		if _, err := l.FindAccount(ctx, userID, transaction.AccountID); err != nil {
			return lookupError(err, apperrors.ErrAccountNotFound, apperrors.ErrDeletion)
		}

		inverse, err := inverseEffect(transaction.Type, transaction.Amount)
		if err != nil {
			return err
		}
		if err := s.adjust(ctx, l, transaction.AccountID, inverse, "delete", apperrors.ErrDeletion); err != nil {
			return err
		}
		if err := l.RemoveTransaction(ctx, transaction); err != nil {
			return lookupError(err, apperrors.ErrTransactionNotFound, apperrors.ErrDeletion)
		}

		deleted = transaction
		return nil
	})
	if err != nil {
		return nil, asAppError(err, apperrors.ErrDeletion)
	}
	return deleted, nil
}

// checkReferences confirms the account belongs to userID and the category exists.
func (s *transactionService) checkReferences(ctx context.Context, l storage.Ledger, userID, accountID, categoryID uint, fallback *apperrors.AppError) error {
	if _, err := l.FindAccount(ctx, userID, accountID); err != nil {
		return lookupError(err, apperrors.ErrAccountNotFound, fallback)
	}
	ok, err := l.CategoryExists(ctx, categoryID)
	if err != nil {
		return apperrors.Wrap(fallback, err)
	}
	if !ok {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (s *transactionService) adjust(ctx context.Context, l storage.Ledger, accountID uint, delta decimal.Decimal, op string, fallback *apperrors.AppError) error {
	if err := l.AdjustBalance(ctx, accountID, delta); err != nil {
		return lookupError(err, apperrors.ErrAccountNotFound, fallback)
	}
	logger.Get().Debugw("balance adjusted",
		"account_id", accountID,
		"delta", delta.String(),
		"operation", op,
	)
	return nil
}

// lookupError maps storage.ErrNotFound to notFound and wraps anything else in fallback.
func lookupError(err error, notFound, fallback *apperrors.AppError) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound
	}
	return apperrors.Wrap(fallback, err)
}

// dateOrNow stores every date in UTC so range filters compare like with like.
func dateOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
