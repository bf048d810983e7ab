package services

import (
	"errors"

	"github.com/shopspring/decimal"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
)

// balanceEffect returns the signed change a transaction applies to its
// account: +amount for income, -amount for expense.
func balanceEffect(txType models.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch txType {
	case models.TransactionTypeIncome:
		return amount, nil
	case models.TransactionTypeExpense:
		return amount.Neg(), nil
	}
	return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "unknown transaction type "+string(txType))
}

// inverseEffect undoes balanceEffect.
func inverseEffect(txType models.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	effect, err := balanceEffect(txType, amount)
	if err != nil {
		return decimal.Zero, err
	}
	return effect.Neg(), nil
}

// asAppError passes AppErrors through and wraps anything else in fallback.
func asAppError(err error, fallback *apperrors.AppError) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(fallback, err)
}
