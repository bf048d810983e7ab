package validator

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/prubianes/guit-app-api/internal/errors"
	"github.com/prubianes/guit-app-api/internal/models"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseID parses a path segment as a positive identifier. entity names the
// record in the error message, e.g. "transaction" gives "Invalid transaction ID".
func ParseID(raw, entity string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidID, "Invalid "+entity+" ID")
	}
	return uint(id), nil
}

// ParseAmount reads a monetary amount from a JSON number or a numeric
// string. Negative values, null and anything non-numeric are rejected.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "amount is required")
	}

	var literal string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &literal); err != nil {
			return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "amount must be a number")
		}
		literal = strings.TrimSpace(literal)
	} else {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "amount must be a number")
		}
		literal = n.String()
	}

	amount, err := decimal.NewFromString(literal)
	if err != nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "amount must be a number")
	}
	if amount.IsNegative() {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "amount must not be negative")
	}
	return amount, nil
}

// ParseDate accepts RFC3339 (with or without fractional seconds), a
// zone-less timestamp taken as UTC, or YYYY-MM-DD. An empty string means now.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "date must be RFC3339 or YYYY-MM-DD")
}

// IsDateOnly reports whether raw is a bare calendar date.
func IsDateOnly(raw string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	return err == nil
}

// ValidateTransactionInput re-checks the payload preconditions of the
// reconciliation engine for callers that bypass HTTP binding.
func ValidateTransactionInput(accountID, categoryID uint, amount decimal.Decimal, txType models.TransactionType) error {
	switch {
	case accountID == 0:
		return apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "accountId is required")
	case categoryID == 0:
		return apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "categoryId is required")
	case amount.IsNegative():
		return apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "amount must not be negative")
	case !txType.IsValid():
		return apperrors.WithMessage(apperrors.ErrInvalidTransactionData, "type must be income or expense")
	}
	return nil
}
