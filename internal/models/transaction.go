package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the recognised transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense against one account.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"userId"`
	AccountID   uint            `gorm:"not null;index" json:"accountId"`
	CategoryID  uint            `gorm:"not null;index" json:"categoryId"`
	Amount      decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `json:"description"`
}
