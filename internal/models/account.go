package models

import "github.com/shopspring/decimal"

// AccountType is a free-form label such as "cash", "bank" or "credit".
type AccountType string

const (
	AccountTypeCash   AccountType = "cash"
	AccountTypeBank   AccountType = "bank"
	AccountTypeCredit AccountType = "credit"
)

// Account is a named store of value owned by one user. Balance is
// maintained by the reconciliation engine after creation.
type Account struct {
	Base
	UserID  uint            `gorm:"not null;index" json:"userId"`
	Name    string          `gorm:"not null" json:"name"`
	Type    AccountType     `gorm:"not null" json:"type"`
	Balance decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"balance"`
}
