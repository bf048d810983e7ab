package models

import "github.com/shopspring/decimal"

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spending in one category for a recurring period.
type Budget struct {
	Base
	UserID     uint            `gorm:"not null;index" json:"userId"`
	CategoryID uint            `gorm:"not null" json:"categoryId"`
	Amount     decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"amount"`
	Period     BudgetPeriod    `gorm:"not null" json:"period"`
}
