package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category labels transactions. Categories are shared by all users.
type Category struct {
	Base
	Name string       `gorm:"not null" json:"name"`
	Type CategoryType `gorm:"not null" json:"type"`
}
