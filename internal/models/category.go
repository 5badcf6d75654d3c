package models

// CategoryType mirrors domain.CategoryType at the storage layer.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// Category is the categories table row. ParentID is a nullable
// self-reference; only one level of nesting is used.
type Category struct {
	CategoryID string       `db:"category_id"`
	UserID     string       `db:"user_id"`
	Name       string       `db:"name"`
	Type       CategoryType `db:"type"`
	ParentID   string       `db:"parent_id"` // empty string for NULL
	Icon       string       `db:"icon"`
	Color      string       `db:"color"`
	IsActive   bool         `db:"is_active"`
	AuditFields
}
