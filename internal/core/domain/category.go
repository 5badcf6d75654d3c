package domain

// CategoryType fixes whether a category classifies income or expenses.
// Children always inherit the type of their parent.
type CategoryType string

const (
	CategoryIncome  CategoryType = "INCOME"
	CategoryExpense CategoryType = "EXPENSE"
)

// Category groups transactions. One level of nesting is supported via
// ParentID. Deactivating a parent cascades to its children; reactivating
// does not.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	ParentID   string       `json:"parentID"` // empty for top-level categories
	Icon       string       `json:"icon"`
	Color      string       `json:"color"` // #RRGGBB
	IsActive   bool         `json:"isActive"`
	AuditFields
}
