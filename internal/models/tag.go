package models

// Tag is the tags table row. (user_id, lower(name)) is unique.
type Tag struct {
	TagID  string `db:"tag_id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	Color  string `db:"color"`
	AuditFields
}

// TransactionTag is the transaction_tags join table row.
type TransactionTag struct {
	TransactionID string `db:"transaction_id"`
	TagID         string `db:"tag_id"`
}
