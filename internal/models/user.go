package models

// User is the users table row.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"` // empty for Google-only accounts
	AuditFields
}
