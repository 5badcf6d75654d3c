package domain

// User is the owner of every other entity. All repository queries are
// scoped by UserID.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // bcrypt; empty for Google-only accounts
	AuditFields
}
