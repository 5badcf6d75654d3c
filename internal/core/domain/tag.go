package domain

// Tag is a free-form label, many-to-many with transactions.
// Names are unique per user, compared case-insensitively.
type Tag struct {
	TagID  string `json:"tagID"`
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Color  string `json:"color"` // #RRGGBB, optional
	AuditFields
}
