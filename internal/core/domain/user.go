package domain

// User represents a registered customer.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"` // unique
	PasswordHash string `json:"-"`
	AuditFields
}
