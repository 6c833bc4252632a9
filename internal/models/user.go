package models

// User represents a registered analyst
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Branch       string `json:"branch"`
	PasswordHash string `json:"-"` // Not serialized
	CreatedAt    string `json:"created_at"`
}
