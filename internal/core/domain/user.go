package domain

// UserRole determines which parts of the application an operator may use.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User represents a cash-desk operator account.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}
