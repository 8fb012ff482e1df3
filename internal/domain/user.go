package domain

import "time"

// Role роль пользователя в системе
type Role string

const (
	RoleDriver Role = "driver"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

// ValidRole returns true if r is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleDriver, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// User represents an authenticated principal
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	CreatedAt time.Time
}

// Principal аутентифицированный субъект запроса, извлекается из JWT
type Principal struct {
	ID   int64
	Name string
	Role Role
}

// IsAdmin returns true if the principal has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
