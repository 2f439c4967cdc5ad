package domain

import "time"

// Role роль пользователя в системе
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

// IsValid проверяет, что роль входит в закрытый набор
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// User represents an authenticated account
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// Actor аутентифицированный инициатор запроса
// Извлекается из JWT токена в auth middleware
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsOwner returns true for studio owners
func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}
