package domain

import (
	"fmt"
	"strings"
	"time"
)

// UserRole enumerates caller roles.
type UserRole string

const (
	UserRoleEmployee UserRole = "EMPLOYEE"
	UserRoleAdmin    UserRole = "ADMIN"
)

// ParseUserRole maps a raw string onto a UserRole.
func ParseUserRole(raw string) (UserRole, error) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(raw))) {
	case UserRoleEmployee:
		return UserRoleEmployee, nil
	case UserRoleAdmin:
		return UserRoleAdmin, nil
	default:
		return "", fmt.Errorf("invalid role: %q", raw)
	}
}

// User is the domain model for employees who book rooms.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
