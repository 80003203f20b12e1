package models

import (
	"fmt"
	"strings"
)

// Roles a user record can carry.
const (
	RoleOperator   = "operator"
	RoleSupervisor = "supervisor"
)

// AdminUsername is the bootstrap account seeded on first start. It cannot be
// deleted.
const AdminUsername = "admin"

// User represents one row of the users table. The username is the record
// key, matched case-insensitively.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleOperator || role == RoleSupervisor
}

// Row serializes the user in users-sheet column order.
func (u User) Row() []string {
	return []string{
		u.Username,
		u.PasswordHash,
		u.Role,
		u.FullName,
		formatBool(u.IsActive),
		u.CreatedAt,
	}
}

// UserFromRow decodes a users-sheet row.
func UserFromRow(row []string) User {
	return User{
		Username:     cell(row, 0),
		PasswordHash: cell(row, 1),
		Role:         cell(row, 2),
		FullName:     cell(row, 3),
		IsActive:     parseBool(cell(row, 4)),
		CreatedAt:    cell(row, 5),
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func formatBool(b bool) string {
	return fmt.Sprintf("%t", b)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
