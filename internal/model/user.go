package model

import (
	"fmt"
	"strings"
	"time"
)

// UserRole separates the bootstrap admin from regular owners.
type UserRole string

const (
	// RoleUser is the default role for registered owners.
	RoleUser UserRole = "USER"
	// RoleAdmin is granted only to the bootstrap administrator.
	RoleAdmin UserRole = "ADMIN"
)

// User is an account that exclusively owns a set of categories, transactions,
// and goals. The core only ever sees its ID; credentials stay at the boundary.
type User struct {
	CreatedAt    time.Time
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	ID           int64
	IsActive     bool
}

// Validate checks the user's field invariants. Password strength and hashing
// are the auth package's concern.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("invalid email %q", u.Email)
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return nil
}
