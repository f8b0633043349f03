package models

import "time"

// UserRole identifies the account role.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// User represents a registered account. The identity key is the lowercased
// email address; Role is immutable after registration.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Role         UserRole  `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsStudent reports whether the account counts as a student. Accounts with no
// role recorded are treated as students.
func (u User) IsStudent() bool {
	return u.Role == RoleStudent || u.Role == ""
}
