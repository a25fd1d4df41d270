package models

import "time"

// AccountRole represents the available roles for the RBAC system.
type AccountRole string

const (
	RoleStudent    AccountRole = "STUDENT"
	RoleInstructor AccountRole = "INSTRUCTOR"
	RoleAdmin      AccountRole = "ADMIN"
)

// Valid reports whether the role is one of the supported values.
func (r AccountRole) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// Account represents an authentication identity stored in the accounts table.
// Username is immutable after creation; the id is the join key used by
// registrations and the profile tables.
type Account struct {
	ID           string      `db:"id" json:"id"`
	Username     string      `db:"username" json:"username"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Role         AccountRole `db:"role" json:"role"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}
