package model

import "time"

// UserRole separates internal marketplace staff from account-side users.
type UserRole string

const (
	UserRoleInternal UserRole = "internal"
	UserRoleAccount  UserRole = "account"
)

// User is an identity known to the identity store. Benchmarks may only be
// attributed to internal users.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

// IsInternal reports whether the user holds internal privilege.
func (u *User) IsInternal() bool {
	return u.Role == UserRoleInternal
}
