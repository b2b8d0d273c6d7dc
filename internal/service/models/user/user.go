package user

import (
	"time"
)

// User is a storefront account. PasswordHash never leaves the service
// layer.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsManagement reports whether the user may access management surfaces.
func (u *User) IsManagement() bool {
	return u.Role == RoleManager
}
