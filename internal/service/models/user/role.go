package user

import (
	"database/sql/driver"
	"errors"
)

type Role string

const (
	RoleManager Role = "manager"
	RoleClient  Role = "cliente"
)

var ErrInvalidRole = errors.New("invalid role")

func (r Role) String() string {
	return string(r)
}

func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

// ParseRole maps a raw string onto a known role. The empty string
// defaults to cliente.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleClient, nil
	case RoleManager, RoleClient:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}
