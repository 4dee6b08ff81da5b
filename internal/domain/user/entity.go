package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type (
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Name         string
		Email        string
		PasswordHash string
		Role         Role

		CreatedAt time.Time
		UpdatedAt time.Time
		DeletedAt *time.Time
	}
	Users []*User

	// Principal is the authenticated caller as carried by the bearer token.
	Principal struct {
		ID    UUID
		Email string
		Role  Role
	}

	ProfileUpdate struct {
		Name  *string
		Email *string
	}
)

func (u *User) Principal() Principal {
	return Principal{ID: u.UUID, Email: u.Email, Role: u.Role}
}
