package ports

import (
	"student-manager-api/internal/infrastructure/jwt"
)

type TokenService interface {
	Issue(userID, email, role string) (string, error)
	Verify(token string) (*jwt.Claims, error)
}

type PasswordHasher interface {
	Validate(password string) []string
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
