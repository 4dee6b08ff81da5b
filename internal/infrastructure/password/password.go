package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	Cost   = 12
	MinLen = 8
	MaxLen = 128

	// bcrypt ignores input past 72 bytes and x/crypto rejects it outright.
	bcryptMaxInput = 72
)

var ErrWeakPassword = errors.New("weak password")

var common = map[string]struct{}{
	"password": {}, "123456": {}, "123456789": {}, "qwerty": {}, "abc123": {},
	"password123": {}, "admin": {}, "letmein": {}, "welcome": {}, "123123": {},
}

type WeakPasswordError struct {
	Reasons []string
}

func (e *WeakPasswordError) Error() string {
	return "weak password: " + strings.Join(e.Reasons, "; ")
}

func (e *WeakPasswordError) Unwrap() error { return ErrWeakPassword }

type Hasher struct {
	cost int
}

func New() *Hasher { return &Hasher{cost: Cost} }

// NewWithCost is meant for tests where cost 12 makes suites slow.
func NewWithCost(cost int) *Hasher { return &Hasher{cost: cost} }

// Validate returns every policy rule the password breaks, nil when it is acceptable.
func (h *Hasher) Validate(pw string) []string {
	var reasons []string

	n := utf8.RuneCountInString(pw)
	if n < MinLen {
		reasons = append(reasons, "Password must be at least 8 characters long")
	}
	if n > MaxLen {
		reasons = append(reasons, "Password must not exceed 128 characters")
	}

	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower {
		reasons = append(reasons, "Password must contain at least one lowercase letter")
	}
	if !upper {
		reasons = append(reasons, "Password must contain at least one uppercase letter")
	}
	if !digit {
		reasons = append(reasons, "Password must contain at least one number")
	}
	if _, ok := common[strings.ToLower(pw)]; ok {
		reasons = append(reasons, "Password is too common and easily guessable")
	}

	return reasons
}

func (h *Hasher) Hash(pw string) (string, error) {
	if reasons := h.Validate(pw); len(reasons) > 0 {
		return "", &WeakPasswordError{Reasons: reasons}
	}

	b, err := bcrypt.GenerateFromPassword(prepare(pw), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify never fails: a malformed hash is just a mismatch.
func (h *Hasher) Verify(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prepare(pw)) == nil
}

func prepare(pw string) []byte {
	if len(pw) <= bcryptMaxInput {
		return []byte(pw)
	}
	sum := sha256.Sum256([]byte(pw))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
