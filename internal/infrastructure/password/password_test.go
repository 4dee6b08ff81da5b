package password

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_DistinctSaltsAndVerify(t *testing.T) {
	h := NewWithCost(bcrypt.MinCost)

	h1, err := h.Hash("Str0ngPassword")
	require.NoError(t, err)
	h2, err := h.Hash("Str0ngPassword")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, h.Verify("Str0ngPassword", h1))
	assert.True(t, h.Verify("Str0ngPassword", h2))
	assert.False(t, h.Verify("str0ngPassword", h1))
}

func TestHash_DefaultCost(t *testing.T) {
	hash, err := New().Hash("Str0ngPassword")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)
}

func TestHash_LongPassword(t *testing.T) {
	h := NewWithCost(bcrypt.MinCost)
	pw := "Aa1" + strings.Repeat("x", 120)

	hash, err := h.Hash(pw)
	require.NoError(t, err)
	assert.True(t, h.Verify(pw, hash))
	assert.False(t, h.Verify(pw[:len(pw)-1], hash))
}

func TestHash_WeakPasswords(t *testing.T) {
	h := NewWithCost(bcrypt.MinCost)

	tests := []struct {
		name    string
		pw      string
		reasons []string
	}{
		{
			name:    "too short",
			pw:      "Short1!",
			reasons: []string{"Password must be at least 8 characters long"},
		},
		{
			name: "common password",
			pw:   "password",
			reasons: []string{
				"Password must contain at least one uppercase letter",
				"Password must contain at least one number",
				"Password is too common and easily guessable",
			},
		},
		{
			name: "common password case-insensitive",
			pw:   "Password123",
			reasons: []string{
				"Password is too common and easily guessable",
			},
		},
		{
			name:    "no lowercase",
			pw:      "UPPERCASE123",
			reasons: []string{"Password must contain at least one lowercase letter"},
		},
		{
			name:    "no digit",
			pw:      "NoDigitsHere",
			reasons: []string{"Password must contain at least one number"},
		},
		{
			name:    "too long",
			pw:      "Aa1" + strings.Repeat("b", 126),
			reasons: []string{"Password must not exceed 128 characters"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.pw)
			require.Error(t, err)
			assert.Empty(t, hash)
			assert.True(t, errors.Is(err, ErrWeakPassword))

			var weak *WeakPasswordError
			require.True(t, errors.As(err, &weak))
			assert.Equal(t, tt.reasons, weak.Reasons)
		})
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	h := New()
	assert.False(t, h.Verify("Str0ngPassword", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("Str0ngPassword", ""))
}
