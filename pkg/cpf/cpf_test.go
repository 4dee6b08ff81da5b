package cpf

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"formatted", "111.444.777-35", "11144477735"},
		{"slashes and spaces", "111 444/777 35", "11144477735"},
		{"already clean", "11144477735", "11144477735"},
		{"letters only", "abc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestValidate_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"seed value", "11144477735", true},
		{"seed value formatted", "111.444.777-35", true},
		{"second seed value", "22255588846", true},
		{"wrong second check digit", "11144477736", false},
		{"wrong first check digit", "11144477745", false},
		{"all ones", "11111111111", false},
		{"all zeros", "00000000000", false},
		{"too short", "1114447773", false},
		{"too long", "111444777350", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.in))
		})
	}
}

func TestValidate_RepeatedDigits(t *testing.T) {
	for d := 0; d <= 9; d++ {
		s := ""
		for i := 0; i < length; i++ {
			s += strconv.Itoa(d)
		}
		assert.False(t, Validate(s), s)
	}
}

func TestValidate_GeneratedCheckDigits(t *testing.T) {
	bases := []string{"123456789", "987654321", "529982247", "000000001", "390533447"}

	for _, base := range bases {
		d := make([]int, 0, length)
		for _, r := range base {
			d = append(d, int(r-'0'))
		}
		d = append(d, checkDigit(d, 10))
		d = append(d, checkDigit(d, 11))

		s := ""
		for _, v := range d {
			s += strconv.Itoa(v)
		}
		require.True(t, Validate(s), "generated %s", s)

		mutated := []byte(s)
		mutated[9] = byte('0' + (d[9]+1)%10)
		assert.False(t, Validate(string(mutated)), "first digit mutated %s", mutated)

		mutated = []byte(s)
		mutated[10] = byte('0' + (d[10]+1)%10)
		assert.False(t, Validate(string(mutated)), "second digit mutated %s", mutated)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "111.444.777-35", Format("11144477735"))
	assert.Equal(t, "111.444.777-35", Format("111.444.777-35"))
	assert.Equal(t, "12345", Format("12345"))
	assert.Equal(t, "", Format(""))
}
