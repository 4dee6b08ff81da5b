// Package cpf validates and formats Brazilian individual taxpayer numbers.
package cpf

import "strings"

const length = 11

// Clean strips every non-digit character.
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate reports whether raw holds a CPF with both check digits correct.
// Separators are ignored.
func Validate(raw string) bool {
	c := Clean(raw)
	if len(c) != length {
		return false
	}

	d := make([]int, length)
	same := true
	for i := 0; i < length; i++ {
		d[i] = int(c[i] - '0')
		if d[i] != d[0] {
			same = false
		}
	}
	if same {
		return false
	}

	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

func checkDigit(digits []int, weight int) int {
	sum := 0
	for i, v := range digits {
		sum += v * (weight - i)
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

// Format renders an 11 digit CPF as XXX.XXX.XXX-XX. Anything else is returned unchanged.
func Format(raw string) string {
	c := Clean(raw)
	if len(c) != length {
		return raw
	}
	return c[0:3] + "." + c[3:6] + "." + c[6:9] + "-" + c[9:11]
}
