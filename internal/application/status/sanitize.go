package status

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxFieldLength = 255

// sanitize strips angle brackets and caps the value at maxFieldLength runes.
func sanitize(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if utf8.RuneCountInString(s) <= maxFieldLength {
		return s
	}
	return string([]rune(s)[:maxFieldLength])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// parseInt reads the leading integer of s, so "12.7" and "12abc" give 12.
// Anything unparseable gives 0.
func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseFloat reads the leading decimal number of s, so "12.5MiB" gives 12.5.
// Anything unparseable or non-finite (Inf, NaN) gives 0.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if exp := scanExponent(s[end:]); exp > 0 {
		end += exp
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// scanExponent returns the length of an exponent suffix such as "e-3" at the
// start of s, or 0 when there is none.
func scanExponent(s string) int {
	if len(s) < 2 || (s[0] != 'e' && s[0] != 'E') {
		return 0
	}
	i := 1
	if s[i] == '-' || s[i] == '+' {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	return i
}
