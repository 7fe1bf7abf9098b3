package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePhone = regexp.MustCompile(`^[0-9()+\- ]{7,20}$`)
	reKind  = regexp.MustCompile(`^(income|expense)$`)
	rePlat  = regexp.MustCompile(`^(instagram|facebook|whatsapp)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/order/customer ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePhone.MatchString(s)
}

// Qty parses a requested quantity; invalid values fall back to 1 and large
// ones are clamped to avoid abuse.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Money parses a non-negative amount.
func Money(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func EntryKind(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reKind.MatchString(s)
}

func Platform(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, rePlat.MatchString(s)
}

// Password enforces a simple complexity window for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
