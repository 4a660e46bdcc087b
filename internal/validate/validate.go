package validate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reBarcode = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)
	reTerm    = regexp.MustCompile(`^[\p{L}\p{N} .,_'&-]{1,50}$`)
)

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Barcode validates the optional product barcode format.
func Barcode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reBarcode.MatchString(s)
}

// Term validates a search/lookup term: trims, enforces allowed characters and
// max length.
func Term(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reTerm.MatchString(s)
}

// Price accepts any non-negative amount.
func Price(d decimal.Decimal) bool { return !d.IsNegative() }
