// Package money implements the accounting-format price contract used by every
// price field on a quote: values are edited as free text, parsed to an exact
// decimal, and re-rendered with fixed 2 decimals and thousands separators.
//
// Round-trip law: Format(Parse(Format(x))) == Format(x) for any valid decimal x.
package money

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// amountPattern is the accepted free-text grammar after separators are
// stripped. Deliberately permissive: "", "-", "." and ".5" are all valid
// in-progress inputs and parse to a usable value.
var amountPattern = regexp.MustCompile(`^-?\d*\.?\d*$`)

// Parse converts a free-text price into an exact decimal. Thousands
// separators and surrounding whitespace are stripped before validation.
// Empty and separator-only inputs parse to zero.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if !amountPattern.MatchString(s) {
		return decimal.Zero, ErrInvalidAmount
	}
	switch s {
	case "", "-", ".", "-.":
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Format renders a decimal in accounting format: fixed 2 decimals with comma
// thousands separators, e.g. 1234.5 -> "1,234.50".
func Format(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// Normalize re-canonicalizes a free-text price, as the editor does on blur.
func Normalize(s string) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(d), nil
}
