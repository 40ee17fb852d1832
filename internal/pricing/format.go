package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// nbsp separates the symbol and digit groups in en-ZA currency output.
const nbsp = '\u00a0'

// FormatPrice renders an amount the way en-ZA displays rand, e.g.
// "R\u00a01\u00a0232,00". Negative amounts lead with the sign.
func FormatPrice(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('R')
	b.WriteRune(nbsp)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteRune(nbsp)
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// ServiceSlug lowercases name, keeps ASCII letters and digits and collapses
// every run of other characters, accented letters included, into one dash.
func ServiceSlug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
