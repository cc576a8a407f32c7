package money

import "strings"

// FormatConfig is an explicit formatting configuration passed to callers
// that render amounts for humans (the Export Formatter, mainly). It
// replaces a package-level locale singleton: two companies in the same
// process can format differently without touching global state.
type FormatConfig struct {
	Symbol             string // e.g. "R", "$", "Rp"
	DecimalSeparator   string // e.g. "."
	ThousandSeparator  string // e.g. ","
	SymbolBeforeAmount bool
}

// DefaultFormat is a plain, locale-neutral configuration: period decimal
// separator, comma thousands, no currency symbol. It matches the
// decimal-separator convention spec.md §4.H pins for CSV export.
var DefaultFormat = FormatConfig{
	DecimalSeparator:  ".",
	ThousandSeparator: ",",
}

// Format renders a under the given configuration, e.g. "1,234.56" or
// "R 1.234,56" depending on cfg.
func (a Amount) Format(cfg FormatConfig) string {
	neg := a.IsNegative()
	abs := a.Abs()
	raw := abs.String() // "1234.56"

	intPart, fracPart, _ := strings.Cut(raw, ".")
	intPart = groupThousands(intPart, cfg.ThousandSeparator)

	body := intPart
	if cfg.DecimalSeparator != "" {
		body += cfg.DecimalSeparator + fracPart
	}

	if cfg.Symbol != "" {
		if cfg.SymbolBeforeAmount {
			body = cfg.Symbol + " " + body
		} else {
			body = body + " " + cfg.Symbol
		}
	}
	if neg {
		body = "-" + body
	}
	return body
}

func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	n := len(digits)
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
