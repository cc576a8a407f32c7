// Package money implements fixed-scale decimal arithmetic for the ledger.
//
// Every amount in the kernel is scale-2, half-up rounded, and compared
// exactly. No floating point participates in posting or reporting.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the fixed number of decimal places every Amount is rounded to.
const Scale = 2

// Amount is a scale-2 monetary value backed by shopspring/decimal.
type Amount struct {
	d decimal.Decimal
}

// Zero is the canonical zero amount.
var Zero = Amount{d: decimal.Zero}

// New builds an Amount from a string such as "1234.56". Returns an error
// if the string is not a valid decimal literal.
func New(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return normalize(d), nil
}

// MustNew is New but panics on error; intended for literals in tests and
// seed data, never for untrusted input.
func MustNew(s string) Amount {
	a, err := New(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromCents builds an Amount from an integer cent count, e.g. 123456 -> 1234.56.
func FromCents(cents int64) Amount {
	return normalize(decimal.New(cents, -int32(Scale)))
}

// FromFloat builds an Amount from a float64, rounding half-up to scale 2.
// Only used at I/O boundaries (e.g. a GORM decimal(18,2) column scanned as
// float64); never used mid-computation.
func FromFloat(f float64) Amount {
	return normalize(decimal.NewFromFloat(f))
}

func normalize(d decimal.Decimal) Amount {
	r := d.Round(Scale)
	if r.IsZero() {
		// Canonicalise signed zero: -0.00 == 0.00.
		return Amount{d: decimal.Zero}
	}
	return Amount{d: r}
}

// Add returns a+b.
func (a Amount) Add(b Amount) Amount { return normalize(a.d.Add(b.d)) }

// Sub returns a-b.
func (a Amount) Sub(b Amount) Amount { return normalize(a.d.Sub(b.d)) }

// Neg returns -a.
func (a Amount) Neg() Amount { return normalize(a.d.Neg()) }

// Abs returns |a|.
func (a Amount) Abs() Amount { return normalize(a.d.Abs()) }

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

// IsZero reports whether a is exactly zero.
func (a Amount) IsZero() bool { return a.d.IsZero() }

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool { return a.d.IsPositive() }

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool { return a.d.IsNegative() }

// String renders the amount with exactly 2 decimal places, e.g. "1234.56".
func (a Amount) String() string { return a.d.StringFixed(Scale) }

// Float64 returns the amount as a float64, for interop boundaries only
// (e.g. a GORM decimal column, or a chart rendering library).
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// Value implements driver.Valuer so Amount can be written to a decimal(18,2)
// column directly.
func (a Amount) Value() (driver.Value, error) {
	return a.d.StringFixed(Scale), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = Zero
		return nil
	case float64:
		*a = FromFloat(v)
		return nil
	case string:
		amt, err := New(v)
		if err != nil {
			return err
		}
		*a = amt
		return nil
	case []byte:
		amt, err := New(string(v))
		if err != nil {
			return err
		}
		*a = amt
		return nil
	default:
		return fmt.Errorf("money: cannot scan %T into Amount", value)
	}
}

// MarshalJSON renders the amount as a JSON string to avoid float
// round-tripping through JSON numbers.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string or number into an Amount.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*a = Zero
		return nil
	}
	amt, err := New(s)
	if err != nil {
		return err
	}
	*a = amt
	return nil
}
