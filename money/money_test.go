package money

import "testing"

func TestAddSub(t *testing.T) {
	a := MustNew("1000.00")
	b := MustNew("25.00")
	if got := a.Sub(b).String(); got != "975.00" {
		t.Fatalf("Sub = %s, want 975.00", got)
	}
	if got := a.Add(b).String(); got != "1025.00" {
		t.Fatalf("Add = %s, want 1025.00", got)
	}
}

func TestHalfUpRounding(t *testing.T) {
	a := MustNew("1.005")
	if got := a.String(); got != "1.01" {
		t.Fatalf("rounding = %s, want 1.01", got)
	}
	b := MustNew("1.004")
	if got := b.String(); got != "1.00" {
		t.Fatalf("rounding = %s, want 1.00", got)
	}
}

func TestSignedZeroCanonical(t *testing.T) {
	neg := MustNew("-0.00")
	if !neg.IsZero() || neg.IsNegative() {
		t.Fatalf("expected canonical zero, got %s", neg.String())
	}
	if neg.Cmp(Zero) != 0 {
		t.Fatalf("expected -0.00 == 0.00")
	}
}

func TestCmp(t *testing.T) {
	if MustNew("10.00").Cmp(MustNew("9.99")) <= 0 {
		t.Fatal("expected 10.00 > 9.99")
	}
}

func TestFormat(t *testing.T) {
	a := MustNew("-1234567.5")
	got := a.Format(FormatConfig{Symbol: "R", DecimalSeparator: ",", ThousandSeparator: ".", SymbolBeforeAmount: true})
	want := "-R 1.234.567,50"
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := MustNew("42.10")
	b, err := a.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var out Amount
	if err := out.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if out.Cmp(a) != 0 {
		t.Fatalf("round trip mismatch: %s != %s", out, a)
	}
}
