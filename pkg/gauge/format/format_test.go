package format

import (
	"math"
	"testing"

	"github.com/matzehuels/gaugechart/pkg/errors"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		spec string
		in   float64
		want string
	}{
		// SI prefix, the gauge default
		{".2s", 0, "0.0"},
		{".2s", 25, "25"},
		{".2s", 100, "100"},
		{".2s", 42, "42"},
		{".2s", 1500, "1.5k"},
		{".2s", 1234567, "1.2M"},
		{".2s", 0.5, "500m"},
		{".2s", -1500, "-1.5k"},
		{".3~s", 1500, "1.5k"},
		{"~s", 0, "0"},

		// integers
		{"d", 12.7, "13"},
		{"d", 0, "0"},
		{"d", -3.2, "-3"},
		{",d", 1234567, "1,234,567"},

		// fixed
		{".1f", 3.14159, "3.1"},
		{",.2f", 1234.5, "1,234.50"},
		{"f", 1, "1.000000"},
		{".1f", -0.01, "0.0"},

		// percent
		{".0%", 0.123, "12%"},
		{".1%", 0.5, "50.0%"},

		// exponent
		{".3e", 12346, "1.235e+4"},
		{".1e", 0.00042, "4.2e-4"},

		// significant digits
		{".3g", 1, "1.00"},
		{".3g", 0.0001234, "0.000123"},
		{".3g", 1234567, "1.23e+6"},
		{".2r", 0.01234, "0.012"},
		{".2r", 1234, "1200"},
		{".3r", 12.34, "12.3"},

		// no type
		{"", 1.5, "1.5"},
		{"", 0.30000000000000004, "0.3"},

		// signs
		{"+.1f", 2, "+2.0"},
		{"+.1f", -2, "-2.0"},
		{" .1f", 2, " 2.0"},
		{"(.1f", -2, "(2.0)"},
		{"(.1f", 2, "2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			f, err := New(tt.spec)
			if err != nil {
				t.Fatalf("New(%q) error: %v", tt.spec, err)
			}
			if got := f(tt.in); got != tt.want {
				t.Errorf("format(%q)(%v) = %q, want %q", tt.spec, tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatNonFinite(t *testing.T) {
	f := MustNew(".2s")
	if got := f(math.NaN()); got != "NaN" {
		t.Errorf("NaN = %q", got)
	}
	if got := f(math.Inf(1)); got != "Infinity" {
		t.Errorf("+Inf = %q", got)
	}
	if got := f(math.Inf(-1)); got != "-Infinity" {
		t.Errorf("-Inf = %q", got)
	}
}

func TestParse(t *testing.T) {
	s, err := Parse("+,.3~f")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.Sign != '+' || !s.Comma || s.Precision != 3 || !s.Trim || s.Type != 'f' {
		t.Errorf("Parse() = %+v", s)
	}

	s, err = Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") error: %v", err)
	}
	if s.Precision != -1 || s.Type != 0 || s.Sign != '-' {
		t.Errorf("Parse(\"\") = %+v", s)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, spec := range []string{"x", ".2q", "$.2f", "010d", "abc"} {
		if _, err := New(spec); !errors.Is(err, errors.ErrCodeInvalidNumberFormat) {
			t.Errorf("New(%q) error = %v, want INVALID_NUMBER_FORMAT", spec, err)
		}
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on invalid spec")
		}
	}()
	MustNew("??")
}
