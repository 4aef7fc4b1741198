// Package format implements d3-format compatible number formatting.
//
// A specifier has the shape
//
//	[sign][,][.precision][~][type]
//
// where sign is one of "-", "+", " " or "(", the comma enables thousands
// grouping, "~" trims insignificant trailing zeros and type is one of
//
//	e  exponent notation
//	f  fixed point
//	g  decimal or exponent notation, rounded to significant digits
//	r  decimal notation, rounded to significant digits
//	s  decimal notation with an SI prefix, rounded to significant digits
//	%  multiply by 100, fixed point, then append "%"
//	d  integer, rounded
//
// An empty type behaves like "~g" with twelve significant digits. Fill,
// alignment, width and currency symbols are not supported.
//
// Negative values use an ASCII hyphen-minus.
package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/gaugechart/pkg/errors"
)

// Func formats a number.
type Func func(float64) string

// Spec is a parsed format specifier.
type Spec struct {
	Sign      byte // '-', '+', ' ' or '('
	Comma     bool
	Precision int // -1 when unspecified
	Trim      bool
	Type      byte // 0 when unspecified
}

var specRe = regexp.MustCompile(`^([+\-( ])?(,)?(\.\d+)?(~)?([defgrs%])?$`)

var siPrefixes = []string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "G", "T", "P", "E", "Z", "Y"}

var grouper = message.NewPrinter(language.English)

// Parse parses a format specifier such as ".2s" or ",.0f".
func Parse(spec string) (Spec, error) {
	m := specRe.FindStringSubmatch(spec)
	if m == nil {
		return Spec{}, errors.New(errors.ErrCodeInvalidNumberFormat, "invalid number format: %q", spec)
	}
	s := Spec{Sign: '-', Precision: -1}
	if m[1] != "" {
		s.Sign = m[1][0]
	}
	s.Comma = m[2] != ""
	if m[3] != "" {
		p, err := strconv.Atoi(m[3][1:])
		if err != nil {
			return Spec{}, errors.Wrap(errors.ErrCodeInvalidNumberFormat, err, "invalid precision in %q", spec)
		}
		s.Precision = p
	}
	s.Trim = m[4] != ""
	if m[5] != "" {
		s.Type = m[5][0]
	}
	return s, nil
}

// New returns a formatter for spec.
func New(spec string) (Func, error) {
	s, err := Parse(spec)
	if err != nil {
		return nil, err
	}
	return s.Formatter(), nil
}

// MustNew is like New but panics on an invalid specifier.
func MustNew(spec string) Func {
	f, err := New(spec)
	if err != nil {
		panic(err)
	}
	return f
}

// Formatter returns the formatting function described by s.
func (s Spec) Formatter() Func {
	typ, precision, trim := s.Type, s.Precision, s.Trim
	if typ == 0 {
		if precision < 0 {
			precision = 12
		}
		trim = true
		typ = 'g'
	}
	switch {
	case precision < 0:
		precision = 6
	case strings.IndexByte("grs", typ) >= 0:
		precision = max(1, min(21, precision))
	default:
		precision = max(0, min(20, precision))
	}

	return func(x float64) string {
		if math.IsNaN(x) {
			return "NaN"
		}
		negative := x < 0 || math.Signbit(x)
		if math.IsInf(x, 0) {
			return s.signed("Infinity", "", negative)
		}

		body, suffix := formatAbs(math.Abs(x), typ, precision)
		if trim {
			body = trimZeros(body)
		}
		if negative && isZero(body) && s.Sign != '+' {
			negative = false
		}
		if s.Comma {
			body = group(body)
		}
		return s.signed(body, suffix, negative)
	}
}

func (s Spec) signed(body, suffix string, negative bool) string {
	switch {
	case negative && s.Sign == '(':
		return "(" + body + suffix + ")"
	case negative:
		return "-" + body + suffix
	case s.Sign == '+':
		return "+" + body + suffix
	case s.Sign == ' ':
		return " " + body + suffix
	default:
		return body + suffix
	}
}

// formatAbs formats a non-negative value, returning the numeric body and a
// suffix that trimming and grouping must not touch.
func formatAbs(x float64, typ byte, p int) (string, string) {
	switch typ {
	case 'd':
		return strconv.FormatFloat(math.Round(x), 'f', 0, 64), ""
	case 'e':
		return exponential(x, p), ""
	case 'f':
		return strconv.FormatFloat(x, 'f', p, 64), ""
	case '%':
		return strconv.FormatFloat(x*100, 'f', p, 64), "%"
	case 'g':
		return toPrecision(x, p), ""
	case 'r':
		return rounded(x, p), ""
	case 's':
		return prefixAuto(x, p)
	}
	return strconv.FormatFloat(x, 'g', -1, 64), ""
}

// decimalParts returns the p significant digits of x and its decimal exponent,
// so that x ≈ 0.digits × 10^(exp+1).
func decimalParts(x float64, p int) (string, int) {
	s := strconv.FormatFloat(x, 'e', max(0, p-1), 64)
	mant, expStr, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expStr)
	return strings.Replace(mant, ".", "", 1), exp
}

// exponential mirrors Number.prototype.toExponential: no zero padding in the exponent.
func exponential(x float64, p int) string {
	s := strconv.FormatFloat(x, 'e', p, 64)
	mant, expStr, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expStr)
	if exp < 0 {
		return mant + "e-" + strconv.Itoa(-exp)
	}
	return mant + "e+" + strconv.Itoa(exp)
}

// toPrecision mirrors Number.prototype.toPrecision.
func toPrecision(x float64, p int) string {
	if x == 0 {
		if p > 1 {
			return "0." + strings.Repeat("0", p-1)
		}
		return "0"
	}
	_, e := decimalParts(x, p)
	if e < -6 || e >= p {
		return exponential(x, p-1)
	}
	return strconv.FormatFloat(x, 'f', p-1-e, 64)
}

func rounded(x float64, p int) string {
	coef, exp := decimalParts(x, p)
	switch {
	case exp < 0:
		return "0." + strings.Repeat("0", -exp-1) + coef
	case len(coef) > exp+1:
		return coef[:exp+1] + "." + coef[exp+1:]
	default:
		return coef + strings.Repeat("0", exp-len(coef)+1)
	}
}

// prefixAuto rounds x to p significant digits and scales it to the nearest
// SI prefix at or below its magnitude.
func prefixAuto(x float64, p int) (string, string) {
	coef, exp := decimalParts(x, p)
	prefixExp := int(max(-8, min(8, math.Floor(float64(exp)/3)))) * 3
	symbol := siPrefixes[8+prefixExp/3]
	i := exp - prefixExp + 1
	n := len(coef)
	switch {
	case i == n:
		return coef, symbol
	case i > n:
		return coef + strings.Repeat("0", i-n), symbol
	case i > 0:
		return coef[:i] + "." + coef[i:], symbol
	default:
		digits, _ := decimalParts(x, max(0, p+i-1))
		return "0." + strings.Repeat("0", -i) + digits, symbol
	}
}

// trimZeros removes insignificant trailing zeros from the mantissa.
func trimZeros(s string) string {
	mant, exp, hasExp := strings.Cut(s, "e")
	if strings.Contains(mant, ".") {
		mant = strings.TrimRight(mant, "0")
		mant = strings.TrimSuffix(mant, ".")
	}
	if hasExp {
		return mant + "e" + exp
	}
	return mant
}

func isZero(s string) bool {
	mant, _, _ := strings.Cut(s, "e")
	return strings.Trim(mant, "0.") == ""
}

// group inserts thousands separators into the integer part of s.
func group(s string) string {
	end := strings.IndexAny(s, ".e")
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return s
	}
	return grouper.Sprintf("%d", n) + s[end:]
}
