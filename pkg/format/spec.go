package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/barkeep/pkg/errors"
)

// Spec is a parsed format spec:
//
//	[[fill]align][sign][0][width][,][.precision][type]
type Spec struct {
	Fill      rune
	Align     byte // '<', '>', '^', '=' or 0
	Sign      byte // '+', '-', ' ' or 0
	Width     int
	Grouping  bool
	Precision int // -1 when absent
	Verb      byte
}

// ParseSpec parses the text after the colon of a replacement field.
func ParseSpec(text string) (*Spec, error) {
	s := &Spec{Fill: ' ', Precision: -1}
	rest := text

	// fill and align: the align char may be preceded by any single rune
	if r, size := utf8.DecodeRuneInString(rest); size > 0 && len(rest) > size && isAlign(rest[size]) {
		s.Fill = r
		s.Align = rest[size]
		rest = rest[size+1:]
	} else if rest != "" && isAlign(rest[0]) {
		s.Align = rest[0]
		rest = rest[1:]
	}

	if rest != "" && (rest[0] == '+' || rest[0] == '-' || rest[0] == ' ') {
		s.Sign = rest[0]
		rest = rest[1:]
	}

	if rest != "" && rest[0] == '0' {
		if s.Align == 0 {
			s.Fill = '0'
			s.Align = '='
		}
		rest = rest[1:]
	}

	n := leadingDigits(rest)
	if n > 0 {
		s.Width, _ = strconv.Atoi(rest[:n])
		rest = rest[n:]
	}

	if rest != "" && rest[0] == ',' {
		s.Grouping = true
		rest = rest[1:]
	}

	if rest != "" && rest[0] == '.' {
		n = leadingDigits(rest[1:])
		if n == 0 {
			return nil, errors.Newf(errors.ErrTemplateParse, "format spec %q: missing precision", text)
		}
		s.Precision, _ = strconv.Atoi(rest[1 : 1+n])
		rest = rest[1+n:]
	}

	if rest != "" {
		if len(rest) > 1 || !strings.ContainsRune("sdfFeEgGxXob%n", rune(rest[0])) {
			return nil, errors.Newf(errors.ErrTemplateParse, "format spec %q: invalid type %q", text, rest)
		}
		s.Verb = rest[0]
	}

	return s, nil
}

func isAlign(c byte) bool {
	return c == '<' || c == '>' || c == '^' || c == '='
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// formatValue renders a resolved value, applying spec when present.
func formatValue(value any, spec *Spec) string {
	if spec == nil {
		return toString(value)
	}

	switch spec.Verb {
	case 'f', 'F', 'e', 'E', 'g', 'G', '%', 'n':
		if f, ok := asFloat(value); ok {
			return spec.pad(spec.signed(spec.float(f), f < 0), true)
		}
	case 'd', 'x', 'X', 'o', 'b':
		if i, ok := asInt(value); ok {
			return spec.pad(spec.signed(spec.integer(i), i < 0), true)
		}
	case 0:
		switch value.(type) {
		case float64, float32:
			f, _ := asFloat(value)
			return spec.pad(spec.signed(spec.float(f), f < 0), true)
		case string, bool, nil:
		default:
			if i, ok := asInt(value); ok {
				return spec.pad(spec.signed(spec.integer(i), i < 0), true)
			}
		}
	}

	// strings, and numbers rendered with a string spec
	str := toString(value)
	if (spec.Verb == 0 || spec.Verb == 's') && spec.Precision >= 0 && utf8.RuneCountInString(str) > spec.Precision {
		str = string([]rune(str)[:spec.Precision])
	}
	return spec.pad(str, false)
}

// float renders the magnitude of f.
func (s *Spec) float(f float64) string {
	f = math.Abs(f)
	prec := s.Precision
	var out string

	switch s.Verb {
	case 'f', 'F':
		if prec < 0 {
			prec = 6
		}
		out = strconv.FormatFloat(f, 'f', prec, 64)
	case '%':
		if prec < 0 {
			prec = 6
		}
		return group(strconv.FormatFloat(f*100, 'f', prec, 64), s.Grouping) + "%"
	case 'e', 'E':
		if prec < 0 {
			prec = 6
		}
		out = strconv.FormatFloat(f, s.Verb, prec, 64)
	case 'g', 'G', 'n':
		verb := byte('g')
		if s.Verb == 'G' {
			verb = 'G'
		}
		out = strconv.FormatFloat(f, verb, prec, 64)
	default:
		if prec >= 0 {
			out = strconv.FormatFloat(f, 'g', prec, 64)
		} else {
			out = floatString(f)
		}
	}
	return group(out, s.Grouping)
}

// integer renders the magnitude of i.
func (s *Spec) integer(i int64) string {
	if i < 0 {
		i = -i
	}
	switch s.Verb {
	case 'x':
		return strconv.FormatInt(i, 16)
	case 'X':
		return strings.ToUpper(strconv.FormatInt(i, 16))
	case 'o':
		return strconv.FormatInt(i, 8)
	case 'b':
		return strconv.FormatInt(i, 2)
	default:
		return group(strconv.FormatInt(i, 10), s.Grouping)
	}
}

func (s *Spec) signed(digits string, negative bool) string {
	switch {
	case negative:
		return "-" + digits
	case s.Sign == '+':
		return "+" + digits
	case s.Sign == ' ':
		return " " + digits
	default:
		return digits
	}
}

// pad applies width, fill and alignment. Numbers default to right
// alignment, everything else to left.
func (s *Spec) pad(str string, numeric bool) string {
	n := utf8.RuneCountInString(str)
	if s.Width <= n {
		return str
	}
	gap := s.Width - n
	fill := strings.Repeat(string(s.Fill), gap)

	align := s.Align
	if align == 0 {
		align = '<'
		if numeric {
			align = '>'
		}
	}

	switch align {
	case '>':
		return fill + str
	case '^':
		left := gap / 2
		return strings.Repeat(string(s.Fill), left) + str + strings.Repeat(string(s.Fill), gap-left)
	case '=':
		if numeric && str != "" && (str[0] == '-' || str[0] == '+' || str[0] == ' ') {
			return str[:1] + fill + str[1:]
		}
		return fill + str
	default:
		return str + fill
	}
}

// group inserts thousands separators into the integer part of a number.
func group(num string, enabled bool) string {
	if !enabled {
		return num
	}
	intPart, frac := num, ""
	if i := strings.IndexAny(num, ".eE"); i >= 0 {
		intPart, frac = num[:i], num[i:]
	}
	if len(intPart) <= 3 {
		return num
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + frac
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return floatString(v)
	case float32:
		return floatString(float64(v))
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// floatString renders a float the short way, keeping one decimal on whole
// numbers (42.0) so percentages read the same on every refresh.
func floatString(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	if i, ok := asInt(value); ok {
		return float64(i), true
	}
	return 0, false
}

func asInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		if v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		if float64(v) == math.Trunc(float64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}
