package value

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrArrayAsScalar  = errors.New("array cannot be rendered as a scalar")
	ErrUnexpectedSkip = errors.New("skip sentinel cannot be rendered")
	ErrNotFinite      = errors.New("float value is not finite")
)

// ToInt casts v to an integer. Floats are truncated towards zero, strings
// are read up to the end of their leading number and are 0 when they do not
// start with one. An array casts to 1 if it has elements and 0 otherwise.
func ToInt(v Value) int64 {
	switch v := v.(type) {
	case Bool:
		if v {
			return 1
		}
		return 0
	case Int:
		return int64(v)
	case Float:
		return truncate(float64(v))
	case Str:
		prefix, isFloat := numericPrefix(string(v))
		if prefix == "" {
			return 0
		}
		if !isFloat {
			// On overflow ParseInt returns the nearest representable value.
			n, _ := strconv.ParseInt(prefix, 10, 64)
			return n
		}
		f, _ := strconv.ParseFloat(prefix, 64)
		return truncate(f)
	case Array:
		if v.Len() > 0 {
			return 1
		}
		return 0
	}
	return 0
}

// ToFloat casts v to a float using the same rules as ToInt.
func ToFloat(v Value) float64 {
	switch v := v.(type) {
	case Bool:
		if v {
			return 1
		}
		return 0
	case Int:
		return float64(v)
	case Float:
		return float64(v)
	case Str:
		prefix, _ := numericPrefix(string(v))
		if prefix == "" {
			return 0
		}
		f, _ := strconv.ParseFloat(prefix, 64)
		return f
	case Array:
		if v.Len() > 0 {
			return 1
		}
		return 0
	}
	return 0
}

// Text converts a scalar value to its plain string form. Null and false
// become the empty string.
func Text(v Value) (string, error) {
	switch v := v.(type) {
	case nil, Null:
		return "", nil
	case Bool:
		if v {
			return "1", nil
		}
		return "", nil
	case Int:
		return strconv.FormatInt(int64(v), 10), nil
	case Float:
		return FormatFloat(float64(v))
	case Str:
		return string(v), nil
	case Array:
		return "", ErrArrayAsScalar
	case Skip:
		return "", ErrUnexpectedSkip
	}
	return "", ErrUnsupportedType
}

// FormatFloat returns the shortest decimal text that reads back as f.
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrNotFinite
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// numericPrefix returns the longest prefix of s, ignoring leading whitespace,
// that reads as a decimal number. isFloat is true when the prefix has a
// fraction or an exponent.
func numericPrefix(s string) (prefix string, isFloat bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
			isFloat = true
		}
	}
	if digits == 0 {
		return "", false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
			isFloat = true
		}
	}
	return s[:i], isFloat
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
