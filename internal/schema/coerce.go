package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// nullToken is typed by the operator to clear a value
const nullToken = "~"

// Coerce converts operator input into a value of type t. Empty input and "~"
// always yield nil; whether the field accepts nil is checked when the
// session finishes, not here.
func Coerce(key, raw string, t ValueType) (any, error) {
	value := strings.TrimSpace(raw)
	if value == "" || value == nullToken {
		return nil, nil
	}

	switch t {
	case Boolean:
		switch strings.ToLower(value) {
		case "0", "false":
			return false, nil
		case "1", "true":
			return true, nil
		}
	case Integer:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n, nil
		}
	case Float:
		// JSON has no NaN or infinity, so neither could be saved
		if f, err := strconv.ParseFloat(value, 64); err == nil && isFinite(f) {
			return f, nil
		}
	case String:
		return value, nil
	}

	return nil, &ValueTypeError{Key: key, Value: value, Type: t}
}

// CoerceStored converts a value decoded from the persisted store, or a
// declared default, into type t. It is lenient: "5" becomes 5 for an
// integer field and 10 becomes 10.0 for a float field.
func CoerceStored(v any, t ValueType) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t {
	case String:
		return cast.ToStringE(v)
	case Integer:
		switch n := v.(type) {
		case float64:
			return floatToInt64(n)
		case float32:
			return floatToInt64(float64(n))
		}
		return cast.ToInt64E(v)
	case Float:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, err
		}
		if !isFinite(f) {
			return nil, fmt.Errorf("unable to store %v as float", f)
		}
		return f, nil
	case Boolean:
		if s, ok := v.(string); ok {
			// cast accepts "t", "yes" and friends; stored text follows the input rules
			b, err := Coerce("", s, Boolean)
			if err != nil || b == nil {
				return nil, fmt.Errorf("unable to cast %q to bool", s)
			}
			return b, nil
		}
		return cast.ToBoolE(v)
	default:
		return nil, fmt.Errorf("unsupported value type %s", t)
	}
}

// floatToInt64 accepts only integral values inside the int64 range
func floatToInt64(f float64) (int64, error) {
	if !isFinite(f) || f != math.Trunc(f) || f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, fmt.Errorf("unable to cast %v to int64", f)
	}
	return int64(f), nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
