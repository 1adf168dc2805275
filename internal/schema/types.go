package schema

import (
	"fmt"
	"strings"
)

// ValueType is the scalar kind a field's value is coerced to
type ValueType int

const (
	String ValueType = iota
	Integer
	Float
	Boolean
)

// String returns the short type name used in user-facing messages
func (t ValueType) String() string {
	switch t {
	case String:
		return "str"
	case Integer:
		return "int"
	case Float:
		return "float"
	case Boolean:
		return "bool"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// ParseValueType converts a type name from a schema file or flag into a ValueType
func ParseValueType(name string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "str", "string":
		return String, nil
	case "int", "integer":
		return Integer, nil
	case "float", "number":
		return Float, nil
	case "bool", "boolean":
		return Boolean, nil
	default:
		return String, fmt.Errorf("unknown value type %q (must be str, int, float or bool)", name)
	}
}

// Map is the reconciled configuration, keyed by declared field name.
// Values are string, int64, float64, bool or nil.
type Map map[string]any

// Clone returns a shallow copy; values are scalars so this is a full copy
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Equal reports whether both maps hold the same keys with equal values
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
