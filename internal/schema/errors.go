package schema

import "fmt"

// ValueTypeError is returned when input text cannot be coerced to a field's type
type ValueTypeError struct {
	Key   string
	Value string
	Type  ValueType
}

func (e *ValueTypeError) Error() string {
	return fmt.Sprintf("value %s should be instance of %s, not \"%s\"", e.Key, e.Type, e.Value)
}
