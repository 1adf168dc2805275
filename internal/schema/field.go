package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldSpec describes one configurable key
type FieldSpec struct {
	name         string
	defaultValue any
	nullable     bool
	valueType    ValueType
}

// FieldOption configures a FieldSpec at construction
type FieldOption func(*FieldSpec)

// WithDefault sets the value used when the store has nothing for the field
func WithDefault(value any) FieldOption {
	return func(f *FieldSpec) {
		f.defaultValue = value
	}
}

// WithType sets the value type (String when not given)
func WithType(t ValueType) FieldOption {
	return func(f *FieldSpec) {
		f.valueType = t
	}
}

// Required marks the field as not accepting null
func Required() FieldOption {
	return func(f *FieldSpec) {
		f.nullable = false
	}
}

// Nullable sets whether the field accepts null
func Nullable(nullable bool) FieldOption {
	return func(f *FieldSpec) {
		f.nullable = nullable
	}
}

// NewFieldSpec builds a field. The default is coerced to the field type so
// that a default of 5 on a float field is stored as 5.0.
func NewFieldSpec(name string, opts ...FieldOption) (FieldSpec, error) {
	f := FieldSpec{
		name:      strings.TrimSpace(name),
		nullable:  true,
		valueType: String,
	}
	for _, opt := range opts {
		opt(&f)
	}

	if f.name == "" {
		return FieldSpec{}, fmt.Errorf("field name cannot be empty")
	}

	if f.defaultValue != nil {
		v, err := CoerceStored(f.defaultValue, f.valueType)
		if err != nil {
			return FieldSpec{}, fmt.Errorf("invalid default for field %s: %w", f.name, err)
		}
		f.defaultValue = v
	}

	return f, nil
}

// MustFieldSpec is NewFieldSpec for static declarations; it panics on error
func MustFieldSpec(name string, opts ...FieldOption) FieldSpec {
	f, err := NewFieldSpec(name, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the trimmed name as declared
func (f FieldSpec) Name() string { return f.name }

// Default returns the default value, already coerced to the field type
func (f FieldSpec) Default() any { return f.defaultValue }

// Nullable reports whether the field may hold null when the session finishes
func (f FieldSpec) Nullable() bool { return f.nullable }

// Type returns the field's value type
func (f FieldSpec) Type() ValueType { return f.valueType }

func (f FieldSpec) String() string { return f.name }

func (f FieldSpec) key() string { return strings.ToLower(f.name) }

// Fields is an ordered collection of FieldSpecs unique by case-insensitive name
type Fields []FieldSpec

// NewFields de-duplicates specs by lowercased name; the first occurrence wins
// and declaration order is kept.
func NewFields(specs ...FieldSpec) Fields {
	seen := make(map[string]bool, len(specs))
	fields := make(Fields, 0, len(specs))
	for _, spec := range specs {
		if seen[spec.key()] {
			continue
		}
		seen[spec.key()] = true
		fields = append(fields, spec)
	}
	return fields
}

// Resolve finds the field an input key refers to, either by its 1-based
// position or by case-insensitive name.
func (fs Fields) Resolve(key string) (FieldSpec, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, f := range fs {
		if key == strconv.Itoa(i+1) || key == f.key() {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Names returns the declared names in order
func (fs Fields) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.name
	}
	return names
}

// Defaults returns a map holding every field's default
func (fs Fields) Defaults() Map {
	m := make(Map, len(fs))
	for _, f := range fs {
		m[f.name] = f.defaultValue
	}
	return m
}

// MissingRequired returns the first non-nullable field whose value in m is nil
func (fs Fields) MissingRequired(m Map) (FieldSpec, bool) {
	for _, f := range fs {
		if !f.nullable && m[f.name] == nil {
			return f, true
		}
	}
	return FieldSpec{}, false
}
