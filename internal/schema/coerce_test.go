package schema

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		valueType ValueType
		want      any
		wantErr   bool
	}{
		{name: "empty is null", raw: "", valueType: Integer, want: nil},
		{name: "blank is null", raw: "   ", valueType: Boolean, want: nil},
		{name: "tilde is null", raw: "~", valueType: Float, want: nil},
		{name: "tilde with spaces is null", raw: "  ~ ", valueType: String, want: nil},
		{name: "bool true", raw: "true", valueType: Boolean, want: true},
		{name: "bool FALSE", raw: "FALSE", valueType: Boolean, want: false},
		{name: "bool one", raw: "1", valueType: Boolean, want: true},
		{name: "bool zero", raw: "0", valueType: Boolean, want: false},
		{name: "bool yes fails", raw: "yes", valueType: Boolean, wantErr: true},
		{name: "integer", raw: "5", valueType: Integer, want: int64(5)},
		{name: "negative integer", raw: " -12 ", valueType: Integer, want: int64(-12)},
		{name: "integer rejects float text", raw: "5.5", valueType: Integer, wantErr: true},
		{name: "integer rejects text", raw: "abc", valueType: Integer, wantErr: true},
		{name: "float", raw: "2.5", valueType: Float, want: 2.5},
		{name: "float from integer text", raw: "20", valueType: Float, want: 20.0},
		{name: "float rejects text", raw: "fast", valueType: Float, wantErr: true},
		{name: "float rejects nan", raw: "nan", valueType: Float, wantErr: true},
		{name: "float rejects inf", raw: "inf", valueType: Float, wantErr: true},
		{name: "float rejects negative infinity", raw: "-Inf", valueType: Float, wantErr: true},
		{name: "string is trimmed", raw: "  https://x  ", valueType: String, want: "https://x"},
		{name: "string keeps equals", raw: "a=b", valueType: String, want: "a=b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce("KEY", tt.raw, tt.valueType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Coerce(%q, %s) = %v, expected error", tt.raw, tt.valueType, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce(%q, %s) unexpected error: %v", tt.raw, tt.valueType, err)
			}
			if got != tt.want {
				t.Errorf("Coerce(%q, %s) = %#v, expected %#v", tt.raw, tt.valueType, got, tt.want)
			}
		})
	}
}

func TestCoerce_ErrorCarriesContext(t *testing.T) {
	_, err := Coerce("DELAY", " abc ", Integer)

	var typeErr *ValueTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected *ValueTypeError, got %T", err)
	}
	if typeErr.Key != "DELAY" || typeErr.Value != "abc" || typeErr.Type != Integer {
		t.Errorf("unexpected error fields: %+v", typeErr)
	}

	want := `value DELAY should be instance of int, not "abc"`
	if err.Error() != want {
		t.Errorf("Error() = %q, expected %q", err.Error(), want)
	}
}

func TestCoerceStored(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		valueType ValueType
		want      any
		wantErr   bool
	}{
		{name: "nil stays nil", value: nil, valueType: Integer, want: nil},
		{name: "json number to float", value: float64(10), valueType: Float, want: 10.0},
		{name: "json number to integer", value: float64(7), valueType: Integer, want: int64(7)},
		{name: "numeric text to integer", value: "7", valueType: Integer, want: int64(7)},
		{name: "int default to float", value: 5, valueType: Float, want: 5.0},
		{name: "number to string", value: float64(3), valueType: String, want: "3"},
		{name: "bool to string", value: true, valueType: String, want: "true"},
		{name: "bool stays bool", value: false, valueType: Boolean, want: false},
		{name: "bool text", value: "TRUE", valueType: Boolean, want: true},
		{name: "bool text outside input rules", value: "yes", valueType: Boolean, wantErr: true},
		{name: "text to integer fails", value: "abc", valueType: Integer, wantErr: true},
		{name: "fractional number to integer fails", value: 7.5, valueType: Integer, wantErr: true},
		{name: "number above int64 fails", value: 1e20, valueType: Integer, wantErr: true},
		{name: "number below int64 fails", value: -1e19, valueType: Integer, wantErr: true},
		{name: "smallest int64 as number", value: float64(math.MinInt64), valueType: Integer, want: int64(math.MinInt64)},
		{name: "nan text to float fails", value: "NaN", valueType: Float, wantErr: true},
		{name: "infinity to float fails", value: math.Inf(1), valueType: Float, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceStored(tt.value, tt.valueType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CoerceStored(%#v, %s) = %#v, expected error", tt.value, tt.valueType, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoerceStored(%#v, %s) unexpected error: %v", tt.value, tt.valueType, err)
			}
			if got != tt.want {
				t.Errorf("CoerceStored(%#v, %s) = %#v, expected %#v", tt.value, tt.valueType, got, tt.want)
			}
		})
	}
}

func TestCoerceProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	types := gen.OneConstOf(String, Integer, Float, Boolean)

	properties.Property("null tokens coerce to nil for every type", prop.ForAll(
		func(vt ValueType, pad int) bool {
			spaces := strings.Repeat(" ", pad)
			empty, errEmpty := Coerce("K", spaces, vt)
			tilde, errTilde := Coerce("K", spaces+"~"+spaces, vt)
			return errEmpty == nil && errTilde == nil && empty == nil && tilde == nil
		},
		types,
		gen.IntRange(0, 4),
	))

	properties.Property("integers survive a text round trip", prop.ForAll(
		func(n int64) bool {
			got, err := Coerce("K", strconv.FormatInt(n, 10), Integer)
			return err == nil && got == n
		},
		gen.Int64(),
	))

	properties.Property("displayed floats coerce back to the same value", prop.ForAll(
		func(f float64) bool {
			text := FormatForDisplay(f, true).Text
			got, err := Coerce("K", text, Float)
			return err == nil && got == f
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("strings are trimmed and otherwise untouched", prop.ForAll(
		func(s string) bool {
			trimmed := strings.TrimSpace(s)
			got, err := Coerce("K", s, String)
			if trimmed == "" || trimmed == "~" {
				return err == nil && got == nil
			}
			return err == nil && got == trimmed
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
