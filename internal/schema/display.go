package schema

import (
	"fmt"
	"math"
	"strconv"
)

// DisplayKind tells a presenter how to style a rendered value
type DisplayKind int

const (
	// KindValue is an ordinary value
	KindValue DisplayKind = iota
	// KindNull is null on a field that accepts null
	KindNull
	// KindMissing is null on a required field
	KindMissing
	// KindFalse is boolean false
	KindFalse
)

// Display is a value rendered for the configuration table
type Display struct {
	Text string
	Kind DisplayKind
}

// FormatForDisplay renders a configuration value for presentation
func FormatForDisplay(v any, nullable bool) Display {
	switch val := v.(type) {
	case nil:
		if nullable {
			return Display{Text: nullToken, Kind: KindNull}
		}
		return Display{Text: nullToken, Kind: KindMissing}
	case bool:
		if !val {
			return Display{Text: "false", Kind: KindFalse}
		}
		return Display{Text: "true", Kind: KindValue}
	case float64:
		return Display{Text: formatFloat(val), Kind: KindValue}
	case float32:
		return Display{Text: formatFloat(float64(val)), Kind: KindValue}
	default:
		return Display{Text: fmt.Sprint(val), Kind: KindValue}
	}
}

// formatFloat drops the decimal point for integral values
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	if abs := math.Abs(f); abs < 1e-4 || abs >= 1e16 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
