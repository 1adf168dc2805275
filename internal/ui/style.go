// Package ui renders the configuration table and session messages.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"ezconfig-cli/internal/schema"
)

var modifiers = map[string]color.Attribute{
	"bold":      color.Bold,
	"dim":       color.Faint,
	"italic":    color.Italic,
	"underline": color.Underline,
	"blink":     color.BlinkSlow,
	"reverse":   color.ReverseVideo,
	"strike":    color.CrossedOut,
}

var foregrounds = map[string]color.Attribute{
	"black":          color.FgBlack,
	"red":            color.FgRed,
	"green":          color.FgGreen,
	"yellow":         color.FgYellow,
	"blue":           color.FgBlue,
	"magenta":        color.FgMagenta,
	"cyan":           color.FgCyan,
	"white":          color.FgWhite,
	"bright_black":   color.FgHiBlack,
	"bright_red":     color.FgHiRed,
	"bright_green":   color.FgHiGreen,
	"bright_yellow":  color.FgHiYellow,
	"bright_blue":    color.FgHiBlue,
	"bright_magenta": color.FgHiMagenta,
	"bright_cyan":    color.FgHiCyan,
	"bright_white":   color.FgHiWhite,
}

// Style turns text into styled text
type Style struct {
	color *color.Color
}

// ParseStyle parses a token such as "bold cyan" or "italic white on blue".
// Words may appear in any order; "on" makes the next color a background.
func ParseStyle(token string) (Style, error) {
	c := color.New()
	words := strings.Fields(strings.ToLower(token))
	for i := 0; i < len(words); i++ {
		word := words[i]
		if attr, ok := modifiers[word]; ok {
			c.Add(attr)
			continue
		}
		if attr, ok := foregrounds[word]; ok {
			c.Add(attr)
			continue
		}
		if word == "on" && i+1 < len(words) {
			attr, ok := foregrounds[words[i+1]]
			if !ok {
				return Style{}, fmt.Errorf("unknown background color %q in style %q", words[i+1], token)
			}
			// background codes sit 10 above their foreground counterparts
			c.Add(attr + 10)
			i++
			continue
		}
		return Style{}, fmt.Errorf("unknown style word %q in style %q", word, token)
	}
	return Style{color: c}, nil
}

// MustStyle parses a token, falling back to unstyled text on error
func MustStyle(token string) Style {
	s, err := ParseStyle(token)
	if err != nil {
		return Style{color: color.New()}
	}
	return s
}

// Sprint styles the arguments
func (s Style) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if s.color == nil || noColor() {
		return text
	}
	return s.color.Sprint(text)
}

var (
	nullStyle    = MustStyle("bold green")
	missingStyle = MustStyle("bold yellow")
	falseStyle   = MustStyle("bold red")
	markerStyle  = MustStyle("bold white")
	warningStyle = MustStyle("yellow")
)

// FormatValue styles a display value: null differs for optional and required
// fields, false gets its own color, anything else uses the value style.
func FormatValue(d schema.Display, valueStyle Style) string {
	switch d.Kind {
	case schema.KindNull:
		return nullStyle.Sprint(d.Text)
	case schema.KindMissing:
		return missingStyle.Sprint(d.Text)
	case schema.KindFalse:
		return falseStyle.Sprint(d.Text)
	default:
		return valueStyle.Sprint(d.Text)
	}
}

// Warning formats a session warning with its "!" marker
func Warning(msg string) string {
	return markerStyle.Sprint("!") + " " + warningStyle.Sprint(msg)
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}
