package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"ezconfig-cli/internal/interfaces"
	"ezconfig-cli/internal/schema"
)

func init() {
	color.NoColor = true
}

func sampleTable() *interfaces.Table {
	return &interfaces.Table{
		Title:   "ezconfig(config.json)",
		Caption: "input KEY=VALUE to configure",
		Headers: []string{"KEY", "VALUE"},
		Rows: []interfaces.Row{
			{Index: 1, Key: "DELAY", Value: schema.Display{Text: "5", Kind: schema.KindValue}},
			{Index: 2, Key: "LINK", Value: schema.Display{Text: "~", Kind: schema.KindMissing}},
			{Index: 3, Key: "USE_PROXY", Value: schema.Display{Text: "false", Kind: schema.KindFalse}},
		},
		ShowIndex: true,
		Styles:    interfaces.Styles{Header: "bold white", Key: "bold cyan", Value: "bold green"},
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"empty", "", false},
		{"single color", "cyan", false},
		{"modifier and color", "bold cyan", false},
		{"mixed case", "Bold Green", false},
		{"background", "white on blue", false},
		{"bright color", "bright_red", false},
		{"unknown word", "sparkly", true},
		{"unknown background", "white on plaid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStyle(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseStyle(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
		})
	}
}

func TestStyleSprintWithoutColor(t *testing.T) {
	s := MustStyle("bold cyan")
	if got := s.Sprint("KEY"); got != "KEY" {
		t.Errorf("Sprint() = %q, want plain text when color is disabled", got)
	}
	if got := MustStyle("nonsense").Sprint("x"); got != "x" {
		t.Errorf("fallback style Sprint() = %q, want %q", got, "x")
	}
}

func TestWarning(t *testing.T) {
	if got := Warning("key not found"); got != "! key not found" {
		t.Errorf("Warning() = %q, want %q", got, "! key not found")
	}
}

func TestFormatValue(t *testing.T) {
	kinds := []schema.DisplayKind{schema.KindValue, schema.KindNull, schema.KindMissing, schema.KindFalse}
	for _, kind := range kinds {
		got := FormatValue(schema.Display{Text: "abc", Kind: kind}, MustStyle("bold green"))
		if got != "abc" {
			t.Errorf("FormatValue(kind %v) = %q, want %q", kind, got, "abc")
		}
	}
}

func TestTablePresenter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTablePresenter().Present(&buf, sampleTable()); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "ezconfig(config.json)\n") {
		t.Errorf("expected title on first line, got:\n%s", out)
	}
	for _, want := range []string{"KEY", "VALUE", "DELAY", "LINK", "~", "USE_PROXY", "false", "input KEY=VALUE to configure", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "DELAY") > strings.Index(out, "LINK") {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestTablePresenterWithoutIndex(t *testing.T) {
	table := sampleTable()
	table.ShowIndex = false
	table.Title = ""
	table.Caption = ""

	var buf bytes.Buffer
	if err := NewTablePresenter().Present(&buf, table); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "DELAY") && strings.Contains(line, " 1 ") {
			t.Errorf("index column rendered when disabled: %q", line)
		}
	}
}

func TestTablePresenterShowLines(t *testing.T) {
	plain := sampleTable()
	lined := sampleTable()
	lined.ShowLines = true

	var a, b bytes.Buffer
	if err := NewTablePresenter().Present(&a, plain); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if err := NewTablePresenter().Present(&b, lined); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if strings.Count(b.String(), "\n") <= strings.Count(a.String(), "\n") {
		t.Errorf("expected separators between rows when lines are shown:\n%s", b.String())
	}
}

func TestPlainPresenter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPlainPresenter().Present(&buf, sampleTable()); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	want := "ezconfig(config.json)\n" +
		"1. DELAY = 5\n" +
		"2. LINK = ~\n" +
		"3. USE_PROXY = false\n" +
		"input KEY=VALUE to configure\n"
	if got := buf.String(); got != want {
		t.Errorf("Present() =\n%s\nwant\n%s", got, want)
	}
}
