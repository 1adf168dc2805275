package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLogger_Levels(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name    string
		logger  Logger
		wantOut []string
		wantErr []string
	}{
		{
			name:    "quiet logger only writes warnings and errors",
			logger:  Logger{},
			wantErr: []string{"[warn] disk 1", "[error] boom"},
		},
		{
			name:    "verbose adds info",
			logger:  Logger{Verbose: true},
			wantOut: []string{"[info] wrote config.json"},
			wantErr: []string{"[warn] disk 1", "[error] boom"},
		},
		{
			name:    "debug adds debug",
			logger:  Logger{Verbose: true, Debug: true},
			wantOut: []string{"[info] wrote config.json", "[debug] field DELAY"},
			wantErr: []string{"[warn] disk 1", "[error] boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := tt.logger
			l.Out = &out
			l.Err = &errOut

			l.Infof("wrote %s", "config.json")
			l.Debugf("field %s", "DELAY")
			l.Warnf("disk %d", 1)
			l.Errorf("boom")

			assertLines(t, out.String(), tt.wantOut)
			assertLines(t, errOut.String(), tt.wantErr)
		})
	}
}

func assertLines(t *testing.T, got string, want []string) {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(want) == 0 {
		if strings.TrimSpace(got) != "" {
			t.Errorf("expected no output, got %q", got)
		}
		return
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), got)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want[i])
		}
	}
}
