package app

import (
	"os"
	"path/filepath"
	"testing"

	"ezconfig-cli/pkg/models"
)

func TestContractPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"home itself", home, "~"},
		{"inside home", filepath.Join(home, "app", "config.json"), filepath.Join("~", "app", "config.json")},
		{"outside home", "/opt/app/config.json", "/opt/app/config.json"},
		{"sibling with shared prefix", home + "x/config.json", home + "x/config.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contractPath(tt.path); got != tt.want {
				t.Errorf("contractPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := newLogger(&models.SessionRequest{Debug: true})
	if !logger.Verbose || !logger.Debug {
		t.Errorf("debug should imply verbose, got %+v", logger)
	}
	if logger.Out != os.Stderr {
		t.Error("log lines must not go to stdout")
	}

	logger = newLogger(models.NewSessionRequest())
	if logger.Verbose || logger.Debug {
		t.Errorf("expected a quiet logger, got %+v", logger)
	}
}
