package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ezconfig-cli/internal/config"
	"ezconfig-cli/internal/interactive"
	"ezconfig-cli/internal/logging"
	"ezconfig-cli/internal/orchestrator"
	"ezconfig-cli/pkg/models"
)

// Run executes the interactive configuration session and reports how it ended
func Run(request *models.SessionRequest) (interactive.Outcome, error) {
	logger := newLogger(request)
	orch := orchestrator.New(orchestrator.WithLogger(logger))

	outcome, final, err := orch.Configure(request)
	if err != nil {
		return outcome, err
	}
	logger.Debugf("final configuration has %d values", len(final))
	return outcome, nil
}

// Show prints the reconciled configuration without starting the editor
func Show(request *models.SessionRequest) error {
	orch := orchestrator.New(orchestrator.WithLogger(newLogger(request)))
	if err := orch.Show(request); err != nil {
		return fmt.Errorf("show failed: %w", err)
	}
	return nil
}

// Init asks for field declarations and writes them as a schema file
func Init(request *models.SessionRequest, path string) error {
	logger := newLogger(request)
	orch := orchestrator.New(orchestrator.WithLogger(logger))

	if path == "" {
		path = config.DefaultSchemaPath
	}
	if err := orch.InitSchema(path, request.File, interactive.NewFieldPrompter()); err != nil {
		return fmt.Errorf("init failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Schema file: %s\n", contractPath(path))
	return nil
}

// newLogger keeps log lines off stdout, which belongs to the session
func newLogger(request *models.SessionRequest) logging.Logger {
	return logging.Logger{
		Verbose: request.Verbose || request.Debug,
		Debug:   request.Debug,
		Out:     os.Stderr,
		Err:     os.Stderr,
	}
}

// contractPath converts a full path back to use ~ for the home directory
func contractPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	// Add trailing slash to home directory for proper matching
	homeDirWithSlash := homeDir + string(filepath.Separator)
	pathWithSlash := path + string(filepath.Separator)

	// Check if path starts with home directory
	if strings.HasPrefix(pathWithSlash, homeDirWithSlash) {
		// Replace home directory with ~
		relativePath := path[len(homeDir):]
		if relativePath == "" {
			return "~"
		}
		return "~" + relativePath
	}

	return path
}
