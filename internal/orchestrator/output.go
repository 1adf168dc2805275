package orchestrator

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"ezconfig-cli/internal/interfaces"
)

// OutputHandler implements the OutputHandler interface
type OutputHandler struct {
	stdout io.Writer
}

// NewOutputHandler creates a new output handler writing to os.Stdout
func NewOutputHandler() interfaces.OutputHandler {
	return &OutputHandler{stdout: os.Stdout}
}

// WriteToClipboard copies content to the system clipboard
func (h *OutputHandler) WriteToClipboard(content string) error {
	return clipboard.WriteAll(content)
}

// WriteToStdout writes content to standard output
func (h *OutputHandler) WriteToStdout(content string) error {
	_, err := fmt.Fprint(h.stdout, content)
	return err
}

// WriteToFile writes content to the specified file path
func (h *OutputHandler) WriteToFile(content string, path string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
