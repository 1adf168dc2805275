package interfaces

import (
	"io"
	"testing"

	"ezconfig-cli/internal/schema"
)

// Test that all data structures can be built (compilation test)
func TestInterfaceCompilation(t *testing.T) {
	settings := &Settings{
		File:      "config.json",
		Title:     "ezconfig({{ .Path }})",
		HideIndex: true,
		Fields: []FieldDecl{
			{Name: "DELAY", Type: "float", Default: 5},
			{Name: "LINK", Required: true},
		},
	}

	table := &Table{
		Title:     "ezconfig(config.json)",
		Headers:   []string{"Key", "Value"},
		ShowIndex: true,
		Rows: []Row{
			{Index: 1, Key: "DELAY", Value: schema.FormatForDisplay(5.0, true)},
		},
		Styles: Styles{Header: "bold white", Key: "bold cyan", Value: "bold green"},
	}

	options := &Options{
		Fields:    schema.NewFields(schema.MustFieldSpec("LINK")),
		Path:      "config.json",
		Presenter: &mockPresenter{},
	}

	if settings == nil || table == nil || options == nil {
		t.Error("Failed to create interface data structures")
	}
}

// Mock implementations to verify interfaces are properly defined
type mockConfigManager struct{}

func (m *mockConfigManager) Load(path string) (*Settings, error) {
	return &Settings{}, nil
}

func (m *mockConfigManager) SetFlag(key string, value interface{}) {}

func (m *mockConfigManager) Resolve() (*Settings, error) {
	return &Settings{}, nil
}

func (m *mockConfigManager) Validate(settings *Settings) error {
	return nil
}

type mockPresenter struct{}

func (m *mockPresenter) Present(w io.Writer, table *Table) error {
	return nil
}

type mockTextRenderer struct{}

func (m *mockTextRenderer) Render(text string, data TemplateData) (string, error) {
	return text, nil
}

type mockOutputHandler struct{}

func (m *mockOutputHandler) WriteToClipboard(content string) error {
	return nil
}

func (m *mockOutputHandler) WriteToStdout(content string) error {
	return nil
}

func (m *mockOutputHandler) WriteToFile(content string, path string) error {
	return nil
}

// Test that mock implementations satisfy interfaces
func TestInterfaceImplementations(t *testing.T) {
	var _ ConfigManager = &mockConfigManager{}
	var _ Presenter = &mockPresenter{}
	var _ TextRenderer = &mockTextRenderer{}
	var _ OutputHandler = &mockOutputHandler{}
}
