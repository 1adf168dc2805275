package interfaces

import (
	"ezconfig-cli/internal/schema"
)

// FieldDecl is a field as declared in a schema file or on the command line
type FieldDecl struct {
	Name     string `mapstructure:"name" toml:"name"`
	Type     string `mapstructure:"type" toml:"type"`
	Default  any    `mapstructure:"default" toml:"default,omitempty"`
	Required bool   `mapstructure:"required" toml:"required"`
}

// Settings represents the resolved application configuration
type Settings struct {
	File        string      `mapstructure:"file"`
	Title       string      `mapstructure:"title"`
	Caption     string      `mapstructure:"caption"`
	Headers     []string    `mapstructure:"headers"`
	Banner      string      `mapstructure:"banner"`
	HideIndex   bool        `mapstructure:"hide_index"`
	ShowLines   bool        `mapstructure:"show_lines"`
	NoClear     bool        `mapstructure:"no_clear"`
	Plain       bool        `mapstructure:"plain"`
	HeaderStyle string      `mapstructure:"header_style"`
	KeyStyle    string      `mapstructure:"key_style"`
	ValueStyle  string      `mapstructure:"value_style"`
	Format      string      `mapstructure:"format"`
	Target      string      `mapstructure:"target"`
	Fields      []FieldDecl `mapstructure:"fields"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads settings from the specified schema file
	Load(path string) (*Settings, error)

	// SetFlag records a command line value that overrides everything else
	SetFlag(key string, value interface{})

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Settings, error)

	// Validate validates the settings values
	Validate(settings *Settings) error
}

// Options configure one configuration session. Zero values select the
// defaults, so the boolean switches are phrased as opt-outs.
type Options struct {
	Fields schema.Fields
	Path   string

	HideIndex bool
	ShowLines bool
	NoClear   bool

	// Title, Caption and Headers are text templates receiving the resolved
	// file path as {{ .Path }}.
	Title   string
	NoTitle bool
	Caption string
	Headers []string

	HeaderStyle string
	KeyStyle    string
	ValueStyle  string

	Presenter Presenter
	Banner    string
}
