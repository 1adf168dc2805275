package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"ezconfig-cli/internal/interfaces"
	"ezconfig-cli/internal/schema"
	"ezconfig-cli/internal/ui"
)

// DefaultSchemaPath is the schema file looked up when none is given
const DefaultSchemaPath = "ezconfig.toml"

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("EZCONFIG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("file", "config.json")
	v.SetDefault("title", "ezconfig({{ .Path }})")
	v.SetDefault("caption", "")
	v.SetDefault("banner", "")
	v.SetDefault("hide_index", false)
	v.SetDefault("show_lines", false)
	v.SetDefault("no_clear", false)
	v.SetDefault("plain", false)
	v.SetDefault("header_style", "bold white")
	v.SetDefault("key_style", "bold cyan")
	v.SetDefault("value_style", "bold green")
	v.SetDefault("format", "table")
	v.SetDefault("target", "stdout")
}

// Load loads settings from the specified schema file. An empty path looks for
// ezconfig.toml in the working directory and falls back to the defaults.
func (m *Manager) Load(path string) (*interfaces.Settings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultSchemaPath
	}
	path = expandPath(path)

	// Check if schema file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("schema file %s does not exist", path)
		}
		return m.getSettingsFromViper()
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return m.getSettingsFromViper()
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Settings, error) {
	settings, err := m.getSettingsFromViper()
	if err != nil {
		return nil, err
	}

	// Apply flag overrides (highest precedence)
	if err := m.applyFlagOverrides(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// applyFlagOverrides applies flag values over the settings
func (m *Manager) applyFlagOverrides(settings *interfaces.Settings) error {
	stringFlags := map[string]*string{
		"file":         &settings.File,
		"title":        &settings.Title,
		"caption":      &settings.Caption,
		"banner":       &settings.Banner,
		"format":       &settings.Format,
		"target":       &settings.Target,
		"header_style": &settings.HeaderStyle,
		"key_style":    &settings.KeyStyle,
		"value_style":  &settings.ValueStyle,
	}
	for key, dst := range stringFlags {
		if val, exists := m.flags[key]; exists && val != nil {
			if str, ok := val.(string); ok && str != "" {
				*dst = str
			}
		}
	}

	boolFlags := map[string]*bool{
		"hide_index": &settings.HideIndex,
		"show_lines": &settings.ShowLines,
		"no_clear":   &settings.NoClear,
		"plain":      &settings.Plain,
	}
	for key, dst := range boolFlags {
		if val, exists := m.flags[key]; exists && val != nil {
			if b, ok := val.(bool); ok && b {
				*dst = true
			}
		}
	}

	if val, exists := m.flags["headers"]; exists && val != nil {
		if headers, ok := val.([]string); ok && len(headers) > 0 {
			settings.Headers = headers
		}
	}

	// fields given on the command line come first so they win over the
	// schema file's declarations of the same name
	if val, exists := m.flags["fields"]; exists && val != nil {
		if specs, ok := val.([]string); ok && len(specs) > 0 {
			decls := make([]interfaces.FieldDecl, 0, len(specs)+len(settings.Fields))
			for _, spec := range specs {
				decl, err := ParseFieldFlag(spec)
				if err != nil {
					return err
				}
				decls = append(decls, decl)
			}
			settings.Fields = append(decls, settings.Fields...)
		}
	}

	settings.File = expandPath(settings.File)
	return nil
}

// Validate validates the settings values
func (m *Manager) Validate(settings *interfaces.Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}

	// Validate format
	validFormats := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validFormats[settings.Format] {
		return fmt.Errorf("invalid format: %s (must be 'table' or 'json')", settings.Format)
	}

	// Validate target
	validTargets := map[string]bool{
		"clipboard": true,
		"stdout":    true,
	}
	// Also allow file: prefix
	if !validTargets[settings.Target] && !strings.HasPrefix(settings.Target, "file:") {
		return fmt.Errorf("invalid target: %s (must be 'clipboard', 'stdout', or 'file:/path')", settings.Target)
	}

	if len(settings.Headers) > 2 {
		return fmt.Errorf("invalid headers: expected a key header and a value header, got %d", len(settings.Headers))
	}

	for name, style := range map[string]string{
		"header_style": settings.HeaderStyle,
		"key_style":    settings.KeyStyle,
		"value_style":  settings.ValueStyle,
	} {
		if _, err := ui.ParseStyle(style); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if _, err := BuildFields(settings.Fields); err != nil {
		return err
	}

	return nil
}

// getSettingsFromViper converts viper configuration to Settings
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getSettingsFromViper() (*interfaces.Settings, error) {
	var fields []interfaces.FieldDecl
	if err := m.v.UnmarshalKey("fields", &fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}

	return &interfaces.Settings{
		File:        expandPath(m.v.GetString("file")),
		Title:       m.v.GetString("title"),
		Caption:     m.v.GetString("caption"),
		Headers:     m.v.GetStringSlice("headers"),
		Banner:      m.v.GetString("banner"),
		HideIndex:   m.v.GetBool("hide_index"),
		ShowLines:   m.v.GetBool("show_lines"),
		NoClear:     m.v.GetBool("no_clear"),
		Plain:       m.v.GetBool("plain"),
		HeaderStyle: m.v.GetString("header_style"),
		KeyStyle:    m.v.GetString("key_style"),
		ValueStyle:  m.v.GetString("value_style"),
		Format:      m.v.GetString("format"),
		Target:      m.v.GetString("target"),
		Fields:      fields,
	}, nil
}

// ParseFieldFlag parses a field given as NAME[:type][=default][!]; a
// trailing '!' marks the field as required.
func ParseFieldFlag(spec string) (interfaces.FieldDecl, error) {
	var decl interfaces.FieldDecl

	spec = strings.TrimSpace(spec)
	if strings.HasSuffix(spec, "!") {
		decl.Required = true
		spec = strings.TrimSuffix(spec, "!")
	}

	head, def, hasDefault := strings.Cut(spec, "=")
	if hasDefault && strings.TrimSpace(def) != "" {
		decl.Default = strings.TrimSpace(def)
	}

	name, typeName, _ := strings.Cut(head, ":")
	decl.Name = strings.TrimSpace(name)
	decl.Type = strings.TrimSpace(typeName)

	if decl.Name == "" {
		return interfaces.FieldDecl{}, fmt.Errorf("invalid field %q: name cannot be empty", spec)
	}
	if _, err := schema.ParseValueType(decl.Type); err != nil {
		return interfaces.FieldDecl{}, fmt.Errorf("invalid field %q: %w", spec, err)
	}
	return decl, nil
}

// BuildFields turns declarations into the field collection used by the
// store and the editor
func BuildFields(decls []interfaces.FieldDecl) (schema.Fields, error) {
	specs := make([]schema.FieldSpec, 0, len(decls))
	for _, decl := range decls {
		valueType, err := schema.ParseValueType(decl.Type)
		if err != nil {
			return nil, fmt.Errorf("invalid field %q: %w", decl.Name, err)
		}

		opts := []schema.FieldOption{schema.WithType(valueType)}
		if decl.Default != nil {
			opts = append(opts, schema.WithDefault(decl.Default))
		}
		if decl.Required {
			opts = append(opts, schema.Required())
		}

		spec, err := schema.NewFieldSpec(decl.Name, opts...)
		if err != nil {
			return nil, fmt.Errorf("invalid field %q: %w", decl.Name, err)
		}
		specs = append(specs, spec)
	}
	return schema.NewFields(specs...), nil
}

// WriteSchema writes settings as a TOML schema file
func WriteSchema(path string, settings *interfaces.Settings) error {
	if settings == nil {
		return errors.New("settings cannot be nil")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("file", settings.File)
	if settings.Title != "" {
		v.Set("title", settings.Title)
	}
	if settings.Caption != "" {
		v.Set("caption", settings.Caption)
	}
	if len(settings.Headers) > 0 {
		v.Set("headers", settings.Headers)
	}

	fields := make([]map[string]interface{}, 0, len(settings.Fields))
	for _, decl := range settings.Fields {
		field := map[string]interface{}{
			"name":     decl.Name,
			"type":     decl.Type,
			"required": decl.Required,
		}
		if decl.Default != nil {
			field["default"] = decl.Default
		}
		fields = append(fields, field)
	}
	v.Set("fields", fields)

	path = expandPath(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}
	return nil
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
