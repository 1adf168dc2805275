package interactive

import (
	"fmt"

	"dario.cat/mergo"

	"ezconfig-cli/internal/interfaces"
	"ezconfig-cli/internal/store"
	"ezconfig-cli/internal/ui"
)

// Default presentation settings
const (
	DefaultTitle       = "ezconfig({{ .Path }})"
	DefaultHeaderStyle = "bold white"
	DefaultKeyStyle    = "bold cyan"
	DefaultValueStyle  = "bold green"
)

// DefaultOptions returns the settings used for anything left unset
func DefaultOptions() interfaces.Options {
	return interfaces.Options{
		Path:        store.DefaultPath,
		Title:       DefaultTitle,
		HeaderStyle: DefaultHeaderStyle,
		KeyStyle:    DefaultKeyStyle,
		ValueStyle:  DefaultValueStyle,
	}
}

// ResolveOptions fills the unset fields of opts with the defaults
func ResolveOptions(opts interfaces.Options) (interfaces.Options, error) {
	resolved := opts
	if err := mergo.Merge(&resolved, DefaultOptions()); err != nil {
		return interfaces.Options{}, fmt.Errorf("failed to apply default options: %w", err)
	}
	if resolved.NoTitle {
		resolved.Title = ""
	}
	if resolved.Presenter == nil {
		resolved.Presenter = ui.NewTablePresenter()
	}
	return resolved, nil
}

// DefaultBanner is the edit prompt, styled with the key and value styles
func DefaultBanner(keyStyle, valueStyle string) string {
	key := ui.MustStyle(keyStyle)
	value := ui.MustStyle(valueStyle)
	enter := ui.MustStyle("bold " + valueStyle)
	return fmt.Sprintf("input %s=%s to configure\nOr press %s to continue\n",
		key.Sprint("KEY"), value.Sprint("VALUE"), enter.Sprint("ENTER"))
}
