package interactive

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"ezconfig-cli/internal/interfaces"
	"ezconfig-cli/internal/schema"
)

// FieldPrompter asks the operator for field declarations
type FieldPrompter struct {
	opts []survey.AskOpt
}

// NewFieldPrompter creates a prompter; opts are passed to every survey question
func NewFieldPrompter(opts ...survey.AskOpt) *FieldPrompter {
	return &FieldPrompter{opts: opts}
}

// CollectField asks for the name, type, default and nullability of one field
func (p *FieldPrompter) CollectField() (interfaces.FieldDecl, error) {
	namePrompt := &survey.Input{
		Message: "Field name:",
		Help:    "The key stored in the configuration file",
	}
	var name string
	if err := survey.AskOne(namePrompt, &name, append(p.opts, survey.WithValidator(survey.Required))...); err != nil {
		return interfaces.FieldDecl{}, err
	}
	name = strings.TrimSpace(name)

	typePrompt := &survey.Select{
		Message: "Value type:",
		Options: []string{
			schema.String.String(),
			schema.Integer.String(),
			schema.Float.String(),
			schema.Boolean.String(),
		},
		Default: schema.String.String(),
	}
	var typeName string
	if err := survey.AskOne(typePrompt, &typeName, p.opts...); err != nil {
		return interfaces.FieldDecl{}, err
	}
	valueType, err := schema.ParseValueType(typeName)
	if err != nil {
		return interfaces.FieldDecl{}, err
	}

	defaultPrompt := &survey.Input{
		Message: "Default value:",
		Help:    "Leave empty or enter ~ for no default",
	}
	var rawDefault string
	validateDefault := func(ans interface{}) error {
		_, err := schema.Coerce(name, fmt.Sprint(ans), valueType)
		return err
	}
	if err := survey.AskOne(defaultPrompt, &rawDefault, append(p.opts, survey.WithValidator(validateDefault))...); err != nil {
		return interfaces.FieldDecl{}, err
	}
	defaultValue, err := schema.Coerce(name, rawDefault, valueType)
	if err != nil {
		return interfaces.FieldDecl{}, err
	}

	requiredPrompt := &survey.Confirm{
		Message: "Is this field required?",
		Help:    "Required fields must hold a value before the editor can be closed",
		Default: false,
	}
	var required bool
	if err := survey.AskOne(requiredPrompt, &required, p.opts...); err != nil {
		return interfaces.FieldDecl{}, err
	}

	return interfaces.FieldDecl{
		Name:     name,
		Type:     valueType.String(),
		Default:  defaultValue,
		Required: required,
	}, nil
}

// ConfirmAnother asks whether to declare one more field
func (p *FieldPrompter) ConfirmAnother() (bool, error) {
	prompt := &survey.Confirm{
		Message: "Add another field?",
		Default: true,
	}
	var another bool
	if err := survey.AskOne(prompt, &another, p.opts...); err != nil {
		return false, err
	}
	return another, nil
}

// ConfirmOverwrite asks the user if they want to overwrite an existing file
func (p *FieldPrompter) ConfirmOverwrite(filePath string) (bool, error) {
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Schema file already exists: %s. Overwrite?", filePath),
		Default: false,
	}
	var overwrite bool
	if err := survey.AskOne(prompt, &overwrite, p.opts...); err != nil {
		return false, err
	}
	return overwrite, nil
}
