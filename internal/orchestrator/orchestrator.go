package orchestrator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"ezconfig-cli/internal/config"
	"ezconfig-cli/internal/interactive"
	"ezconfig-cli/internal/interfaces"
	"ezconfig-cli/internal/logging"
	"ezconfig-cli/internal/schema"
	"ezconfig-cli/internal/store"
	"ezconfig-cli/internal/template"
	"ezconfig-cli/internal/ui"
	"ezconfig-cli/pkg/models"
)

// FieldCollector asks the operator for field declarations
type FieldCollector interface {
	CollectField() (interfaces.FieldDecl, error)
	ConfirmAnother() (bool, error)
	ConfirmOverwrite(path string) (bool, error)
}

// Orchestrator coordinates settings, store, presenter and reader into
// configuration sessions
type Orchestrator struct {
	configManager interfaces.ConfigManager
	renderer      interfaces.TextRenderer
	outputHandler interfaces.OutputHandler
	reader        interactive.LineReader
	out           io.Writer
	logger        logging.Logger
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithReader sets where session input comes from
func WithReader(reader interactive.LineReader) Option {
	return func(o *Orchestrator) {
		o.reader = reader
	}
}

// WithOutput sets where sessions are rendered
func WithOutput(out io.Writer) Option {
	return func(o *Orchestrator) {
		o.out = out
	}
}

// WithOutputHandler replaces the handler used for show and print targets
func WithOutputHandler(handler interfaces.OutputHandler) Option {
	return func(o *Orchestrator) {
		o.outputHandler = handler
	}
}

// WithConfigManager replaces the settings manager
func WithConfigManager(manager interfaces.ConfigManager) Option {
	return func(o *Orchestrator) {
		o.configManager = manager
	}
}

// New creates a new orchestrator with all required components
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		configManager: config.NewManager(),
		renderer:      template.NewProcessor(),
		outputHandler: NewOutputHandler(),
		out:           os.Stdout,
		logger:        logging.Discard,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.reader == nil {
		o.reader = interactive.NewReader(os.Stdin, o.out)
	}
	return o
}

// LoadSettings loads and resolves settings with precedence
func (o *Orchestrator) LoadSettings(request *models.SessionRequest) (*interfaces.Settings, error) {
	if err := o.validateRequest(request); err != nil {
		return nil, err
	}

	// Load schema file first
	if _, err := o.configManager.Load(request.SchemaPath); err != nil {
		return nil, NewConfigurationError(err.Error(), err)
	}

	o.applyFlags(request)

	// Apply precedence resolution
	settings, err := o.configManager.Resolve()
	if err != nil {
		return nil, NewConfigurationError("failed to resolve settings", err)
	}

	// Validate settings
	if err := o.configManager.Validate(settings); err != nil {
		return nil, NewConfigurationError("invalid settings", err)
	}

	o.logger.Debugf("resolved settings for %s with %d declared fields", settings.File, len(settings.Fields))
	return settings, nil
}

// applyFlags hands the command line values to the settings manager
func (o *Orchestrator) applyFlags(request *models.SessionRequest) {
	o.configManager.SetFlag("file", request.File)
	o.configManager.SetFlag("title", request.Title)
	o.configManager.SetFlag("caption", request.Caption)
	o.configManager.SetFlag("banner", request.Banner)
	o.configManager.SetFlag("format", request.Format)
	o.configManager.SetFlag("target", request.Target)
	o.configManager.SetFlag("hide_index", request.HideIndex)
	o.configManager.SetFlag("show_lines", request.ShowLines)
	o.configManager.SetFlag("no_clear", request.NoClear)
	o.configManager.SetFlag("plain", request.Plain)
	o.configManager.SetFlag("headers", request.Headers)
	o.configManager.SetFlag("fields", request.Fields)
}

// BuildOptions turns resolved settings into session options
func (o *Orchestrator) BuildOptions(settings *interfaces.Settings, noTitle bool) (interfaces.Options, error) {
	fields, err := config.BuildFields(settings.Fields)
	if err != nil {
		return interfaces.Options{}, NewSchemaError(fieldFromError(settings.Fields, err), err)
	}
	if len(fields) == 0 {
		return interfaces.Options{}, NewSchemaError("", nil)
	}

	var presenter interfaces.Presenter = ui.NewTablePresenter()
	if settings.Plain {
		presenter = ui.NewPlainPresenter()
	}

	return interfaces.Options{
		Fields:      fields,
		Path:        settings.File,
		HideIndex:   settings.HideIndex,
		ShowLines:   settings.ShowLines,
		NoClear:     settings.NoClear,
		Title:       settings.Title,
		NoTitle:     noTitle,
		Caption:     settings.Caption,
		Headers:     settings.Headers,
		HeaderStyle: settings.HeaderStyle,
		KeyStyle:    settings.KeyStyle,
		ValueStyle:  settings.ValueStyle,
		Presenter:   presenter,
		Banner:      settings.Banner,
	}, nil
}

// Configure runs the interactive editor and returns how it ended together
// with the final configuration
func (o *Orchestrator) Configure(request *models.SessionRequest) (interactive.Outcome, schema.Map, error) {
	settings, err := o.LoadSettings(request)
	if err != nil {
		return interactive.OutcomeAborted, nil, err
	}
	opts, err := o.BuildOptions(settings, request.NoTitle)
	if err != nil {
		return interactive.OutcomeAborted, nil, err
	}

	session, err := o.newSession(opts, o.reader, o.out)
	if err != nil {
		return interactive.OutcomeAborted, nil, RecoverFromError(NewStoreError(store.NormalizePath(opts.Path), err))
	}

	outcome, err := session.Run()
	if err != nil {
		return outcome, nil, RecoverFromError(NewStoreError(session.Path(), err))
	}
	o.logger.Infof("configuration session %s for %s", outcome, session.Path())

	final := session.Config()
	if outcome == interactive.OutcomeCompleted && request.Print {
		content, err := o.marshal(opts, final)
		if err != nil {
			return outcome, final, err
		}
		if err := o.Deliver(content, settings.Target); err != nil {
			return outcome, final, err
		}
	}
	return outcome, final, nil
}

// Show renders the reconciled configuration once, as a table or as JSON
func (o *Orchestrator) Show(request *models.SessionRequest) error {
	settings, err := o.LoadSettings(request)
	if err != nil {
		return err
	}
	opts, err := o.BuildOptions(settings, request.NoTitle)
	if err != nil {
		return err
	}
	opts.NoClear = true

	var buf bytes.Buffer
	session, err := o.newSession(opts, nil, &buf)
	if err != nil {
		return RecoverFromError(NewStoreError(store.NormalizePath(opts.Path), err))
	}

	var content string
	switch settings.Format {
	case "json":
		data, err := o.marshal(opts, session.Config())
		if err != nil {
			return err
		}
		content = data
	default:
		if err := session.Render(); err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		content = strings.TrimRight(buf.String(), "\n") + "\n"
	}

	return o.Deliver(content, settings.Target)
}

// InitSchema collects field declarations and writes them as a schema file
func (o *Orchestrator) InitSchema(path string, file string, collector FieldCollector) error {
	if path == "" {
		path = config.DefaultSchemaPath
	}

	if _, err := os.Stat(path); err == nil {
		overwrite, err := collector.ConfirmOverwrite(path)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !overwrite {
			o.logger.Infof("kept existing schema file %s", path)
			return nil
		}
	}

	settings := &interfaces.Settings{File: store.NormalizePath(file)}
	for {
		decl, err := collector.CollectField()
		if err != nil {
			return fmt.Errorf("failed to collect field: %w", err)
		}
		settings.Fields = append(settings.Fields, decl)

		another, err := collector.ConfirmAnother()
		if err != nil {
			return fmt.Errorf("failed to collect field: %w", err)
		}
		if !another {
			break
		}
	}

	if _, err := config.BuildFields(settings.Fields); err != nil {
		return NewSchemaError(fieldFromError(settings.Fields, err), err)
	}
	if err := config.WriteSchema(path, settings); err != nil {
		return NewConfigurationError(err.Error(), err)
	}
	o.logger.Infof("wrote %d fields to %s", len(settings.Fields), path)
	return nil
}

// Deliver sends content to the requested target
func (o *Orchestrator) Deliver(content string, target string) error {
	if target == "" {
		target = "stdout" // Default fallback
	}

	// Handle different output targets
	switch {
	case target == "clipboard":
		if err := o.outputHandler.WriteToClipboard(content); err != nil {
			outputErr := NewOutputError(target, err)
			// Try to recover by falling back to stdout
			if IsRecoverableError(outputErr) {
				o.logger.Warnf("%s\nFalling back to stdout:\n", outputErr.Error())
				return o.outputHandler.WriteToStdout(content)
			}
			return RecoverFromError(outputErr)
		}
		o.logger.Infof("configuration copied to clipboard")

	case target == "stdout":
		if err := o.outputHandler.WriteToStdout(content); err != nil {
			outputErr := NewOutputError(target, err)
			return RecoverFromError(outputErr)
		}

	case strings.HasPrefix(target, "file:"):
		filePath := strings.TrimPrefix(target, "file:")
		if err := o.outputHandler.WriteToFile(content, filePath); err != nil {
			outputErr := NewOutputError(target, err)
			return RecoverFromError(outputErr)
		}
		o.logger.Infof("configuration written to %s", filePath)

	default:
		return RecoverFromError(NewValidationError("target", target, "unsupported output target"))
	}

	return nil
}

func (o *Orchestrator) newSession(opts interfaces.Options, reader interactive.LineReader, out io.Writer) (*interactive.Session, error) {
	return interactive.NewSession(opts, reader, out,
		interactive.WithLogger(o.logger),
		interactive.WithRenderer(o.renderer),
	)
}

// marshal renders the configuration as the JSON the store would write
func (o *Orchestrator) marshal(opts interfaces.Options, m schema.Map) (string, error) {
	data, err := store.New(opts.Path, opts.Fields).Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	return string(data), nil
}

// validateRequest validates the session request
func (o *Orchestrator) validateRequest(request *models.SessionRequest) error {
	if request == nil {
		return NewValidationError("request", nil, "request cannot be nil")
	}

	// Validate target format if specified
	if request.Target != "" {
		validTargets := []string{"clipboard", "stdout"}
		isValid := false
		for _, valid := range validTargets {
			if request.Target == valid || strings.HasPrefix(request.Target, "file:") {
				isValid = true
				break
			}
		}
		if !isValid {
			return NewValidationError("target", request.Target, "must be 'clipboard', 'stdout', or 'file:/path'")
		}
	}

	if request.Format != "" && request.Format != "table" && request.Format != "json" {
		return NewValidationError("format", request.Format, "must be 'table' or 'json'")
	}

	if len(request.Headers) > 2 {
		return NewValidationError("headers", strings.Join(request.Headers, ","), "expected two headers")
	}

	// Validate schema path if specified
	if request.SchemaPath != "" {
		if _, err := os.Stat(request.SchemaPath); os.IsNotExist(err) {
			return NewValidationError("schema_path", request.SchemaPath, "file does not exist")
		}
	}

	return nil
}

// fieldFromError finds the declaration an error message refers to
func fieldFromError(decls []interfaces.FieldDecl, err error) string {
	for _, decl := range decls {
		if decl.Name != "" && strings.Contains(err.Error(), fmt.Sprintf("%q", decl.Name)) {
			return decl.Name
		}
	}
	return "?"
}
