// Package interactive runs the edit loop over a persisted configuration.
package interactive

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ezconfig-cli/internal/interfaces"
	"ezconfig-cli/internal/logging"
	"ezconfig-cli/internal/schema"
	"ezconfig-cli/internal/store"
	"ezconfig-cli/internal/template"
	"ezconfig-cli/internal/ui"
)

// clearScreen moves the cursor home and erases the display
const clearScreen = "\x1b[H\x1b[2J"

// Outcome is how a session ended
type Outcome int

const (
	// OutcomeCompleted means every required field holds a value
	OutcomeCompleted Outcome = iota
	// OutcomeAborted means the operator quit or closed the input
	OutcomeAborted
)

func (o Outcome) String() string {
	if o == OutcomeAborted {
		return "aborted"
	}
	return "completed"
}

// Transition is the state a single input line leads to
type Transition int

const (
	// TransitionRender loops back to show the table again
	TransitionRender Transition = iota
	// TransitionTerminal ends the session normally
	TransitionTerminal
	// TransitionExit ends the session on operator request
	TransitionExit
)

// Session edits one configuration file interactively
type Session struct {
	opts     interfaces.Options
	store    *store.Store
	reader   LineReader
	renderer interfaces.TextRenderer
	out      io.Writer
	logger   logging.Logger

	config  schema.Map
	warning error
	banner  string
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithRenderer replaces the template renderer for title, caption, headers
// and banner
func WithRenderer(renderer interfaces.TextRenderer) Option {
	return func(s *Session) {
		s.renderer = renderer
	}
}

// NewSession resolves the options, loads the stored configuration and
// prepares the edit loop.
func NewSession(opts interfaces.Options, reader LineReader, out io.Writer, sessionOpts ...Option) (*Session, error) {
	resolved, err := ResolveOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(resolved.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	s := &Session{
		opts:     resolved,
		reader:   reader,
		renderer: template.NewProcessor(),
		out:      out,
		logger:   logging.Discard,
	}
	for _, opt := range sessionOpts {
		opt(s)
	}

	s.store = store.New(resolved.Path, resolved.Fields, store.WithLogger(s.logger))

	banner := resolved.Banner
	if banner == "" {
		banner = DefaultBanner(resolved.KeyStyle, resolved.ValueStyle)
	}
	if s.banner, err = s.render(banner); err != nil {
		return nil, fmt.Errorf("failed to render banner: %w", err)
	}

	if s.config, err = s.store.Reconcile(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	s.logger.Debugf("loaded %d fields from %s", len(s.config), s.store.Path())
	return s, nil
}

// Path returns the normalized path of the configuration file
func (s *Session) Path() string {
	return s.store.Path()
}

// Config returns a copy of the current configuration
func (s *Session) Config() schema.Map {
	return s.config.Clone()
}

// Warning returns the warning produced by the last input line, if any
func (s *Session) Warning() error {
	return s.warning
}

// Run loops until the operator completes or aborts the session. Only I/O
// failures are returned as errors.
func (s *Session) Run() (Outcome, error) {
	for {
		if err := s.Render(); err != nil {
			return OutcomeAborted, err
		}

		line, err := s.reader.ReadLine(s.banner)
		if errors.Is(err, io.EOF) {
			s.logger.Debugf("input closed, leaving %s unchanged", s.store.Path())
			return OutcomeAborted, nil
		}
		if err != nil {
			return OutcomeAborted, fmt.Errorf("failed to read input: %w", err)
		}

		transition, err := s.Step(line)
		if err != nil {
			return OutcomeAborted, err
		}
		switch transition {
		case TransitionTerminal:
			return OutcomeCompleted, nil
		case TransitionExit:
			return OutcomeAborted, nil
		}
	}
}

// Step applies one line of input. Operator mistakes become the session
// warning and keep the loop going; the returned error is reserved for
// failures to save the configuration.
func (s *Session) Step(line string) (Transition, error) {
	s.warning = nil
	line = strings.TrimSpace(line)

	switch strings.ToLower(line) {
	case "", "enter":
		if field, missing := s.opts.Fields.MissingRequired(s.config); missing {
			s.warning = &RequiredParameterError{Key: field.Name()}
			return TransitionRender, nil
		}
		return TransitionTerminal, nil
	case "exit", "q", "quit":
		return TransitionExit, nil
	}

	lhs, rhs, found := strings.Cut(line, "=")
	if !found {
		s.warning = ErrNoPair
		return TransitionRender, nil
	}

	key := strings.ToLower(strings.TrimSpace(lhs))
	field, ok := s.opts.Fields.Resolve(key)
	if !ok {
		s.warning = &KeyNotFoundError{Key: key}
		return TransitionRender, nil
	}

	value, err := schema.Coerce(field.Name(), rhs, field.Type())
	if err != nil {
		s.warning = err
		return TransitionRender, nil
	}

	s.config[field.Name()] = value
	written, err := s.store.PersistIfChanged(s.config)
	if err != nil {
		return TransitionRender, fmt.Errorf("failed to save configuration: %w", err)
	}
	if written {
		s.logger.Debugf("saved %s to %s", field.Name(), s.store.Path())
	}
	return TransitionRender, nil
}

// Render draws one cycle: the table followed by the pending warning line.
// The warning is cleared afterwards.
func (s *Session) Render() error {
	if !s.opts.NoClear {
		if _, err := io.WriteString(s.out, clearScreen); err != nil {
			return fmt.Errorf("failed to clear screen: %w", err)
		}
	}

	table, err := s.Table()
	if err != nil {
		return err
	}
	if err := s.opts.Presenter.Present(s.out, table); err != nil {
		return fmt.Errorf("failed to present configuration: %w", err)
	}

	message := ""
	if s.warning != nil {
		message = ui.Warning(s.warning.Error())
	}
	s.warning = nil
	if _, err := fmt.Fprintln(s.out, message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// Table builds the presentation of the current configuration
func (s *Session) Table() (*interfaces.Table, error) {
	title, err := s.render(s.opts.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to render title: %w", err)
	}
	caption, err := s.render(s.opts.Caption)
	if err != nil {
		return nil, fmt.Errorf("failed to render caption: %w", err)
	}

	var headers []string
	for _, h := range s.opts.Headers {
		text, err := s.render(h)
		if err != nil {
			return nil, fmt.Errorf("failed to render header: %w", err)
		}
		headers = append(headers, text)
	}

	rows := make([]interfaces.Row, len(s.opts.Fields))
	for i, field := range s.opts.Fields {
		rows[i] = interfaces.Row{
			Index: i + 1,
			Key:   field.Name(),
			Value: schema.FormatForDisplay(s.config[field.Name()], field.Nullable()),
		}
	}

	return &interfaces.Table{
		Title:     title,
		Caption:   caption,
		Headers:   headers,
		Rows:      rows,
		ShowIndex: !s.opts.HideIndex,
		ShowLines: s.opts.ShowLines,
		Styles: interfaces.Styles{
			Header: s.opts.HeaderStyle,
			Key:    s.opts.KeyStyle,
			Value:  s.opts.ValueStyle,
		},
	}, nil
}

func (s *Session) render(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	return s.renderer.Render(text, interfaces.TemplateData{
		Path:   s.store.Path(),
		Fields: len(s.opts.Fields),
	})
}
