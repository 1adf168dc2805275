// Package store reconciles the persisted JSON configuration file with the
// declared fields and writes it back when the in-memory state diverges.
//
// The file is read, parsed and closed on every access. Before each write the
// file is reloaded and reconciled, and the write is skipped when the result
// already matches the caller's map. This is not a lock: a concurrent writer
// that changes the file between the reload and the write is overwritten.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"ezconfig-cli/internal/logging"
	"ezconfig-cli/internal/schema"
)

// DefaultPath is used when no file path is configured
const DefaultPath = "config.json"

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: false,
}

// Store is the persisted side of a configuration session
type Store struct {
	path   string
	fields schema.Fields
	logger logging.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for debug output
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store for the given path; the path's extension is replaced by .json
func New(path string, fields schema.Fields, opts ...Option) *Store {
	s := &Store{
		path:   NormalizePath(path),
		fields: fields,
		logger: logging.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the normalized file path
func (s *Store) Path() string {
	return s.path
}

// Fields returns the declared fields the store reconciles against
func (s *Store) Fields() schema.Fields {
	return s.fields
}

// LoadRaw reads the file as it stands. A missing file or content that is not
// a JSON object yields an empty map; extra keys are kept.
func (s *Store) LoadRaw() (map[string]any, error) {
	raw := make(map[string]any)

	// #nosec G304: the path is chosen by the operator
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debugf("config file %s does not exist, starting empty", s.path)
			return raw, nil
		}
		return nil, fmt.Errorf("unable to read config file %s: %w", s.path, err)
	}

	if !gjson.ValidBytes(content) {
		s.logger.Debugf("config file %s is not valid JSON, starting empty", s.path)
		return raw, nil
	}
	doc := gjson.ParseBytes(content)
	if !doc.IsObject() {
		s.logger.Debugf("config file %s does not hold a JSON object, starting empty", s.path)
		return raw, nil
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		raw[key.String()] = decodeValue(value)
		return true
	})
	return raw, nil
}

// Reconcile loads the file and returns a map holding exactly the declared
// fields. Absent or null entries take the field default; stored values are
// coerced to the field type, falling back to the default when they cannot be.
func (s *Store) Reconcile() (schema.Map, error) {
	raw, err := s.LoadRaw()
	if err != nil {
		return nil, err
	}

	config := make(schema.Map, len(s.fields))
	for _, f := range s.fields {
		stored, ok := raw[f.Name()]
		if !ok || stored == nil {
			config[f.Name()] = f.Default()
			continue
		}

		v, err := schema.CoerceStored(stored, f.Type())
		if err != nil {
			s.logger.Debugf("stored value for %s does not fit type %s (%v), using default", f.Name(), f.Type(), err)
			v = f.Default()
		}
		config[f.Name()] = v
	}
	return config, nil
}

// PersistIfChanged writes current to the file when it differs from a fresh
// reconciliation of the file. It reports whether a write happened.
func (s *Store) PersistIfChanged(current schema.Map) (bool, error) {
	onDisk, err := s.Reconcile()
	if err != nil {
		return false, err
	}
	if onDisk.Equal(current) {
		return false, nil
	}

	content, err := s.Marshal(current)
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(s.path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write config file %s: %w", s.path, err)
	}
	s.logger.Debugf("wrote %d fields to %s", len(s.fields), s.path)
	return true, nil
}

// Marshal renders m as the file content: an indented JSON object whose keys
// follow field declaration order. Keys in m that are not declared fields are
// skipped.
func (s *Store) Marshal(m schema.Map) ([]byte, error) {
	doc := []byte("{}")
	for _, f := range s.fields {
		value, err := json.Marshal(m[f.Name()])
		if err != nil {
			return nil, fmt.Errorf("failed to encode value of %s: %w", f.Name(), err)
		}
		doc, err = sjson.SetRawBytes(doc, escapeKey(f.Name()), value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %s: %w", f.Name(), err)
		}
	}
	return pretty.PrettyOptions(doc, prettyOptions), nil
}

// NormalizePath gives the path a .json extension, replacing any existing one
func NormalizePath(path string) string {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		// dotfile such as ".env" has no extension
		ext = ""
	}
	if ext == ".json" {
		return path
	}
	return strings.TrimSuffix(path, ext) + ".json"
}

// decodeValue converts a gjson value into a plain Go scalar. Integral numbers
// without a fraction or exponent keep full int64 precision.
func decodeValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return v.String()
	case gjson.Number:
		if !strings.ContainsAny(v.Raw, ".eE") {
			if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
				return n
			}
		}
		return v.Float()
	default:
		return v.Value()
	}
}

// escapeKey escapes characters that sjson treats as path syntax
func escapeKey(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '\\', '.', ':', '|', '#', '@', '*', '?':
			b.WriteByte('\\')
		}
		b.WriteByte(key[i])
	}
	return b.String()
}
