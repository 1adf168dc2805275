package orchestrator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error types for different categories of failures
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrSchemaInvalid        = errors.New("schema error")
	ErrStoreFailed          = errors.New("store error")
	ErrOutputFailed         = errors.New("output error")
	ErrValidationFailed     = errors.New("validation error")
)

// EzConfigError represents a structured error with actionable guidance
type EzConfigError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *EzConfigError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *EzConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the error's category
func (e *EzConfigError) Is(target error) bool {
	return e.Type == target
}

// Error constructors with actionable guidance

func NewConfigurationError(message string, cause error) *EzConfigError {
	guidance := "Check your schema file syntax and the EZCONFIG_* environment variables. " +
		"Use 'ezconfig --schema /path/to/ezconfig.toml' to specify a different schema file."

	if strings.Contains(message, "permission") {
		guidance = "Check file permissions for your schema file and its directory."
	} else if strings.Contains(message, "not found") || strings.Contains(message, "does not exist") {
		guidance = "The schema file doesn't exist. Create one with 'ezconfig init' " +
			"or declare fields directly with --field NAME[:type][=default][!]."
	}

	return &EzConfigError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewSchemaError(field string, cause error) *EzConfigError {
	message := fmt.Sprintf("invalid declaration of field '%s'", field)
	guidance := "Field types must be one of str, int, float or bool, and defaults must match the type."

	if cause != nil && strings.Contains(cause.Error(), "unknown value type") {
		guidance = fmt.Sprintf("Field '%s' has an unknown type. Use str, int, float or bool.", field)
	} else if field == "" {
		message = "no fields declared"
		guidance = "Declare fields in the schema file under [[fields]] or pass them with " +
			"--field NAME[:type][=default][!]."
	}

	return &EzConfigError{
		Type:     ErrSchemaInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewStoreError(path string, cause error) *EzConfigError {
	message := fmt.Sprintf("failed to access configuration file '%s'", path)
	guidance := "Ensure the configuration file path is a regular file you can read and write."

	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = fmt.Sprintf("Permission denied accessing '%s'. Ensure you have read and write "+
			"permissions for the file and its directory.", path)
	} else if cause != nil && strings.Contains(cause.Error(), "is a directory") {
		guidance = fmt.Sprintf("'%s' is a directory. Choose a file path with --file.", path)
	}

	return &EzConfigError{
		Type:     ErrStoreFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewOutputError(target string, cause error) *EzConfigError {
	message := fmt.Sprintf("failed to output to target '%s'", target)
	guidance := "Check that the output target is valid and accessible."

	if target == "clipboard" {
		guidance = "Clipboard access failed. Ensure you're running in a graphical environment " +
			"or try using --target stdout instead."
	} else if strings.HasPrefix(target, "file:") {
		filePath := strings.TrimPrefix(target, "file:")
		guidance = fmt.Sprintf("Failed to write to file '%s'. Check that the directory exists "+
			"and you have write permissions.", filePath)
	}

	return &EzConfigError{
		Type:     ErrOutputFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewValidationError(field string, value interface{}, reason string) *EzConfigError {
	message := fmt.Sprintf("validation failed for %s: %v (%s)", field, value, reason)
	guidance := "Check the input value and ensure it meets the required format."

	switch field {
	case "target":
		guidance = "Target must be 'clipboard', 'stdout', or 'file:/path/to/file'. " +
			"Example: --target file:/tmp/config.json"
	case "format":
		guidance = "Format must be 'table' or 'json'."
	case "headers":
		guidance = "Headers take exactly a key header and a value header. Example: --headers Key,Value"
	case "style":
		guidance = "Styles are words like 'bold cyan' or 'italic white on blue'."
	}

	return &EzConfigError{
		Type:     ErrValidationFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    nil,
	}
}

// Recovery strategies

// RecoverFromError attempts to recover from common errors with fallback strategies
func RecoverFromError(err error) error {
	if err == nil {
		return nil
	}

	var ezErr *EzConfigError
	if !errors.As(err, &ezErr) {
		// Wrap unknown errors
		return &EzConfigError{
			Type:     errors.New("unknown error"),
			Message:  err.Error(),
			Guidance: "An unexpected error occurred. Please check your inputs and try again.",
			Cause:    err,
		}
	}

	// Apply recovery strategies based on error type
	switch ezErr.Type {
	case ErrStoreFailed:
		return recoverFromStoreError(ezErr)
	case ErrOutputFailed:
		return recoverFromOutputError(ezErr)
	default:
		return ezErr
	}
}

func recoverFromStoreError(err *EzConfigError) error {
	// a missing parent directory is the one store failure that can be fixed here
	var pathErr *os.PathError
	if !errors.As(err.Cause, &pathErr) || !errors.Is(pathErr.Err, os.ErrNotExist) {
		return err
	}

	dir := filepath.Dir(pathErr.Path)
	if dir == "." || dir == string(filepath.Separator) {
		return err
	}
	if mkdirErr := os.MkdirAll(dir, 0755); mkdirErr != nil {
		err.Guidance += fmt.Sprintf("\n\nAttempted to create directory '%s' but failed: %v", dir, mkdirErr)
		return err
	}
	err.Guidance += fmt.Sprintf("\n\nCreated directory '%s'. Run the command again.", dir)
	return err
}

func recoverFromOutputError(err *EzConfigError) error {
	// For clipboard errors, suggest stdout fallback
	if strings.Contains(err.Message, "clipboard") {
		err.Guidance += "\n\nTry using --target stdout as a fallback."
	}
	return err
}

// IsRecoverableError checks if an error can be recovered from
func IsRecoverableError(err error) bool {
	var ezErr *EzConfigError
	if !errors.As(err, &ezErr) {
		return false
	}

	// Some errors are recoverable with user intervention
	switch ezErr.Type {
	case ErrOutputFailed:
		return strings.Contains(ezErr.Message, "clipboard") // Can fallback to stdout
	default:
		return false
	}
}
