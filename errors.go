package dotjson

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of registry error that occurred
type ErrorType int

const (
	// ErrTypeAlreadyLoaded indicates a load under a name that is already registered
	ErrTypeAlreadyLoaded ErrorType = iota
	// ErrTypeNotLoaded indicates an operation on an absent name, or a translate
	// call without an active language
	ErrTypeNotLoaded
	// ErrTypeFileNotFound indicates a load path that does not exist
	ErrTypeFileNotFound
	// ErrTypeInvalidFormat indicates file content that is not valid JSON
	ErrTypeInvalidFormat
	// ErrTypeInvalidArgument indicates a malformed batch-load source list
	ErrTypeInvalidArgument
)

// Registry kind labels used in error messages.
const (
	KindConfiguration = "configuration"
	KindLanguage      = "language"
)

// String returns the stable lowercase token for the error type. The same
// tokens travel on the daemon wire, so they must not change between releases.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeAlreadyLoaded:
		return "already_loaded"
	case ErrTypeNotLoaded:
		return "not_loaded"
	case ErrTypeFileNotFound:
		return "file_not_found"
	case ErrTypeInvalidFormat:
		return "invalid_format"
	case ErrTypeInvalidArgument:
		return "invalid_argument"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// ParseErrorType maps a wire token back to its ErrorType.
func ParseErrorType(token string) (ErrorType, bool) {
	switch token {
	case "already_loaded":
		return ErrTypeAlreadyLoaded, true
	case "not_loaded":
		return ErrTypeNotLoaded, true
	case "file_not_found":
		return ErrTypeFileNotFound, true
	case "invalid_format":
		return ErrTypeInvalidFormat, true
	case "invalid_argument":
		return ErrTypeInvalidArgument, true
	default:
		return 0, false
	}
}

// RegistryError is the error returned by all registry operations.
type RegistryError struct {
	Type     ErrorType // Category of error
	Registry string    // Which registry the operation targeted ("configuration" or "language")
	Name     string    // Entry name involved (if any)
	Path     string    // File path involved (if any)
	Message  string    // Human-readable error message
	Err      error     // Underlying error (if any)
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (caused by: %v)", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain inspection
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// NewAlreadyLoadedError reports a duplicate name on load.
func NewAlreadyLoadedError(registry, name string) *RegistryError {
	return &RegistryError{
		Type:     ErrTypeAlreadyLoaded,
		Registry: registry,
		Name:     name,
		Message:  fmt.Sprintf("%s %q already loaded", registry, name),
	}
}

// NewNotLoadedError reports an operation on a name that is not registered.
func NewNotLoadedError(registry, name string) *RegistryError {
	return &RegistryError{
		Type:     ErrTypeNotLoaded,
		Registry: registry,
		Name:     name,
		Message:  fmt.Sprintf("%s %q not loaded", registry, name),
	}
}

// NewNotSetError reports a translate call without an active language.
func NewNotSetError() *RegistryError {
	return &RegistryError{
		Type:     ErrTypeNotLoaded,
		Registry: KindLanguage,
		Message:  "no active language set",
	}
}

// NewFileNotFoundError reports a load path that does not exist.
func NewFileNotFoundError(registry, path string, err error) *RegistryError {
	return &RegistryError{
		Type:     ErrTypeFileNotFound,
		Registry: registry,
		Path:     path,
		Message:  fmt.Sprintf("%s file %q not found", registry, path),
		Err:      err,
	}
}

// NewInvalidFormatError reports file content that failed to parse as JSON.
func NewInvalidFormatError(registry, path string, err error) *RegistryError {
	return &RegistryError{
		Type:     ErrTypeInvalidFormat,
		Registry: registry,
		Path:     path,
		Message:  fmt.Sprintf("%s file %q is not valid JSON", registry, path),
		Err:      err,
	}
}

// NewInvalidArgumentError reports a malformed batch-load source list.
func NewInvalidArgumentError(message string) *RegistryError {
	return &RegistryError{
		Type:    ErrTypeInvalidArgument,
		Message: message,
	}
}

// IsAlreadyLoaded checks if an error reports a duplicate name on load
func IsAlreadyLoaded(err error) bool {
	return hasType(err, ErrTypeAlreadyLoaded)
}

// IsNotLoaded checks if an error reports an absent name or unset active language
func IsNotLoaded(err error) bool {
	return hasType(err, ErrTypeNotLoaded)
}

// IsFileNotFound checks if an error reports a missing load path
func IsFileNotFound(err error) bool {
	return hasType(err, ErrTypeFileNotFound)
}

// IsInvalidFormat checks if an error reports unparseable JSON content
func IsInvalidFormat(err error) bool {
	return hasType(err, ErrTypeInvalidFormat)
}

// IsInvalidArgument checks if an error reports a malformed source list
func IsInvalidArgument(err error) bool {
	return hasType(err, ErrTypeInvalidArgument)
}

func hasType(err error, t ErrorType) bool {
	var regErr *RegistryError
	if errors.As(err, &regErr) {
		return regErr.Type == t
	}
	return false
}
