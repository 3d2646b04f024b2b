package dotjson

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{ErrTypeAlreadyLoaded, "already_loaded"},
		{ErrTypeNotLoaded, "not_loaded"},
		{ErrTypeFileNotFound, "file_not_found"},
		{ErrTypeInvalidFormat, "invalid_format"},
		{ErrTypeInvalidArgument, "invalid_argument"},
	}

	for _, tt := range tests {
		if got := tt.errType.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.errType, got, tt.want)
		}
	}
}

func TestParseErrorType(t *testing.T) {
	// Every rendered token parses back to its type.
	for _, errType := range []ErrorType{
		ErrTypeAlreadyLoaded,
		ErrTypeNotLoaded,
		ErrTypeFileNotFound,
		ErrTypeInvalidFormat,
		ErrTypeInvalidArgument,
	} {
		got, ok := ParseErrorType(errType.String())
		if !ok {
			t.Errorf("ParseErrorType(%q) not recognized", errType.String())
			continue
		}
		if got != errType {
			t.Errorf("ParseErrorType(%q) = %v, want %v", errType.String(), got, errType)
		}
	}

	if _, ok := ParseErrorType("bogus_token"); ok {
		t.Error("ParseErrorType() accepted an unknown token")
	}
}

func TestRegistryErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *RegistryError
		want string
	}{
		{
			"already loaded",
			NewAlreadyLoadedError(KindConfiguration, "main"),
			`configuration "main" already loaded`,
		},
		{
			"not loaded",
			NewNotLoadedError(KindLanguage, "en"),
			`language "en" not loaded`,
		},
		{
			"not set",
			NewNotSetError(),
			"no active language set",
		},
		{
			"file not found",
			NewFileNotFoundError(KindConfiguration, "/tmp/missing.json", nil),
			`configuration file "/tmp/missing.json" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistryErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := NewInvalidFormatError(KindConfiguration, "/tmp/broken.json", cause)

	want := `configuration file "/tmp/broken.json" is not valid JSON (caused by: unexpected end of JSON input)`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is() does not see the wrapped cause")
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		others    []func(error) bool
	}{
		{
			"already loaded",
			NewAlreadyLoadedError(KindConfiguration, "main"),
			IsAlreadyLoaded,
			[]func(error) bool{IsNotLoaded, IsFileNotFound, IsInvalidFormat, IsInvalidArgument},
		},
		{
			"not loaded",
			NewNotLoadedError(KindConfiguration, "main"),
			IsNotLoaded,
			[]func(error) bool{IsAlreadyLoaded, IsFileNotFound, IsInvalidFormat, IsInvalidArgument},
		},
		{
			"not set is not loaded",
			NewNotSetError(),
			IsNotLoaded,
			[]func(error) bool{IsAlreadyLoaded, IsFileNotFound, IsInvalidFormat, IsInvalidArgument},
		},
		{
			"file not found",
			NewFileNotFoundError(KindLanguage, "/tmp/x.json", nil),
			IsFileNotFound,
			[]func(error) bool{IsAlreadyLoaded, IsNotLoaded, IsInvalidFormat, IsInvalidArgument},
		},
		{
			"invalid format",
			NewInvalidFormatError(KindLanguage, "/tmp/x.json", nil),
			IsInvalidFormat,
			[]func(error) bool{IsAlreadyLoaded, IsNotLoaded, IsFileNotFound, IsInvalidArgument},
		},
		{
			"invalid argument",
			NewInvalidArgumentError("source 0 is missing a name"),
			IsInvalidArgument,
			[]func(error) bool{IsAlreadyLoaded, IsNotLoaded, IsFileNotFound, IsInvalidFormat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.predicate(tt.err) {
				t.Errorf("predicate rejected its own error %v", tt.err)
			}
			for _, other := range tt.others {
				if other(tt.err) {
					t.Errorf("foreign predicate accepted %v", tt.err)
				}
			}
		})
	}
}

func TestErrorPredicatesRejectForeignErrors(t *testing.T) {
	plain := errors.New("some other failure")

	for _, predicate := range []func(error) bool{
		IsAlreadyLoaded, IsNotLoaded, IsFileNotFound, IsInvalidFormat, IsInvalidArgument,
	} {
		if predicate(nil) {
			t.Error("predicate accepted nil")
		}
		if predicate(plain) {
			t.Error("predicate accepted a plain error")
		}
	}
}

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	inner := NewNotLoadedError(KindConfiguration, "main")
	wrapped := fmt.Errorf("handling request: %w", inner)

	if !IsNotLoaded(wrapped) {
		t.Error("IsNotLoaded() does not unwrap")
	}

	var regErr *RegistryError
	if !errors.As(wrapped, &regErr) {
		t.Fatal("errors.As() does not find the RegistryError")
	}
	if regErr.Name != "main" || regErr.Registry != KindConfiguration {
		t.Errorf("unwrapped error = %+v, want name main in configuration registry", regErr)
	}
}

func TestLoadErrorCarriesOSCause(t *testing.T) {
	reg := NewConfigRegistry()

	err := reg.Load("main", filepath.Join(t.TempDir(), "missing.json"))
	if !IsFileNotFound(err) {
		t.Fatalf("Load() error = %v, want FileNotFound", err)
	}

	// The original stat error stays reachable for callers that branch on it.
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error %v does not wrap fs.ErrNotExist", err)
	}
}
