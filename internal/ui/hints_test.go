package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/wrrulos/dotjson"
)

func TestTroubleshootingByErrorCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantTip  string
		wantLink string
	}{
		{
			name:     "file not found",
			err:      dotjson.NewFileNotFoundError(dotjson.KindConfiguration, "/etc/app.json", nil),
			wantTip:  "Manifest paths resolve relative to the manifest file",
			wantLink: "getting-started",
		},
		{
			name:     "invalid format",
			err:      dotjson.NewInvalidFormatError(dotjson.KindConfiguration, "/etc/app.json", errors.New("unexpected comma")),
			wantTip:  "valid JSON",
			wantLink: "getting-started",
		},
		{
			name:     "already loaded",
			err:      dotjson.NewAlreadyLoadedError(dotjson.KindConfiguration, "app"),
			wantTip:  "Names are unique per registry",
			wantLink: "dotjson list",
		},
		{
			name:     "not loaded",
			err:      dotjson.NewNotLoadedError(dotjson.KindLanguage, "fr"),
			wantTip:  "dotjson list",
			wantLink: "manifest",
		},
		{
			name:     "invalid argument",
			err:      dotjson.NewInvalidArgumentError("key must not be empty"),
			wantTip:  "dotted paths",
			wantLink: "dotted-keys",
		},
		{
			name:     "plain error falls back to generic tips",
			err:      errors.New("connection reset"),
			wantTip:  "DOTJSON_LOG_LEVEL=debug",
			wantLink: "getting-started",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips := Troubleshooting(tt.err)
			if len(tips) == 0 {
				t.Fatal("Troubleshooting() returned no tips")
			}
			joined := strings.Join(tips, "\n")
			if !strings.Contains(joined, tt.wantTip) {
				t.Errorf("tips missing %q:\n%s", tt.wantTip, joined)
			}
			if !strings.Contains(joined, tt.wantLink) {
				t.Errorf("tips missing %q:\n%s", tt.wantLink, joined)
			}
		})
	}
}

func TestTroubleshootingWrappedError(t *testing.T) {
	// Predicates match through wrapping, so tips should too.
	wrapped := wrapError(dotjson.NewNotLoadedError(dotjson.KindConfiguration, "app"))
	tips := Troubleshooting(wrapped)
	if !strings.Contains(strings.Join(tips, "\n"), "dotjson list") {
		t.Errorf("wrapped NotLoaded error got generic tips: %v", tips)
	}
}

func TestConnectionTroubleshootingMentionsAddr(t *testing.T) {
	tips := ConnectionTroubleshooting("192.168.4.16:7600")
	joined := strings.Join(tips, "\n")
	if !strings.Contains(joined, "192.168.4.16:7600") {
		t.Errorf("tips missing address:\n%s", joined)
	}
	if !strings.Contains(joined, "dotjson discover") {
		t.Errorf("tips missing discover hint:\n%s", joined)
	}
}

func TestDiscoveryTroubleshootingMentionsMulticast(t *testing.T) {
	joined := strings.Join(DiscoveryTroubleshooting(), "\n")
	if !strings.Contains(joined, "5353") {
		t.Errorf("tips missing mDNS port:\n%s", joined)
	}
}

// Helper functions

func wrapError(err error) error {
	return &wrappingError{err: err}
}

type wrappingError struct {
	err error
}

func (w *wrappingError) Error() string {
	return "load manifest: " + w.err.Error()
}

func (w *wrappingError) Unwrap() error {
	return w.err
}
