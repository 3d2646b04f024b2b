package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	appName = "dotjson"

	// FileName is the manifest file name looked up in the working directory
	// and the per-user config directory.
	FileName = "dotjson.yaml"
)

// GetConfigDir returns the OS-appropriate configuration directory for the
// application. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/dotjson or $HOME/.config/dotjson
//   - macOS: $HOME/.config/dotjson (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\dotjson
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: Use LOCALAPPDATA
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			// Fallback to USERPROFILE\AppData\Local if LOCALAPPDATA not set
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		// macOS: Use $HOME/.config/dotjson (following modern XDG convention)
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		// Linux and other Unix-like systems: Use XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// DefaultPath returns the manifest location inside the per-user config
// directory, used when the working directory has no manifest.
func DefaultPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FileName), nil
}

// Find locates the manifest to use. An explicit override wins and must
// exist; otherwise the working directory is checked first, then the per-user
// config directory. A miss everywhere reports an error wrapping fs.ErrNotExist
// so callers can branch on "no manifest" versus a real failure.
func Find(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("manifest %q: %w", override, err)
		}
		return override, nil
	}

	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		return "", fmt.Errorf("no %s found in the working directory or %s: %w",
			FileName, filepath.Dir(defaultPath), err)
	}
	return defaultPath, nil
}

// Load reads and validates the manifest at path. Relative entry paths in the
// result resolve against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %q: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	m.path = abs
	m.dir = filepath.Dir(abs)
	return &m, nil
}

// SaveTo writes the manifest to path atomically (temp file + rename),
// creating parent directories as needed, and rebinds the manifest to that
// location.
func (m *Manifest) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	// Add header comment
	header := []byte(`# dotjson project manifest
# Declares the configuration and language documents preloaded by the
# dotjson CLI and the dotjsond daemon, plus the active language.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary manifest: %w", err)
	}

	// Atomic rename (this is atomic on all platforms)
	if err := os.Rename(tmpPath, path); err != nil {
		// Clean up temp file on error
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save manifest: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	m.path = abs
	m.dir = filepath.Dir(abs)
	return nil
}

// Save writes the manifest back to the location it was loaded from.
func (m *Manifest) Save() error {
	if m.path == "" {
		return fmt.Errorf("manifest has no path; use SaveTo")
	}
	return m.SaveTo(m.path)
}

// CreateStarter writes a commented starter manifest to path, declaring one
// configuration and one language as examples. Used by first-time setup.
func CreateStarter(path string) (*Manifest, error) {
	m := New()
	m.Configs = []Entry{{Name: "default", Path: "config.json"}}
	m.Languages = []Entry{{Name: "en", Path: "languages/en.json"}}
	m.ActiveLanguage = "en"

	if err := m.SaveTo(path); err != nil {
		return nil, err
	}
	return m, nil
}
