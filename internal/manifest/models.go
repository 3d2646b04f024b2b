package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/wrrulos/dotjson"
)

// CurrentVersion is the manifest format version this build reads and writes.
const CurrentVersion = 1

// Manifest declares the documents a project wants preloaded: configuration
// sources, language sources, the active language, and CLI defaults. It is
// the on-disk counterpart of a populated registry pair.
type Manifest struct {
	Version        int     `yaml:"version"`
	Configs        []Entry `yaml:"configs,omitempty"`
	Languages      []Entry `yaml:"languages,omitempty"`
	ActiveLanguage string  `yaml:"active_language,omitempty"`
	DefaultConfig  string  `yaml:"default_config,omitempty"`
	Remote         string  `yaml:"remote,omitempty"` // Default daemon address for --remote operations

	// Directory the manifest was loaded from; relative entry paths resolve
	// against it.
	dir  string
	path string
}

// Entry names one document source: a registry name and the JSON file path
// backing it. Relative paths are resolved against the manifest's directory.
type Entry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// New creates an empty manifest at the current format version.
func New() *Manifest {
	return &Manifest{
		Version: CurrentVersion,
	}
}

// Validate checks the manifest's internal consistency. Entries must carry
// both a name and a path, and names must be unique within their section.
// The active language and default config are allowed to reference names not
// declared here; the registries resolve those at use time.
func (m *Manifest) Validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, CurrentVersion)
	}

	if err := validateEntries("configs", m.Configs); err != nil {
		return err
	}
	return validateEntries("languages", m.Languages)
}

func validateEntries(section string, entries []Entry) error {
	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		if entry.Name == "" {
			return fmt.Errorf("%s entry %d is missing a name", section, i)
		}
		if entry.Path == "" {
			return fmt.Errorf("%s entry %q is missing a path", section, entry.Name)
		}
		if seen[entry.Name] {
			return fmt.Errorf("%s entry %q is declared twice", section, entry.Name)
		}
		seen[entry.Name] = true
	}
	return nil
}

// Path returns the file path the manifest was loaded from or saved to.
func (m *Manifest) Path() string {
	return m.path
}

// Dir returns the directory relative entry paths resolve against.
func (m *Manifest) Dir() string {
	return m.dir
}

// ConfigSources returns the configuration entries as registry load sources
// with relative paths resolved against the manifest directory.
func (m *Manifest) ConfigSources() []dotjson.Source {
	return m.sources(m.Configs)
}

// LanguageSources returns the language entries as registry load sources with
// relative paths resolved against the manifest directory.
func (m *Manifest) LanguageSources() []dotjson.Source {
	return m.sources(m.Languages)
}

func (m *Manifest) sources(entries []Entry) []dotjson.Source {
	sources := make([]dotjson.Source, 0, len(entries))
	for _, entry := range entries {
		sources = append(sources, dotjson.Source{
			Name: entry.Name,
			Path: m.resolvePath(entry.Path),
		})
	}
	return sources
}

func (m *Manifest) resolvePath(path string) string {
	if filepath.IsAbs(path) || m.dir == "" {
		return path
	}
	return filepath.Join(m.dir, path)
}

// ConfigName returns the configuration name CLI commands default to when no
// --config flag is given.
func (m *Manifest) ConfigName() string {
	if m.DefaultConfig != "" {
		return m.DefaultConfig
	}
	return dotjson.DefaultConfig
}

// Apply loads every declared source into the given registries and activates
// the declared language. Loading follows registry batch semantics: sources
// load in declaration order and the first failure halts with prior entries
// committed.
func (m *Manifest) Apply(configs *dotjson.ConfigRegistry, languages *dotjson.LanguageRegistry) error {
	if len(m.Configs) > 0 {
		if err := configs.LoadMany(m.ConfigSources()); err != nil {
			return fmt.Errorf("loading manifest configs: %w", err)
		}
	}
	if len(m.Languages) > 0 {
		if err := languages.LoadMany(m.LanguageSources()); err != nil {
			return fmt.Errorf("loading manifest languages: %w", err)
		}
	}
	if m.ActiveLanguage != "" {
		if err := languages.SetActive(m.ActiveLanguage); err != nil {
			return fmt.Errorf("activating manifest language: %w", err)
		}
	}
	return nil
}

// ApplyGlobal loads the manifest into the process-wide default registries.
// This is the CLI path; the daemon injects explicit registries via Apply.
func (m *Manifest) ApplyGlobal() error {
	return m.Apply(dotjson.DefaultConfigs(), dotjson.DefaultLanguages())
}
