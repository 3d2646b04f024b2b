package dotjson

import "fmt"

// DefaultConfig is the conventional configuration name assumed by callers
// that only track a single configuration file.
const DefaultConfig = "default"

// Source names one registry entry to load: a caller-chosen name and the
// path of the JSON file backing it. Batch loads take a slice of Sources.
type Source struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// validateSources checks a batch-load list before any loading begins.
// Validation is all-or-nothing: a single malformed entry rejects the whole
// batch and nothing is loaded.
func validateSources(registry string, sources []Source) error {
	for i, src := range sources {
		if src.Name == "" {
			return NewInvalidArgumentError(fmt.Sprintf("%s source %d is missing a name", registry, i))
		}
		if src.Path == "" {
			return NewInvalidArgumentError(fmt.Sprintf("%s source %d (%q) is missing a path", registry, i, src.Name))
		}
	}
	return nil
}
