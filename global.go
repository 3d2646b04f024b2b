package dotjson

import "sync"

// Process-wide default registries. Most programs want one shared set of
// configurations and languages; the package-level functions below bind to
// these defaults so callers can use dotjson without threading registry
// handles around. Construct registries explicitly with NewConfigRegistry and
// NewLanguageRegistry when isolation matters.
var (
	defaultsMu   sync.Mutex
	defaultsOnce sync.Once
	configs      *ConfigRegistry
	languages    *LanguageRegistry
)

func defaults() (*ConfigRegistry, *LanguageRegistry) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaultsOnce.Do(func() {
		configs = NewConfigRegistry()
		languages = NewLanguageRegistry()
	})
	return configs, languages
}

// DefaultConfigs returns the process-wide configuration registry, creating
// it on first use.
func DefaultConfigs() *ConfigRegistry {
	c, _ := defaults()
	return c
}

// DefaultLanguages returns the process-wide language registry, creating it
// on first use.
func DefaultLanguages() *LanguageRegistry {
	_, l := defaults()
	return l
}

// Reset discards the process-wide registries so the next use starts from
// empty ones. Intended for test isolation; goroutines still holding the old
// registries keep operating on them.
func Reset() {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaultsOnce = sync.Once{}
	configs = nil
	languages = nil
}

// LoadConfig loads the JSON file at path into the default configuration
// registry under name. Use DefaultConfig as the name for the conventional
// single-configuration setup.
func LoadConfig(name, path string) error {
	return DefaultConfigs().Load(name, path)
}

// LoadConfigs loads a batch of configuration sources into the default
// registry. The list is validated before any file is opened.
func LoadConfigs(sources []Source) error {
	return DefaultConfigs().LoadMany(sources)
}

// LoadConfigAsync is LoadConfig on a background goroutine. The returned
// channel is buffered and receives exactly one result.
func LoadConfigAsync(name, path string) <-chan error {
	return DefaultConfigs().LoadAsync(name, path)
}

// LoadConfigsAsync is LoadConfigs on a background goroutine.
func LoadConfigsAsync(sources []Source) <-chan error {
	return DefaultConfigs().LoadManyAsync(sources)
}

// GetConfig returns the parsed document of the named configuration in the
// default registry.
func GetConfig(name string) (any, error) {
	return DefaultConfigs().Document(name)
}

// GetAllConfigs returns a snapshot of all loaded configuration documents in
// the default registry, keyed by name.
func GetAllConfigs() map[string]any {
	return DefaultConfigs().Documents()
}

// GetConfigValue resolves a dotted key against the named configuration in
// the default registry.
func GetConfigValue(key, name string) (any, error) {
	return DefaultConfigs().Value(key, name)
}

// SetConfigValue assigns a value at the dotted key inside the named
// configuration in the default registry and persists the document to disk.
func SetConfigValue(key string, value any, name string) error {
	return DefaultConfigs().SetValue(key, value, name)
}

// SetConfigValueAsync is SetConfigValue on a background goroutine.
func SetConfigValueAsync(key string, value any, name string) <-chan error {
	return DefaultConfigs().SetValueAsync(key, value, name)
}

// RemoveConfig removes the named configuration from the default registry.
func RemoveConfig(name string) error {
	return DefaultConfigs().Remove(name)
}

// RemoveAllConfigs clears every configuration from the default registry.
func RemoveAllConfigs() {
	DefaultConfigs().RemoveAll()
}

// LoadLanguage loads the JSON file at path into the default language
// registry under name. Loading does not change the active language.
func LoadLanguage(name, path string) error {
	return DefaultLanguages().Load(name, path)
}

// LoadLanguages loads a batch of language sources into the default registry.
func LoadLanguages(sources []Source) error {
	return DefaultLanguages().LoadMany(sources)
}

// LoadLanguageAsync is LoadLanguage on a background goroutine.
func LoadLanguageAsync(name, path string) <-chan error {
	return DefaultLanguages().LoadAsync(name, path)
}

// LoadLanguagesAsync is LoadLanguages on a background goroutine.
func LoadLanguagesAsync(sources []Source) <-chan error {
	return DefaultLanguages().LoadManyAsync(sources)
}

// SetActiveLanguage points Translate at the named language in the default
// registry. It fails with NotLoaded when the name is absent.
func SetActiveLanguage(name string) error {
	return DefaultLanguages().SetActive(name)
}

// GetActiveLanguageName returns the active language name in the default
// registry. The boolean is false when no active language has been set.
func GetActiveLanguageName() (string, bool) {
	return DefaultLanguages().Active()
}

// GetLanguage returns the parsed document of the named language in the
// default registry.
func GetLanguage(name string) (any, error) {
	return DefaultLanguages().Document(name)
}

// GetAllLanguages returns a snapshot of all loaded language documents in the
// default registry, keyed by name.
func GetAllLanguages() map[string]any {
	return DefaultLanguages().Documents()
}

// RemoveLanguage removes the named language from the default registry.
func RemoveLanguage(name string) error {
	return DefaultLanguages().Remove(name)
}

// RemoveLanguages removes each named language in order, halting on the
// first absent name.
func RemoveLanguages(names []string) error {
	return DefaultLanguages().RemoveMany(names)
}

// RemoveAllLanguages clears every language from the default registry. The
// active pointer survives.
func RemoveAllLanguages() {
	DefaultLanguages().RemoveAll()
}

// Translate resolves a dotted key against the active language in the
// default registry, falling back to the key itself when the path or a
// string value is missing.
func Translate(key string) (string, error) {
	return DefaultLanguages().Translate(key)
}
