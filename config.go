package dotjson

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wrrulos/dotjson/internal/dotpath"
)

// configEntry pairs a parsed document with the file path it was loaded from.
// SetValue persists back to the same path.
type configEntry struct {
	document any
	path     string
}

// ConfigRegistry is a name-keyed store of JSON configuration documents with
// dotted-path lookup and write-back persistence. All methods are safe for
// concurrent use.
type ConfigRegistry struct {
	mu      sync.RWMutex
	entries map[string]*configEntry
}

// NewConfigRegistry creates an empty configuration registry.
func NewConfigRegistry() *ConfigRegistry {
	return &ConfigRegistry{
		entries: make(map[string]*configEntry),
	}
}

// Load reads and parses the JSON file at path and registers it under name.
// It fails with AlreadyLoaded when the name is taken (checked before the
// file is touched), FileNotFound when the path does not exist, and
// InvalidFormat when the content is not valid JSON. A failed load leaves no
// partial entry behind.
func (r *ConfigRegistry) Load(name, path string) error {
	if err := r.checkAbsent(name); err != nil {
		return err
	}

	data, err := readDocumentFile(KindConfiguration, path)
	if err != nil {
		return err
	}

	return r.commit(name, path, data)
}

// LoadAsync performs the same contract as Load with the file read on a
// background goroutine. The returned channel is buffered and receives
// exactly one result.
func (r *ConfigRegistry) LoadAsync(name, path string) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- r.Load(name, path)
	}()
	return done
}

// LoadMany validates the whole source list up front (InvalidArgument on the
// first malformed entry, nothing loaded), then loads each source in order.
// A mid-batch failure halts the batch and leaves the prior entries loaded;
// there is no rollback.
func (r *ConfigRegistry) LoadMany(sources []Source) error {
	if err := validateSources(KindConfiguration, sources); err != nil {
		return err
	}

	for _, src := range sources {
		if err := r.Load(src.Name, src.Path); err != nil {
			return err
		}
	}
	return nil
}

// LoadManyAsync performs the same contract as LoadMany on a background
// goroutine, delivering the single result on the returned buffered channel.
func (r *ConfigRegistry) LoadManyAsync(sources []Source) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- r.LoadMany(sources)
	}()
	return done
}

// commit parses already-read file bytes and stores the entry. Both the
// blocking and asynchronous load paths funnel through here, so their
// observable behavior cannot drift apart. The duplicate check runs again
// under the write lock to close the race with a concurrent load of the
// same name.
func (r *ConfigRegistry) commit(name, path string, data []byte) error {
	doc, err := parseDocument(KindConfiguration, path, data)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return NewAlreadyLoadedError(KindConfiguration, name)
	}

	r.entries[name] = &configEntry{document: doc, path: path}
	return nil
}

func (r *ConfigRegistry) checkAbsent(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.entries[name]; exists {
		return NewAlreadyLoadedError(KindConfiguration, name)
	}
	return nil
}

// Value resolves a dotted key against the named configuration. A key whose
// path cannot be followed resolves to the key string itself, never an error;
// the only failure is NotLoaded for an absent name.
func (r *ConfigRegistry) Value(key, name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, NewNotLoadedError(KindConfiguration, name)
	}
	return dotpath.Resolve(entry.document, key), nil
}

// SetValue assigns value at the dotted key inside the named configuration and
// synchronously rewrites the whole document to its source file. Intermediate
// objects are created as needed; non-object intermediates are overwritten.
// The write lock is held across the disk write so concurrent sets cannot
// persist an older document over a newer one. Every call writes the file;
// there is no batching or debounce.
func (r *ConfigRegistry) SetValue(key string, value any, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[name]
	if !ok {
		return NewNotLoadedError(KindConfiguration, name)
	}

	entry.document = dotpath.Assign(entry.document, key, value)

	if err := writeDocumentFile(entry.path, entry.document); err != nil {
		return fmt.Errorf("failed to write configuration file %q: %w", entry.path, err)
	}
	return nil
}

// SetValueAsync performs the same contract as SetValue with the disk write on
// a background goroutine, delivering the single result on the returned
// buffered channel.
func (r *ConfigRegistry) SetValueAsync(key string, value any, name string) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- r.SetValue(key, value, name)
	}()
	return done
}

// Document returns the live parsed document registered under name. Callers
// must treat it as read-only; mutate through SetValue.
func (r *ConfigRegistry) Document(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, NewNotLoadedError(KindConfiguration, name)
	}
	return entry.document, nil
}

// Documents returns a snapshot copy of the name-to-document map. The map is
// fresh on every call; the documents themselves are live references.
func (r *ConfigRegistry) Documents() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make(map[string]any, len(r.entries))
	for name, entry := range r.entries {
		docs[name] = entry.document
	}
	return docs
}

// Path returns the source file path the named configuration was loaded from.
func (r *ConfigRegistry) Path(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return "", NewNotLoadedError(KindConfiguration, name)
	}
	return entry.path, nil
}

// Names returns the loaded configuration names in sorted order.
func (r *ConfigRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Remove deletes the named entry together with its path mapping. It fails
// with NotLoaded when the name is absent.
func (r *ConfigRegistry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return NewNotLoadedError(KindConfiguration, name)
	}
	delete(r.entries, name)
	return nil
}

// RemoveAll unconditionally clears the registry. Calling it on an empty
// registry is a no-op, not an error.
func (r *ConfigRegistry) RemoveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*configEntry)
}
