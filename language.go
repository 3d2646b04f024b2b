package dotjson

import (
	"sort"
	"sync"

	"github.com/wrrulos/dotjson/internal/dotpath"
)

// LanguageRegistry is a name-keyed store of JSON translation documents plus
// an optional "active language" pointer that Translate reads through. All
// methods are safe for concurrent use.
type LanguageRegistry struct {
	mu        sync.RWMutex
	entries   map[string]any
	active    string
	activeSet bool
}

// NewLanguageRegistry creates an empty language registry with no active
// language.
func NewLanguageRegistry() *LanguageRegistry {
	return &LanguageRegistry{
		entries: make(map[string]any),
	}
}

// Load reads and parses the JSON file at path and registers it under name.
// Loading a language does not make it active; call SetActive for that. The
// error contract matches ConfigRegistry.Load: AlreadyLoaded before the file
// is touched, then FileNotFound, then InvalidFormat, and no partial entry
// on failure.
func (r *LanguageRegistry) Load(name, path string) error {
	if err := r.checkAbsent(name); err != nil {
		return err
	}

	data, err := readDocumentFile(KindLanguage, path)
	if err != nil {
		return err
	}

	return r.commit(name, path, data)
}

// LoadAsync performs the same contract as Load with the file read on a
// background goroutine. The returned channel is buffered and receives
// exactly one result.
func (r *LanguageRegistry) LoadAsync(name, path string) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- r.Load(name, path)
	}()
	return done
}

// LoadMany validates the whole source list up front, then loads each source
// in order. A mid-batch failure halts the batch and leaves the prior entries
// loaded.
func (r *LanguageRegistry) LoadMany(sources []Source) error {
	if err := validateSources(KindLanguage, sources); err != nil {
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
func (r *LanguageRegistry) LoadManyAsync(sources []Source) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- r.LoadMany(sources)
	}()
	return done
}

func (r *LanguageRegistry) commit(name, path string, data []byte) error {
	doc, err := parseDocument(KindLanguage, path, data)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return NewAlreadyLoadedError(KindLanguage, name)
	}

	r.entries[name] = doc
	return nil
}

func (r *LanguageRegistry) checkAbsent(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.entries[name]; exists {
		return NewAlreadyLoadedError(KindLanguage, name)
	}
	return nil
}

// SetActive points the registry at the language Translate should use. It
// fails with NotLoaded when the name is absent. Removing the language later
// does not clear the pointer; Translate reports the gap when it is actually
// hit.
func (r *LanguageRegistry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return NewNotLoadedError(KindLanguage, name)
	}

	r.active = name
	r.activeSet = true
	return nil
}

// Active returns the active language name. The boolean is false when no
// active language has ever been set.
func (r *LanguageRegistry) Active() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active, r.activeSet
}

// Translate resolves a dotted key against the active language document. It
// fails with NotLoaded when no active language is set or when the active
// name has no loaded document. A key that resolves to nothing, or to a
// non-string value, falls back to the key itself.
func (r *LanguageRegistry) Translate(key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.activeSet {
		return "", NewNotSetError()
	}

	doc, ok := r.entries[r.active]
	if !ok {
		return "", NewNotLoadedError(KindLanguage, r.active)
	}

	if text, ok := dotpath.Resolve(doc, key).(string); ok {
		return text, nil
	}
	return key, nil
}

// TranslateWith resolves a dotted key against the named language directly,
// ignoring the active pointer. It fails with NotLoaded when the name is
// absent; resolution follows the same fallback rules as Translate.
func (r *LanguageRegistry) TranslateWith(name, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.entries[name]
	if !ok {
		return "", NewNotLoadedError(KindLanguage, name)
	}

	if text, ok := dotpath.Resolve(doc, key).(string); ok {
		return text, nil
	}
	return key, nil
}

// Document returns the parsed document registered under name. Callers must
// treat it as read-only.
func (r *LanguageRegistry) Document(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.entries[name]
	if !ok {
		return nil, NewNotLoadedError(KindLanguage, name)
	}
	return doc, nil
}

// Documents returns a snapshot copy of the name-to-document map.
func (r *LanguageRegistry) Documents() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make(map[string]any, len(r.entries))
	for name, doc := range r.entries {
		docs[name] = doc
	}
	return docs
}

// Names returns the loaded language names in sorted order.
func (r *LanguageRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Remove deletes the named language. It fails with NotLoaded when the name
// is absent. The active pointer is left untouched even when it names the
// removed language.
func (r *LanguageRegistry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return NewNotLoadedError(KindLanguage, name)
	}
	delete(r.entries, name)
	return nil
}

// RemoveMany removes each named language in order, halting on the first
// absent name.
func (r *LanguageRegistry) RemoveMany(names []string) error {
	for _, name := range names {
		if err := r.Remove(name); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll unconditionally clears every loaded language. The active pointer
// survives, so a later Translate fails with NotLoaded rather than NotSet
// until SetActive is called again.
func (r *LanguageRegistry) RemoveAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]any)
}
