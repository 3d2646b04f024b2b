package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrrulos/dotjson"
)

const (
	appFixtureJSON = `{
		"name": "demo",
		"server": {"host": "localhost", "port": 8080, "tls": {"enabled": false}},
		"tags": ["a", "b"],
		"empty": {}
	}`
	dbFixtureJSON = `{"driver": "postgres", "pool": {"max": 10}}`
	enFixtureJSON = `{"greeting": {"hello": "Hello", "bye": "Goodbye"}}`
	esFixtureJSON = `{"greeting": {"hello": "Hola"}}`
)

func TestCollectEntries(t *testing.T) {
	configs, languages := newTestRegistries(t)

	entries := collectEntries(configs, languages)

	if len(entries) != 4 {
		t.Fatalf("collectEntries() returned %d entries, want 4", len(entries))
	}

	// Configurations come first, each section sorted by name
	wantOrder := []struct {
		kind   registryKind
		name   string
		keys   int
		active bool
	}{
		{kindConfiguration, "app", 6, false},
		{kindConfiguration, "db", 2, false},
		{kindLanguage, "en", 2, true},
		{kindLanguage, "es", 1, false},
	}

	for i, want := range wantOrder {
		got := entries[i]
		if got.Kind != want.kind {
			t.Errorf("entries[%d].Kind = %q, want %q", i, got.Kind, want.kind)
		}
		if got.Name != want.name {
			t.Errorf("entries[%d].Name = %q, want %q", i, got.Name, want.name)
		}
		if got.Keys != want.keys {
			t.Errorf("entries[%d].Keys = %d, want %d", i, got.Keys, want.keys)
		}
		if got.Active != want.active {
			t.Errorf("entries[%d].Active = %v, want %v", i, got.Active, want.active)
		}

		// Only configurations carry their source path
		if want.kind == kindConfiguration {
			if got.Path == "" || got.Path == "(unknown)" {
				t.Errorf("entries[%d].Path = %q, want a source path", i, got.Path)
			}
		} else if got.Path != "" {
			t.Errorf("entries[%d].Path = %q, want empty for a language", i, got.Path)
		}
	}
}

func TestEntryItemStrings(t *testing.T) {
	item := entryItem{entry: registryEntry{
		Kind: kindConfiguration,
		Name: "app",
		Path: "/etc/app.json",
		Keys: 6,
	}}

	if item.Title() != "app" {
		t.Errorf("Title() = %q, want %q", item.Title(), "app")
	}

	desc := item.Description()
	for _, part := range []string{"Configuration", "/etc/app.json", "6 keys"} {
		if !strings.Contains(desc, part) {
			t.Errorf("Description() = %q, missing %q", desc, part)
		}
	}

	filter := item.FilterValue()
	for _, part := range []string{"app", "/etc/app.json", "Configuration"} {
		if !strings.Contains(filter, part) {
			t.Errorf("FilterValue() = %q, missing %q", filter, part)
		}
	}

	// Languages have no source path and must not render an empty segment
	langItem := entryItem{entry: registryEntry{Kind: kindLanguage, Name: "en", Keys: 2}}
	if desc := langItem.Description(); strings.Contains(desc, "•  •") {
		t.Errorf("language Description() = %q, renders an empty source segment", desc)
	}
}

func TestEntriesModelTakeSelection(t *testing.T) {
	configs, languages := newTestRegistries(t)

	m := NewEntriesModel(configs, languages)
	m.SetSize(100, 40)

	// Nothing selected before the user opens an entry
	if _, ok := m.TakeSelection(); ok {
		t.Fatal("TakeSelection() = true before any selection")
	}

	updated, _ := m.Update(specialKey(tea.KeyEnter))
	m = updated.(EntriesModel)

	entry, ok := m.TakeSelection()
	if !ok {
		t.Fatal("TakeSelection() = false after opening an entry")
	}
	if entry.Name != "app" {
		t.Errorf("selected entry = %q, want %q", entry.Name, "app")
	}

	// The selection is consumed on read
	if _, ok := m.TakeSelection(); ok {
		t.Error("TakeSelection() = true on second read")
	}
}

func TestEntriesModelQuit(t *testing.T) {
	configs, languages := newTestRegistries(t)

	m := NewEntriesModel(configs, languages)
	m.SetSize(100, 40)

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("Update(q) returned nil cmd, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Update(q) cmd produced %T, want tea.QuitMsg", cmd())
	}
}

func TestEntriesModelEmptyState(t *testing.T) {
	m := NewEntriesModel(dotjson.NewConfigRegistry(), dotjson.NewLanguageRegistry())
	m.SetSize(100, 40)

	if !m.Empty {
		t.Fatal("Empty = false for empty registries")
	}

	view := m.View()
	for _, part := range []string{"No documents loaded", "dotjson init"} {
		if !strings.Contains(view, part) {
			t.Errorf("empty state view missing %q", part)
		}
	}
}

func TestEntriesModelViewShowsSummary(t *testing.T) {
	configs, languages := newTestRegistries(t)

	m := NewEntriesModel(configs, languages)
	m.SetSize(100, 40)

	view := m.View()
	for _, part := range []string{"2 configurations", "2 languages", AppName} {
		if !strings.Contains(view, part) {
			t.Errorf("entries view missing %q", part)
		}
	}
}

// Helper functions

func newTestRegistries(t *testing.T) (*dotjson.ConfigRegistry, *dotjson.LanguageRegistry) {
	t.Helper()

	dir := t.TempDir()

	configs := dotjson.NewConfigRegistry()
	if err := configs.Load("app", writeFixture(t, dir, "app.json", appFixtureJSON)); err != nil {
		t.Fatalf("loading app fixture: %v", err)
	}
	if err := configs.Load("db", writeFixture(t, dir, "db.json", dbFixtureJSON)); err != nil {
		t.Fatalf("loading db fixture: %v", err)
	}

	languages := dotjson.NewLanguageRegistry()
	if err := languages.Load("en", writeFixture(t, dir, "en.json", enFixtureJSON)); err != nil {
		t.Fatalf("loading en fixture: %v", err)
	}
	if err := languages.Load("es", writeFixture(t, dir, "es.json", esFixtureJSON)); err != nil {
		t.Fatalf("loading es fixture: %v", err)
	}
	if err := languages.SetActive("en"); err != nil {
		t.Fatalf("activating en fixture: %v", err)
	}

	return configs, languages
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func specialKey(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
