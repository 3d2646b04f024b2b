package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/dotpath"
)

// saveCompleteMsg reports the outcome of persisting an edited value
type saveCompleteMsg struct {
	key string
	err error
}

// documentKeyMap defines key bindings for the document screen
type documentKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
	Edit key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k documentKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back, k.Edit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k documentKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.Edit, k.Quit},
	}
}

// DocumentModel represents the document screen browsing one loaded document
// one object level at a time
type DocumentModel struct {
	// Document being browsed
	Entry     registryEntry
	Configs   *dotjson.ConfigRegistry
	Languages *dotjson.LanguageRegistry
	Root      any

	// Navigation: descended object segments and the cursor within the level
	Crumbs []string
	Cursor int

	// Inline editing state
	Editing bool
	Input   textinput.Model

	// Persist-in-flight state
	Saving    bool
	SavingKey string
	Spinner   spinner.Model

	// Transient feedback from the last save attempt
	Status    string
	StatusErr bool

	// Navigation results
	BackRequested bool

	// UI state
	Width  int
	Height int
	Help   help.Model
	Keys   documentKeyMap
}

// NewDocumentModel creates a document screen for the given entry
func NewDocumentModel(entry registryEntry, configs *dotjson.ConfigRegistry, languages *dotjson.LanguageRegistry) (DocumentModel, error) {
	root, err := documentRoot(entry, configs, languages)
	if err != nil {
		return DocumentModel{}, err
	}

	// Initialize the value editor
	input := textinput.New()
	input.Placeholder = `value or JSON, e.g. 8080, true, "text"`
	input.Width = 50

	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	// Initialize help
	h := help.New()

	// Initialize key bindings
	keys := documentKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter", "open object"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "left", "h"),
			key.WithHelp("esc", "back"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit value"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}

	return DocumentModel{
		Entry:     entry,
		Configs:   configs,
		Languages: languages,
		Root:      root,
		Input:     input,
		Spinner:   s,
		Help:      h,
		Keys:      keys,
	}, nil
}

func documentRoot(entry registryEntry, configs *dotjson.ConfigRegistry, languages *dotjson.LanguageRegistry) (any, error) {
	if entry.Kind == kindLanguage {
		return languages.Document(entry.Name)
	}
	return configs.Document(entry.Name)
}

// Init initializes the document model
func (m DocumentModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m DocumentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A save in flight blocks input until it completes
	if m.Saving {
		return m.updateSaving(msg)
	}

	if m.Editing {
		return m.updateEditing(msg)
	}

	return m.updateBrowsing(msg)
}

// updateSaving handles messages while a SetValue is in flight
func (m DocumentModel) updateSaving(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case saveCompleteMsg:
		m.Saving = false
		if msg.err != nil {
			m.Status = "✗ " + msg.err.Error()
			m.StatusErr = true
			return m, nil
		}
		m.Status = "✓ Saved " + msg.key
		m.StatusErr = false
		m.refreshRoot()
		return m, nil
	}

	return m, nil
}

// updateEditing handles input while the inline value editor is open
func (m DocumentModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel editing without saving
			m.Editing = false
			m.Input.Blur()
			return m, nil

		case "enter":
			sel, ok := m.selectedKey()
			if !ok {
				m.Editing = false
				m.Input.Blur()
				return m, nil
			}

			value := parseEditorValue(m.Input.Value())
			dotted := m.dottedKey(sel)

			m.Editing = false
			m.Input.Blur()
			m.Saving = true
			m.SavingKey = dotted
			m.Status = ""

			return m, tea.Batch(
				m.Spinner.Tick,
				saveValueCmd(m.Configs, m.Entry.Name, dotted, value),
			)
		}
	}

	// Pass remaining keys to the text input
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// updateBrowsing handles input in normal navigation mode
func (m DocumentModel) updateBrowsing(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Up):
			if m.Cursor > 0 {
				m.Cursor--
			}
			return m, nil

		case key.Matches(msg, m.Keys.Down):
			if m.Cursor < len(m.levelKeys())-1 {
				m.Cursor++
			}
			return m, nil

		case key.Matches(msg, m.Keys.Open):
			return m.descend()

		case key.Matches(msg, m.Keys.Back):
			return m.ascend()

		case key.Matches(msg, m.Keys.Edit):
			return m.startEditing()

		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		}
	}

	return m, nil
}

// descend opens the selected object value as the new current level
func (m DocumentModel) descend() (tea.Model, tea.Cmd) {
	value, ok := m.selectedValue()
	if !ok {
		return m, nil
	}

	if child, isObj := value.(map[string]any); isObj {
		if len(child) == 0 {
			m.Status = "object is empty"
			m.StatusErr = false
			return m, nil
		}
		sel, _ := m.selectedKey()
		m.Crumbs = append(m.Crumbs, sel)
		m.Cursor = 0
		m.Status = ""
		return m, nil
	}

	m.Status = "not an object; press e to edit the value"
	m.StatusErr = false
	return m, nil
}

// ascend pops one level, or requests the entries screen at the root
func (m DocumentModel) ascend() (tea.Model, tea.Cmd) {
	if len(m.Crumbs) == 0 {
		m.BackRequested = true
		return m, nil
	}

	parent := m.Crumbs[len(m.Crumbs)-1]
	m.Crumbs = m.Crumbs[:len(m.Crumbs)-1]
	m.Status = ""

	// Put the cursor back on the level we just left
	m.Cursor = 0
	for i, k := range m.levelKeys() {
		if k == parent {
			m.Cursor = i
			break
		}
	}
	return m, nil
}

// startEditing opens the inline editor for the selected leaf value
func (m DocumentModel) startEditing() (tea.Model, tea.Cmd) {
	if m.Entry.Kind == kindLanguage {
		m.Status = "language documents are read-only here; edit the source file"
		m.StatusErr = false
		return m, nil
	}

	value, ok := m.selectedValue()
	if !ok {
		return m, nil
	}

	if _, isObj := value.(map[string]any); isObj {
		m.Status = "objects are opened with enter, not edited"
		m.StatusErr = false
		return m, nil
	}

	m.Editing = true
	m.Status = ""
	m.Input.SetValue(editorSeed(value))
	m.Input.CursorEnd()
	m.Input.Focus()
	return m, textinput.Blink
}

// refreshRoot re-reads the document after a save, since assignment may have
// replaced intermediate objects along the written path
func (m *DocumentModel) refreshRoot() {
	root, err := documentRoot(m.Entry, m.Configs, m.Languages)
	if err != nil {
		// The entry vanished mid-session; fall back to the entries screen
		m.BackRequested = true
		return
	}
	m.Root = root

	// Drop breadcrumbs that no longer resolve to objects
	for len(m.Crumbs) > 0 {
		if _, ok := m.currentLevel(); ok {
			break
		}
		m.Crumbs = m.Crumbs[:len(m.Crumbs)-1]
	}
	if m.Cursor >= len(m.levelKeys()) {
		m.Cursor = 0
	}
}

// currentLevel walks the breadcrumb path and returns the current object level
func (m DocumentModel) currentLevel() (map[string]any, bool) {
	current := m.Root
	for _, segment := range m.Crumbs {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[segment]
		if !ok {
			return nil, false
		}
	}
	obj, ok := current.(map[string]any)
	return obj, ok
}

// levelKeys returns the sorted keys of the current object level
func (m DocumentModel) levelKeys() []string {
	level, ok := m.currentLevel()
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(level))
	for k := range level {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// selectedKey returns the key under the cursor
func (m DocumentModel) selectedKey() (string, bool) {
	keys := m.levelKeys()
	if m.Cursor < 0 || m.Cursor >= len(keys) {
		return "", false
	}
	return keys[m.Cursor], true
}

// selectedValue returns the value under the cursor
func (m DocumentModel) selectedValue() (any, bool) {
	name, ok := m.selectedKey()
	if !ok {
		return nil, false
	}
	level, ok := m.currentLevel()
	if !ok {
		return nil, false
	}
	value, ok := level[name]
	return value, ok
}

// dottedKey joins the breadcrumb path and key into a full dotted key
func (m DocumentModel) dottedKey(name string) string {
	if len(m.Crumbs) == 0 {
		return name
	}
	return strings.Join(m.Crumbs, dotpath.Separator) + dotpath.Separator + name
}

// saveValueCmd persists one value through the registry and reports the result
func saveValueCmd(configs *dotjson.ConfigRegistry, name, key string, value any) tea.Cmd {
	return func() tea.Msg {
		err := configs.SetValue(key, value, name)
		return saveCompleteMsg{key: key, err: err}
	}
}

// parseEditorValue interprets editor text as JSON, falling back to the raw
// string when it does not parse
func parseEditorValue(text string) any {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return text
	}
	return value
}

// editorSeed renders an existing value into editable text. Strings seed raw
// so the common case needs no quoting; everything else seeds as JSON.
func editorSeed(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}

// previewValue renders a one-line preview of a value for the key listing
func previewValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		if len(v) > 40 {
			return fmt.Sprintf("%q", v[:37]+"...")
		}
		return fmt.Sprintf("%q", v)
	case map[string]any:
		return fmt.Sprintf("{...} %d keys", len(v))
	case []any:
		return fmt.Sprintf("[...] %d items", len(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// View renders the document screen
func (m DocumentModel) View() string {
	content := m.buildContent()
	helpText := m.Help.View(m.Keys)
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// buildContent builds the document screen content
func (m DocumentModel) buildContent() string {
	var parts []string

	// Title: document name and kind
	parts = append(parts, RenderTitle(fmt.Sprintf("%s (%s)", m.Entry.Name, strings.ToLower(string(m.Entry.Kind)))))

	// Breadcrumb of descended segments
	crumb := m.Entry.Name
	if len(m.Crumbs) > 0 {
		crumb += " › " + strings.Join(m.Crumbs, " › ")
	}
	parts = append(parts, RenderSubtitle("  "+crumb))
	parts = append(parts, "")

	// Transient status line
	if m.Status != "" {
		style := StatusOKStyle
		if m.StatusErr {
			style = StatusErrStyle
		}
		parts = append(parts, style.Render("  "+m.Status))
		parts = append(parts, "")
	}

	// Key listing for the current level
	keys := m.levelKeys()
	if len(keys) == 0 {
		parts = append(parts, m.renderNonObjectLevel())
	} else {
		for i, k := range keys {
			parts = append(parts, m.renderKeyLine(k, i))

			// Insert the inline editor or save spinner under the selection
			if i == m.Cursor {
				if m.Editing {
					parts = append(parts, m.renderInlineEditor())
				} else if m.Saving {
					parts = append(parts, m.renderSavingLine())
				}
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderKeyLine renders one key and its value preview
func (m DocumentModel) renderKeyLine(name string, index int) string {
	level, _ := m.currentLevel()
	preview := previewValue(level[name])

	keyStyle := lipgloss.NewStyle().Width(24).Foreground(SubtleColor)
	valueStyle := lipgloss.NewStyle().Foreground(TextColor)

	arrow := "  "
	if index == m.Cursor {
		arrow = "→ "
		keyStyle = keyStyle.Foreground(HighlightColor).Bold(true)
		valueStyle = valueStyle.Foreground(HighlightColor)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		arrow,
		keyStyle.Render(name),
		valueStyle.Render(preview),
	)
}

// renderInlineEditor renders the value editor under the selected key
func (m DocumentModel) renderInlineEditor() string {
	helpStyle := lipgloss.NewStyle().Foreground(SubtleColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		"        "+m.Input.View(),
		helpStyle.Render("        JSON or plain text • Enter save • Esc cancel"),
		"",
	)
}

// renderSavingLine renders the persist-in-flight indicator
func (m DocumentModel) renderSavingLine() string {
	style := lipgloss.NewStyle().Foreground(PrimaryColor)
	return style.Render(fmt.Sprintf("        %s saving %s", m.Spinner.View(), m.SavingKey))
}

// renderNonObjectLevel renders documents (or levels) that hold no object keys
func (m DocumentModel) renderNonObjectLevel() string {
	if level, ok := m.currentLevel(); ok && len(level) == 0 {
		return RenderSubtitle("  (empty object)")
	}
	return RenderInfo(lipgloss.JoinVertical(lipgloss.Left,
		"This document is not a JSON object.",
		"",
		"Value: "+previewValue(m.Root),
	))
}
