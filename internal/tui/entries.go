package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrrulos/dotjson"
	"github.com/wrrulos/dotjson/internal/dotpath"
)

// registryKind identifies which registry an entry belongs to
type registryKind string

const (
	kindConfiguration registryKind = "Configuration"
	kindLanguage      registryKind = "Language"
)

// registryEntry is one loaded document shown on the entries screen
type registryEntry struct {
	Kind   registryKind
	Name   string
	Path   string // Source file, empty for languages
	Keys   int    // Number of leaf keys in the document
	Active bool   // Language currently selected as active
}

// entriesKeyMap defines key bindings for the entries screen
type entriesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k entriesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Filter, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k entriesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Filter, k.Quit},
	}
}

// entryItem wraps a registryEntry for use with bubbles/list
type entryItem struct {
	entry registryEntry
}

// Implement list.Item interface
func (e entryItem) FilterValue() string {
	// Filter by name, path, or kind
	return e.entry.Name + " " + e.entry.Path + " " + string(e.entry.Kind)
}

// Title returns the entry name for list display
func (e entryItem) Title() string {
	return e.entry.Name
}

// Description returns entry details for list display
func (e entryItem) Description() string {
	if e.entry.Path == "" {
		return fmt.Sprintf("%s • %d keys", e.entry.Kind, e.entry.Keys)
	}
	return fmt.Sprintf("%s • %s • %d keys", e.entry.Kind, e.entry.Path, e.entry.Keys)
}

// entryDelegate is a custom list delegate for rendering document cards
type entryDelegate struct {
	width int
}

func (d entryDelegate) Height() int { return 8 } // Card height including borders

func (d entryDelegate) Spacing() int { return 1 } // Spacing between cards

func (d entryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entryItem, ok := item.(entryItem)
	if !ok {
		return
	}

	entry := entryItem.entry
	selected := index == m.Index()

	// Build content lines
	var content strings.Builder

	// Add selection indicator to entry name
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + entry.Name))
	} else {
		content.WriteString("  " + entry.Name)
	}
	content.WriteString("\n\n")

	// Entry details
	content.WriteString(fmt.Sprintf("  Kind:   %s\n", entry.Kind))
	if entry.Path != "" {
		content.WriteString(fmt.Sprintf("  Source: %s\n", entry.Path))
	}
	content.WriteString(fmt.Sprintf("  Keys:   %d", entry.Keys))

	// Status with inline color styling
	if entry.Kind == kindLanguage {
		statusStyle := lipgloss.NewStyle().Foreground(SubtleColor)
		status := "read-only"
		if entry.Active {
			statusStyle = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
			status = "Active"
		}
		content.WriteString(fmt.Sprintf("\n  Status: %s", statusStyle.Render(status)))
	} else {
		statusStyle := lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
		content.WriteString(fmt.Sprintf("\n  Status: %s", statusStyle.Render("editable")))
	}

	// Create responsive card style
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2).
		MarginLeft(2)

	// Calculate card width (leave room for margins and borders)
	cardWidth := d.width - 6
	if cardWidth < MinTerminalWidth-6 {
		cardWidth = MinTerminalWidth - 6
	}
	if cardWidth > MaxContentWidth-6 {
		cardWidth = MaxContentWidth - 6
	}

	cardStyle = cardStyle.Width(cardWidth)

	// Highlight selected card
	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// EntriesModel represents the entries screen listing all loaded documents
type EntriesModel struct {
	// Registries being browsed
	Configs   *dotjson.ConfigRegistry
	Languages *dotjson.LanguageRegistry

	// Entry list
	EntryList list.Model
	Empty     bool

	// Selection result, consumed by the coordinator via TakeSelection
	selected      bool
	selectedEntry registryEntry

	// UI state
	Width  int
	Height int
	Help   help.Model
	Keys   entriesKeyMap
}

// NewEntriesModel creates a new entries screen model from the registries
func NewEntriesModel(configs *dotjson.ConfigRegistry, languages *dotjson.LanguageRegistry) EntriesModel {
	entries := collectEntries(configs, languages)

	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = entryItem{entry: entry}
	}

	// Initialize entry list with custom delegate
	delegate := entryDelegate{width: MinTerminalWidth}
	entryList := list.New(items, delegate, 0, 0)
	entryList.Title = "Loaded Documents"
	entryList.SetShowStatusBar(false)
	entryList.SetFilteringEnabled(true)
	entryList.SetShowHelp(false)
	entryList.Styles.Title = TitleStyle

	// Initialize help
	h := help.New()

	// Initialize key bindings
	keys := entriesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	return EntriesModel{
		Configs:   configs,
		Languages: languages,
		EntryList: entryList,
		Empty:     len(entries) == 0,
		Help:      h,
		Keys:      keys,
	}
}

// collectEntries builds the display entries from both registries, configs
// first, each section sorted by name
func collectEntries(configs *dotjson.ConfigRegistry, languages *dotjson.LanguageRegistry) []registryEntry {
	var entries []registryEntry

	for _, name := range configs.Names() {
		entries = append(entries, registryEntry{
			Kind: kindConfiguration,
			Name: name,
			Path: entryPath(configs.Path(name)),
			Keys: entryKeyCount(configs.Document(name)),
		})
	}

	// Language entries carry no source path; the registry keeps only the
	// parsed documents once loading is done.
	active, hasActive := languages.Active()
	for _, name := range languages.Names() {
		entries = append(entries, registryEntry{
			Kind:   kindLanguage,
			Name:   name,
			Keys:   entryKeyCount(languages.Document(name)),
			Active: hasActive && name == active,
		})
	}

	return entries
}

// Helper functions

func entryPath(path string, err error) string {
	if err != nil {
		return "(unknown)"
	}
	return path
}

func entryKeyCount(doc any, err error) int {
	if err != nil {
		return 0
	}
	return len(dotpath.Keys(doc))
}

// SetSize propagates terminal dimensions to the list layout
func (m *EntriesModel) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	m.EntryList.SetWidth(width - 4)
	m.EntryList.SetHeight(height - 10) // Leave room for header/footer
	m.EntryList.SetDelegate(entryDelegate{width: width - 4})
}

// TakeSelection returns the opened entry once and clears the selection flag
func (m *EntriesModel) TakeSelection() (registryEntry, bool) {
	if !m.selected {
		return registryEntry{}, false
	}
	m.selected = false
	return m.selectedEntry, true
}

// Init initializes the entries model
func (m EntriesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m EntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Let the list handle keys while its filter input is open
		if m.EntryList.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.Keys.Open):
			if item, ok := m.EntryList.SelectedItem().(entryItem); ok {
				m.selected = true
				m.selectedEntry = item.entry
				return m, nil
			}

		case key.Matches(msg, m.Keys.Quit):
			// Esc clears an applied filter before it quits
			if msg.String() == "esc" && m.EntryList.FilterState() != list.Unfiltered {
				break
			}
			return m, tea.Quit
		}
	}

	m.EntryList, cmd = m.EntryList.Update(msg)
	return m, cmd
}

// View renders the entries screen
func (m EntriesModel) View() string {
	content := m.buildContent()
	helpText := m.Help.View(m.Keys)
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

// buildContent builds the entries screen content
func (m EntriesModel) buildContent() string {
	if m.Empty {
		return m.renderEmptyState()
	}

	summary := RenderSubtitle(fmt.Sprintf("  %d configurations • %d languages",
		len(m.Configs.Names()), len(m.Languages.Names())))

	return lipgloss.JoinVertical(lipgloss.Left,
		summary,
		"",
		m.EntryList.View(),
	)
}

// renderEmptyState renders guidance when no documents are loaded
func (m EntriesModel) renderEmptyState() string {
	info := RenderInfo(lipgloss.JoinVertical(lipgloss.Left,
		"No documents loaded.",
		"",
		"Declare configuration and language files in dotjson.yaml,",
		"or create a starter manifest with: dotjson init",
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderTitle("Loaded Documents"),
		info,
	)
}
