package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wrrulos/dotjson"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenEntries  Screen = "entries"
	ScreenDocument Screen = "document"
)

// Messages for screen transitions
type openDocumentMsg struct {
	entry registryEntry
}

type goBackMsg struct{}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen Screen

	// Screen models
	EntriesModel  EntriesModel
	DocumentModel DocumentModel

	// Shared application state
	Configs   *dotjson.ConfigRegistry
	Languages *dotjson.LanguageRegistry

	// UI state
	Width  int
	Height int
}

// NewAppModel creates a new application model starting at the entries screen
func NewAppModel(configs *dotjson.ConfigRegistry, languages *dotjson.LanguageRegistry) AppModel {
	return AppModel{
		CurrentScreen: ScreenEntries,
		EntriesModel:  NewEntriesModel(configs, languages),
		Configs:       configs,
		Languages:     languages,
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.EntriesModel.Init()
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens
		m.EntriesModel.SetSize(msg.Width, msg.Height)
		m.DocumentModel.Width = msg.Width
		m.DocumentModel.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case openDocumentMsg:
		return m.openDocument(msg.entry)

	case goBackMsg:
		return m.goBack()
	}

	// Route to current screen
	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenEntries:
		updated, c := m.EntriesModel.Update(msg)
		m.EntriesModel = updated.(EntriesModel)
		cmd = c

		// Check if user opened an entry
		if entry, ok := m.EntriesModel.TakeSelection(); ok {
			return m.openDocument(entry)
		}

	case ScreenDocument:
		updated, c := m.DocumentModel.Update(msg)
		m.DocumentModel = updated.(DocumentModel)
		cmd = c

		// Check if user wants to go back to the entries list
		if m.DocumentModel.BackRequested {
			return m.goBack()
		}
	}

	return m, cmd
}

// openDocument transitions to the document screen for the given entry
func (m AppModel) openDocument(entry registryEntry) (tea.Model, tea.Cmd) {
	doc, err := NewDocumentModel(entry, m.Configs, m.Languages)
	if err != nil {
		// The entry disappeared between listing and opening; rebuild the list
		m.EntriesModel = NewEntriesModel(m.Configs, m.Languages)
		m.EntriesModel.SetSize(m.Width, m.Height)
		m.CurrentScreen = ScreenEntries
		return m, m.EntriesModel.Init()
	}

	doc.Width = m.Width
	doc.Height = m.Height
	m.DocumentModel = doc
	m.CurrentScreen = ScreenDocument
	return m, m.DocumentModel.Init()
}

// goBack returns to the entries screen, rebuilding it so metadata such as
// key counts reflects any edits made on the document screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	m.EntriesModel = NewEntriesModel(m.Configs, m.Languages)
	m.EntriesModel.SetSize(m.Width, m.Height)
	m.CurrentScreen = ScreenEntries
	return m, m.EntriesModel.Init()
}

// View renders the current screen
// Each screen handles its own container using RenderApplicationContainer()
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenEntries:
		return m.EntriesModel.View()
	case ScreenDocument:
		return m.DocumentModel.View()
	default:
		return "Unknown screen"
	}
}
