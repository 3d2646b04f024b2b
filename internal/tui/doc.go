// Package tui implements the full-screen document browser behind the
// "dotjson browse" command.
//
// This package provides an interactive, full-screen TUI for inspecting and
// editing the documents a manifest loads. Built using the Bubble Tea
// framework, it follows the Elm architecture with immutable state updates
// and a clean Model-Update-View pattern.
//
// # Architecture
//
// The TUI is organized into two screens:
//   - Entries: card list of every loaded configuration and language
//   - Document: drill-down browser for one document, one object level
//     at a time
//
// Both screens use a unified container pattern (RenderApplicationContainer)
// for consistent layout with header, content area, and context-sensitive
// footer. The AppModel coordinator routes messages, propagates terminal
// dimensions, and rebuilds the entries screen on return so key counts
// reflect edits.
//
// # Framework Components
//
// The TUI leverages Bubble Tea framework components throughout:
//   - bubbles/list: entry cards with filtering
//   - bubbles/textinput: inline value editor
//   - bubbles/spinner: persist-in-flight indicator
//   - bubbles/help: context-aware key binding footer
//   - lipgloss: styling and layout
//
// # Editing Semantics
//
// Configuration values edit inline: the editor text is parsed as JSON with
// a fallback to the raw string, then persisted through the registry's
// SetValue, which rewrites the backing file before the editor reports
// success. Language documents are shown read-only; translations are edited
// in their source files.
//
// # Usage Example
//
//	app := tui.NewAppModel(configs, languages)
//	program := tea.NewProgram(app, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
