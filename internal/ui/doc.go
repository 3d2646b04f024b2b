// Package ui provides terminal UI components for the dotjson CLI.
//
// This package uses Lipgloss to render polished terminal output for
// one-shot commands. Unlike the interactive TUI browser, these components
// follow a "run once and exit" pattern: they render output compellingly
// but don't require user interaction.
//
// # Components
//
//   - Header: command banner showing operation name and parameters
//   - Result: success/failure/warning boxes with styled details
//   - Troubleshooting: tips keyed by registry error category
//
// Commands compose these through the package-level helpers:
//
//	if err := configs.SetValue(key, value, name); err != nil {
//	    ui.PrintFailure("Update failed", err, ui.Troubleshooting(err))
//	    os.Exit(1)
//	}
//	ui.PrintSuccess(i18n.Tf("value_updated", map[string]any{"Key": key, "Name": name}), details)
//
// # Logging Integration
//
// This package expects logging to be controlled via the DOTJSON_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly. Set DOTJSON_LOG_LEVEL to
// "debug", "info", "warn", or "error" to enable logging output.
//
// # Width Handling
//
// All boxes render against the detected terminal width, clamped between
// MinTerminalWidth and MaxContentWidth. Output destined for pipes and shell
// substitution (get, keys, translate) bypasses this package entirely and
// stays plain.
package ui
