// Package i18n localizes the CLI's own output.
//
// A tool for managing localization files ought to speak more than one
// language itself. Messages live in embedded go-i18n JSON files under
// locales/, one file per language, and are selected at startup from the
// DOTJSON_LANG environment variable (falling back to LANG, then English).
//
// # Usage Example
//
//	fmt.Println(i18n.T("no_daemons"))
//	fmt.Println(i18n.Tf("value_updated", map[string]any{
//	    "Key":  "database.host",
//	    "Name": "app",
//	}))
//	fmt.Println(i18n.Tn("daemons_found", len(services)))
//
// # Fallback
//
// Lookups that miss return the message ID unchanged, the same contract the
// library's Translate has for missing dotted keys. A stale locale file
// degrades to readable IDs instead of errors.
//
// This package localizes the CLI only. Documents managed BY the tool go
// through the language registry, which is user data and none of go-i18n's
// business.
package i18n
