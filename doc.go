// Package dotjson loads JSON documents into named in-memory registries and
// exposes them through dotted-path lookups.
//
// Two registries are provided. A configuration registry maps names to JSON
// documents that can be read and rewritten with dotted keys, persisting every
// change back to the source file. A language registry maps names to JSON
// translation documents and keeps an "active language" pointer that Translate
// reads through. The registries are independent: a name loaded as a
// configuration says nothing about the same name as a language.
//
// # Dotted Keys
//
// A dotted key addresses nested JSON objects, so "database.host" reads the
// "host" field inside the "database" object. Lookups never fail on a bad
// path: a key that cannot be followed resolves to the key string itself.
// Array elements are not addressable; a path that hits an array or scalar
// mid-walk falls back like any other miss. Assignment creates missing
// intermediate objects and overwrites non-object intermediates.
//
// # Usage Example
//
//	// Load a configuration and read a nested value.
//	if err := dotjson.LoadConfig(dotjson.DefaultConfig, "config.json"); err != nil {
//	    log.Fatal(err)
//	}
//	host, err := dotjson.GetConfigValue("database.host", dotjson.DefaultConfig)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Update a value; the file on disk is rewritten immediately.
//	if err := dotjson.SetConfigValue("database.port", 5432, dotjson.DefaultConfig); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load translations and translate through the active language.
//	if err := dotjson.LoadLanguage("en", "languages/en.json"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := dotjson.SetActiveLanguage("en"); err != nil {
//	    log.Fatal(err)
//	}
//	greeting, _ := dotjson.Translate("menu.greeting")
//
// # Registries
//
// The package-level functions operate on lazily-created process-wide default
// registries, mirroring the conventional single shared configuration most
// programs want. Programs that need isolation (servers hosting several
// document sets, tests) construct their own registries with
// NewConfigRegistry and NewLanguageRegistry; the methods carry the same
// contracts as the package-level functions.
//
// # Thread Safety
//
// All registry operations are safe for concurrent use. Each registry
// serializes access with a read-write mutex, and SetValue holds the write
// lock across the disk write so concurrent updates cannot persist an older
// document over a newer one. The Async variants run the same operations on a
// background goroutine and deliver the single result on a buffered channel.
//
// # Errors
//
// Failures are reported as *RegistryError values carrying a machine-readable
// ErrorType. Use the Is* helpers (IsAlreadyLoaded, IsNotLoaded,
// IsFileNotFound, IsInvalidFormat, IsInvalidArgument) or errors.As to branch
// on them.
package dotjson
