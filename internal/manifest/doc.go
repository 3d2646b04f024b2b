// Package manifest loads and saves the dotjson.yaml project manifest.
//
// A manifest declares the documents a project wants preloaded into the
// registries: configuration sources, language sources, the active language,
// and defaults for the CLI (config name, daemon address). The CLI applies a
// manifest to the package-level default registries; the daemon applies it to
// explicitly constructed ones.
//
// # Manifest Format
//
// The manifest is YAML, versioned for forward compatibility:
//
//	version: 1
//	configs:
//	  - name: default
//	    path: config.json
//	  - name: secrets
//	    path: /etc/app/secrets.json
//	languages:
//	  - name: en
//	    path: languages/en.json
//	  - name: es
//	    path: languages/es.json
//	active_language: en
//	default_config: default
//	remote: 192.168.1.50:7600
//
// Relative paths resolve against the directory containing the manifest, so a
// project checked out anywhere finds its documents.
//
// # Lookup Order
//
// Find checks an explicit --manifest override first, then dotjson.yaml in
// the working directory, then the per-user config directory:
//   - Linux: $XDG_CONFIG_HOME/dotjson or $HOME/.config/dotjson
//   - macOS: $HOME/.config/dotjson
//   - Windows: %LOCALAPPDATA%\dotjson
//
// # Atomic Writes
//
// Saves go through a temporary file and rename, so a crash mid-write leaves
// the previous manifest intact.
package manifest
