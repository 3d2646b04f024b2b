// Package dotpath implements dotted-key traversal over parsed JSON documents.
//
// A dotted key such as "server.listen.port" names a nested field by splitting
// on '.' and descending one JSON object per segment. The package provides the
// two primitives shared by the config and language registries:
//
//   - Resolve walks a document and returns the value at a dotted key, falling
//     back to the key string itself when the path cannot be followed.
//   - Assign writes a value at a dotted key, creating intermediate objects as
//     needed.
//
// # Fallback Semantics
//
// Resolve never fails. When a segment is missing, or the current value is not
// a JSON object, the original full key string is returned unchanged:
//
//	doc := map[string]any{"a": map[string]any{"b": map[string]any{}}}
//	dotpath.Resolve(doc, "a.b.missing")  // "a.b.missing"
//
// Downstream callers display the raw key as a visible placeholder for missing
// configuration values and translations, so the sentinel must be the key
// itself, not nil or an empty string.
//
// Traversal only descends JSON objects. Arrays are opaque: a dotted key that
// reaches an array stops there and falls back to the key string.
//
// # Assignment Semantics
//
// Assign creates empty objects for missing intermediate segments. An existing
// intermediate that is not an object is replaced by a fresh empty object and
// its previous value is discarded. After Assign returns, Resolve with the
// same key always yields the assigned value.
package dotpath
