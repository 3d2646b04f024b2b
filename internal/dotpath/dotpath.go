package dotpath

import (
	"sort"
	"strings"
)

// Separator splits a dotted key into path segments.
const Separator = "."

// Resolve returns the value at the dotted key inside root.
//
// The key is split on '.' and each segment descends one JSON object level.
// If a segment is missing, or the current value is not an object, the full
// key string is returned as the fallback sentinel. Resolve never returns an
// error and never indexes into arrays.
func Resolve(root any, key string) any {
	current := root
	for _, segment := range strings.Split(key, Separator) {
		obj, ok := current.(map[string]any)
		if !ok {
			return key
		}
		value, ok := obj[segment]
		if !ok {
			return key
		}
		current = value
	}
	return current
}

// Assign writes value at the dotted key inside root and returns the root
// object. Missing intermediate segments are created as empty objects, and
// intermediates holding a non-object value are replaced by empty objects,
// discarding the previous value. A root that is not itself an object is
// replaced the same way.
func Assign(root any, key string, value any) map[string]any {
	rootObj, ok := root.(map[string]any)
	if !ok {
		rootObj = make(map[string]any)
	}

	segments := strings.Split(key, Separator)
	current := rootObj
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value

	return rootObj
}

// Keys returns every dotted key path that resolves to a leaf value in root,
// sorted lexicographically. Object values contribute their nested paths; all
// other values (including arrays) are leaves. A non-object root yields nil.
func Keys(root any) []string {
	obj, ok := root.(map[string]any)
	if !ok {
		return nil
	}
	paths := appendKeys(nil, "", obj)
	sort.Strings(paths)
	return paths
}

func appendKeys(paths []string, prefix string, obj map[string]any) []string {
	for key, value := range obj {
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}
		if child, ok := value.(map[string]any); ok && len(child) > 0 {
			paths = appendKeys(paths, path, child)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}
