package preset

import (
	"sort"
	"strings"

	"github.com/formdeck/formdeck/pkg/binder"
)

// Flatten converts a response document into a dot-joined key/value map for
// the edit view. Only object nesting is flattened; array values are carried
// whole under their own key. This intentionally differs from the binder's
// bracket-indexed addressing, which does reach inside arrays.
func Flatten(doc binder.Document) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, "", doc)
	return flat
}

func flattenInto(flat map[string]any, prefix string, doc binder.Document) {
	for key, value := range doc {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(flat, path, nested)
			continue
		}
		flat[path] = value
	}
}

// Unflatten rebuilds a nested document from dot-joined keys. Intermediate
// objects are created as needed; a key whose intermediate segment already
// holds a non-object value loses to the object (later-created maps win), so
// callers should only feed maps produced by Flatten.
func Unflatten(flat map[string]any) binder.Document {
	doc := binder.Document{}
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		current := doc
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]any)
			if !ok {
				next = map[string]any{}
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = flat[key]
	}
	return doc
}
