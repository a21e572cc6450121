// Package binder maintains response documents that structurally conform to a
// form structure, and mediates all reads and writes through composite
// dotted/indexed paths such as "address.city" or "items[0].sku".
package binder

import (
	"fmt"
	"strconv"
	"strings"
)

// PathError reports an address that does not match the document or structure
// shape. It signals a programming error: callers must not swallow it and
// default the value, or a document can be silently corrupted.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("binder: path %q: %s", e.Path, e.Reason)
}

// segment is one step of a parsed composite path: either a field name or an
// array index.
type segment struct {
	name  string
	index int
	isIdx bool
}

func (s segment) String() string {
	if s.isIdx {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.name
}

// parsePath splits a composite path into field and index segments. The
// grammar is names separated by dots, each optionally followed by one or more
// bracketed indexes.
func parsePath(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &PathError{Path: path, Reason: "empty path"}
	}

	var segments []segment
	for _, part := range strings.Split(path, ".") {
		name, indexes, err := splitIndexes(part)
		if err != nil {
			return nil, &PathError{Path: path, Reason: err.Error()}
		}
		if name == "" {
			return nil, &PathError{Path: path, Reason: "missing field name"}
		}
		segments = append(segments, segment{name: name})
		for _, idx := range indexes {
			segments = append(segments, segment{index: idx, isIdx: true})
		}
	}
	return segments, nil
}

func splitIndexes(part string) (string, []int, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if strings.ContainsRune(part, ']') {
			return "", nil, fmt.Errorf("unbalanced bracket in %q", part)
		}
		return part, nil, nil
	}

	name := part[:open]
	rest := part[open:]
	var indexes []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, fmt.Errorf("unexpected %q after index", rest)
		}
		closeAt := strings.IndexByte(rest, ']')
		if closeAt < 0 {
			return "", nil, fmt.Errorf("unbalanced bracket in %q", part)
		}
		idx, err := strconv.Atoi(rest[1:closeAt])
		if err != nil || idx < 0 {
			return "", nil, fmt.Errorf("invalid index in %q", part)
		}
		indexes = append(indexes, idx)
		rest = rest[closeAt+1:]
	}
	return name, indexes, nil
}

// joinPath extends a path prefix with a field name.
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	if name == "" {
		return prefix
	}
	return prefix + "." + name
}

// indexPath extends a path with an array index.
func indexPath(prefix string, index int) string {
	return prefix + "[" + strconv.Itoa(index) + "]"
}
