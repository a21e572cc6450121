package binder

import (
	"sort"

	"github.com/formdeck/formdeck/pkg/schema"
)

// Binder owns the working copy of a structure during a fill session. The
// document itself stays immutable: every mutating operation returns a new
// document and leaves its input untouched.
type Binder struct {
	structure schema.Structure
	disabled  map[string]struct{}
	admin     bool
}

// Option configures a Binder at construction.
type Option func(*Binder)

// WithAdmin marks the session as an administrator session. Dynamic field
// operations are user-only and become no-ops for admins.
func WithAdmin(admin bool) Option {
	return func(b *Binder) {
		b.admin = admin
	}
}

// New constructs a Binder over a structure.
func New(structure schema.Structure, options ...Option) *Binder {
	b := &Binder{
		structure: structure,
		disabled:  make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Structure returns the current working structure, including any dynamic
// fields added during the session.
func (b *Binder) Structure() schema.Structure {
	return b.structure
}

// Initialize produces the empty document for the working structure.
func (b *Binder) Initialize() Document {
	return Initialize(b.structure)
}

// AppendArrayItem returns a new document with one default item appended to
// the sequence at arrayPath. Existing items are shared, never mutated.
// Array growth is append-only: no removal operation exists.
func (b *Binder) AppendArrayItem(doc Document, arrayPath string) (Document, error) {
	spec, err := b.specAt(arrayPath)
	if err != nil {
		return nil, err
	}
	if spec.Kind != schema.KindArray {
		return nil, &PathError{Path: arrayPath, Reason: "field is not an array"}
	}
	item, ok := defaultItem(spec)
	if !ok {
		return nil, &PathError{Path: arrayPath, Reason: "array declares no item shape"}
	}

	current, err := Read(doc, arrayPath)
	if err != nil {
		return nil, err
	}
	sequence, ok := current.([]any)
	if !ok {
		return nil, &PathError{Path: arrayPath, Reason: "document value is not a sequence"}
	}

	grown := make([]any, 0, len(sequence)+1)
	grown = append(grown, sequence...)
	grown = append(grown, item)
	return Write(doc, arrayPath, grown)
}

// AddDynamicField extends both the working structure and the document with a
// new top-level field. It is a silent no-op when the name is empty, the name
// collides with an existing field, or the session is an admin session. The
// extension is not persisted unless the owning form is explicitly re-saved.
func (b *Binder) AddDynamicField(doc Document, name string, kind schema.Kind) Document {
	if b.admin || name == "" {
		return doc
	}
	if _, exists := b.structure.Field(name); exists {
		return doc
	}

	field := schema.FieldSpec{Name: name, Kind: kind}
	if kind == schema.KindArray {
		// Dynamic arrays start as object arrays with an open item shape.
		field.ItemKind = schema.KindObject
	}

	b.structure = b.structure.WithField(field)
	clone := make(Document, len(doc)+1)
	for k, v := range doc {
		clone[k] = v
	}
	clone[name] = defaultValue(field)
	return clone
}

// RemoveDynamicField drops a top-level field from both the working structure
// and the document. Stale keys for removed fields must not survive a save.
func (b *Binder) RemoveDynamicField(doc Document, name string) Document {
	if b.admin || name == "" {
		return doc
	}
	if _, exists := b.structure.Field(name); !exists {
		return doc
	}

	b.structure = b.structure.WithoutField(name)
	delete(b.disabled, name)
	clone := make(Document, len(doc))
	for k, v := range doc {
		if k == name {
			continue
		}
		clone[k] = v
	}
	return clone
}

// DisableField marks a field inert: its value stays visible in the document
// until submission-time filtering strips it. Paths are dotted field names
// without indexes; a disabled object or array applies to all of its items.
func (b *Binder) DisableField(path string) {
	if b.admin || path == "" {
		return
	}
	b.disabled[path] = struct{}{}
}

// EnableField clears a disabled mark.
func (b *Binder) EnableField(path string) {
	delete(b.disabled, path)
}

// IsDisabled reports whether a field path is currently disabled.
func (b *Binder) IsDisabled(path string) bool {
	_, ok := b.disabled[path]
	return ok
}

// DisabledFields returns the disabled field paths in sorted order.
func (b *Binder) DisabledFields() []string {
	if len(b.disabled) == 0 {
		return nil
	}
	out := make([]string, 0, len(b.disabled))
	for path := range b.disabled {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// DisabledSet returns a copy of the disabled path set.
func (b *Binder) DisabledSet() map[string]struct{} {
	out := make(map[string]struct{}, len(b.disabled))
	for path := range b.disabled {
		out[path] = struct{}{}
	}
	return out
}

// FilterDisabled returns a copy of the document with every disabled field
// removed, recursively, including disabled leaves nested inside objects and
// array items. The input document is never mutated.
func (b *Binder) FilterDisabled(doc Document) Document {
	return FilterDisabled(b.structure, doc, b.disabled)
}

// FilterDisabled strips the keys in disabled from a document that conforms to
// the given structure. Disabled paths are dotted field names; array indexes
// do not participate.
func FilterDisabled(s schema.Structure, doc Document, disabled map[string]struct{}) Document {
	return filterFields(s, doc, disabled, "")
}

func filterFields(fields schema.Structure, doc map[string]any, disabled map[string]struct{}, prefix string) map[string]any {
	out := make(map[string]any, len(doc))
	for _, field := range fields {
		path := joinPath(prefix, field.Name)
		if _, skip := disabled[path]; skip {
			continue
		}
		value, ok := doc[field.Name]
		if !ok {
			continue
		}
		out[field.Name] = filterValue(field, value, disabled, path)
	}
	return out
}

func filterValue(field schema.FieldSpec, value any, disabled map[string]struct{}, path string) any {
	switch field.Kind {
	case schema.KindObject:
		if nested, ok := value.(map[string]any); ok {
			return filterFields(schema.Structure(field.Children), nested, disabled, path)
		}
	case schema.KindArray:
		if field.ItemKind != schema.KindObject {
			if sequence, ok := value.([]any); ok {
				clone := make([]any, len(sequence))
				copy(clone, sequence)
				return clone
			}
			return value
		}
		if sequence, ok := value.([]any); ok {
			shape := field.ItemShape()
			clone := make([]any, 0, len(sequence))
			for _, item := range sequence {
				if nested, ok := item.(map[string]any); ok {
					clone = append(clone, filterFields(shape, nested, disabled, path))
					continue
				}
				clone = append(clone, item)
			}
			return clone
		}
	}
	return value
}

// specAt resolves the FieldSpec addressed by a composite path against the
// working structure.
func (b *Binder) specAt(path string) (schema.FieldSpec, error) {
	segments, err := parsePath(path)
	if err != nil {
		return schema.FieldSpec{}, err
	}

	fields := b.structure
	var current schema.FieldSpec
	located := false
	for _, seg := range segments {
		if seg.isIdx {
			if !located || current.Kind != schema.KindArray {
				return schema.FieldSpec{}, &PathError{Path: path, Reason: "index segment on a non-array field"}
			}
			if current.ItemKind == schema.KindObject {
				fields = current.ItemShape()
				located = false
				continue
			}
			// Primitive items: the index is the leaf.
			current = schema.FieldSpec{Name: current.Name, Kind: current.ItemKind}
			continue
		}
		field, ok := fields.Field(seg.name)
		if !ok {
			return schema.FieldSpec{}, &PathError{Path: path, Reason: "unknown field " + seg.name}
		}
		current = field
		located = true
		switch field.Kind {
		case schema.KindObject:
			fields = schema.Structure(field.Children)
		default:
			fields = nil
		}
	}
	return current, nil
}
