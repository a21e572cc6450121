package schema

import "strings"

// Kind enumerates the field kinds a form structure can declare.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindObject Kind = "object"
	KindArray  Kind = "array"
)

// PrimitiveKinds lists the kinds an input control can bind directly.
var PrimitiveKinds = []Kind{KindString, KindNumber}

// IsPrimitive reports whether the kind maps to a single input control.
func (k Kind) IsPrimitive() bool {
	return k == KindString || k == KindNumber
}

// FieldSpec is one node in a form structure. Exactly one shape applies per
// kind: primitives carry nothing extra, objects carry Children, arrays carry
// ItemKind plus Items when ItemKind is KindObject.
type FieldSpec struct {
	Name     string      `json:"name"`
	Kind     Kind        `json:"kind"`
	Children []FieldSpec `json:"children,omitempty"`
	ItemKind Kind        `json:"itemKind,omitempty"`
	Items    []FieldSpec `json:"items,omitempty"`
}

// Structure is an ordered form schema. Order is significant: it drives both
// rendering order and the wire representation's key order.
type Structure []FieldSpec

// Form mirrors the backend form resource. Structure is the decoded
// form_structure payload; the backend remains the source of truth.
type Form struct {
	ID          int64
	Title       string
	Description string
	Structure   Structure
}

// IdentifierField returns the name of the first top-level field. The first
// field is treated as the form's display identifier, not a uniqueness
// constraint.
func (s Structure) IdentifierField() string {
	if len(s) == 0 {
		return ""
	}
	return s[0].Name
}

// Field looks up a top-level field by name.
func (s Structure) Field(name string) (FieldSpec, bool) {
	for _, field := range s {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// WithField returns a copy of the structure with the named top-level field
// appended. The receiver is never mutated.
func (s Structure) WithField(field FieldSpec) Structure {
	out := make(Structure, 0, len(s)+1)
	out = append(out, s...)
	return append(out, field)
}

// WithoutField returns a copy of the structure with the named top-level field
// removed. Removing an unknown name returns an equal copy.
func (s Structure) WithoutField(name string) Structure {
	out := make(Structure, 0, len(s))
	for _, field := range s {
		if field.Name == name {
			continue
		}
		out = append(out, field)
	}
	return out
}

// ItemShape returns the structure describing one array item, or nil when the
// field is not an array of objects.
func (f FieldSpec) ItemShape() Structure {
	if f.Kind != KindArray || f.ItemKind != KindObject {
		return nil
	}
	return Structure(f.Items)
}

// Validate checks the invariants a structure must satisfy before it is
// persisted: non-empty unique sibling names, known kinds, and a declared item
// kind on every array field.
func (s Structure) Validate() error {
	return validateFields(s, "")
}

func validateFields(fields []FieldSpec, path string) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		at := joinFieldPath(path, name)
		if name == "" {
			return &ValidateError{Path: path, Reason: "field name is empty"}
		}
		if _, dup := seen[name]; dup {
			return &ValidateError{Path: at, Reason: "duplicate sibling name"}
		}
		seen[name] = struct{}{}

		switch field.Kind {
		case KindString, KindNumber:
			if len(field.Children) > 0 || len(field.Items) > 0 || field.ItemKind != "" {
				return &ValidateError{Path: at, Reason: "primitive field carries nested shape"}
			}
		case KindObject:
			if field.ItemKind != "" || len(field.Items) > 0 {
				return &ValidateError{Path: at, Reason: "object field carries array shape"}
			}
			if err := validateFields(field.Children, at); err != nil {
				return err
			}
		case KindArray:
			switch field.ItemKind {
			case KindString, KindNumber:
				if len(field.Items) > 0 {
					return &ValidateError{Path: at, Reason: "primitive-item array carries item fields"}
				}
			case KindObject:
				if err := validateFields(field.Items, at); err != nil {
					return err
				}
			default:
				return &ValidateError{Path: at, Reason: "array field missing item kind"}
			}
			if len(field.Children) > 0 {
				return &ValidateError{Path: at, Reason: "array field carries object children"}
			}
		default:
			return &ValidateError{Path: at, Reason: "unknown field kind " + string(field.Kind)}
		}
	}
	return nil
}

// ValidateError reports a structural invariant violation at a dotted path.
type ValidateError struct {
	Path   string
	Reason string
}

func (e *ValidateError) Error() string {
	if e.Path == "" {
		return "schema: " + e.Reason
	}
	return "schema: " + e.Path + ": " + e.Reason
}

func joinFieldPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}
