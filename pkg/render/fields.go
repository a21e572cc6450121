package render

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/schema"
)

// Control classifies a rendered field view.
type Control string

const (
	// ControlInput is a bound input for a primitive leaf.
	ControlInput Control = "input"
	// ControlSection introduces an object field's labeled sub-section.
	ControlSection Control = "section"
	// ControlGroup introduces an array field's repeatable group.
	ControlGroup Control = "group"
	// ControlItem introduces one indexed item inside a group.
	ControlItem Control = "item"
)

// FieldView is one entry in the flat, ordered render plan. Path is the
// composite address the binder understands, so a view's change event routes
// straight back into binder.Write.
type FieldView struct {
	Path       string
	Name       string
	Kind       schema.Kind
	Control    Control
	Value      string
	Depth      int
	Index      int
	Disabled   bool
	PrimaryKey bool
	// AppendPath is set on group views: the array path an "add item"
	// affordance should pass to binder.AppendArrayItem.
	AppendPath string
	Errors     []string
}

// Fields walks the structure depth-first, sibling order preserved, and emits
// one view per control: an input per primitive leaf, a section per object
// field, and a group (plus indexed items) per array field.
func Fields(s schema.Structure, doc binder.Document, opts Options) ([]FieldView, error) {
	identifier := opts.Identifier
	if identifier == "" {
		identifier = s.IdentifierField()
	}
	w := &walker{opts: opts, identifier: identifier}
	if err := w.walkFields(s, doc, "", "", 0, false); err != nil {
		return nil, err
	}
	return w.views, nil
}

type walker struct {
	opts       Options
	identifier string
	views      []FieldView
}

// walkFields emits views for one sibling scope. docPath addresses the scope
// in the document (indexes included); namePath is the index-free field path
// the disabled set and error map are keyed by.
func (w *walker) walkFields(fields schema.Structure, doc map[string]any, docPath, namePath string, depth int, parentDisabled bool) error {
	for _, field := range fields {
		if err := w.walkField(field, doc, docPath, namePath, depth, parentDisabled); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkField(field schema.FieldSpec, doc map[string]any, docPath, namePath string, depth int, parentDisabled bool) error {
	path := joinName(docPath, field.Name)
	names := joinName(namePath, field.Name)
	disabled := parentDisabled || w.disabledPath(names)

	switch field.Kind {
	case schema.KindString, schema.KindNumber:
		value, err := formatValue(doc[field.Name])
		if err != nil {
			return fmt.Errorf("render: field %q: %w", path, err)
		}
		w.views = append(w.views, FieldView{
			Path:       path,
			Name:       field.Name,
			Kind:       field.Kind,
			Control:    ControlInput,
			Value:      value,
			Depth:      depth,
			Index:      -1,
			Disabled:   disabled,
			PrimaryKey: depth == 0 && field.Name == w.identifier,
			Errors:     w.opts.Errors[names],
		})
		return nil

	case schema.KindObject:
		w.views = append(w.views, FieldView{
			Path:     path,
			Name:     field.Name,
			Kind:     field.Kind,
			Control:  ControlSection,
			Depth:    depth,
			Index:    -1,
			Disabled: disabled,
			Errors:   w.opts.Errors[names],
		})
		nested, _ := doc[field.Name].(map[string]any)
		return w.walkFields(schema.Structure(field.Children), nested, path, names, depth+1, disabled)

	case schema.KindArray:
		w.views = append(w.views, FieldView{
			Path:       path,
			Name:       field.Name,
			Kind:       field.Kind,
			Control:    ControlGroup,
			Depth:      depth,
			Index:      -1,
			Disabled:   disabled,
			AppendPath: path,
			Errors:     w.opts.Errors[names],
		})
		sequence, _ := doc[field.Name].([]any)
		return w.walkItems(field, sequence, path, names, depth, disabled)

	default:
		return fmt.Errorf("render: field %q: unknown kind %q", path, field.Kind)
	}
}

func (w *walker) walkItems(field schema.FieldSpec, sequence []any, path, names string, depth int, disabled bool) error {
	for i, item := range sequence {
		itemPath := path + "[" + strconv.Itoa(i) + "]"
		w.views = append(w.views, FieldView{
			Path:    itemPath,
			Name:    field.Name,
			Kind:    field.ItemKind,
			Control: ControlItem,
			Depth:   depth + 1,
			Index:   i,
		})

		if field.ItemKind == schema.KindObject {
			nested, _ := item.(map[string]any)
			if err := w.walkFields(field.ItemShape(), nested, itemPath, names, depth+2, disabled); err != nil {
				return err
			}
			continue
		}

		value, err := formatValue(item)
		if err != nil {
			return fmt.Errorf("render: field %q: %w", itemPath, err)
		}
		w.views = append(w.views, FieldView{
			Path:     itemPath,
			Name:     field.Name,
			Kind:     field.ItemKind,
			Control:  ControlInput,
			Value:    value,
			Depth:    depth + 2,
			Index:    i,
			Disabled: disabled,
		})
	}
	return nil
}

func (w *walker) disabledPath(path string) bool {
	_, ok := w.opts.Disabled[path]
	return ok
}

// formatValue renders a document leaf as input text. Absent values become
// empty strings; containers at a primitive position are shape conflicts.
func formatValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case map[string]any, []any:
		return "", fmt.Errorf("container value at a primitive position")
	default:
		return fmt.Sprint(v), nil
	}
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
