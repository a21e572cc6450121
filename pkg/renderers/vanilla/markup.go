package vanilla

import (
	"fmt"
	"html"
	"strings"

	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/schema"
)

// fieldMarkup turns the flat render plan into nested HTML. Containers stay
// open until a view at the same or shallower depth arrives, then close in
// reverse order.
func fieldMarkup(views []render.FieldView) string {
	var b strings.Builder
	var open []openContainer

	for _, view := range views {
		for len(open) > 0 && view.Depth <= open[len(open)-1].depth {
			b.WriteString(open[len(open)-1].closing)
			open = open[:len(open)-1]
		}

		switch view.Control {
		case render.ControlInput:
			writeInput(&b, view)
		case render.ControlSection:
			fmt.Fprintf(&b, `<fieldset class="fd-object" data-path="%s"><legend>%s</legend>`,
				html.EscapeString(view.Path), html.EscapeString(view.Name))
			open = append(open, openContainer{depth: view.Depth, closing: "</fieldset>"})
		case render.ControlGroup:
			fmt.Fprintf(&b, `<fieldset class="fd-array" data-path="%s"><legend>%s</legend>`+
				`<button type="button" class="fd-append" data-append="%s">Add item</button>`,
				html.EscapeString(view.Path), html.EscapeString(view.Name), html.EscapeString(view.AppendPath))
			open = append(open, openContainer{depth: view.Depth, closing: "</fieldset>"})
		case render.ControlItem:
			fmt.Fprintf(&b, `<div class="fd-item" data-index="%d">`, view.Index)
			open = append(open, openContainer{depth: view.Depth, closing: "</div>"})
		}
	}
	for len(open) > 0 {
		b.WriteString(open[len(open)-1].closing)
		open = open[:len(open)-1]
	}
	return b.String()
}

type openContainer struct {
	depth   int
	closing string
}

func writeInput(b *strings.Builder, view render.FieldView) {
	path := html.EscapeString(view.Path)
	id := "fd-" + path

	b.WriteString(`<div class="fd-field">`)
	fmt.Fprintf(b, `<label for="%s">%s</label>`, id, html.EscapeString(view.Name))
	if view.PrimaryKey {
		b.WriteString(`<span class="fd-pk-hint">Primary Key</span>`)
	}
	fmt.Fprintf(b, `<input id="%s" type="%s" name="%s" value="%s"`,
		id, inputType(view.Kind), path, html.EscapeString(view.Value))
	if view.Disabled {
		b.WriteString(` disabled`)
	}
	b.WriteString(`>`)
	for _, msg := range view.Errors {
		fmt.Fprintf(b, `<p class="fd-error">%s</p>`, html.EscapeString(msg))
	}
	b.WriteString(`</div>`)
}

func inputType(kind schema.Kind) string {
	if kind == schema.KindNumber {
		return "number"
	}
	return "text"
}
