// Package vanilla renders a form and its bound document as a standalone HTML
// page: a template shell around field markup generated straight from the
// render plan.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/render"
	rendertemplate "github.com/formdeck/formdeck/pkg/render/template"
	"github.com/formdeck/formdeck/pkg/render/template/gotemplate"
	"github.com/formdeck/formdeck/pkg/schema"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.Renderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces HTML for a form with its current document values bound.
type Renderer struct {
	templates rendertemplate.Renderer
	sanitize  *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template engine: %w", err)
		}
		engine = built
	}

	return &Renderer{
		templates: engine,
		sanitize:  bluemonday.StrictPolicy(),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render binds the document into the form's field plan and wraps the result
// in the HTML shell. Title and description are user-authored, so they pass
// through the strict sanitizer before reaching the template.
func (r *Renderer) Render(ctx context.Context, form schema.Form, doc binder.Document, opts render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template engine is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	views, err := render.Fields(form.Structure, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: build field plan: %w", err)
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form_id":     form.ID,
		"title":       r.sanitize.Sanitize(form.Title),
		"description": r.sanitize.Sanitize(form.Description),
		"fields":      fieldMarkup(views),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
