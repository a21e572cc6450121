// Package tui fills a form interactively in the terminal, one prompt per
// schema field, and emits the resulting response document.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/schema"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithDriver swaps the prompt driver, typically for tests.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Renderer drives a terminal fill session.
type Renderer struct {
	driver PromptDriver
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer, defaulting to the survey driver.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render runs the fill session and serializes the resulting document.
func (r *Renderer) Render(ctx context.Context, form schema.Form, doc binder.Document, opts render.Options) ([]byte, error) {
	filled, err := r.Fill(ctx, form, doc, opts)
	if err != nil {
		return nil, err
	}
	encoded, err := json.MarshalIndent(filled, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode document: %w", err)
	}
	return encoded, nil
}

// Fill prompts for every enabled field and returns the completed document.
// The input document supplies defaults and is never mutated; a nil document
// starts from the schema's initial values.
func (r *Renderer) Fill(ctx context.Context, form schema.Form, doc binder.Document, opts render.Options) (binder.Document, error) {
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	b := binder.New(form.Structure)
	if doc == nil {
		doc = b.Initialize()
	}

	if form.Title != "" {
		if err := r.driver.Info(ctx, form.Title); err != nil {
			return nil, err
		}
	}

	session := &fillSession{renderer: r, binder: b, opts: opts, doc: doc}
	if err := session.fillFields(ctx, form.Structure, "", ""); err != nil {
		return nil, err
	}
	return session.doc, nil
}

type fillSession struct {
	renderer *Renderer
	binder   *binder.Binder
	opts     render.Options
	doc      binder.Document
}

func (s *fillSession) fillFields(ctx context.Context, fields schema.Structure, docPath, namePath string) error {
	for _, field := range fields {
		if err := s.fillField(ctx, field, docPath, namePath); err != nil {
			return err
		}
	}
	return nil
}

func (s *fillSession) fillField(ctx context.Context, field schema.FieldSpec, docPath, namePath string) error {
	path := joinPath(docPath, field.Name)
	names := joinPath(namePath, field.Name)
	if _, disabled := s.opts.Disabled[names]; disabled {
		return s.renderer.driver.Info(ctx, fmt.Sprintf("%s: disabled, skipped", names))
	}

	switch field.Kind {
	case schema.KindString, schema.KindNumber:
		return s.fillPrimitive(ctx, field.Kind, path, names)
	case schema.KindObject:
		if err := s.renderer.driver.Info(ctx, names+":"); err != nil {
			return err
		}
		return s.fillFields(ctx, schema.Structure(field.Children), path, names)
	case schema.KindArray:
		return s.fillArray(ctx, field, path, names)
	default:
		return fmt.Errorf("tui: field %q: unknown kind %q", path, field.Kind)
	}
}

func (s *fillSession) fillPrimitive(ctx context.Context, kind schema.Kind, path, names string) error {
	current, err := binder.Read(s.doc, path)
	if err != nil {
		return fmt.Errorf("tui: read %q: %w", path, err)
	}
	cfg := InputConfig{
		Message: names,
		Default: fmt.Sprint(current),
	}
	if kind == schema.KindNumber {
		cfg.Validator = validateNumber
	}
	answer, err := s.renderer.driver.Input(ctx, cfg)
	if err != nil {
		return err
	}
	updated, err := binder.Write(s.doc, path, answer)
	if err != nil {
		return fmt.Errorf("tui: write %q: %w", path, err)
	}
	s.doc = updated
	return nil
}

func (s *fillSession) fillArray(ctx context.Context, field schema.FieldSpec, path, names string) error {
	current, err := binder.Read(s.doc, path)
	if err != nil {
		return fmt.Errorf("tui: read %q: %w", path, err)
	}
	items, _ := current.([]any)

	for i := range items {
		if err := s.fillItem(ctx, field, path, names, i); err != nil {
			return err
		}
	}
	for {
		more, err := s.renderer.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add another %s item?", names),
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		updated, err := s.binder.AppendArrayItem(s.doc, path)
		if err != nil {
			return fmt.Errorf("tui: append %q: %w", path, err)
		}
		s.doc = updated

		grown, err := binder.Read(s.doc, path)
		if err != nil {
			return fmt.Errorf("tui: read %q: %w", path, err)
		}
		sequence, _ := grown.([]any)
		if err := s.fillItem(ctx, field, path, names, len(sequence)-1); err != nil {
			return err
		}
	}
}

func (s *fillSession) fillItem(ctx context.Context, field schema.FieldSpec, path, names string, index int) error {
	itemPath := fmt.Sprintf("%s[%d]", path, index)
	if field.ItemKind == schema.KindObject {
		if err := s.renderer.driver.Info(ctx, fmt.Sprintf("%s item %d:", names, index+1)); err != nil {
			return err
		}
		return s.fillFields(ctx, field.ItemShape(), itemPath, names)
	}
	return s.fillPrimitive(ctx, field.ItemKind, itemPath, names)
}

func validateNumber(input string) error {
	if input == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(input, 64); err != nil {
		return fmt.Errorf("not a number: %q", input)
	}
	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
