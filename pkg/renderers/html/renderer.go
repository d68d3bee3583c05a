// Package html renders application forms as standalone HTML pages using the
// pongo2 template adapter. Repeated sections get add and remove buttons that
// post an "_action" value ("add:academic", "remove:academic:0") to the
// form's entries endpoint.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/render"
	rendertemplate "github.com/goliatone/go-scholarform/pkg/render/template"
	"github.com/goliatone/go-scholarform/pkg/render/template/gotemplate"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Files found
// there replace the bundled templates of the same path ("templates/field.tmpl")
// and the rest fall back to the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the inlined stylesheet. An empty string disables
// it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// Renderer renders FormModels as HTML pages.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
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

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templatesDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}
	return &Renderer{templates: renderer, stylesheet: stylesheet}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the form with the values, errors and status carried by opts.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}
	partials := render.DefaultThemeFallbacks()
	if opts.Theme != nil {
		for key, value := range opts.Theme.Partials {
			partials[key] = value
		}
	}

	action := firstNonEmpty(opts.Action, form.Endpoint)
	sections := make([]string, 0, len(form.Sections))
	for _, section := range form.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		markup, err := r.renderSection(partials, section, action, opts)
		if err != nil {
			return nil, err
		}
		sections = append(sections, markup)
	}

	data := map[string]any{
		"form":        form,
		"method":      strings.ToLower(firstNonEmpty(opts.Method, form.Method, "post")),
		"action":      action,
		"printAction": strings.TrimRight(action, "/") + "/print",
		"sections":    sections,
		"status":      opts.Status,
		"formErrors":  opts.FormErrors,
		"hidden":      render.SortedHiddenFields(opts.HiddenFields),
		"submitting":  opts.Submitting,
		"stylesheet":  r.stylesheet,
	}
	if cfg := opts.Theme; cfg != nil {
		data["theme"] = cfg.Theme
		data["variant"] = cfg.Variant
		data["cssVars"] = cssVars(cfg.CSSVars)
		if cfg.AssetURL != nil {
			data["stylesheetURL"] = cfg.AssetURL("forms.stylesheet")
		}
	}

	result, err := r.templates.RenderTemplate(partials["forms.layout"], data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render layout: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderSection(partials map[string]string, section model.Section, action string, opts render.RenderOptions) (string, error) {
	view := sectionView{
		Name:        section.Name,
		Title:       section.Title,
		Description: section.Description,
		Repeated:    section.Repeated,
		AddLabel:    section.AddLabel,
		Errors:      opts.Errors[section.Name],
	}

	if section.Repeated {
		for index := 0; index < entryCount(section, opts); index++ {
			entry := entryView{Index: index}
			for _, field := range section.Fields {
				markup, err := r.renderField(partials, field, entryPath(section.Name, index, field.Name), opts)
				if err != nil {
					return "", err
				}
				entry.Fields = append(entry.Fields, markup)
			}
			view.Entries = append(view.Entries, entry)
		}
	} else {
		for _, field := range section.Fields {
			markup, err := r.renderField(partials, field, section.Name+"."+field.Name, opts)
			if err != nil {
				return "", err
			}
			view.Fields = append(view.Fields, markup)
		}
	}

	result, err := r.templates.RenderTemplate(partials["forms.section"], map[string]any{
		"section":       view,
		"entriesAction": strings.TrimRight(action, "/") + "/entries",
	})
	if err != nil {
		return "", fmt.Errorf("html renderer: render section %q: %w", section.Name, err)
	}
	return result, nil
}

func (r *Renderer) renderField(partials map[string]string, field model.Field, path string, opts render.RenderOptions) (string, error) {
	result, err := r.templates.RenderTemplate(partials["forms.field"], map[string]any{
		"field": newFieldView(field, path, opts),
	})
	if err != nil {
		return "", fmt.Errorf("html renderer: render field %q: %w", path, err)
	}
	return result, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
