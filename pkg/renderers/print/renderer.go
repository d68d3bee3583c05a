// Package print renders a read-only, printer friendly page of the values a
// form currently holds.
package print

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/render"
	rendertemplate "github.com/goliatone/go-scholarform/pkg/render/template"
	"github.com/goliatone/go-scholarform/pkg/render/template/gotemplate"
)

// Name is the registry name of the print renderer.
const Name = "print"

const templateName = "templates/print.tmpl"

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Option configures the renderer.
type Option func(*Renderer)

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(r *Renderer) {
		if renderer != nil {
			r.templates = renderer
		}
	}
}

// WithClock stamps pages with the time returned by clock.
func WithClock(clock func() time.Time) Option {
	return func(r *Renderer) {
		r.clock = clock
	}
}

// Renderer produces the printable page.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	clock     func() time.Time
}

var _ render.Renderer = (*Renderer)(nil)

type row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type sectionView struct {
	Name    string  `json:"name"`
	Title   string  `json:"title"`
	Entries [][]row `json:"entries"`
}

// New constructs the print renderer.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(embeddedTemplates),
			gotemplate.WithTemplateFunc(map[string]any{"longdate": pongo2.FilterFunction(longDate)}),
		)
		if err != nil {
			return nil, fmt.Errorf("print renderer: configure template renderer: %w", err)
		}
		r.templates = engine
	}
	return r, nil
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render lists every section with the values in opts.Values. Unset optional
// values are left out; booleans print as Yes or No.
func (r *Renderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("print renderer: template renderer is nil")
	}

	sections := make([]sectionView, 0, len(form.Sections))
	for _, section := range form.Sections {
		view := sectionView{Name: section.Name, Title: section.Title}
		if section.Repeated {
			for index := 0; index < entries(section.Name, opts); index++ {
				prefix := section.Name + "." + strconv.Itoa(index) + "."
				if rows := collect(section.Fields, prefix, opts.Values); len(rows) > 0 {
					view.Entries = append(view.Entries, rows)
				}
			}
		} else if rows := collect(section.Fields, section.Name+".", opts.Values); len(rows) > 0 {
			view.Entries = append(view.Entries, rows)
		}
		sections = append(sections, view)
	}

	data := map[string]any{
		"title":    form.Title,
		"sections": sections,
	}
	if r.clock != nil {
		data["printedAt"] = r.clock()
	}
	if opts.Theme != nil {
		data["cssVars"] = sortedVars(opts.Theme.CSSVars)
	}

	out, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("print renderer: %w", err)
	}
	return []byte(out), nil
}

// longDate formats a time, or its RFC 3339 text, as "March 10, 2024".
func longDate(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var at time.Time
	switch v := in.Interface().(type) {
	case time.Time:
		at = v
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:longdate", OrigError: err}
		}
		at = parsed
	default:
		return nil, &pongo2.Error{Sender: "filter:longdate", OrigError: fmt.Errorf("unsupported value %T", v)}
	}
	return pongo2.AsValue(at.Format("January 2, 2006")), nil
}

// entries is the declared entry count, or the highest index seen in values
// when the caller did not provide counts.
func entries(section string, opts render.RenderOptions) int {
	if count, ok := opts.Entries[section]; ok {
		return count
	}
	count := 0
	prefix := section + "."
	for key := range opts.Values {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		head, _, _ := strings.Cut(rest, ".")
		if index, err := strconv.Atoi(head); err == nil && index+1 > count {
			count = index + 1
		}
	}
	return count
}

func collect(fields []model.Field, prefix string, values map[string]any) []row {
	var rows []row
	for _, field := range fields {
		value, ok := format(field, values[prefix+field.Name])
		if !ok {
			continue
		}
		rows = append(rows, row{Label: field.Label, Value: value})
	}
	return rows
}

func format(field model.Field, value any) (string, bool) {
	if field.Type == model.FieldTypeBoolean {
		checked, _ := value.(bool)
		if s, ok := value.(string); ok {
			checked = s == "on" || s == "true"
		}
		if checked {
			return "Yes", true
		}
		return "No", true
	}
	text := strings.TrimSpace(fmt.Sprint(value))
	if value == nil || text == "" {
		return "", false
	}
	return text, true
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sortedVars(vars map[string]string) []cssVar {
	out := make([]cssVar, 0, len(vars))
	for name, value := range vars {
		out = append(out, cssVar{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
