package html_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/render"
	htmlrenderer "github.com/goliatone/go-scholarform/pkg/renderers/html"
)

func tradeForm(t *testing.T) model.FormModel {
	t.Helper()
	def, err := form.Definition(form.Trade)
	if err != nil {
		t.Fatalf("definition: %v", err)
	}
	built, err := model.NewBuilder().Build(def)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return built
}

func renderString(t *testing.T, renderer *htmlrenderer.Renderer, form model.FormModel, opts render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
}

func TestRendererDrawsEverySection(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "html" || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected renderer identity %s %s", renderer.Name(), renderer.ContentType())
	}

	output := renderString(t, renderer, tradeForm(t), render.RenderOptions{})

	assertContains(t, output,
		"<title>Trade School Scholarship Application</title>",
		`<form class="sf-form" id="trade" method="post" action="/forms/trade" novalidate>`,
		`id="section-personal"`,
		`id="section-essays"`,
		`name="personal.email"`,
		`type="email"`,
		`type="tel"`,
		`type="date"`,
		// academic requires one entry so an empty one is drawn
		`name="academic.0.school"`,
		`value="add:academic"`,
		`value="remove:academic:0"`,
		`formaction="/forms/trade/entries"`,
		`formaction="/forms/trade/print"`,
		`data-max-words="150"`,
		"0/150 words",
		"Employment Plans (limit 150 words)",
		"Submit Application",
		".sf-form",
	)
	if strings.Contains(output, `name="siblings.0.name"`) {
		t.Fatalf("siblings should start without entries")
	}
}

func TestRendererPopulatesValuesErrorsAndStatus(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output := renderString(t, renderer, tradeForm(t), render.RenderOptions{
		Values: map[string]any{
			"personal.firstName":     "Ada",
			"siblings.0.name":        "Ben",
			"siblings.0.inSchool":    true,
			"essays.employmentPlans": "build small engines",
			"financial.acceptedTo":   false,
		},
		Entries: map[string]int{"academic": 2, "siblings": 1},
		Errors: map[string][]string{
			"personal.email": {"Invalid email"},
			"academic":       {"Add at least one entry"},
		},
		FormErrors:   []string{"Please fix the highlighted fields"},
		Status:       &render.Status{Kind: render.StatusError, Message: "Failed to send the application: quota"},
		HiddenFields: map[string]string{"csrf_token": "abc"},
		Submitting:   true,
	})

	assertContains(t, output,
		`name="personal.firstName" value="Ada"`,
		`name="siblings.0.name" value="Ben"`,
		`name="siblings.0.inSchool" value="on" checked`,
		`name="academic.1.school"`,
		"build small engines</textarea>",
		"3/150 words",
		`<p class="sf-error" role="alert">Invalid email</p>`,
		`<p class="sf-error" role="alert">Add at least one entry</p>`,
		"Please fix the highlighted fields",
		`class="sf-status sf-status--error"`,
		"Failed to send the application: quota",
		`<input type="hidden" name="csrf_token" value="abc">`,
		`disabled aria-busy="true"`,
	)
	if strings.Contains(output, `name="financial.acceptedTo" value="on" checked`) {
		t.Fatalf("unchecked box rendered as checked")
	}
}

func TestRendererEscapesValues(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderString(t, renderer, tradeForm(t), render.RenderOptions{
		Values: map[string]any{"personal.lastName": `<script>alert(1)</script>`},
	})
	if strings.Contains(output, "<script>alert(1)</script>") {
		t.Fatalf("value was not escaped")
	}
}

func TestRendererAppliesTheme(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	cfg, err := render.ResolveTheme(&theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"sf-accent": "#123456"},
		Assets: theme.Assets{
			Prefix: "/assets/acme",
			Files:  map[string]string{"forms.stylesheet": "forms.css"},
		},
	}, "", render.DefaultThemeFallbacks())
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}

	output := renderString(t, renderer, tradeForm(t), render.RenderOptions{Theme: cfg})

	assertContains(t, output,
		`data-theme="acme"`,
		`<link rel="stylesheet" href="/assets/acme/forms.css">`,
		"--sf-accent: #123456;",
	)
}

func TestRendererUsesThemePartials(t *testing.T) {
	files := fstest.MapFS{
		"templates/layout.tmpl":  {Data: []byte(`{% for section in sections %}{{ section|safe }}{% endfor %}`)},
		"templates/section.tmpl": {Data: []byte(`[{{ section.name }}]`)},
		"templates/field.tmpl":   {Data: []byte(`{{ field.path }};`)},
		"acme/section.tmpl":      {Data: []byte(`<{{ section.name }}>`)},
	}
	renderer, err := htmlrenderer.New(htmlrenderer.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	mini := model.FormModel{ID: "mini", Sections: []model.Section{{Name: "personal"}, {Name: "essays"}}}
	output := renderString(t, renderer, mini, render.RenderOptions{
		Theme: &theme.RendererConfig{Partials: map[string]string{"forms.section": "acme/section.tmpl"}},
	})
	if output != "<personal><essays>" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestRendererTemplatesDirOverridesBundle(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := []byte(`<p class="custom" data-path="{{ field.path }}"></p>`)
	if err := os.WriteFile(filepath.Join(dir, "templates", "field.tmpl"), override, 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	renderer, err := htmlrenderer.New(htmlrenderer.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output := renderString(t, renderer, tradeForm(t), render.RenderOptions{})
	assertContains(t, output,
		`<p class="custom" data-path="personal.firstName"></p>`,
		`data-section="personal"`,
	)
	if strings.Contains(output, `name="personal.firstName"`) {
		t.Fatalf("expected field template to be replaced")
	}
}

func TestRendererRejectsMissingTemplatesDir(t *testing.T) {
	if _, err := htmlrenderer.New(htmlrenderer.WithTemplatesDir(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatalf("expected error for missing templates dir")
	}
}

func TestAssetsFSServesStylesheet(t *testing.T) {
	files := htmlrenderer.AssetsFS()
	if _, err := files.Open(htmlrenderer.StylesheetName); err != nil {
		t.Fatalf("open stylesheet: %v", err)
	}
}
