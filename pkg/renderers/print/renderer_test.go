package print_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-scholarform/pkg/form"
	printrenderer "github.com/goliatone/go-scholarform/pkg/renderers/print"
	"github.com/goliatone/go-scholarform/pkg/testsupport"
)

func TestRendererPrintsSessionValues(t *testing.T) {
	session := testsupport.FilledSession(t, form.Trade)
	snapshot := session.Snapshot()

	renderer, err := printrenderer.New(printrenderer.WithClock(func() time.Time { return testsupport.Today }))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), session.Model(), renderOptions(snapshot))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	output := string(out)

	for _, fragment := range []string{
		"<h1>Trade School Scholarship Application</h1>",
		"Printed March 10, 2024",
		"<dt>First Name</dt><dd>Ada</dd>",
		"<dt>School</dt><dd>Lee High</dd>",
		"<dt>In School</dt><dd>Yes</dd>",
		"<dt>Accepted</dt><dd>Yes</dd>",
		"<dt>High School GPA</dt><dd>3.8</dd>",
		`data-section="employment"`,
		"None provided",
	} {
		if !strings.Contains(output, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
	if strings.Contains(output, "<dt>Class Size</dt>") {
		t.Errorf("empty optional field should be omitted")
	}
}

func TestRendererInfersEntryCountFromValues(t *testing.T) {
	session, err := form.NewSession(form.University)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	renderer, err := printrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(context.Background(), session.Model(), renderOptionsWithoutCounts(map[string]any{
		"siblings.0.name":     "Ben",
		"siblings.1.name":     "Cleo",
		"siblings.1.inSchool": false,
	}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	output := string(out)
	if strings.Count(output, `<dl class="print-entry">`) != 2 {
		t.Fatalf("expected two sibling entries, got:\n%s", output)
	}
	if !strings.Contains(output, "<dt>Name</dt><dd>Cleo</dd>") || strings.Contains(output, "Printed") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}
