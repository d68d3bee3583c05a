package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/orchestrator"
	"github.com/goliatone/go-scholarform/pkg/render"
)

const snapshotRendererName = "form-model-snapshot"

// snapshotRenderer writes the form model as indented JSON instead of markup.
type snapshotRenderer struct {
	dir string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, formModel model.FormModel, _ render.RenderOptions) ([]byte, error) {
	payload, err := json.MarshalIndent(formModel, "", "  ")
	if err != nil {
		return nil, err
	}
	path := filepath.Join(r.dir, formModel.ID+"_form_model.json")
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	outputDir := flag.String("output", "pkg/form/testdata", "directory receiving one <kind>_form_model.json per form kind")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{dir: *outputDir})
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	)

	ctx := context.Background()
	for _, kind := range form.Kinds() {
		session, err := orch.NewSession(kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open %s session: %v\n", kind, err)
			os.Exit(1)
		}
		if _, err := orch.Render(ctx, orchestrator.Request{Session: session}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to snapshot %s: %v\n", kind, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s form model to %s\n", kind, *outputDir)
	}
}
