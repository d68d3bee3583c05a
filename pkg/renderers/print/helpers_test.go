package print_test

import (
	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/render"
)

func renderOptions(snapshot form.Snapshot) render.RenderOptions {
	return render.RenderOptions{Values: snapshot.Values(), Entries: snapshot.EntryCounts()}
}

func renderOptionsWithoutCounts(values map[string]any) render.RenderOptions {
	return render.RenderOptions{Values: values}
}
