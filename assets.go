package scholarform

import (
	"io/fs"

	htmlrenderer "github.com/goliatone/go-scholarform/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}

// AssetsFS exposes the default stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(scholarform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return htmlrenderer.AssetsFS()
}
