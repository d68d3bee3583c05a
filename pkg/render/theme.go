package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeFallbacks lists the partials used when a manifest does not
// override them.
func DefaultThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.layout":  "templates/layout.tmpl",
		"forms.section": "templates/section.tmpl",
		"forms.field":   "templates/field.tmpl",
	}
}

// ResolveTheme merges a manifest and one of its variants into the renderer
// configuration: variant tokens, templates and asset files win over the base
// manifest, which wins over fallbacks. Every token is also exposed as a CSS
// custom property ("brand" becomes "--brand").
func ResolveTheme(manifest *theme.Manifest, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, nil
	}

	partials := mergeStrings(fallbacks, manifest.Templates)
	tokens := mergeStrings(nil, manifest.Tokens)
	files := mergeStrings(nil, manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	variant = strings.TrimSpace(variant)
	if variant != "" {
		selected, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", manifest.Name, variant)
		}
		partials = mergeStrings(partials, selected.Templates)
		tokens = mergeStrings(tokens, selected.Tokens)
		files = mergeStrings(files, selected.Assets.Files)
		if selected.Assets.Prefix != "" {
			prefix = selected.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	prefix = strings.TrimRight(prefix, "/")
	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return prefix + "/" + strings.TrimLeft(file, "/")
		},
	}, nil
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
