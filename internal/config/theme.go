package config

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
)

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

// ThemeManifest reads the manifest named by the theme section. It returns
// nil when no manifest is configured.
func (c Config) ThemeManifest() (*theme.Manifest, error) {
	if c.Theme.Manifest == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.Theme.Manifest)
	if err != nil {
		return nil, fmt.Errorf("config: read theme manifest: %w", err)
	}
	var file manifestFile
	if err := decodeYAML(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse theme manifest: %w", err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("config: theme manifest %s has no name", c.Theme.Manifest)
	}

	manifest := &theme.Manifest{
		Name:      file.Name,
		Version:   file.Version,
		Tokens:    file.Tokens,
		Templates: file.Templates,
		Assets:    theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, variant := range file.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest, nil
}
