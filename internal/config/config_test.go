package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scholarform/internal/config"
	"github.com/goliatone/go-scholarform/pkg/form"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadWithEnv("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	kinds, err := cfg.Kinds()
	if err != nil {
		t.Fatalf("kinds: %v", err)
	}
	if diff := cmp.Diff([]form.Kind{form.Trade}, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, "scholarform.yaml", `
server:
  addr: ":9000"
gateway:
  kind: emailjs
  timeout: 5s
  emailjs:
    serviceID: service_x
    templateID: template_y
forms:
  enabled: [trade, university]
`)
	cfg, err := config.LoadWithEnv(path, map[string]string{
		"SCHOLARFORM_GATEWAY_EMAILJS_PUBLIC_KEY": "public_z",
		"SCHOLARFORM_RATE_LIMIT_PER_MINUTE":      "30",
		"SCHOLARFORM_SERVER_ADDR":                ":9100",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != ":9100" {
		t.Fatalf("env should override file addr, got %q", cfg.Server.Addr)
	}
	if cfg.Gateway.Timeout != 5*time.Second || cfg.RateLimit.PerMinute != 30 || cfg.RateLimit.Burst != 3 {
		t.Fatalf("unexpected gateway/rate settings %+v %+v", cfg.Gateway, cfg.RateLimit)
	}
	want := config.EmailJSConfig{ServiceID: "service_x", TemplateID: "template_y", PublicKey: "public_z"}
	if diff := cmp.Diff(want, cfg.Gateway.EmailJS); diff != "" {
		t.Fatalf("emailjs mismatch (-want +got):\n%s", diff)
	}
	kinds, _ := cfg.Kinds()
	if diff := cmp.Diff([]form.Kind{form.Trade, form.University}, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSMTPRecipientsFromEnv(t *testing.T) {
	cfg, err := config.LoadWithEnv("", map[string]string{
		"SCHOLARFORM_GATEWAY_KIND":      "smtp",
		"SCHOLARFORM_GATEWAY_SMTP_HOST": "mail.example.com",
		"SCHOLARFORM_GATEWAY_SMTP_FROM": "apply@example.com",
		"SCHOLARFORM_GATEWAY_SMTP_TO":   "a@example.com,b@example.com",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"a@example.com", "b@example.com"}, cfg.SMTP().To); diff != "" {
		t.Fatalf("recipients mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "gateway kind", env: map[string]string{"SCHOLARFORM_GATEWAY_KIND": "fax"}, want: `unknown gateway kind "fax"`},
		{name: "emailjs ids", env: map[string]string{"SCHOLARFORM_GATEWAY_KIND": "emailjs"}, want: "service id is required"},
		{name: "form kind", env: map[string]string{"SCHOLARFORM_FORMS_ENABLED": "bootcamp"}, want: "forms.enabled"},
		{name: "burst", env: map[string]string{"SCHOLARFORM_RATE_LIMIT_BURST": "0"}, want: "burst must be at least 1"},
		{name: "log level", env: map[string]string{"SCHOLARFORM_LOG_LEVEL": "loud"}, want: "log.level"},
		{name: "templates dir", env: map[string]string{"SCHOLARFORM_THEME_TEMPLATES_DIR": "/nonexistent/scholarform"}, want: "theme.templatesDir"},
		{name: "csrf key", env: map[string]string{"SCHOLARFORM_SERVER_CSRF_KEY": "too-short"}, want: "server.csrfKey"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadWithEnv("", tc.env)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadCSRFSettings(t *testing.T) {
	path := writeFile(t, "scholarform.yaml", `
server:
  csrfKey: file-key-file-key-file-key-file-key
  secureCookies: true
`)
	cfg, err := config.LoadWithEnv(path, map[string]string{
		"SCHOLARFORM_SERVER_CSRF_KEY": "env-key-env-key-env-key-env-key-env",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := config.Default().Server
	want.CSRFKey = "env-key-env-key-env-key-env-key-env"
	want.SecureCookies = true
	if diff := cmp.Diff(want, cfg.Server); diff != "" {
		t.Fatalf("server mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownYAMLKeys(t *testing.T) {
	path := writeFile(t, "bad.yaml", "server:\n  adress: \":1\"\n")
	if _, err := config.LoadWithEnv(path, nil); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestThemeManifest(t *testing.T) {
	path := writeFile(t, "theme.yaml", `
name: acme
version: 1.0.0
tokens:
  sf-accent: "#123456"
assets:
  prefix: /assets/acme
  files:
    forms.stylesheet: forms.css
variants:
  dark:
    tokens:
      sf-accent: "#654321"
`)
	cfg := config.Default()
	cfg.Theme.Manifest = path

	manifest, err := cfg.ThemeManifest()
	if err != nil {
		t.Fatalf("theme manifest: %v", err)
	}
	if manifest.Name != "acme" || manifest.Assets.Files["forms.stylesheet"] != "forms.css" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if manifest.Variants["dark"].Tokens["sf-accent"] != "#654321" {
		t.Fatalf("variant not loaded: %+v", manifest.Variants)
	}

	none, err := config.Default().ThemeManifest()
	if err != nil || none != nil {
		t.Fatalf("expected no manifest, got %+v %v", none, err)
	}
}
