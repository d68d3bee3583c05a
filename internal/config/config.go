// Package config loads the service configuration from an optional YAML file
// overlaid by SCHOLARFORM_ prefixed environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/gateway/emailjs"
	"github.com/goliatone/go-scholarform/pkg/gateway/smtp"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SCHOLARFORM_"

// CSRFKeyLength is the minimum size of server.csrfKey.
const CSRFKeyLength = 32

// Gateway kinds.
const (
	GatewayLog     = "log"
	GatewayEmailJS = "emailjs"
	GatewaySMTP    = "smtp"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Gateway   GatewayConfig   `yaml:"gateway" envPrefix:"GATEWAY_"`
	RateLimit RateLimitConfig `yaml:"rateLimit" envPrefix:"RATE_LIMIT_"`
	Forms     FormsConfig     `yaml:"forms" envPrefix:"FORMS_"`
	Theme     ThemeConfig     `yaml:"theme" envPrefix:"THEME_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	ReadTimeout     time.Duration `yaml:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
	// CSRFField names the hidden field carrying the per-render token.
	CSRFField string `yaml:"csrfField" env:"CSRF_FIELD"`
	// CSRFKey authenticates the CSRF cookie. Empty selects a random key per
	// process, so tokens do not survive restarts.
	CSRFKey       string `yaml:"csrfKey" env:"CSRF_KEY"`
	SecureCookies bool   `yaml:"secureCookies" env:"SECURE_COOKIES"`
}

type GatewayConfig struct {
	Kind    string        `yaml:"kind" env:"KIND"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	EmailJS EmailJSConfig `yaml:"emailjs" envPrefix:"EMAILJS_"`
	SMTP    SMTPConfig    `yaml:"smtp" envPrefix:"SMTP_"`
}

type EmailJSConfig struct {
	ServiceID   string `yaml:"serviceID" env:"SERVICE_ID"`
	TemplateID  string `yaml:"templateID" env:"TEMPLATE_ID"`
	PublicKey   string `yaml:"publicKey" env:"PUBLIC_KEY"`
	AccessToken string `yaml:"accessToken" env:"ACCESS_TOKEN"`
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT"`
}

type SMTPConfig struct {
	Host     string   `yaml:"host" env:"HOST"`
	Port     int      `yaml:"port" env:"PORT"`
	Username string   `yaml:"username" env:"USERNAME"`
	Password string   `yaml:"password" env:"PASSWORD"`
	From     string   `yaml:"from" env:"FROM"`
	To       []string `yaml:"to" env:"TO" envSeparator:","`
	Subject  string   `yaml:"subject" env:"SUBJECT"`
}

// RateLimitConfig bounds submissions per client. A zero rate disables
// limiting.
type RateLimitConfig struct {
	PerMinute float64 `yaml:"perMinute" env:"PER_MINUTE"`
	Burst     int     `yaml:"burst" env:"BURST"`
}

type FormsConfig struct {
	Enabled []string `yaml:"enabled" env:"ENABLED" envSeparator:","`
}

// ThemeConfig points at an optional go-theme manifest file and an optional
// directory of HTML template overrides.
type ThemeConfig struct {
	Manifest     string `yaml:"manifest" env:"MANIFEST"`
	Variant      string `yaml:"variant" env:"VARIANT"`
	TemplatesDir string `yaml:"templatesDir" env:"TEMPLATES_DIR"`
}

type LogConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// Default returns the configuration used when nothing overrides it. Only the
// trade form is enabled and submissions are logged, not sent.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CSRFField:       "_csrf",
		},
		Gateway: GatewayConfig{
			Kind:    GatewayLog,
			Timeout: 15 * time.Second,
			SMTP:    SMTPConfig{Port: 587},
		},
		RateLimit: RateLimitConfig{PerMinute: 6, Burst: 3},
		Forms:     FormsConfig{Enabled: []string{string(form.Trade)}},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads path (skipped when empty), applies the process environment and
// validates the result.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// LoadWithEnv is Load with an explicit environment instead of the process
// one.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(path, environ)
}

func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, target any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("config: server.addr is required"))
	}
	if n := len(c.Server.CSRFKey); n > 0 && n < CSRFKeyLength {
		errs = append(errs, fmt.Errorf("config: server.csrfKey must be at least %d bytes", CSRFKeyLength))
	}

	switch c.Gateway.Kind {
	case GatewayLog:
	case GatewayEmailJS:
		if err := c.EmailJS().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("config: gateway.emailjs: %w", err))
		}
	case GatewaySMTP:
		if err := c.SMTP().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("config: gateway.smtp: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown gateway kind %q", c.Gateway.Kind))
	}

	if c.RateLimit.PerMinute < 0 {
		errs = append(errs, errors.New("config: rateLimit.perMinute must not be negative"))
	}
	if c.RateLimit.PerMinute > 0 && c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("config: rateLimit.burst must be at least 1"))
	}

	if len(c.Forms.Enabled) == 0 {
		errs = append(errs, errors.New("config: forms.enabled must list at least one form"))
	}
	if _, err := c.Kinds(); err != nil {
		errs = append(errs, err)
	}

	if dir := c.Theme.TemplatesDir; dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			errs = append(errs, fmt.Errorf("config: theme.templatesDir %q is not a directory", dir))
		}
	}

	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("config: log.level: %w", err))
	}
	return errors.Join(errs...)
}

// Kinds parses the enabled form kinds.
func (c Config) Kinds() ([]form.Kind, error) {
	kinds := make([]form.Kind, 0, len(c.Forms.Enabled))
	for _, raw := range c.Forms.Enabled {
		kind, err := form.ParseKind(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("config: forms.enabled: %w", err)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// EmailJS converts the gateway section into an emailjs.Config.
func (c Config) EmailJS() emailjs.Config {
	return emailjs.Config{
		ServiceID:   c.Gateway.EmailJS.ServiceID,
		TemplateID:  c.Gateway.EmailJS.TemplateID,
		PublicKey:   c.Gateway.EmailJS.PublicKey,
		AccessToken: c.Gateway.EmailJS.AccessToken,
		Endpoint:    c.Gateway.EmailJS.Endpoint,
	}
}

// SMTP converts the gateway section into an smtp.Config.
func (c Config) SMTP() smtp.Config {
	return smtp.Config{
		Host:     c.Gateway.SMTP.Host,
		Port:     c.Gateway.SMTP.Port,
		Username: c.Gateway.SMTP.Username,
		Password: c.Gateway.SMTP.Password,
		From:     c.Gateway.SMTP.From,
		To:       c.Gateway.SMTP.To,
		Subject:  c.Gateway.SMTP.Subject,
	}
}
