// Package emailjs sends submission records through the EmailJS REST API.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/submission"
)

// DefaultEndpoint is the EmailJS send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// maxDetail bounds how much of a failure body is surfaced to the user.
const maxDetail = 512

var (
	ErrServiceIDMissing  = errors.New("emailjs: service id is required")
	ErrTemplateIDMissing = errors.New("emailjs: template id is required")
	ErrPublicKeyMissing  = errors.New("emailjs: public key is required")
)

// Config holds the EmailJS account identifiers.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	// AccessToken is the optional private key enabling server side calls.
	AccessToken string
	Endpoint    string
}

// Validate reports missing identifiers.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ServiceID) == "" {
		errs = append(errs, ErrServiceIDMissing)
	}
	if strings.TrimSpace(c.TemplateID) == "" {
		errs = append(errs, ErrTemplateIDMissing)
	}
	if strings.TrimSpace(c.PublicKey) == "" {
		errs = append(errs, ErrPublicKeyMissing)
	}
	return errors.Join(errs...)
}

// Option customises the gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.client = client
		}
	}
}

// WithTimeout bounds each send.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Gateway posts records as EmailJS template parameters.
type Gateway struct {
	cfg     Config
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

var _ submission.Gateway = (*Gateway)(nil)

// New validates cfg and builds a gateway.
func New(cfg Config, options ...Option) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	g := &Gateway{
		cfg:     cfg,
		client:  http.DefaultClient,
		timeout: 15 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

type payload struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams map[string]any `json:"template_params"`
}

// Send posts record. A non-2xx answer yields a *SendError whose detail is
// the response body.
func (g *Gateway) Send(ctx context.Context, record model.SubmissionRecord) error {
	body, err := json.Marshal(payload{
		ServiceID:      g.cfg.ServiceID,
		TemplateID:     g.cfg.TemplateID,
		UserID:         g.cfg.PublicKey,
		AccessToken:    g.cfg.AccessToken,
		TemplateParams: record.Values(),
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode payload: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		g.logger.Debug("emailjs accepted record", zap.Int("status", resp.StatusCode), zap.Int("fields", record.Len()))
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetail))
	sendErr := &SendError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	g.logger.Warn("emailjs rejected record", zap.Int("status", resp.StatusCode), zap.String("body", sendErr.Body))
	return sendErr
}

// SendError is a rejected EmailJS call.
type SendError struct {
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("emailjs: status %d: %s", e.StatusCode, e.Detail())
}

// Detail is the response body, or the status text when the body is empty.
func (e *SendError) Detail() string {
	if e.Body != "" {
		return e.Body
	}
	return http.StatusText(e.StatusCode)
}
