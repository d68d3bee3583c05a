// Package smtp mails submission records as plain text.
package smtp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/submission"
)

var (
	ErrHostMissing       = errors.New("smtp: host is required")
	ErrFromMissing       = errors.New("smtp: sender address is required")
	ErrRecipientsMissing = errors.New("smtp: at least one recipient is required")
)

// Config describes the relay and envelope.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
	Subject  string
}

// Validate reports missing settings.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, ErrHostMissing)
	}
	if strings.TrimSpace(c.From) == "" {
		errs = append(errs, ErrFromMissing)
	}
	if len(c.To) == 0 {
		errs = append(errs, ErrRecipientsMissing)
	}
	return errors.Join(errs...)
}

// SendFunc matches net/smtp.SendMail.
type SendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Option customises the gateway.
type Option func(*Gateway)

// WithSendFunc replaces smtp.SendMail.
func WithSendFunc(fn SendFunc) Option {
	return func(g *Gateway) {
		if fn != nil {
			g.send = fn
		}
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

// WithClock sets the clock used for the Date header.
func WithClock(clock func() time.Time) Option {
	return func(g *Gateway) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// Gateway mails each record to the configured recipients.
type Gateway struct {
	cfg    Config
	send   SendFunc
	logger *zap.Logger
	clock  func() time.Time
}

var _ submission.Gateway = (*Gateway)(nil)

// New validates cfg and builds a gateway. Port defaults to 587 and the
// subject to "Scholarship application".
func New(cfg Config, options ...Option) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Subject == "" {
		cfg.Subject = "Scholarship application"
	}
	g := &Gateway{cfg: cfg, send: smtp.SendMail, logger: zap.NewNop(), clock: time.Now}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Send mails record. net/smtp has no context support so ctx is only checked
// before dialing.
func (g *Gateway) Send(ctx context.Context, record model.SubmissionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if g.cfg.Username != "" {
		auth = smtp.PlainAuth("", g.cfg.Username, g.cfg.Password, g.cfg.Host)
	}
	addr := net.JoinHostPort(g.cfg.Host, strconv.Itoa(g.cfg.Port))
	if err := g.send(addr, auth, g.cfg.From, g.cfg.To, g.message(record)); err != nil {
		g.logger.Warn("smtp send failed", zap.String("addr", addr), zap.Error(err))
		return fmt.Errorf("smtp: send: %w", err)
	}
	g.logger.Debug("smtp record sent", zap.String("addr", addr), zap.Int("recipients", len(g.cfg.To)))
	return nil
}

func (g *Gateway) message(record model.SubmissionRecord) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", g.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(g.cfg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", g.cfg.Subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", g.clock().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	buf.WriteString(Body(record))
	return buf.Bytes()
}

// Body renders record as sorted "key: value" lines. Multi-line values are
// indented so each record key stays at the start of a line.
func Body(record model.SubmissionRecord) string {
	var b strings.Builder
	for _, key := range record.Keys() {
		value, _ := record.Get(key)
		text := fmt.Sprint(value)
		if flag, ok := value.(bool); ok {
			text = "No"
			if flag {
				text = "Yes"
			}
		}
		text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", "\r\n  ")
		fmt.Fprintf(&b, "%s: %s\r\n", key, text)
	}
	return b.String()
}
