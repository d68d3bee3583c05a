package tui

import (
	"io"

	"go.uber.org/zap"
)

// Theme captures optional prefixes the intake applies when printing
// messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the intake.
type Option func(*Intake)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(in *Intake) {
		if driver != nil {
			in.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(in *Intake) {
		if out != nil {
			in.out = out
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(in *Intake) {
		in.theme = theme
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(in *Intake) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithMaxAttempts bounds how many times a rejected answer is asked again.
// Zero means unbounded.
func WithMaxAttempts(n int) Option {
	return func(in *Intake) {
		if n >= 0 {
			in.maxAttempts = n
		}
	}
}
