package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/internal/config"
	"github.com/goliatone/go-scholarform/pkg/gateway/emailjs"
	"github.com/goliatone/go-scholarform/pkg/gateway/logsink"
	"github.com/goliatone/go-scholarform/pkg/gateway/smtp"
	"github.com/goliatone/go-scholarform/pkg/orchestrator"
	htmlrenderer "github.com/goliatone/go-scholarform/pkg/renderers/html"
	"github.com/goliatone/go-scholarform/pkg/submission"
)

func newGateway(cfg config.Config, logger *zap.Logger) (submission.Gateway, error) {
	switch cfg.Gateway.Kind {
	case config.GatewayLog, "":
		return logsink.New(logger), nil
	case config.GatewayEmailJS:
		gateway, err := emailjs.New(cfg.EmailJS(),
			emailjs.WithTimeout(cfg.Gateway.Timeout),
			emailjs.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("emailjs gateway: %w", err)
		}
		return gateway, nil
	case config.GatewaySMTP:
		gateway, err := smtp.New(cfg.SMTP(), smtp.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("smtp gateway: %w", err)
		}
		return gateway, nil
	default:
		return nil, fmt.Errorf("unknown gateway kind %q", cfg.Gateway.Kind)
	}
}

func newOrchestrator(cfg config.Config, logger *zap.Logger) (*orchestrator.Orchestrator, error) {
	gateway, err := newGateway(cfg, logger)
	if err != nil {
		return nil, err
	}
	kinds, err := cfg.Kinds()
	if err != nil {
		return nil, err
	}
	manifest, err := cfg.ThemeManifest()
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithGateway(gateway),
		orchestrator.WithLogger(logger),
		orchestrator.WithKinds(kinds...),
		orchestrator.WithFlowOptions(submission.WithTimeout(cfg.Gateway.Timeout)),
	}
	if manifest != nil {
		options = append(options, orchestrator.WithThemeManifest(manifest, cfg.Theme.Variant))
	}
	if cfg.Theme.TemplatesDir != "" {
		options = append(options, orchestrator.WithHTMLOptions(htmlrenderer.WithTemplatesDir(cfg.Theme.TemplatesDir)))
	}

	orch := orchestrator.New(options...)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	return orch, nil
}
