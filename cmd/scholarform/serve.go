package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-scholarform/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the application forms over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := newOrchestrator(a.cfg, a.logger)
			if err != nil {
				return err
			}
			srv, err := server.New(orch,
				server.WithLogger(a.logger.Named("server")),
				server.WithCSRFField(a.cfg.Server.CSRFField),
				server.WithCSRFKey([]byte(a.cfg.Server.CSRFKey)),
				server.WithSecureCookies(a.cfg.Server.SecureCookies),
				server.WithRateLimit(a.cfg.RateLimit.PerMinute, a.cfg.RateLimit.Burst),
				server.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
			)
			if err != nil {
				return err
			}

			listen := a.cfg.Server.Addr
			if addr != "" {
				listen = addr
			}
			a.logger.Info("starting scholarform",
				zap.String("addr", listen),
				zap.String("gateway", a.cfg.Gateway.Kind),
				zap.Strings("forms", a.cfg.Forms.Enabled),
			)
			return srv.Run(cmd.Context(), listen)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
