package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/renderers/tui"
)

func newApplyCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Fill in and submit an application in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := newOrchestrator(a.cfg, a.logger)
			if err != nil {
				return err
			}
			intake := tui.New(
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithLogger(a.logger.Named("tui")),
			)

			selected := form.Kind(kind)
			if kind == "" {
				selected, err = intake.ChooseKind(cmd.Context(), orch.Kinds())
				if err != nil {
					return err
				}
			}
			session, err := orch.NewSession(selected)
			if err != nil {
				return err
			}

			outcome, err := intake.Run(cmd.Context(), session)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Application discarded.")
				return nil
			}
			if err != nil {
				return err
			}
			if !outcome.OK() {
				return errors.New(outcome.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Form kind (trade or university)")
	return cmd
}
