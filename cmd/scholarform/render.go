package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scholarform/pkg/form"
	"github.com/goliatone/go-scholarform/pkg/orchestrator"
	htmlrenderer "github.com/goliatone/go-scholarform/pkg/renderers/html"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		kind     string
		renderer string
		output   string
		values   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form as HTML or as a printable summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := newOrchestrator(a.cfg, a.logger)
			if err != nil {
				return err
			}
			session, err := orch.NewSession(form.Kind(kind))
			if err != nil {
				return err
			}

			req := orchestrator.Request{Session: session, Renderer: renderer}
			if values != "" {
				posted, err := readValues(values)
				if err != nil {
					return err
				}
				req.Issues = session.Apply(posted)
			}

			out, err := orch.Render(cmd.Context(), req)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", string(form.Trade), "Form kind (trade or university)")
	cmd.Flags().StringVarP(&renderer, "renderer", "r", htmlrenderer.Name, "Renderer to use (html or print)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&values, "values", "", "YAML file of field values keyed by dotted path")
	return cmd
}

// readValues loads a flat YAML mapping such as {"personal.firstName": Ada}
// into posted form values. true marks a checkbox, false leaves it out.
func readValues(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}

	posted := make(map[string][]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
		case bool:
			if v {
				posted[key] = []string{"on"}
			}
		case string:
			posted[key] = []string{v}
		default:
			posted[key] = []string{strings.TrimSpace(fmt.Sprint(v))}
		}
	}
	return posted, nil
}
