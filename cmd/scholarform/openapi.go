package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-scholarform/internal/openapi"
)

func newOpenAPICmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the submission API",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openapi.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !list {
				_, err := out.Write(doc.Raw())
				return err
			}
			for _, op := range doc.Operations() {
				fmt.Fprintf(out, "%-18s %-6s %s\n", op.ID, op.Method, op.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "operations", false, "List operations instead of printing the document")
	return cmd
}
