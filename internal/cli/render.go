package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/renderers/vanilla"
)

func (c *CLI) newRenderCommand() *cobra.Command {
	var out string
	var disabled []string

	cmd := &cobra.Command{
		Use:   "render <form-id>",
		Short: "Render a form as a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := parseFormID(args[0])
			if err != nil {
				return err
			}

			record, err := c.client().GetForm(ctx, id)
			if err != nil {
				return err
			}
			form, err := record.Form()
			if err != nil {
				return err
			}

			disabledSet := make(map[string]struct{}, len(disabled))
			for _, path := range disabled {
				disabledSet[path] = struct{}{}
			}

			renderer, err := vanilla.New()
			if err != nil {
				return err
			}
			doc := binder.Initialize(form.Structure)
			page, err := renderer.Render(ctx, form, doc, render.Options{Disabled: disabledSet})
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(out, page, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringSliceVar(&disabled, "disable", nil, "Field paths to render inert")
	return cmd
}
