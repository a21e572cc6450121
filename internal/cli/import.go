package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/internal/openapi"
	"github.com/formdeck/formdeck/pkg/schema"
)

func (c *CLI) newImportCommand() *cobra.Command {
	var component string
	var create bool

	cmd := &cobra.Command{
		Use:   "import-openapi <document>",
		Short: "Derive a form schema from an OpenAPI component",
		Long: "Reads an OpenAPI document and converts one of its component schemas " +
			"into a form definition. Without --component the available components " +
			"are listed. With --create the form is stored on the backend.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			if component == "" {
				names, err := openapi.Components(ctx, raw)
				if err != nil {
					return err
				}
				if len(names) == 0 {
					return fmt.Errorf("document declares no component schemas")
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
				return nil
			}

			form, err := openapi.ImportForm(ctx, raw, component)
			if err != nil {
				return err
			}

			if !create {
				encoded, err := schema.EncodeStructure(form.Structure)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", form.Title, encoded)
				return nil
			}

			if err := c.requireSession(); err != nil {
				return err
			}
			if !c.isAdmin() {
				return fmt.Errorf("import-openapi --create requires an admin session")
			}
			record, err := c.client().CreateForm(ctx, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created form %d: %s\n", record.ID, record.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&component, "component", "", "Component schema to convert")
	cmd.Flags().BoolVar(&create, "create", false, "Create the form on the backend")
	return cmd
}
