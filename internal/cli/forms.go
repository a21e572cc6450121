package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/pkg/schema"
)

func (c *CLI) newFormsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Manage form definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(c.newFormsListCommand())
	cmd.AddCommand(c.newFormsShowCommand())
	cmd.AddCommand(c.newFormsCreateCommand())
	cmd.AddCommand(c.newFormsDeleteCommand())
	return cmd
}

func (c *CLI) newFormsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the forms visible to the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			records, err := c.client().Forms(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION")
			for _, record := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\n", record.ID, record.Title, record.Description)
			}
			return w.Flush()
		},
	}
}

func (c *CLI) newFormsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <form-id>",
		Short: "Print a form's schema as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			id, err := parseFormID(args[0])
			if err != nil {
				return err
			}
			record, err := c.client().GetForm(cmd.Context(), id)
			if err != nil {
				return err
			}
			pretty, err := schema.CompactJSON(record.FormStructure)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n%s\n", record.Title, record.Description, pretty)
			return nil
		},
	}
}

func (c *CLI) newFormsCreateCommand() *cobra.Command {
	var title, description, schemaPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a form from a schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			if !c.isAdmin() {
				return fmt.Errorf("forms create requires an admin session")
			}
			raw, err := os.ReadFile(schemaPath)
			if err != nil {
				return fmt.Errorf("read schema file: %w", err)
			}
			structure, err := schema.DecodeStructure(raw)
			if err != nil {
				return err
			}
			form := schema.Form{Title: title, Description: description, Structure: structure}
			if err := form.Structure.Validate(); err != nil {
				return err
			}
			record, err := c.client().CreateForm(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created form %d: %s\n", record.ID, record.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Form title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Form description")
	cmd.Flags().StringVarP(&schemaPath, "schema", "f", "", "Path to the form structure JSON")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (c *CLI) newFormsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <form-id>",
		Short: "Delete a form and its responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			if !c.isAdmin() {
				return fmt.Errorf("forms delete requires an admin session")
			}
			id, err := parseFormID(args[0])
			if err != nil {
				return err
			}
			if err := c.client().DeleteForm(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted form %d\n", id)
			return nil
		},
	}
}

func parseFormID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid form id %q", arg)
	}
	return id, nil
}

func printJSON(cmd *cobra.Command, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
