package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/pkg/preset"
)

func (c *CLI) newPresetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(c.newPresetsListCommand())
	cmd.AddCommand(c.newPresetsExportCommand())
	cmd.AddCommand(c.newPresetsDeleteCommand())
	return cmd
}

func (c *CLI) newPresetsListCommand() *cobra.Command {
	var term string
	var formTitle string

	cmd := &cobra.Command{
		Use:   "list <form-id>",
		Short: "List saved responses for a form",
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

			client := c.client()
			store := preset.NewStore(client, id)
			if err := store.Refresh(ctx); err != nil {
				return err
			}

			responses := preset.Search(store.Responses(), term)
			if formTitle != "" {
				forms, err := client.Forms(ctx)
				if err != nil {
					return err
				}
				responses = preset.FilterByForm(responses, forms, formTitle)
			}
			return printJSON(cmd, responses)
		},
	}

	cmd.Flags().StringVar(&term, "search", "", "Case-insensitive substring filter over response data")
	cmd.Flags().StringVar(&formTitle, "form-title", "", "Keep only responses whose form has this title")
	return cmd
}

func (c *CLI) newPresetsExportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export <form-id> <response-id>",
		Short: "Download one response as a JSON file named after the form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			ctx := cmd.Context()
			formID, err := parseFormID(args[0])
			if err != nil {
				return err
			}
			responseID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid response id %q", args[1])
			}

			client := c.client()
			record, err := client.GetForm(ctx, formID)
			if err != nil {
				return err
			}
			responses, err := client.Responses(ctx, formID)
			if err != nil {
				return err
			}
			for _, saved := range responses {
				if saved.ID != responseID {
					continue
				}
				if dir == "" {
					dir = c.config.ExportDir
				}
				path, err := preset.Export(dir, record.Title, saved.ResponseData)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
				return nil
			}
			return fmt.Errorf("response %d not found for form %d", responseID, formID)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to write the export into")
	return cmd
}

func (c *CLI) newPresetsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <form-id> <response-id>",
		Short: "Delete a saved response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			formID, err := parseFormID(args[0])
			if err != nil {
				return err
			}
			responseID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid response id %q", args[1])
			}
			store := preset.NewStore(c.client(), formID)
			if err := store.Delete(cmd.Context(), responseID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted response %d\n", responseID)
			return nil
		},
	}
}
