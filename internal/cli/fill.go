package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formdeck/formdeck/pkg/binder"
	"github.com/formdeck/formdeck/pkg/preset"
	"github.com/formdeck/formdeck/pkg/render"
	"github.com/formdeck/formdeck/pkg/renderers/tui"
)

func (c *CLI) newFillCommand() *cobra.Command {
	var draftID string
	var saveDraft bool
	var disabled []string

	cmd := &cobra.Command{
		Use:   "fill <form-id>",
		Short: "Fill a form interactively and submit the response",
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
			record, err := client.GetForm(ctx, id)
			if err != nil {
				return err
			}
			form, err := record.Form()
			if err != nil {
				return err
			}

			drafts := preset.NewDrafts(c.config.DraftsDir)
			var seed binder.Document
			if draftID != "" {
				draft, ok, err := drafts.Load(draftID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("draft %s not found", draftID)
				}
				if draft.FormID != id {
					return fmt.Errorf("draft %s belongs to form %d", draftID, draft.FormID)
				}
				seed = draft.Document
			}

			disabledSet := make(map[string]struct{}, len(disabled))
			for _, path := range disabled {
				disabledSet[path] = struct{}{}
			}

			renderer, err := tui.New()
			if err != nil {
				return err
			}
			doc, err := renderer.Fill(ctx, form, seed, render.Options{Disabled: disabledSet})
			if err != nil {
				return err
			}

			if saveDraft {
				savedID, err := drafts.Save(preset.Draft{ID: draftID, FormID: id, Document: doc})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "draft saved: %s\n", savedID)
				return nil
			}

			store := preset.NewStore(client, id)
			saved, err := store.Submit(ctx, form, doc, disabledSet)
			if err != nil {
				return err
			}
			if draftID != "" {
				if err := drafts.Discard(draftID); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted response %d for form %d\n", saved.ID, saved.Form)
			return nil
		},
	}

	cmd.Flags().StringVar(&draftID, "draft", "", "Resume a saved draft by id")
	cmd.Flags().BoolVar(&saveDraft, "save-draft", false, "Save as a local draft instead of submitting")
	cmd.Flags().StringSliceVar(&disabled, "disable", nil, "Field paths to disable for this session")
	return cmd
}
