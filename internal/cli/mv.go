package cli

import (
	"context"
	"fmt"
	"io"

	"filelib-cli/internal/controller"
	"filelib-cli/internal/model"

	"github.com/spf13/cobra"
)

type moveResult struct {
	Library string `json:"library"`
	From    string `json:"from"`
	To      string `json:"to"`
	OK      bool   `json:"ok"`
}

func (r moveResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "renamed %s to %s\n", r.From, r.To)
	return err
}

func newMvCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "mv FROM TO",
		Aliases: []string{"rename"},
		Short:   "Rename or move an entry (names are relative to --path)",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := app.newController()
			if err != nil {
				return writeErr(cmd, err)
			}

			// Same transitions the TUI rename prompt goes through.
			s := controller.Reload([]model.FileEntry{{Path: args[0]}})
			s, _ = controller.Rename(s, 0)
			s = controller.SetPromptValue(s, args[1])
			_, req, err := controller.BeginRename(s)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout)
			defer cancel()
			res := ctrl.Move(ctx, req)
			if res.Err != nil {
				return writeErr(cmd, fmt.Errorf("rename %s: %w", res.Request.From, res.Err))
			}
			return writeOut(cmd, app, moveResult{
				Library: ctrl.LibraryID(),
				From:    res.Request.From,
				To:      res.Request.To,
				OK:      true,
			})
		},
	}
}
