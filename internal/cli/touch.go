package cli

import (
	"context"
	"fmt"
	"io"

	"filelib-cli/internal/controller"

	"github.com/spf13/cobra"
)

type touchResult struct {
	Library  string `json:"library"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Filename string `json:"filename"`
	OK       bool   `json:"ok"`
}

func (r touchResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "created %s %q in %s\n", r.Type, r.Filename, r.Path)
	return err
}

func newTouchCmd(app *App) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "touch NAME",
		Short: "Create an empty file or folder in the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := app.newController()
			if err != nil {
				return writeErr(cmd, err)
			}

			// Same transitions the TUI prompt goes through.
			s, _ := controller.Touch(controller.NewState(), typ)
			s = controller.SetPromptValue(s, args[0])
			_, req, err := controller.BeginSubmit(s)
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout)
			defer cancel()
			res := ctrl.Submit(ctx, req)
			if res.Err != nil {
				return writeErr(cmd, fmt.Errorf("create %s %q: %w", typ, args[0], res.Err))
			}
			return writeOut(cmd, app, touchResult{
				Library:  ctrl.LibraryID(),
				Path:     ctrl.LibraryPath(),
				Type:     req.Type,
				Filename: req.Filename,
				OK:       true,
			})
		},
	}
	cmd.Flags().StringVar(&typ, "type", controller.TypeFile, "Entry type (file|folder)")
	return cmd
}
