package cli

import (
	"filelib-cli/internal/controller"

	"github.com/spf13/cobra"
)

func newUploadCmd(app *App) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a file or folder (not implemented yet)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := app.newController()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeErr(cmd, ctrl.Upload(typ))
		},
	}
	cmd.Flags().StringVar(&typ, "type", controller.TypeFile, "Entry type (file|folder)")
	return cmd
}
