package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type downloadResult struct {
	Library string `json:"library"`
	Path    string `json:"path"`
	File    string `json:"file"`
	Bytes   int64  `json:"bytes"`
}

func (r downloadResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "saved %s to %s (%d bytes)\n", r.Path, r.File, r.Bytes)
	return err
}

func newDownloadCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "download NAME",
		Short: "Download a file (NAME is relative to --path)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := app.newController()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout)
			defer cancel()

			// "-" streams the contents to stdout and skips the summary.
			if out == "-" {
				if _, err := ctrl.Download(ctx, args[0], cmd.OutOrStdout()); err != nil {
					return writeErr(cmd, err)
				}
				return nil
			}

			dest := strings.TrimSpace(out)
			if dest == "" {
				dest = path.Base(ctrl.Resolve(args[0]))
			}
			n, err := downloadTo(ctx, dest, func(w io.Writer) (int64, error) {
				return ctrl.Download(ctx, args[0], w)
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, downloadResult{
				Library: ctrl.LibraryID(),
				Path:    ctrl.Resolve(args[0]),
				File:    dest,
				Bytes:   n,
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Destination file, or - for stdout (default: the entry name in the current directory)")
	return cmd
}

// downloadTo writes into a temp file next to dest and renames it once the transfer finished,
// so a failed download never leaves a truncated dest behind.
func downloadTo(ctx context.Context, dest string, fetch func(io.Writer) (int64, error)) (int64, error) {
	dir := filepath.Dir(dest)
	f, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}
	tmp := f.Name()
	n, err := fetch(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(tmp)
		return n, err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return n, fmt.Errorf("save %s: %w", dest, err)
	}
	return n, nil
}
