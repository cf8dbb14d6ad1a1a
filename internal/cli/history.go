package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"filelib-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

type history []store.TouchRecord

func (h history) WriteText(w io.Writer) error {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("AT", "LIBRARY", "PATH", "TYPE", "NAME", "RESULT")
	for _, r := range h {
		result := "ok"
		if !r.OK {
			result = "failed"
			if r.StatusCode != 0 {
				result += " (" + strconv.Itoa(r.StatusCode) + ")"
			}
		}
		t.Row(r.At.Local().Format(time.DateTime), r.LibraryID, r.Path, r.Type, r.Filename, result)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newHistoryCmd(app *App) *cobra.Command {
	var (
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent create attempts from the local journal (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.dataStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			lib := app.LibraryID
			if all {
				lib = ""
			}
			recs, err := st.ListTouches(cmd.Context(), lib, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, history(recs))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max records to return (0 = all)")
	cmd.Flags().BoolVar(&all, "all", false, "Include every library, not just the selected one")
	return cmd
}
