package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"filelib-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

type listing struct {
	Library string            `json:"library"`
	Path    string            `json:"path"`
	Sort    string            `json:"sort"`
	Entries []model.FileEntry `json:"entries"`
}

func (l listing) WriteText(w io.Writer) error {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("TYPE", "SIZE", "NAME")
	for _, e := range l.Entries {
		name := e.Name()
		if e.IsFolder() {
			name += "/"
		}
		size := ""
		if e.Type == model.EntryTypeFile {
			size = fmt.Sprintf("%d", e.Size)
		}
		t.Row(string(e.Type), size, name)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newLsCmd(app *App) *cobra.Command {
	var (
		sortKey string
		desc    bool
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the current directory (folders first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseSortKey(sortKey)
			if err != nil {
				return writeErr(cmd, invalidValueError{name: "--sort", value: sortKey, allowed: model.SortKeys})
			}
			order := model.SortOrder{Key: key, Descending: desc}

			ctrl, _, err := app.newController()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.Timeout)
			defer cancel()
			entries, err := ctrl.Load(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if entries == nil {
				entries = []model.FileEntry{}
			}
			model.SortEntriesBy(entries, order)
			return writeOut(cmd, app, listing{
				Library: ctrl.LibraryID(),
				Path:    ctrl.LibraryPath(),
				Sort:    order.String(),
				Entries: entries,
			})
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", string(model.SortByName), "Sort key ("+strings.Join(model.SortKeys, "|")+")")
	cmd.Flags().BoolVar(&desc, "desc", false, "Reverse the order")
	return cmd
}
