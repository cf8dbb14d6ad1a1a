package cli

import (
	"fmt"
	"io"
	"strings"

	"filelib-cli/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

type configView struct {
	*config.Config
}

func (c configView) WriteText(w io.Writer) error {
	b, err := toml.Marshal(c.Config)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the config file contents (defaults applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, configView{app.cfg})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.configPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one key (" + strings.Join(config.Keys(), ", ") + ")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.configPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg := app.cfg
			if err := config.Set(cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := config.SaveTo(p, cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, configView{cfg})
		},
	})

	return cmd
}

func (app *App) configPath() (string, error) {
	if p := strings.TrimSpace(app.ConfigFile); p != "" {
		return p, nil
	}
	return config.Path()
}
