package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"filelib-cli/internal/api"
	"filelib-cli/internal/config"
	"filelib-cli/internal/controller"
	"filelib-cli/internal/format"
	"filelib-cli/internal/logging"
	"filelib-cli/internal/store"
	"filelib-cli/internal/tui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	Server      string
	LibraryID   string
	LibraryPath string
	ConfigFile  string
	LogFile     string
	LogLevel    string
	Format      string
	PrettyJSON  bool
	Timeout     time.Duration

	cfg       *config.Config
	logCloser io.Closer
}

// Execute runs the command line and releases what resolve opened, on success or failure.
func Execute(args []string) error {
	cmd, app := newRootCmd()
	cmd.SetArgs(args)
	return execute(cmd, app)
}

func execute(cmd *cobra.Command, app *App) error {
	err := cmd.Execute()
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd() (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "filelib",
		Short:        "Browse a file library and create files or folders in it",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  filelib --library 0b6f --path /docs

  # Create an empty file or folder
  filelib touch notes.txt
  filelib touch Reports --type folder

  # List the current directory, largest files first
  filelib ls --format text --sort size --desc

  # Rename an entry, then fetch it
  filelib mv notes.txt todo.txt
  filelib download todo.txt -o /tmp/todo.txt
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolve(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("FILELIB_SERVER", ""), "Base URL of the library service (default from config, then "+config.Default().Server+")")
	cmd.PersistentFlags().StringVar(&app.LibraryID, "library", envOr("FILELIB_LIBRARY", ""), "Library id")
	cmd.PersistentFlags().StringVar(&app.LibraryPath, "path", envOr("FILELIB_PATH", ""), "Directory inside the library (default /)")
	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "Config file (default ~/.filelib/config.toml)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Append logs to this file (default: no logging)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FILELIB_FORMAT", "json"), "Output format (json|edn|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 0, "Per-request timeout (default from config, then 30s)")

	cmd.AddCommand(newTouchCmd(app))
	cmd.AddCommand(newLsCmd(app))
	cmd.AddCommand(newUploadCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newMvCmd(app))
	cmd.AddCommand(newDownloadCmd(app))

	return cmd, app
}

// Close releases the log file. It is safe to call more than once.
func (app *App) Close() error {
	if app.logCloser == nil {
		return nil
	}
	c := app.logCloser
	app.logCloser = nil
	return c.Close()
}

// resolve fills unset flags from the config file and sets up logging.
// Precedence: flag > env (flag default) > config file > built-in default.
func (app *App) resolve(cmd *cobra.Command) error {
	if !format.Valid(app.Format) {
		return writeErr(cmd, invalidValueError{name: "--format", value: app.Format, allowed: format.Names})
	}

	var (
		cfg *config.Config
		err error
	)
	if strings.TrimSpace(app.ConfigFile) != "" {
		cfg, err = config.LoadFrom(app.ConfigFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg

	if strings.TrimSpace(app.Server) == "" {
		app.Server = cfg.Server
	}
	app.Server = strings.TrimRight(strings.TrimSpace(app.Server), "/")
	if strings.TrimSpace(app.LibraryID) == "" {
		app.LibraryID = cfg.Library.ID
	}
	if strings.TrimSpace(app.LibraryPath) == "" {
		app.LibraryPath = cfg.Library.Path
	}
	if app.Timeout <= 0 {
		app.Timeout = cfg.TimeoutDuration()
	}
	if app.LogFile == "" {
		app.LogFile = cfg.Log.File
	}
	if app.LogLevel == "" {
		app.LogLevel = cfg.Log.Level
	}

	closer, err := logging.Setup(logging.Options{File: app.LogFile, Level: app.LogLevel})
	if err != nil {
		return writeErr(cmd, err)
	}
	app.logCloser = closer
	logrus.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"server":  app.Server,
		"library": app.LibraryID,
		"path":    app.LibraryPath,
	}).Debug("resolved settings")
	return nil
}

func (app *App) dataStore() (store.Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return store.Store{}, err
	}
	return store.Store{Dir: dir}, nil
}

// newController binds a controller to the resolved library and directory.
func (app *App) newController() (*controller.Controller, store.Store, error) {
	if strings.TrimSpace(app.LibraryID) == "" {
		return nil, store.Store{}, errMissingLibrary()
	}
	st, err := app.dataStore()
	if err != nil {
		return nil, store.Store{}, err
	}
	ctrl, err := controller.New(controller.Options{
		LibraryID:   app.LibraryID,
		LibraryPath: app.LibraryPath,
		Client:      api.New(app.Server, app.Timeout),
		Journal:     st,
	})
	if err != nil {
		return nil, store.Store{}, err
	}
	return ctrl, st, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctrl, st, err := app.newController()
	if err != nil {
		return writeErr(cmd, err)
	}
	theme := ""
	if app.cfg != nil && app.cfg.TUI != nil {
		theme = app.cfg.TUI.Theme
	}
	return tui.Run(tui.Options{
		Controller: ctrl,
		Store:      st,
		Server:     app.Server,
		Timeout:    app.Timeout,
		Theme:      theme,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
