package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/wonderland/internal/app"
	"github.com/dshills/wonderland/internal/clipboard"
	"github.com/dshills/wonderland/internal/config"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/log"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	pluginDir  string
	noPlugins  bool
	debug      bool
	logFile    string
	logLevel   string

	cleanup func()
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wonderland",
		Short: "Language-aware line rewrites for code editors",
		Long: `Wonderland rewrites the lines under the cursor the way a language expects:
toggling and removing comments, extracting variables, converting functions
to arrow functions, generating delegates and more.

Run a command once against a file with "apply", or let an editor drive it
over JSON lines with "serve".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initLogging(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "",
		"settings file (default: <user config dir>/wonderland/settings.toml)")
	flags.StringVar(&opts.pluginDir, "plugin-dir", "", "directory of Lua rewrite plugins")
	flags.BoolVar(&opts.noPlugins, "no-plugins", false, "do not load Lua plugins")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "log debug output to stderr")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newApplyCmd(opts),
		newServeCmd(opts),
		newLanguagesCmd(),
		newCommandsCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// initLogging routes logs to --log-file or, with --debug, to stderr.
// Logging stays off otherwise.
func (o *rootOptions) initLogging(stderr io.Writer) error {
	switch o.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", o.logLevel)
	}
	level := log.ParseLevel(o.logLevel)
	if o.debug {
		level = log.LevelDebug
	}

	switch {
	case o.logFile != "":
		cleanup, err := log.Init(o.logFile, level)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		o.cleanup = cleanup
	case o.debug:
		log.InitWriter(stderr, level)
		o.cleanup = log.Reset
	}
	return nil
}

func (o *rootOptions) closeLogging() {
	if o.cleanup != nil {
		o.cleanup()
		o.cleanup = nil
	}
}

// newApp creates the application from the persistent flags. A nil
// clipboard uses the system clipboard.
func (o *rootOptions) newApp(ctx context.Context, cb clipboard.Clipboard, source input.ActionSource) (*app.App, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	log.Debug(log.CatCLI, "starting", "config", path, "plugins", !o.noPlugins)
	return app.New(ctx, app.Options{
		ConfigPath: path,
		PluginDir:  o.pluginDir,
		NoPlugins:  o.noPlugins,
		Clipboard:  cb,
		Source:     source,
	})
}
