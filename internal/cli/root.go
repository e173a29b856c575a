// Package cli is the kasubs command tree.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"kasubs/internal/app"
	"kasubs/internal/config"
)

// Initializer builds the application from configuration overrides.
type Initializer func(config.Overrides) (*app.App, func(), error)

type runtime struct {
	initialize Initializer
	overrides  config.Overrides
	app        *app.App
	cleanup    func()
}

// Execute runs the command line args against a freshly built application.
func Execute(ctx context.Context, initialize Initializer, args []string, stdout, stderr io.Writer) error {
	rt := &runtime{initialize: initialize}
	defer rt.close()

	root := newRootCmd(rt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "kasubs",
		Short:         "Khan Academy content trees and Amara subtitles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.open()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&rt.overrides.EnvFile, "env-file", "", "Env file to load (default: .env when present)")
	flags.StringVarP(&rt.overrides.Locale, "locale", "l", "", "Khan Academy locale (overrides KHAN_LOCALE)")
	flags.StringVar(&rt.overrides.CacheDir, "cache-dir", "", "Tree cache directory (overrides TREE_CACHE_DIR)")
	flags.StringVar(&rt.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&rt.overrides.TolerateHTTPErrors, "tolerate-http-errors", false, "Log Khan API HTTP errors and continue with empty results")

	root.AddCommand(
		newServeCmd(rt),
		newTreeCmd(rt),
		newKhanCmd(rt),
		newAmaraCmd(rt),
	)
	return root
}

func (rt *runtime) open() error {
	if rt.app != nil {
		return nil
	}
	if rt.initialize == nil {
		return errors.New("no application initializer")
	}
	a, cleanup, err := rt.initialize(rt.overrides)
	if err != nil {
		return err
	}
	rt.app = a
	rt.cleanup = cleanup
	return nil
}

func (rt *runtime) close() {
	if rt.cleanup != nil {
		rt.cleanup()
		rt.cleanup = nil
	}
}

func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Refresh the topic trees now and then on the REFRESH_CRON schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.app.Run(cmd.Context())
		},
	}
}
