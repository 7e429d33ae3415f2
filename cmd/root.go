// Package cmd implements the dayboard command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/dayboard/pkg/config"
)

// Set with -ldflags at build time.
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// globals holds the persistent flags and what PersistentPreRunE derives
// from them.
var globals struct {
	configPath string
	verbose    bool
	useMocks   bool

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

var rootCmd = &cobra.Command{
	Use:   "dayboard",
	Short: "A terminal dashboard of GitHub users, a clock and two lists",
	Long: `dayboard shows a grid of GitHub users with their avatars, a live clock
that can be hidden, and two lists that grow at the front.

Without a subcommand it starts the interactive dashboard.

Examples:
  dayboard                      # run the dashboard against api.github.com
  dayboard --use-mocks          # run against an in-process fake API
  dayboard users --count 5      # print five users and exit
  dayboard mock-server          # serve the fake API for other clients`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if globals.logCloser != nil {
			_ = globals.logCloser.Close()
		}
	},
	RunE: runDashboard,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globals.configPath, "config", "", "path to config.toml (default: $XDG_CONFIG_HOME/dayboard/config.toml)")
	pf.BoolVarP(&globals.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&globals.useMocks, "use-mocks", false, "serve GitHub responses from an in-process fake API")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and opens the log. Only the dashboard keeps
// stderr clear, since it owns the terminal.
func setup(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if globals.configPath != "" {
		cfg, err = config.LoadFromFile(globals.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := newLogger(cfg.General, globals.verbose, mirrorLogs(cmd))
	if err != nil {
		return err
	}
	for _, k := range cfg.Undecoded {
		logger.Warn("unknown config key", "key", k)
	}

	globals.cfg = cfg
	globals.logger = logger
	globals.logCloser = closer
	return nil
}

// mirrorLogs reports whether cmd may also log to stderr. The root command
// runs the dashboard, which owns the terminal.
func mirrorLogs(cmd *cobra.Command) bool {
	return cmd.HasParent()
}
