package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kbukum/ghusers/cache"
	"github.com/kbukum/ghusers/errors"
	"github.com/kbukum/ghusers/github"
	"github.com/kbukum/ghusers/listing"
	"github.com/kbukum/ghusers/logger"
	"github.com/kbukum/ghusers/observability"
	"github.com/kbukum/ghusers/output"
	"github.com/kbukum/ghusers/version"
)

// options holds the parsed command-line flags.
type options struct {
	params     listing.Params
	token      string
	withUserID bool
	withCache  bool
	configFile string
	envFile    string
	verbose    bool
}

// NewRootCmd creates the ghusers command.
func NewRootCmd(ver string) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           version.Name,
		Short:         "Display GitHub login names",
		Long:          "ghusers lists GitHub users in ascending id order, or the users matching a search keyword.",
		Version:       ver,
		Example:       rootCmdExample,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, &opts)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Validation(err.Error())
	})

	f := cmd.Flags()
	f.Int64VarP(&opts.params.StartID, "from", "s", 0, "Start of the range of GitHub user ids")
	f.Int64VarP(&opts.params.StopID, "to", "e", 0, "End of the range of GitHub user ids (inclusive)")
	f.Int64Var(&opts.params.MaxCount, "num", 0, "Maximum number of login names to display")
	f.StringVarP(&opts.token, "token", "t", "", "GitHub personal access token (default $GITHUB_TOKEN)")
	f.StringVar(&opts.params.Search, "search", "", "Search login names by keyword")
	f.BoolVar(&opts.withUserID, "with-user-id", false, "Display the user id before each login name")
	f.BoolVar(&opts.withCache, "with-http-cache", false, "Revalidate responses against a local HTTP cache")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests and progress to stderr")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Path to a config.yml file")
	pf.StringVar(&opts.envFile, "env-file", "", "Path to a .env file loaded before reading GHUSERS_* variables")

	cmd.AddCommand(newVersionCmd(), newCacheCmd(&opts))
	return cmd
}

const rootCmdExample = `  # First ten GitHub users
  ghusers --num 10

  # Users with ids 100 to 200, with their ids
  ghusers --from 100 --to 200 --with-user-id

  # Logins matching a keyword, reusing cached responses
  ghusers --search octo --with-http-cache

  # Drop every cached response
  ghusers cache clear`

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	if err := opts.params.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configFile, opts.envFile)
	if err != nil {
		return errors.Validation(err.Error()).WithCause(err)
	}
	applyFlags(cmd, cfg, opts)
	cfg.ApplyDefaults()
	setupLogging(cfg, opts.verbose, cmd.ErrOrStderr())
	if err := cfg.Validate(); err != nil {
		return errors.Validation("config: " + err.Error()).WithCause(err)
	}

	log := logger.WithComponent("cli")

	cfg.Telemetry.ServiceVersion = cmd.Root().Version
	shutdown, err := observability.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return errors.Internal(err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	var store cache.Store
	if cfg.Cache.Enabled {
		fs, err := cache.NewFileStore(cfg.Cache.Directory, cfg.Cache.TTL)
		if err != nil {
			return errors.Internal(err)
		}
		log.Debug("http cache enabled", logger.Fields("directory", fs.Directory(), "ttl", fs.TTL().String()))
		store = fs
	}

	hc, err := github.NewHTTPClient(cfg.GitHub, version.UserAgent(), store)
	if err != nil {
		return errors.Validation("config: " + err.Error()).WithCause(err)
	}

	metrics := observability.DefaultMetrics()
	api := github.New(hc, github.WithPerPage(cfg.GitHub.PerPage), github.WithMetrics(metrics))
	runner := listing.NewRunner(api, listing.WithMetrics(metrics))

	format := output.FormatLogin
	if opts.withUserID {
		format = output.FormatIDLogin
	}
	sink := output.NewLineWriter(cmd.OutOrStdout(), format)

	stats, err := runner.Run(ctx, opts.params, sink)
	log.Debug("run finished", logger.Fields(
		"run_id", stats.RunID, "mode", stats.Mode.String(), "pages", stats.Pages,
		"records", stats.Records, "lines", sink.Lines(), "duration_ms", stats.Duration.Milliseconds(),
	))
	return err
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *Config, opts *options) {
	if cmd.Flags().Changed("token") {
		cfg.GitHub.Token = opts.token
	}
	if opts.withCache {
		cfg.Cache.Enabled = true
	}
}

// setupLogging installs the global logger on w. Colour is only used when w
// is a terminal.
func setupLogging(cfg *Config, verbose bool, w io.Writer) {
	lc := cfg.Logging
	if verbose {
		lc.Level = "debug"
	}
	lc.Writer = w
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		lc.NoColor = true
	}
	logger.Init(lc)
}

// FormatError renders err as "ERROR: <KIND>: <message>".
func FormatError(err error) string {
	msg := err.Error()
	if appErr, ok := errors.AsAppError(err); ok {
		msg = appErr.Message
		if appErr.Cause != nil && appErr.Code != errors.ErrCodeInvalidInput {
			msg += ": " + appErr.Cause.Error()
		}
	}
	return fmt.Sprintf("ERROR: %s: %s", errors.KindOf(err), msg)
}
