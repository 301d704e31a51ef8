// Package cmd implements the CLI commands.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zorak1103/check-container/internal/check"
	"github.com/zorak1103/check-container/internal/config"
	"github.com/zorak1103/check-container/internal/docker"
	"github.com/zorak1103/check-container/internal/reporting"
	"github.com/zorak1103/check-container/internal/version"
)

var (
	cfgFile string
	verbose bool

	// logger writes diagnostics to stderr; stdout is reserved for the status line.
	logger = slog.New(slog.DiscardHandler)

	// exitCode is set by the command that ran and returned by execute.
	exitCode int

	// newDockerClient is swapped in tests to fake the daemon.
	newDockerClient = docker.NewClient
)

var rootCmd = &cobra.Command{
	Use:   "check-container-by-query",
	Short: "Check that a running Docker container matches a name query",
	Long: `check-container-by-query is a Sensu/Nagios compatible check that asks the
Docker daemon for its running containers (GET /containers/json) and reports
whether any container name matches a regular expression.

Outcomes and exit codes:
  OK        0  at least one running container name matches the query
  WARNING   1  the daemon could not be reached or answered unexpectedly
  CRITICAL  2  the daemon answered and no running container matches
  UNKNOWN   3  invalid configuration, e.g. missing or invalid query

Results can optionally be forwarded to chat services via Shoutrrr.`,
	Example: `  check-container-by-query -H /var/run/docker.sock -q c92d402a5d14
  CheckDockerContainerByQuery OK: Found a container with query c92d402a5d14 running on /var/run/docker.sock.

  check-container-by-query -H https://127.0.0.1:2376 -q circle_burglar
  CheckDockerContainerByQuery CRITICAL: Didn't find a container with query circle_burglar running on https://127.0.0.1:2376.`,
	Version:       version.GetFullVersion(),
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		return nil
	},
	RunE: runCheck,
}

// Execute runs the command line and terminates the process with the plugin exit code.
func Execute() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs rootCmd with args and returns the exit code. Any error that
// reaches this point happened before a check result existed and is UNKNOWN.
func execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exitCode = check.StatusOK.ExitCode()
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		result := check.Result{Status: check.StatusUnknown, Message: err.Error()}
		return reporting.Emit(rootCmd.OutOrStdout(), flagCheckName(), result)
	}
	return exitCode
}

// flagCheckName is the status line prefix when no configuration could be loaded.
func flagCheckName() string {
	name, err := rootCmd.Flags().GetString("check-name")
	if err != nil || name == "" {
		return config.DefaultCheckName
	}
	return name
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output on stderr")

	flags := rootCmd.Flags()
	flags.StringP("docker-host", "H", "", "Docker API URI: unix:///path, /path, tcp://host:port, http(s)://host[:port], host:port (default $DOCKER_HOST or unix:///var/run/docker.sock)")
	flags.StringP("query-name", "q", "", "regex of container name(s) to match (required)")
	flags.BoolP("allow-exited", "x", false, "do not raise alert if container has exited without error (currently has no effect)")
	flags.Duration("timeout", config.DefaultTimeout, "give up on the Docker daemon after this long")
	flags.String("check-name", config.DefaultCheckName, "name printed at the start of the status line")
}

// IsVerbose returns whether verbose mode is enabled via the -v flag.
func IsVerbose() bool {
	return verbose
}
