package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/zorak1103/check-container/internal/check"
	"github.com/zorak1103/check-container/internal/config"
	"github.com/zorak1103/check-container/internal/docker"
	"github.com/zorak1103/check-container/internal/notification"
	"github.com/zorak1103/check-container/internal/reporting"
	"github.com/zorak1103/check-container/internal/version"
)

// runCheck is the root command: configuration problems are returned as
// errors (UNKNOWN), everything after that becomes a status line.
func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.ConfigFilePath != "" {
		logger.Debug("loaded configuration", "path", cfg.ConfigFilePath)
	}

	query, err := check.NewQuery(cfg.Check.Query, cfg.Docker.Host, cfg.Check.AllowExited)
	if err != nil {
		return err
	}
	if query.AllowExited {
		logger.Debug("--allow-exited has no effect, only running containers are queried")
	}

	notifier, err := notification.NewNotifier(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Docker.Timeout)
	defer cancel()

	result := runQuery(ctx, cfg, query)
	exitCode = reporting.Emit(cmd.OutOrStdout(), cfg.Check.Name, result)

	if err := notifier.SendCheckResult(cfg.Check.Name, result); err != nil {
		logger.Warn("failed to forward check result", "error", err)
	}

	return nil
}

func runQuery(ctx context.Context, cfg *config.Config, query *check.Query) check.Result {
	client, err := newDockerClient(docker.Options{
		Host:       cfg.Docker.Host,
		APIVersion: cfg.Docker.APIVersion,
		Timeout:    cfg.Docker.Timeout,
		TLSCACert:  cfg.Docker.TLSCACert,
		TLSCert:    cfg.Docker.TLSCert,
		TLSKey:     cfg.Docker.TLSKey,
		UserAgent:  version.GetUserAgent(),
	})
	if err != nil {
		return check.Classify(query, nil, err)
	}
	// Close error not actionable, the result is already decided
	defer func() { _ = client.Close() }()

	logger.Debug("querying running containers", "host", cfg.Docker.Host, "query", query.Expr)

	result := check.NewChecker(client, query).Run(ctx)
	logger.Debug("check finished", "status", result.Status.String())
	return result
}
