package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zorak1103/check-container/internal/config"
	"github.com/zorak1103/check-container/internal/docker"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: `Display the effective configuration the check will use at runtime.

This shows the merged configuration from:
  1. Default values
  2. Configuration file (config.yaml)
  3. Environment variables (CHECK_CONTAINER_*)

Command line flags of the check itself are not shown. Secrets such as the
Shoutrrr URL are masked.`,
	Example: `  # Show current configuration
  check-container-by-query config

  # Show with custom config file
  check-container-by-query config --config /etc/check-container/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Read(cfgFile, nil)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		endpoint := docker.ParseEndpoint(cfg.Docker.Host)

		// Errors writing to stdout are not actionable in CLI context
		_, _ = fmt.Fprintln(out, "=== Effective Configuration ===")
		_, _ = fmt.Fprintf(out, "   Config File:    %s\n", orNone(cfg.ConfigFilePath))
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, "🐳 Docker Configuration:")
		_, _ = fmt.Fprintf(out, "   Host:           %s\n", cfg.Docker.Host)
		_, _ = fmt.Fprintf(out, "   Resolved Host:  %s\n", endpoint.Host)
		if endpoint.Scheme != "" {
			_, _ = fmt.Fprintf(out, "   Scheme:         %s\n", endpoint.Scheme)
		}
		_, _ = fmt.Fprintf(out, "   API Version:    %s\n", orDefault(cfg.Docker.APIVersion, "negotiated"))
		_, _ = fmt.Fprintf(out, "   Timeout:        %s\n", cfg.Docker.Timeout)
		_, _ = fmt.Fprintf(out, "   TLS CA Cert:    %s\n", orNone(cfg.Docker.TLSCACert))
		_, _ = fmt.Fprintf(out, "   TLS Cert:       %s\n", orNone(cfg.Docker.TLSCert))
		_, _ = fmt.Fprintf(out, "   TLS Key:        %s\n", orNone(cfg.Docker.TLSKey))
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, "🔎 Check Configuration:")
		_, _ = fmt.Fprintf(out, "   Name:           %s\n", cfg.Check.Name)
		_, _ = fmt.Fprintf(out, "   Query:          %s\n", orDefault(cfg.Check.Query, "❌ Not set (use --query-name)"))
		_, _ = fmt.Fprintf(out, "   Allow Exited:   %v (no effect)\n", cfg.Check.AllowExited)
		_, _ = fmt.Fprintln(out)

		_, _ = fmt.Fprintln(out, "🔔 Notification Configuration:")
		_, _ = fmt.Fprintf(out, "   Enabled:        %v\n", cfg.Notification.Enabled)
		_, _ = fmt.Fprintf(out, "   Shoutrrr URL:   %s\n", maskShoutrrrURL(cfg.Notification.ShoutrrURL))
		_, _ = fmt.Fprintf(out, "   Min Status:     %s\n", strings.ToUpper(cfg.Notification.MinStatus))
		_, _ = fmt.Fprintln(out)

		if err := cfg.Validate(); err != nil {
			_, _ = fmt.Fprintf(out, "Validation:       ❌ %v\n", err)
		} else {
			_, _ = fmt.Fprintln(out, "Validation:       ✅ OK")
		}

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
}

// maskShoutrrrURL masks sensitive parts of Shoutrrr URL
func maskShoutrrrURL(url string) string {
	if url == "" {
		return "❌ Not configured"
	}

	// Extract service type (e.g., discord://, slack://, smtp://)
	parts := strings.SplitN(url, "://", 2)
	if len(parts) != 2 {
		return "✅ Configured (invalid format)"
	}

	return fmt.Sprintf("✅ Configured (%s://***)", parts[0])
}

func orNone(s string) string {
	return orDefault(s, "(none)")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
