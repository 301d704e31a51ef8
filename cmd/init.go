package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zorak1103/check-container/internal/templates"
)

var (
	force   bool
	initDir string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration",
	Long: `Init writes sample configuration files for the check.

This command will create:
  - config.yaml (commented sample configuration)
  - .env (environment variable overrides, e.g. the Shoutrrr URL)

Existing files are left untouched unless --force is given.`,
	Example: `  # Initialize in current directory
  check-container-by-query init

  # Initialize the system-wide configuration
  check-container-by-query init --dir /etc/check-container

  # Force overwrite existing files
  check-container-by-query init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		if err := os.MkdirAll(initDir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", initDir, err)
		}

		files := []struct {
			name    string
			content []byte
		}{
			{"config.yaml", templates.ConfigYAML},
			{".env", templates.EnvFile},
		}

		for _, file := range files {
			path := filepath.Join(initDir, file.name)
			if _, err := os.Stat(path); err == nil && !force {
				_, _ = fmt.Fprintf(out, "⚠️  Skipping %s (already exists, use --force to overwrite)\n", path)
				continue
			}

			if err := os.WriteFile(path, file.content, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			_, _ = fmt.Fprintf(out, "✅ Created %s\n", path)
		}

		_, _ = fmt.Fprintln(out, "\n📝 Next steps:")
		_, _ = fmt.Fprintln(out, "   1. Set check.query in config.yaml or pass --query-name")
		_, _ = fmt.Fprintln(out, "   2. Run 'check-container-by-query config' to review the result")
		_, _ = fmt.Fprintln(out, "   3. Add the check to your Sensu or Nagios definitions")

		return nil
	},
}

// nolint:gochecknoinits // Standard Cobra pattern for command registration
func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration files")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "directory to write the files into")
}
