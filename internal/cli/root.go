// Package cli implements the relog command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mistops/relog/internal/config"
	"github.com/mistops/relog/internal/version"
)

var (
	fileFlag   string
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "relog",
	Short: "Manage a Markdown changelog fed by GitLab merge requests",
	Long: `relog reads and rewrites a CHANGELOG.md kept in a constrained Markdown
format, and drafts new version entries from the merge requests merged on
GitLab since the previous release.`,
	Version:      version.String(),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "",
		"Changelog file to read/write (default from config, CHANGELOG.md)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to project config file (default .relog/config.yml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the layered configuration and applies command-line
// overrides that beat every config source.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	if fileFlag != "" {
		cfg.File = fileFlag
	}
	return cfg, nil
}
