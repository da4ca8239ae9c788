package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mistops/relog/internal/changelog"
	"github.com/mistops/relog/internal/output"
)

var (
	showJSONFlag   bool
	showYAMLFlag   bool
	showPrettyFlag bool
	showPlainFlag  bool
	showWatchFlag  bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the changelog",
	Long: `Display the changelog between start/end markers.

By default the raw Markdown document is printed. Use --pretty for a
color-coded terminal view, or --json/--yaml for a structured dump.

Examples:
  relog show                 # Markdown between markers
  relog show --pretty        # Colored terminal view
  relog show --json          # JSON dump
  relog show -f docs/CHANGELOG.md --watch`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVarP(&showJSONFlag, "json", "j", false, "Display as JSON, not Markdown text")
	showCmd.Flags().BoolVar(&showYAMLFlag, "yaml", false, "Display as YAML, not Markdown text")
	showCmd.Flags().BoolVar(&showPrettyFlag, "pretty", false, "Color-coded terminal view")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Disable colors/icons in the pretty view")
	showCmd.Flags().BoolVarP(&showWatchFlag, "watch", "w", false, "Re-render whenever the changelog file changes")
}

func runShow(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !showWatchFlag {
		return showOnce(cmd, cfg.File)
	}
	return watchAndShow(cmd, cfg.File)
}

func showOnce(cmd *cobra.Command, path string) error {
	c, err := changelog.LoadWithOptions(path, changelog.ParseOptions{WarningWriter: cmd.ErrOrStderr()})
	if err != nil {
		if changelog.IsFormatError(err) {
			output.Errorf(cmd.ErrOrStderr(), "%v", err)
			return NewExitError(ExitFormatError)
		}
		return err
	}
	// Load returns file order (newest first); renderers expect append order.
	c.Reverse()
	return renderShow(cmd.OutOrStdout(), c)
}

func renderShow(w io.Writer, c *changelog.Changelog) error {
	switch {
	case showJSONFlag:
		data, err := json.MarshalIndent(c.Dict(), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding changelog as JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	case showYAMLFlag:
		data, err := yaml.Marshal(c.Dict())
		if err != nil {
			return fmt.Errorf("encoding changelog as YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
		return nil
	case showPrettyFlag:
		return changelog.FormatTerminal(c, w, changelog.FormatOptions{Plain: showPlainFlag})
	default:
		fmt.Fprintln(w, "----CHANGELOG-START----")
		fmt.Fprintln(w, c.String())
		fmt.Fprintln(w, "----CHANGELOG-END----")
		return nil
	}
}

// watchAndShow re-renders on every change to the changelog file until
// interrupted. The parent directory is watched because atomic writes
// replace the file inode.
func watchAndShow(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	if err := showOnce(cmd, path); err != nil {
		return err
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fmt.Fprintln(cmd.OutOrStdout())
				if err := showOnce(cmd, path); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.Warnf(cmd.ErrOrStderr(), "watch error: %v", err)
		}
	}
}
