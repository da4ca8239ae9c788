package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/mistops/relog/internal/changelog"
	"github.com/mistops/relog/internal/config"
	"github.com/mistops/relog/internal/editor"
	"github.com/mistops/relog/internal/gitlab"
	"github.com/mistops/relog/internal/gitremote"
	"github.com/mistops/relog/internal/output"
	"github.com/mistops/relog/internal/prompt"
)

var (
	addTokenFlag    string
	addBranchesFlag []string
	addYesFlag      bool
	addNoFetchFlag  bool
)

var addCmd = &cobra.Command{
	Use:   "add <version>",
	Short: "Add a new version to the changelog",
	Long: `Add a new version entry to the changelog.

The entry is drafted from the merge requests merged on GitLab since the
previous release tag, then opened in $EDITOR for review. When the previous
version is a prerelease, its changes are folded into the new entry and the
prerelease is dropped from the changelog.

Examples:
  relog add v1.4.0
  relog add v1.4.0-rc1 --branch master
  relog add v1.4.0 --no-fetch -y`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addTokenFlag, "token", "t", "",
		"GitLab API token (default from GITLAB_TOKEN or config)")
	addCmd.Flags().StringArrayVarP(&addBranchesFlag, "branch", "b", nil,
		"Only include MRs merged into this branch; repeatable (default from config)")
	addCmd.Flags().BoolVarP(&addYesFlag, "yes", "y", false,
		"Write the changelog without asking for confirmation")
	addCmd.Flags().BoolVar(&addNoFetchFlag, "no-fetch", false,
		"Skip GitLab entirely and start from an empty draft")
}

func runAdd(cmd *cobra.Command, name string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if addTokenFlag != "" {
		cfg.Token = addTokenFlag
	}
	if len(addBranchesFlag) > 0 {
		cfg.Branches = addBranchesFlag
	}

	errOut := cmd.ErrOrStderr()

	clog, err := changelog.LoadWithOptions(cfg.File, changelog.ParseOptions{WarningWriter: errOut})
	if err != nil {
		if changelog.IsFormatError(err) {
			output.Errorf(errOut, "%v", err)
			return NewExitError(ExitFormatError)
		}
		return err
	}
	// Load returns file order (newest first); convert to append order so
	// the new version serializes at the top.
	clog.Reverse()

	now := time.Now()
	month, err := changelog.MonthOf(int(now.Month()))
	if err != nil {
		return err
	}
	draft, err := changelog.NewVersion(name, now.Day(), string(month), now.Year(), "")
	if err != nil {
		output.Errorf(errOut, "%v", err)
		return NewExitError(ExitInvalidArguments)
	}

	latest := clog.Latest()
	if !addNoFetchFlag {
		draft.Changes, err = collectChanges(cmd.Context(), cfg, latest, errOut)
		if err != nil {
			return err
		}
	}

	// A trailing prerelease is superseded by this release: its changes move
	// into the draft and the prerelease entry is dropped.
	if latest != nil && latest.Prerelease {
		output.Infof(errOut, "Folding changes of prerelease %s into %s.", latest.Name, draft.Name)
		draft.Changes = append(draft.Changes, latest.Changes...)
		clog.RemoveLatest()
	}

	final, err := editLoop(draft, errOut)
	if err != nil {
		return err
	}

	clog.Append(final)

	if err := renderShow(cmd.OutOrStdout(), clog); err != nil {
		return err
	}

	if !addYesFlag {
		ok, err := prompt.Bool(fmt.Sprintf("Do you wish to update %s?", cfg.File), nil)
		if err != nil {
			return NewExitError(ExitAborted)
		}
		if !ok {
			output.Infof(errOut, "Changelog not written.")
			return nil
		}
	}

	output.Infof(errOut, "Writing changelog to %s.", cfg.File)
	return changelog.Save(clog, cfg.File)
}

// collectChanges drafts one change line per merge request merged since the
// previous release tag.
func collectChanges(ctx context.Context, cfg *config.Configuration, latest *changelog.Version, errOut io.Writer) ([]changelog.Change, error) {
	repo := cfg.Repo
	if repo == "" {
		slug, err := gitremote.ProjectSlug("")
		if err != nil {
			return nil, fmt.Errorf("no repo configured and none detected: %w", err)
		}
		repo = slug
		output.Infof(errOut, "Detected project %s from git remote.", repo)
	}

	client, err := gitlab.NewClient(ctx, cfg.GitlabURL, repo, cfg.Token)
	if err != nil {
		return nil, err
	}

	var since time.Time
	if latest != nil {
		output.Infof(errOut, "Last version is '%s'.", latest.Name)
		tag, err := client.Tag(ctx, latest.Name)
		if err != nil {
			return nil, fmt.Errorf("can't find previous release %q on GitLab: %w", latest.Name, err)
		}
		since = tag.Commit.CommittedDate
	}

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Suffix = " Fetching merge requests..."
	spin.Start()
	mrs, err := client.MergedMergeRequests(ctx, gitlab.ListOptions{
		Branches: cfg.Branches,
		Since:    since,
		Progress: func(n int) {
			spin.Suffix = fmt.Sprintf(" Fetching merge requests... %d", n)
		},
	})
	if err == nil && !since.IsZero() {
		spin.Suffix = " Checking merge commits..."
		mrs, err = client.FilterByMergeCommit(ctx, mrs, since)
	}
	spin.Stop()
	if err != nil {
		return nil, err
	}
	output.Infof(errOut, "Collected %d merge requests.", len(mrs))

	changes := make([]changelog.Change, 0, len(mrs))
	for _, mr := range mrs {
		ch, err := changelog.NewChange(mr.Title, string(changelog.KindChanges), mr.ID)
		if err != nil {
			return nil, fmt.Errorf("drafting change for !%d: %w", mr.IID, err)
		}
		changes = append(changes, ch)
	}
	return changes, nil
}

// editLoop opens the draft in $EDITOR until it parses as a valid version
// block or the user gives up.
func editLoop(draft changelog.Version, errOut io.Writer) (changelog.Version, error) {
	text := draft.String()
	for {
		edited, err := editor.Edit(text, ".md")
		if err != nil {
			return changelog.Version{}, err
		}
		text = edited

		v, err := changelog.ParseVersion(text)
		if err == nil {
			return v, nil
		}

		output.Warnf(errOut, "Error parsing version block: %v", err)
		retry, perr := prompt.Bool("Re-edit changelog", boolPtr(true))
		if perr != nil || !retry {
			if errors.Is(perr, prompt.ErrAborted) || perr == nil {
				output.Errorf(errOut, "Exiting.")
				return changelog.Version{}, NewExitError(ExitAborted)
			}
			return changelog.Version{}, perr
		}
	}
}

func boolPtr(v bool) *bool {
	return &v
}
