package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// defaultPerPage matches the GitLab API maximum page size.
const defaultPerPage = 100

// commitFetchLimit bounds concurrent merge-commit lookups.
const commitFetchLimit = 8

// ListOptions controls merged merge-request collection.
type ListOptions struct {
	// Branches keeps only MRs merged into one of these target branches.
	// Empty means all branches.
	Branches []string
	// Since stops pagination once MRs older than this cutoff appear and,
	// when merge-commit checks are enabled, drops MRs whose merge commit
	// predates it. Zero means no cutoff.
	Since time.Time
	// PerPage overrides the page size (default 100).
	PerPage int
	// Progress, when set, is invoked with the running MR count after each
	// fetched page.
	Progress func(fetched int)
}

// MergedMergeRequests lists merged MRs newest-first, paginating until the
// Since cutoff (on updated_at) or the last page is reached.
func (c *Client) MergedMergeRequests(ctx context.Context, opts ListOptions) ([]MergeRequest, error) {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	branches := make(map[string]bool, len(opts.Branches))
	for _, b := range opts.Branches {
		branches[b] = true
	}

	var mrs []MergeRequest
	for page := 1; ; page++ {
		params := url.Values{
			"state":    {"merged"},
			"order_by": {"updated_at"},
			"sort":     {"desc"},
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}
		var batch []MergeRequest
		if err := c.get(ctx, "merge_requests", params, &batch); err != nil {
			return nil, fmt.Errorf("listing merge requests (page %d): %w", page, err)
		}

		reachedCutoff := false
		for _, mr := range batch {
			if !opts.Since.IsZero() && mr.UpdatedAt.Before(opts.Since) {
				reachedCutoff = true
				break
			}
			if len(branches) > 0 && !branches[mr.TargetBranch] {
				continue
			}
			mrs = append(mrs, mr)
		}
		if opts.Progress != nil {
			opts.Progress(len(mrs))
		}
		if reachedCutoff || len(batch) < perPage {
			break
		}
	}
	return mrs, nil
}

// FilterByMergeCommit drops MRs whose merge commit was created before the
// cutoff. The updated_at ordering used for pagination reflects any MR
// activity, so an old merge can still carry a recent timestamp; the merge
// commit date is authoritative. Commits are fetched with bounded
// concurrency; input order is preserved in the result.
func (c *Client) FilterByMergeCommit(ctx context.Context, mrs []MergeRequest, cutoff time.Time) ([]MergeRequest, error) {
	if cutoff.IsZero() {
		return mrs, nil
	}

	keep := make([]bool, len(mrs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(commitFetchLimit)
	for i, mr := range mrs {
		i, mr := i, mr
		g.Go(func() error {
			if mr.MergeCommitSHA == "" {
				return fmt.Errorf("merge request !%d has no merge commit", mr.IID)
			}
			commit, err := c.Commit(ctx, mr.MergeCommitSHA)
			if err != nil {
				return fmt.Errorf("fetching merge commit for !%d: %w", mr.IID, err)
			}
			keep[i] = !commit.CreatedAt.Before(cutoff)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := mrs[:0:0]
	for i, mr := range mrs {
		if keep[i] {
			out = append(out, mr)
		}
	}
	return out, nil
}
