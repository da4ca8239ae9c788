package gitlab

import "time"

// Project is the subset of the GitLab project resource relog needs.
type Project struct {
	ID                int    `json:"id"`
	PathWithNamespace string `json:"path_with_namespace"`
}

// MergeRequest is one merged merge request.
type MergeRequest struct {
	ID             int       `json:"id"`
	IID            int       `json:"iid"`
	Title          string    `json:"title"`
	State          string    `json:"state"`
	TargetBranch   string    `json:"target_branch"`
	UpdatedAt      time.Time `json:"updated_at"`
	MergeCommitSHA string    `json:"merge_commit_sha"`
	WebURL         string    `json:"web_url"`
}

// Commit is the subset of the GitLab commit resource relog needs.
type Commit struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	CommittedDate time.Time `json:"committed_date"`
}

// Tag is a repository tag with its target commit.
type Tag struct {
	Name   string `json:"name"`
	Commit Commit `json:"commit"`
}
