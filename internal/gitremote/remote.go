// Package gitremote derives the GitLab project slug from the git remote of
// the working directory, so relog works without explicit repo configuration
// inside a checkout.
package gitremote

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ProjectSlug returns the "group/project" slug of the origin remote of the
// repository containing path (or the working directory when path is empty).
func ProjectSlug(path string) (string, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", path, err)
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("looking up origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	return ParseSlug(urls[0])
}

// ParseSlug extracts "group/project" from a remote URL. Both HTTP(S) and
// SSH/scp-style URLs are supported; a trailing ".git" is dropped. Nested
// groups keep their full path.
func ParseSlug(remoteURL string) (string, error) {
	s := remoteURL
	switch {
	case strings.Contains(s, "://"):
		// https://gitlab.example.com/group/project.git
		s = s[strings.Index(s, "://")+3:]
		if i := strings.IndexByte(s, '/'); i >= 0 {
			s = s[i+1:]
		} else {
			s = ""
		}
	case strings.Contains(s, ":"):
		// git@gitlab.example.com:group/project.git
		s = s[strings.IndexByte(s, ':')+1:]
	}

	s = strings.TrimSuffix(strings.Trim(s, "/"), ".git")
	if s == "" || !strings.Contains(s, "/") {
		return "", fmt.Errorf("cannot derive project slug from remote URL %q", remoteURL)
	}
	return s, nil
}
