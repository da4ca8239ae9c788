package gitremote

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlug(t *testing.T) {
	tests := map[string]struct {
		url      string
		expected string
		wantErr  bool
	}{
		"https with .git":       {url: "https://gitlab.example.com/group/project.git", expected: "group/project"},
		"https without .git":    {url: "https://gitlab.example.com/group/project", expected: "group/project"},
		"nested groups":         {url: "https://gitlab.example.com/group/sub/project.git", expected: "group/sub/project"},
		"scp-style ssh":         {url: "git@gitlab.example.com:group/project.git", expected: "group/project"},
		"ssh scheme":            {url: "ssh://git@gitlab.example.com/group/project.git", expected: "group/project"},
		"no path":               {url: "https://gitlab.example.com", wantErr: true},
		"single path component": {url: "https://gitlab.example.com/project", wantErr: true},
		"empty":                 {url: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			slug, err := ParseSlug(tc.url)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, slug)
		})
	}
}

func TestProjectSlug(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{"git@gitlab.example.com:platform/api.git"},
	})
	require.NoError(t, err)

	slug, err := ProjectSlug(dir)
	require.NoError(t, err)
	assert.Equal(t, "platform/api", slug)
}

func TestProjectSlug_NotARepo(t *testing.T) {
	_, err := ProjectSlug(t.TempDir())
	require.Error(t, err)
}
