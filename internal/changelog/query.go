package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Name              string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Name, strings.Join(e.AvailableVersions, ", "))
}

// GetVersion retrieves a version by exact name.
// Returns VersionNotFoundError if the version doesn't exist.
func (c *Changelog) GetVersion(name string) (*Version, error) {
	for i := range c.Versions {
		if c.Versions[i].Name == name {
			return &c.Versions[i], nil
		}
	}
	return nil, &VersionNotFoundError{
		Name:              name,
		AvailableVersions: c.ListVersions(),
	}
}

// ListVersions returns all version names in display order (newest first).
func (c *Changelog) ListVersions() []string {
	display := c.DisplayOrder()
	names := make([]string, len(display))
	for i, v := range display {
		names[i] = v.Name
	}
	return names
}

// Latest returns the most recently appended version, or nil for an empty
// changelog. Only meaningful once the stored slice is in append order.
func (c *Changelog) Latest() *Version {
	if len(c.Versions) == 0 {
		return nil
	}
	return &c.Versions[len(c.Versions)-1]
}

// RemoveLatest drops the most recently appended version. Used when a new
// release supersedes a trailing prerelease whose changes are folded into
// the new version.
func (c *Changelog) RemoveLatest() {
	if len(c.Versions) == 0 {
		return
	}
	c.Versions = c.Versions[:len(c.Versions)-1]
}

// ChangeCount returns the total number of changes across all versions.
func (c *Changelog) ChangeCount() int {
	count := 0
	for _, v := range c.Versions {
		count += len(v.Changes)
	}
	return count
}
