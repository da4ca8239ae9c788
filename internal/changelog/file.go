package changelog

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// Load reads and parses a changelog file. A missing file is a valid
// starting state: it yields an empty changelog with a warning rather than
// an error. Versions are returned in file order (newest first).
func Load(path string) (*Changelog, error) {
	return LoadWithOptions(path, ParseOptions{})
}

// LoadWithOptions loads with explicit diagnostics routing.
func LoadWithOptions(path string, opts ParseOptions) (*Changelog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			warn := opts.WarningWriter
			if warn == nil {
				warn = os.Stderr
			}
			fmt.Fprintf(warn, "WARNING: changelog file %s does not exist, starting empty\n", path)
			return New(), nil
		}
		return nil, fmt.Errorf("reading changelog file: %w", err)
	}
	return ParseWithOptions(string(data), opts)
}

// Save atomically overwrites the changelog file with the rendered document.
func Save(c *Changelog, path string) error {
	if err := atomic.WriteFile(path, strings.NewReader(c.String())); err != nil {
		return fmt.Errorf("writing changelog file %s: %w", path, err)
	}
	return nil
}
