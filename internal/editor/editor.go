// Package editor spawns the user's text editor on a temporary file so a
// drafted changelog block can be reviewed and edited before it is parsed.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrNoEditor is returned when no usable editor can be found.
var ErrNoEditor = errors.New("no editor found: set $EDITOR or install vi or nano")

// Resolve returns the editor command to use.
// Priority: explicit override -> $EDITOR -> vi -> nano -> error.
func Resolve(override string) (string, error) {
	if override != "" {
		if _, err := exec.LookPath(override); err == nil {
			return override, nil
		}
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		if _, err := exec.LookPath(ed); err == nil {
			return ed, nil
		}
	}
	for _, fallback := range []string{"vi", "nano"} {
		if _, err := exec.LookPath(fallback); err == nil {
			return fallback, nil
		}
	}
	return "", ErrNoEditor
}

// Edit writes text to a temporary file with the given suffix, opens it in
// the resolved editor attached to the terminal, and returns the edited
// content after the editor exits.
func Edit(text, suffix string) (string, error) {
	ed, err := Resolve("")
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "relog-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	cmd := exec.Command(ed, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running editor %s: %w", ed, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading edited file: %w", err)
	}
	return string(edited), nil
}
