// Package prompt provides interactive line prompts with validation, used by
// the add flow for confirmations and free-form input.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user cancels the prompt (Ctrl-C/Ctrl-D).
var ErrAborted = errors.New("prompt aborted")

// Options controls string prompt behavior.
type Options struct {
	// Default is used when the user submits an empty line.
	Default string
	// Match, when non-empty, is a regex the value must match.
	Match string
	// Required rejects empty values.
	Required bool
	// Confirm asks the user to confirm the entered value.
	Confirm bool
}

// validate checks a submitted value against the prompt options.
func validate(value string, opts Options) error {
	if opts.Required && value == "" {
		return errors.New("required value can't be empty")
	}
	if opts.Match != "" {
		re, err := regexp.Compile(opts.Match)
		if err != nil {
			return fmt.Errorf("invalid match pattern: %w", err)
		}
		if !re.MatchString(value) {
			return fmt.Errorf("input value must match %q", opts.Match)
		}
	}
	return nil
}

// String displays a prompt and reads a validated line. Invalid values are
// reported to stderr and the prompt repeats.
func String(msg string, opts Options) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	prompt := msg + ": "
	if opts.Default != "" {
		prompt = fmt.Sprintf("%s (default is '%s'): ", msg, opts.Default)
	}

	for {
		value, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return "", ErrAborted
			}
			return "", fmt.Errorf("reading input: %w", err)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			value = opts.Default
		}
		if err := validate(value, opts); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
			continue
		}
		if opts.Confirm {
			ok, err := Bool(fmt.Sprintf("Input value is '%s'. Please confirm", value), boolPtr(true))
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}
		}
		return value, nil
	}
}

// Bool displays a y/n prompt. A nil default makes an answer mandatory;
// otherwise an empty line selects the default.
func Bool(msg string, def *bool) (bool, error) {
	opts := Options{Match: `^[yYnN]?$`, Required: def == nil}
	suffix := "[y/n]"
	if def != nil {
		if *def {
			suffix = "[Y/n]"
		} else {
			suffix = "[y/N]"
		}
	}

	value, err := String(fmt.Sprintf("%s %s", msg, suffix), opts)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(value) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	default:
		return *def, nil
	}
}

func boolPtr(v bool) *bool {
	return &v
}
