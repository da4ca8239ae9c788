package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mistops/relog/internal/output"
)

// KindStyle defines the color and icon for a change kind.
type KindStyle struct {
	Color *color.Color
	Icon  string
}

// kindStyles maps change kinds to their terminal styling.
var kindStyles = map[Kind]KindStyle{
	KindChanges:      {Color: color.New(color.FgBlue), Icon: "~"},
	KindBugfix:       {Color: color.New(color.FgYellow), Icon: "⚡"},
	KindFeature:      {Color: color.New(color.FgGreen), Icon: "✓"},
	KindOptimization: {Color: color.New(color.FgMagenta), Icon: "↑"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes the changelog to w with terminal styling, versions
// in display order with color-coded change lines.
func FormatTerminal(c *Changelog, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, v := range c.DisplayOrder() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatVersion(v, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", v.Name, err)
		}
	}
	return nil
}

// FormatVersion writes a single version to w with terminal styling.
func FormatVersion(v *Version, w io.Writer, opts FormatOptions) error {
	return formatVersion(*v, w, opts, resolveWidth(opts.MaxWidth))
}

func formatVersion(v Version, w io.Writer, opts FormatOptions, width int) error {
	if err := writeVersionHeader(v, w, opts); err != nil {
		return err
	}
	if v.Notes != "" {
		fmt.Fprintf(w, "%s\n", v.Notes)
	}
	for _, ch := range v.Changes {
		if err := writeChangeLine(ch, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeVersionHeader writes the version header line, tagging prereleases.
func writeVersionHeader(v Version, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s (%d %s %d)", v.Name, v.Day, v.Month, v.Year)
	if opts.Plain {
		if v.Prerelease {
			header += " [prerelease]"
		}
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	if v.Prerelease {
		dim := color.New(color.FgRed, color.Faint).SprintFunc()
		header = fmt.Sprintf("%s %s", bold(header), dim("[prerelease]"))
	} else {
		header = bold(header)
	}
	_, err := fmt.Fprintf(w, "## %s\n", header)
	return err
}

// writeChangeLine writes a single change with kind-colored styling and
// optional wrapping.
func writeChangeLine(ch Change, w io.Writer, opts FormatOptions, width int) error {
	text := ch.Title
	if ch.MR != 0 {
		text = fmt.Sprintf("%s (!%d)", text, ch.MR)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "  - %s: %s\n", ch.Kind, text)
		return err
	}

	style := kindStyles[ch.Kind]
	colored := style.Color.SprintFunc()
	wrapped := wrapText(text, width-4, "    ")
	_, err := fmt.Fprintf(w, "  %s %s: %s\n", colored(style.Icon), colored(string(ch.Kind)), wrapped)
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return output.GetTerminalWidth()
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}
		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}
	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}
	return strings.Join(lines, "\n"+indent)
}
