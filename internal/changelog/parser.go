package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// FormatError represents a textual-validation failure with context about
// the offending field or line. All parsing failures are fatal to the parse
// call; no partial results are returned.
type FormatError struct {
	// Field names the invalid field (e.g. "day"), if the failure is a
	// constructor-level range check.
	Field string
	// Line quotes the unparseable input line, if any.
	Line string
	// Message describes what went wrong.
	Message string
}

func (e *FormatError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Line != "" {
		msg = fmt.Sprintf("%s (line %q)", msg, e.Line)
	}
	return msg
}

// IsFormatError returns true if the error is a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

var (
	topHeaderRE     = regexp.MustCompile(`(?i)^#\s*changelog\s*$`)
	sectionStartRE  = regexp.MustCompile(`^##[^#]`)
	changesHeaderRE = regexp.MustCompile(`(?i)^###\s*changes\s*$`)

	versionHeaderRE = regexp.MustCompile(
		`(?i)^##\s*(v\d+\.\d+\.\d+(?:-[^\s()]+)?)\s*\(\s*(\d+)\s*(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s*(\d+)\s*\)\s*$`)

	changeLineRE = regexp.MustCompile(
		`(?i)^\s*[*-]?\s*(Changes|Bugfix|Feature|Optimization)\s*:\s*(.*?)\s*(?:\(!([0-9]+)\))?\s*$`)
)

// CropPadding strips leading and trailing whitespace from every line, then
// drops leading and trailing empty lines. It is applied before every
// structural parse step so incidental blank lines and indentation are
// tolerated. An all-blank input yields an empty slice.
func CropPadding(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(line)
	}
	start := 0
	for start < len(out) && out[start] == "" {
		start++
	}
	end := len(out)
	for end > start && out[end-1] == "" {
		end--
	}
	return out[start:end]
}

// CropPaddingString splits a multi-line string and crops padding.
func CropPaddingString(s string) []string {
	return CropPadding(strings.Split(s, "\n"))
}

// ParseOptions controls non-fatal diagnostics emitted while parsing.
type ParseOptions struct {
	// WarningWriter receives warnings (default: os.Stderr).
	WarningWriter io.Writer
}

// Parse converts Markdown text into a Changelog. The document must start
// with a level-one "changelog" header; every version section must start
// with a level-two header. Versions are appended in the order encountered,
// which by convention is newest-first in the file.
//
// An empty or whitespace-only document is accepted and yields an empty
// changelog with a warning; a missing changelog file is a valid starting
// state, not an error.
func Parse(src string) (*Changelog, error) {
	return ParseWithOptions(src, ParseOptions{})
}

// ParseWithOptions parses with explicit diagnostics routing.
func ParseWithOptions(src string, opts ParseOptions) (*Changelog, error) {
	warn := opts.WarningWriter
	if warn == nil {
		warn = os.Stderr
	}

	c := New()
	lines := CropPaddingString(src)
	if len(lines) == 0 {
		fmt.Fprintln(warn, "WARNING: Changelog is empty")
		return c, nil
	}
	if !topHeaderRE.MatchString(lines[0]) {
		return nil, &FormatError{Line: lines[0], Message: "changelog missing top header"}
	}

	lines = CropPadding(lines[1:])
	var sections [][]string
	for _, line := range lines {
		if sectionStartRE.MatchString(line) {
			sections = append(sections, nil)
		} else if len(sections) == 0 {
			return nil, &FormatError{Line: line, Message: "changelog body doesn't start with level-two header"}
		}
		sections[len(sections)-1] = append(sections[len(sections)-1], line)
	}

	for _, section := range sections {
		v, err := ParseVersion(strings.Join(section, "\n"))
		if err != nil {
			return nil, err
		}
		c.Versions = append(c.Versions, v)
	}
	return c, nil
}

// ParseVersion converts one version block into a Version. The first line
// must be a header of the form "## <name> (<day> <month> <year>)" with
// flexible internal whitespace and case-insensitive month. Lines up to the
// first "### Changes" header become the notes block; the remainder are
// parsed as change lines, blanks discarded, order preserved.
func ParseVersion(src string) (Version, error) {
	lines := CropPaddingString(src)
	if len(lines) == 0 {
		return Version{}, &FormatError{Message: "empty version block"}
	}

	m := versionHeaderRE.FindStringSubmatch(lines[0])
	if m == nil {
		return Version{}, &FormatError{Line: lines[0], Message: "invalid version header"}
	}
	name, dayStr, month, yearStr := m[1], m[2], m[3], m[4]
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return Version{}, &FormatError{Field: "day", Line: lines[0], Message: err.Error()}
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Version{}, &FormatError{Field: "year", Line: lines[0], Message: err.Error()}
	}

	lines = CropPadding(lines[1:])
	var notes []string
	rest := []string{}
	for i, line := range lines {
		if changesHeaderRE.MatchString(line) {
			rest = lines[i+1:]
			break
		}
		notes = append(notes, line)
	}
	// Blank lines separating the notes from the changes marker are layout,
	// not notes content.
	notes = CropPadding(notes)

	v, err := NewVersion(name, day, month, year, strings.Join(notes, "\n"))
	if err != nil {
		return Version{}, err
	}
	for _, line := range CropPadding(rest) {
		if line == "" {
			continue
		}
		ch, err := ParseChange(line)
		if err != nil {
			return Version{}, err
		}
		v.Changes = append(v.Changes, ch)
	}
	return v, nil
}

// ParseChange converts a single line into a Change. The grammar is an
// optional bullet marker ("*" or "-"), a kind keyword, a colon, the title,
// and an optional trailing "(!N)" merge-request reference.
func ParseChange(line string) (Change, error) {
	m := changeLineRE.FindStringSubmatch(line)
	if m == nil {
		return Change{}, &FormatError{Line: line, Message: "couldn't parse change information"}
	}
	kind, title, mrStr := m[1], m[2], m[3]
	mr := 0
	if mrStr != "" {
		var err error
		if mr, err = strconv.Atoi(mrStr); err != nil {
			return Change{}, &FormatError{Field: "mr", Line: line, Message: err.Error()}
		}
	}
	return NewChange(title, kind, mr)
}
