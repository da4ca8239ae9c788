package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// Month is a three-letter month abbreviation as used in version headers.
type Month string

const (
	Jan Month = "Jan"
	Feb Month = "Feb"
	Mar Month = "Mar"
	Apr Month = "Apr"
	May Month = "May"
	Jun Month = "Jun"
	Jul Month = "Jul"
	Aug Month = "Aug"
	Sep Month = "Sep"
	Oct Month = "Oct"
	Nov Month = "Nov"
	Dec Month = "Dec"
)

// Months returns the twelve month abbreviations in calendar order.
func Months() []Month {
	return []Month{Jan, Feb, Mar, Apr, May, Jun, Jul, Aug, Sep, Oct, Nov, Dec}
}

// MonthOf returns the abbreviation for a 1-based month number.
func MonthOf(n int) (Month, error) {
	months := Months()
	if n < 1 || n > len(months) {
		return "", &FormatError{Field: "month", Message: fmt.Sprintf("month number %d out of range", n)}
	}
	return months[n-1], nil
}

// ParseMonth normalizes a month string ("mar", "MAR", "Mar") to its
// canonical abbreviation. Unknown months fail with a FormatError.
func ParseMonth(s string) (Month, error) {
	m := Month(capitalize(s))
	for _, known := range Months() {
		if m == known {
			return m, nil
		}
	}
	return "", &FormatError{Field: "month", Message: fmt.Sprintf("invalid month %q", s)}
}

// Kind categorizes a change line item.
type Kind string

const (
	KindChanges      Kind = "Changes"
	KindBugfix       Kind = "Bugfix"
	KindFeature      Kind = "Feature"
	KindOptimization Kind = "Optimization"
)

// Kinds returns all valid change kinds in their canonical order.
func Kinds() []Kind {
	return []Kind{KindChanges, KindBugfix, KindFeature, KindOptimization}
}

// ParseKind normalizes a kind keyword ("bugfix", "BUGFIX") to its canonical
// capitalized form. Unknown kinds fail with a FormatError.
func ParseKind(s string) (Kind, error) {
	k := Kind(capitalize(s))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", &FormatError{Field: "kind", Message: fmt.Sprintf("invalid change kind %q", s)}
}

// versionNameRE matches v<major>.<minor>.<patch> with an optional
// prerelease suffix (e.g. "v1.2.0" or "v1.2.0-rc1").
var versionNameRE = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[^\s()]+)?$`)

// Change is one categorized line item within a version.
type Change struct {
	Title string
	Kind  Kind
	// MR is the merge-request reference; 0 means none.
	MR int
}

// NewChange validates and constructs a Change. The kind keyword is
// normalized to its canonical capitalized form.
func NewChange(title, kind string, mr int) (Change, error) {
	if title == "" {
		return Change{}, &FormatError{Field: "title", Message: "change title cannot be empty"}
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Change{}, err
	}
	if mr < 0 {
		return Change{}, &FormatError{Field: "mr", Message: fmt.Sprintf("invalid MR number %d", mr)}
	}
	return Change{Title: title, Kind: k, MR: mr}, nil
}

// Version is one dated release entry with free-form notes and a list of
// changes. Prerelease is derived from the name and never set directly.
type Version struct {
	Name       string
	Prerelease bool
	Day        int
	Month      Month
	Year       int
	Notes      string
	Changes    []Change
}

// NewVersion validates and constructs a Version with an empty change list.
// The month is normalized via ParseMonth. Day must be in 1..31 and year
// in [2017, 2030).
func NewVersion(name string, day int, month string, year int, notes string) (Version, error) {
	m := versionNameRE.FindStringSubmatch(name)
	if m == nil {
		return Version{}, &FormatError{Field: "name", Message: fmt.Sprintf("invalid version name %q", name)}
	}
	if day < 1 || day > 31 {
		return Version{}, &FormatError{Field: "day", Message: fmt.Sprintf("invalid day %d", day)}
	}
	mon, err := ParseMonth(month)
	if err != nil {
		return Version{}, err
	}
	if year < 2017 || year >= 2030 {
		return Version{}, &FormatError{Field: "year", Message: fmt.Sprintf("invalid year %d", year)}
	}
	return Version{
		Name:       name,
		Prerelease: m[1] != "",
		Day:        day,
		Month:      mon,
		Year:       year,
		Notes:      notes,
	}, nil
}

// Changelog is the full ordered history document. Versions are held in
// append order: the most recently added version is last. Serialization
// reverses that order so the rendered document reads newest-first.
type Changelog struct {
	Versions []Version
}

// New returns an empty changelog.
func New() *Changelog {
	return &Changelog{}
}

// Append adds a version as the newest entry.
func (c *Changelog) Append(v Version) {
	c.Versions = append(c.Versions, v)
}

// DisplayOrder returns the versions newest-first, as they appear in the
// rendered document. The stored slice is not modified.
func (c *Changelog) DisplayOrder() []Version {
	out := make([]Version, len(c.Versions))
	for i, v := range c.Versions {
		out[len(c.Versions)-1-i] = v
	}
	return out
}

// Reverse flips the stored version order in place. Parse returns versions
// in file order (newest first); callers that intend to Append convert to
// append order with a single Reverse.
func (c *Changelog) Reverse() {
	for i, j := 0, len(c.Versions)-1; i < j; i, j = i+1, j-1 {
		c.Versions[i], c.Versions[j] = c.Versions[j], c.Versions[i]
	}
}

// capitalize upper-cases the first letter and lower-cases the rest,
// mirroring how kind and month keywords are normalized.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
