package changelog

// ChangeDict is the serializable view of a Change. MR is a pointer so a
// missing merge-request reference serializes as null rather than 0.
type ChangeDict struct {
	Title string `json:"title" yaml:"title"`
	Kind  string `json:"kind" yaml:"kind"`
	MR    *int   `json:"mr" yaml:"mr"`
}

// DateDict is the serializable view of a version date.
type DateDict struct {
	Day   int    `json:"day" yaml:"day"`
	Month string `json:"month" yaml:"month"`
	Year  int    `json:"year" yaml:"year"`
}

// VersionDict is the serializable view of a Version.
type VersionDict struct {
	Name       string       `json:"name" yaml:"name"`
	Prerelease bool         `json:"prerelease" yaml:"prerelease"`
	Date       DateDict     `json:"date" yaml:"date"`
	Notes      string       `json:"notes" yaml:"notes"`
	Changes    []ChangeDict `json:"changes" yaml:"changes"`
}

// ChangelogDict is the serializable view of the whole document.
type ChangelogDict struct {
	Versions []VersionDict `json:"versions" yaml:"versions"`
}

// Dict returns the serializable view of the change.
func (ch Change) Dict() ChangeDict {
	d := ChangeDict{Title: ch.Title, Kind: string(ch.Kind)}
	if ch.MR != 0 {
		mr := ch.MR
		d.MR = &mr
	}
	return d
}

// Dict returns the serializable view of the version.
func (v Version) Dict() VersionDict {
	changes := make([]ChangeDict, len(v.Changes))
	for i, ch := range v.Changes {
		changes[i] = ch.Dict()
	}
	return VersionDict{
		Name:       v.Name,
		Prerelease: v.Prerelease,
		Date:       DateDict{Day: v.Day, Month: string(v.Month), Year: v.Year},
		Notes:      v.Notes,
		Changes:    changes,
	}
}

// Dict returns the serializable view of the changelog in display order
// (newest first), matching the text rendering.
func (c *Changelog) Dict() ChangelogDict {
	display := c.DisplayOrder()
	versions := make([]VersionDict, len(display))
	for i, v := range display {
		versions[i] = v.Dict()
	}
	return ChangelogDict{Versions: versions}
}
