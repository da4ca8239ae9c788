package changelog

import (
	"fmt"
	"io"
	"strings"
)

// String renders the change as a single Markdown line. The merge-request
// suffix is emitted only when MR is nonzero.
func (ch Change) String() string {
	msg := fmt.Sprintf("* %s: %s", ch.Kind, ch.Title)
	if ch.MR != 0 {
		msg = fmt.Sprintf("%s (!%d)", msg, ch.MR)
	}
	return msg
}

// String renders the version as a Markdown block: the header line, the
// notes (when non-empty), the "### Changes" subsection and one line per
// change in stored order. The subsection marker is emitted even when the
// change list is empty.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%d %s %d)\n\n", v.Name, v.Day, v.Month, v.Year)
	if v.Notes != "" {
		b.WriteString(v.Notes)
		b.WriteString("\n\n")
	}
	b.WriteString("### Changes\n\n")
	for _, ch := range v.Changes {
		b.WriteString(ch.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the full document: the fixed top header followed by each
// version block in display order (reverse of stored order, so the most
// recently appended version comes first).
func (c *Changelog) String() string {
	blocks := make([]string, 0, len(c.Versions))
	for _, v := range c.DisplayOrder() {
		blocks = append(blocks, v.String())
	}
	return "# Changelog\n\n\n" + strings.Join(blocks, "\n\n")
}

// Render writes the document to w.
func (c *Changelog) Render(w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}
