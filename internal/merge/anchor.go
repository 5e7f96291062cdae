package merge

import (
	"strings"
)

// Heading levels that receive the per-file anchor.
const (
	FlatLevel    = 1
	GroupedLevel = 2
)

// AnchorTag is the hidden inline element that makes a file linkable as #basename.
func AnchorTag(basename string) string {
	return `<span id="` + basename + `"></span>`
}

// InjectAnchor trims content and rewrites the first heading of the given level
// to carry the anchor of basename, followed by a blank line. Every other line
// is kept and newline-terminated. ok is false when no heading qualified; the
// content is then returned without an anchor.
func InjectAnchor(content, basename string, level int) (out string, ok bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", false
	}
	marker := strings.Repeat("#", level)

	var b strings.Builder
	b.Grow(len(content) + len(basename) + 32)
	for _, line := range strings.Split(content, "\n") {
		if !ok && isHeading(strings.TrimSpace(line), marker) {
			_, suffix, _ := strings.Cut(line, marker)
			b.WriteString(marker + " " + AnchorTag(basename) + strings.TrimSpace(suffix) + "\n\n")
			ok = true
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), ok
}

// isHeading reports whether line starts with marker followed by a character
// other than '#'.
func isHeading(line, marker string) bool {
	return len(line) > len(marker) && strings.HasPrefix(line, marker) && line[len(marker)] != '#'
}
