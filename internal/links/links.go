// Package links rewrites markdown links so cross-document references inside the
// documentation tree become in-page anchors of the merged document.
package links

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
	lerrors "git.home.luguber.info/inful/docmerge/internal/links/errors"
)

// DefaultSampleCodeBase is prefixed to /sample-code/ links.
const DefaultSampleCodeBase = "https://github.com/appium/appium/tree/master"

// inlineLink matches [text](target) with its leading whitespace. Link text may
// span lines. Image exclusion happens in Rewrite since RE2 has no lookbehind.
var inlineLink = regexp.MustCompile(`(\s*)\[([^\[]*)\]\(([^)]+)\)`)

// Rewriter rewrites links of one merge run.
type Rewriter struct {
	SampleCodeBase string
}

// Stats counts what Rewrite changed.
type Stats struct {
	Links      int // inline links seen, images excluded
	Anchored   int // .md targets turned into #anchors
	SampleCode int // /sample-code/ targets made absolute
}

// New returns a Rewriter; an empty base selects DefaultSampleCodeBase.
func New(sampleCodeBase string) *Rewriter {
	if sampleCodeBase == "" {
		sampleCodeBase = DefaultSampleCodeBase
	}
	return &Rewriter{SampleCodeBase: strings.TrimSuffix(sampleCodeBase, "/")}
}

// TrimLink normalizes a link target using DefaultSampleCodeBase.
func TrimLink(target string) string {
	return New("").TrimLink(target)
}

// TrimLink normalizes a link target:
//   - /sample-code/... becomes an absolute repository URL
//   - directory links (trailing /) are kept
//   - docs/... and ../... collapse to their final path segment
func (r *Rewriter) TrimLink(target string) string {
	switch {
	case strings.HasPrefix(target, "/sample-code/"):
		return r.SampleCodeBase + target
	case strings.HasSuffix(target, "/"):
		return target
	case strings.HasPrefix(target, "docs/"), strings.HasPrefix(target, "../"):
		return path.Base(target)
	default:
		return target
	}
}

// Rewrite rewrites every inline link in markdown. sourcePath only feeds diagnostics.
//
// A same-directory target without an extension is a MalformedLinkError: the
// returned error is a validation ClassifiedError wrapping ErrMissingExtension.
func (r *Rewriter) Rewrite(markdown, sourcePath string) (string, Stats, error) {
	var stats Stats
	matches := inlineLink.FindAllStringSubmatchIndex(markdown, -1)
	if len(matches) == 0 {
		return markdown, stats, nil
	}

	var b strings.Builder
	b.Grow(len(markdown))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		ws := markdown[m[2]:m[3]]
		text := markdown[m[4]:m[5]]
		target := markdown[m[6]:m[7]]

		if start > 0 && markdown[start-1] == '!' {
			if ws == "" {
				continue // image
			}
			// The match really starts one whitespace character later.
			start++
			ws = ws[1:]
		}

		stats.Links++
		full := markdown[start:end]
		replaced, err := r.rewriteOne(ws, text, target, full, sourcePath, &stats)
		if err != nil {
			return "", stats, err
		}

		b.WriteString(markdown[last:start])
		b.WriteString(replaced)
		last = end
	}
	b.WriteString(markdown[last:])
	return b.String(), stats, nil
}

func (r *Rewriter) rewriteOne(ws, text, target, full, sourcePath string, stats *Stats) (string, error) {
	normalized := r.TrimLink(target)
	if strings.HasPrefix(target, "/sample-code/") {
		stats.SampleCode++
	}
	result := ws + "[" + text + "](" + normalized + ")"

	if strings.Contains(normalized, "/") || strings.HasPrefix(normalized, "#") {
		return result, nil
	}

	ext := extname(normalized)
	if ext == "" && !strings.HasSuffix(normalized, "/") {
		return "", malformed(full, sourcePath)
	}

	ext, fragment, _ := strings.Cut(ext, "#")
	switch {
	case ext == ".md":
		anchor := strings.TrimSpace(normalized)
		if fragment != "" {
			anchor = fragment
		}
		stats.Anchored++
		return ws + "[" + text + "](#" + anchor + ")", nil
	case ext == "":
		return "", malformed(full, sourcePath)
	}
	return result, nil
}

// extname returns the extension of name including any #fragment after it. A
// leading dot alone does not start an extension.
func extname(name string) string {
	ext := path.Ext(name)
	if ext == name {
		return ""
	}
	return ext
}

func malformed(full, sourcePath string) error {
	link := strings.TrimSpace(full)
	source := strings.TrimSpace(sourcePath)
	return ferrors.ValidationError(fmt.Sprintf("No extension on %s in %s", link, source)).
		WithCause(lerrors.ErrMissingExtension).
		WithContext("file", source).
		WithContext("link", link).
		Build()
}
