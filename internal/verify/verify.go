// Package verify audits a generated document: every in-page link to a merged
// file (#name.md) needs the anchor injected for that file.
package verify

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docmerge/internal/frontmatter"
	"git.home.luguber.info/inful/docmerge/internal/markdown"
)

// Finding is one problem in the document.
type Finding struct {
	Kind   FindingKind
	Target string
	Line   int // 1-based, relative to the body after the front matter
}

// FindingKind classifies findings.
type FindingKind string

const (
	// DanglingLink is a #name.md link without a matching anchor.
	DanglingLink FindingKind = "dangling_link"
	// DuplicateAnchor is an anchor id declared more than once.
	DuplicateAnchor FindingKind = "duplicate_anchor"
)

func (f Finding) String() string {
	switch f.Kind {
	case DuplicateAnchor:
		return fmt.Sprintf("line %d: anchor %s declared more than once", f.Line, f.Target)
	default:
		return fmt.Sprintf("line %d: link to #%s has no anchor", f.Line, f.Target)
	}
}

// Report summarizes an audit.
type Report struct {
	Anchors  int
	Links    int // in-page links to merged files
	Findings []Finding
}

// OK is true when there are no findings.
func (r Report) OK() bool { return len(r.Findings) == 0 }

// Document audits a generated document. Front matter is skipped when present.
func Document(content []byte) (Report, error) {
	_, body, _, err := frontmatter.Split(content)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	declared := map[string]int{}
	for _, a := range markdown.ExtractAnchors(body) {
		rep.Anchors++
		declared[a.ID]++
		if declared[a.ID] == 2 {
			rep.Findings = append(rep.Findings, Finding{Kind: DuplicateAnchor, Target: a.ID, Line: a.Line})
		}
	}

	for _, l := range markdown.ExtractLinks(body) {
		if l.Kind != markdown.LinkKindInline {
			continue
		}
		target, ok := fileAnchor(l.Destination)
		if !ok {
			continue
		}
		rep.Links++
		if declared[target] == 0 {
			rep.Findings = append(rep.Findings, Finding{Kind: DanglingLink, Target: target, Line: l.Line})
		}
	}

	slices.SortStableFunc(rep.Findings, func(a, b Finding) int { return a.Line - b.Line })
	return rep, nil
}

// fileAnchor returns the anchor of an in-page link to a merged file.
func fileAnchor(dest string) (string, bool) {
	target, ok := strings.CutPrefix(dest, "#")
	if !ok || path.Ext(target) != ".md" {
		return "", false
	}
	return target, true
}
