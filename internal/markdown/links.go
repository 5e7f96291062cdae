package markdown

import (
	"sort"

	gmast "github.com/yuin/goldmark/ast"
)

// ExtractLinks returns the links of body in document order, followed by the
// reference definitions sorted by label. Code spans and code blocks are skipped
// by the parser.
func ExtractLinks(body []byte) []Link {
	root, ctx := parse(body)
	lines := newLineIndex(body)

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body)), Line: firstLine(node, lines)})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination), Line: firstLine(node, lines)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Line: firstLine(node, lines)})
		}
		return gmast.WalkContinue, nil
	})

	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}

// firstLine locates an inline node through its first text descendant.
// Autolinks have no text children and report 0.
func firstLine(n gmast.Node, lines lineIndex) int {
	for c := n.FirstChild(); c != nil; c = c.FirstChild() {
		if t, ok := c.(*gmast.Text); ok {
			return lines.line(t.Segment.Start)
		}
	}
	return 0
}
