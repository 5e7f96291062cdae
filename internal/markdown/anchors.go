package markdown

import (
	"regexp"

	gmast "github.com/yuin/goldmark/ast"
)

var spanID = regexp.MustCompile(`<span\s+id="([^"]+)"\s*>`)

// Anchor is an element id declared with an inline <span id="...">.
type Anchor struct {
	ID   string
	Line int
}

// ExtractAnchors returns the span anchors of body in document order. Spans
// inside code are not anchors and are skipped.
func ExtractAnchors(body []byte) []Anchor {
	root, _ := parse(body)
	lines := newLineIndex(body)

	var anchors []Anchor
	collect := func(raw []byte, start int) {
		for _, m := range spanID.FindAllSubmatchIndex(raw, -1) {
			anchors = append(anchors, Anchor{
				ID:   string(raw[m[2]:m[3]]),
				Line: lines.line(start + m[0]),
			})
		}
	}

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				collect(seg.Value(body), seg.Start)
			}
		case *gmast.HTMLBlock:
			segs := node.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				collect(seg.Value(body), seg.Start)
			}
		}
		return gmast.WalkContinue, nil
	})
	return anchors
}
