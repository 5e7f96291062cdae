// Package markdown analyzes merged documents with a CommonMark parser. It never
// re-renders markdown.
package markdown

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// LinkKind classifies extracted links.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is one link-like construct.
type Link struct {
	Kind        LinkKind
	Destination string
	Line        int // 1-based line of the link text, 0 when unknown
}

// parse parses a body (front matter already removed).
func parse(body []byte) (gmast.Node, parser.Context) {
	ctx := parser.NewContext()
	root := goldmark.New().Parser().Parse(text.NewReader(body), parser.WithContext(ctx))
	return root, ctx
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

// newLineIndex records the offset where each line of body starts.
func newLineIndex(body []byte) lineIndex {
	starts := lineIndex{0}
	for off := 0; ; {
		i := bytes.IndexByte(body[off:], '\n')
		if i < 0 {
			return starts
		}
		off += i + 1
		starts = append(starts, off)
	}
}

// line returns the 1-based line containing offset.
func (idx lineIndex) line(offset int) int {
	return sort.SearchInts(idx, offset+1)
}
