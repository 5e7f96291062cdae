package markdown

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineLink(t *testing.T) {
	links := ExtractLinks([]byte("See [API](api.md) for details."))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "api.md", links[0].Destination)
	require.Equal(t, 1, links[0].Line)
}

func TestExtractLinks_ImageLink(t *testing.T) {
	links := ExtractLinks([]byte("![Diagram](diagram.png)"))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindImage, links[0].Kind)
	require.Equal(t, "diagram.png", links[0].Destination)
}

func TestExtractLinks_AutoLink(t *testing.T) {
	links := ExtractLinks([]byte("<https://example.com/path>"))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindAuto, links[0].Kind)
	require.Equal(t, "https://example.com/path", links[0].Destination)
}

func TestExtractLinks_ReferenceLinkUsageAndDefinition(t *testing.T) {
	links := ExtractLinks([]byte("See [API][ref].\n\n[ref]: api.md\n"))
	require.Len(t, links, 2)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "api.md", links[0].Destination)
	require.Equal(t, LinkKindReferenceDefinition, links[1].Kind)
	require.Equal(t, "api.md", links[1].Destination)
}

func TestExtractLinks_SkipsInlineCodeAndCodeBlocks(t *testing.T) {
	src := []byte("" +
		"Inline code: `[Link](#ignored-inline.md)`\n" +
		"\n" +
		"```\n" +
		"[Link](#ignored-fence.md)\n" +
		"```\n" +
		"\n" +
		"Real: [OK](#real.md)\n")

	links := ExtractLinks(src)
	require.Len(t, links, 1)
	require.Equal(t, "#real.md", links[0].Destination)
	require.Equal(t, 7, links[0].Line)
}

func TestExtractAnchors(t *testing.T) {
	src := []byte("" +
		"# <span id=\"intro.md\"></span>Intro\n" +
		"\n" +
		"text\n" +
		"\n" +
		"## <span id=\"caps.md\"></span>Caps\n" +
		"\n" +
		"`<span id=\"code.md\"></span>`\n" +
		"\n" +
		"    <span id=\"indented.md\"></span>\n")

	anchors := ExtractAnchors(src)
	require.Equal(t, []Anchor{{ID: "intro.md", Line: 1}, {ID: "caps.md", Line: 5}}, anchors)
}

func TestExtractAnchors_HTMLBlock(t *testing.T) {
	anchors := ExtractAnchors([]byte("<div>\n<span id=\"block.md\"></span>\n</div>\n"))
	require.Equal(t, []Anchor{{ID: "block.md", Line: 2}}, anchors)
}

func TestLineIndex(t *testing.T) {
	body := []byte("ab\n\ncd\n")
	lines := newLineIndex(body)

	want := []int{1, 1, 1, 2, 3, 3, 3, 4}
	for off, line := range want {
		require.Equal(t, line, lines.line(off), "offset %d", off)
	}
	require.Equal(t, 4, lines.line(len(body)+10))
	require.Equal(t, 1, newLineIndex(nil).line(0))
}

func TestExtractLinesInLongDocument(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 500; i++ {
		if i%100 == 0 {
			fmt.Fprintf(&b, "<span id=\"a%d.md\"></span> [x](#a%d.md)\n", i, i)
			continue
		}
		b.WriteString("filler\n")
	}
	src := []byte(b.String())

	links := ExtractLinks(src)
	require.Len(t, links, 5)
	anchors := ExtractAnchors(src)
	require.Len(t, anchors, 5)
	for i := range links {
		line := (i + 1) * 100
		require.Equal(t, fmt.Sprintf("#a%d.md", line), links[i].Destination)
		require.Equal(t, line, links[i].Line)
		require.Equal(t, Anchor{ID: fmt.Sprintf("a%d.md", line), Line: line}, anchors[i])
	}
}
