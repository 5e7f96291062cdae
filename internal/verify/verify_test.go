package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "---\ntitle: API Reference\n---\n"

func TestDocumentClean(t *testing.T) {
	doc := header + "\n\n# <span id=\"intro.md\"></span>Intro\n\nSee [caps](#caps.md) and [section](#setup).\n\n" +
		"\n\n# <span id=\"caps.md\"></span>Caps\n\nBack to [intro](#intro.md). ![img](#pic.md)\n"

	rep, err := Document([]byte(doc))
	require.NoError(t, err)
	assert.True(t, rep.OK(), "%v", rep.Findings)
	assert.Equal(t, 2, rep.Anchors)
	assert.Equal(t, 2, rep.Links)
}

func TestDocumentFindings(t *testing.T) {
	doc := "# <span id=\"a.md\"></span>A\n\n" +
		"[missing](#gone.md)\n\n" +
		"# <span id=\"a.md\"></span>Again\n\n" +
		"`[code](#code.md)`\n"

	rep, err := Document([]byte(doc))
	require.NoError(t, err)
	assert.False(t, rep.OK())
	assert.Equal(t, []Finding{
		{Kind: DanglingLink, Target: "gone.md", Line: 3},
		{Kind: DuplicateAnchor, Target: "a.md", Line: 5},
	}, rep.Findings)
	assert.Equal(t, "line 3: link to #gone.md has no anchor", rep.Findings[0].String())
	assert.Equal(t, "line 5: anchor a.md declared more than once", rep.Findings[1].String())
}

func TestDocumentBrokenFrontMatter(t *testing.T) {
	_, err := Document([]byte("---\ntitle: x\n# no closing\n"))
	require.Error(t, err)
}
