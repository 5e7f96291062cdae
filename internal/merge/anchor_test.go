package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInjectAnchor(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		basename string
		level    int
		want     string
		anchored bool
	}{
		{
			name:     "flat heading",
			content:  "# Credits\nThanks",
			basename: "credits.md",
			level:    FlatLevel,
			want:     "# <span id=\"credits.md\"></span>Credits\n\nThanks\n",
			anchored: true,
		},
		{
			name:     "surrounding whitespace trimmed",
			content:  "\n\n  # Intro  \n\nBody\n\n\n",
			basename: "intro.md",
			level:    FlatLevel,
			want:     "# <span id=\"intro.md\"></span>Intro\n\n\nBody\n",
			anchored: true,
		},
		{
			name:     "flat skips level two",
			content:  "## Sub\n# Main",
			basename: "a.md",
			level:    FlatLevel,
			want:     "## Sub\n# <span id=\"a.md\"></span>Main\n\n",
			anchored: true,
		},
		{
			name:     "grouped skips level one and three",
			content:  "# Group\n### Deep\n## Page\n## Second",
			basename: "page.md",
			level:    GroupedLevel,
			want:     "# Group\n### Deep\n## <span id=\"page.md\"></span>Page\n\n## Second\n",
			anchored: true,
		},
		{
			name:     "only first heading",
			content:  "# One\n# Two",
			basename: "x.md",
			level:    FlatLevel,
			want:     "# <span id=\"x.md\"></span>One\n\n# Two\n",
			anchored: true,
		},
		{
			name:     "marker without space",
			content:  "#Title",
			basename: "t.md",
			level:    FlatLevel,
			want:     "# <span id=\"t.md\"></span>Title\n\n",
			anchored: true,
		},
		{
			name:     "bare marker does not qualify",
			content:  "#\ntext",
			basename: "t.md",
			level:    FlatLevel,
			want:     "#\ntext\n",
		},
		{
			name:     "no heading merged verbatim",
			content:  "Just text\nmore",
			basename: "plain.md",
			level:    FlatLevel,
			want:     "Just text\nmore\n",
		},
		{
			name:     "empty file",
			content:  "  \n ",
			basename: "empty.md",
			level:    FlatLevel,
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InjectAnchor(tt.content, tt.basename, tt.level)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.anchored, ok)
		})
	}
}

func TestAnchorTag(t *testing.T) {
	assert.Equal(t, `<span id="credits.md"></span>`, AnchorTag("credits.md"))
}
