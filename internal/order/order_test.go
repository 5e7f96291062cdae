package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	tests := []struct {
		name   string
		order  []string
		items  []string
		ignore []string
		want   []string
	}{
		{
			name:  "declared items take declared positions",
			order: []string{"intro.md", "caps.md", "credits.md"},
			items: []string{"/d/credits.md", "/d/intro.md", "/d/caps.md"},
			want:  []string{"/d/intro.md", "/d/caps.md", "/d/credits.md"},
		},
		{
			name:  "extras follow in discovery order",
			order: []string{"intro.md"},
			items: []string{"/d/zeta.md", "/d/intro.md", "/d/alpha.md"},
			want:  []string{"/d/intro.md", "/d/zeta.md", "/d/alpha.md"},
		},
		{
			name:  "gaps in the declared block are compacted",
			order: []string{"a.md", "missing.md", "b.md", "also-missing.md"},
			items: []string{"/d/b.md", "/d/a.md"},
			want:  []string{"/d/a.md", "/d/b.md"},
		},
		{
			name:   "ignored items are dropped",
			order:  []string{"intro.md"},
			items:  []string{"/d/intro.md", "/d/README.md", "/d/other.md"},
			ignore: []string{"README.md"},
			want:   []string{"/d/intro.md", "/d/other.md"},
		},
		{
			name:   "declared order wins over ignore",
			order:  []string{"intro.md"},
			items:  []string{"/d/intro.md"},
			ignore: []string{"intro.md"},
			want:   []string{"/d/intro.md"},
		},
		{
			name:  "duplicate basenames: last one wins the slot",
			order: []string{"index.md"},
			items: []string{"/d/a/index.md", "/d/b/index.md", "/d/x.md"},
			want:  []string{"/d/b/index.md", "/d/x.md"},
		},
		{
			name:  "directory names resolve like files",
			order: []string{"about", "commands"},
			items: []string{"commands", "writing-running-appium", "about"},
			want:  []string{"about", "commands", "writing-running-appium"},
		},
		{
			name: "empty input",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, List(tt.order, tt.items, tt.ignore))
		})
	}
}

func TestResolveDetailed_ReportsOverwrittenAndIgnored(t *testing.T) {
	r := NewResolver(Spec{Order: []string{"index.md"}, Ignore: []string{"draft.md"}})

	res := r.ResolveDetailed([]string{"/a/index.md", "/b/draft.md", "/c/index.md"})

	assert.Equal(t, []string{"/c/index.md"}, res.Items)
	assert.Equal(t, []string{"/a/index.md"}, res.Overwritten)
	assert.Equal(t, []string{"/b/draft.md"}, res.Ignored)
}

func TestNewResolver_RepeatedOrderNameKeepsFirstPosition(t *testing.T) {
	r := NewResolver(Spec{Order: []string{"a.md", "b.md", "a.md"}})

	assert.Equal(t, []string{"/a.md", "/b.md"}, r.Resolve([]string{"/b.md", "/a.md"}))
}

func TestResolve_IsDeterministic(t *testing.T) {
	r := NewResolver(Spec{Order: []string{"c.md", "a.md"}, Ignore: []string{"x.md"}})
	items := []string{"/a.md", "/x.md", "/b.md", "/c.md", "/d.md"}

	first := r.Resolve(items)
	for range 5 {
		assert.Equal(t, first, r.Resolve(items))
	}
}
