package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialize_Empty(t *testing.T) {
	out, err := Serialize()
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = Serialize(Section{}, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSerialize_KeepsFieldOrder(t *testing.T) {
	out, err := Serialize(Section{{"title", "API Reference"}, {"search", true}, {"count", 3}})
	require.NoError(t, err)
	require.Equal(t, "title: API Reference\nsearch: true\ncount: 3\n", string(out))
}

func TestSerialize_BlankLineBetweenSections(t *testing.T) {
	out, err := Serialize(
		Section{{"title", "T"}},
		Section{},
		Section{{"tabs", []any{map[string]string{"ruby": "Ruby"}}}},
		Section{{"footers", []string{"a", "b"}}},
	)
	require.NoError(t, err)
	require.Equal(t, "title: T\n\ntabs:\n  - ruby: Ruby\n\nfooters:\n  - a\n  - b\n", string(out))
}

func TestSerialize_NestedMapSortsKeys(t *testing.T) {
	out, err := Serialize(Section{{"outer", map[string]any{"b": 2, "a": 1}}})
	require.NoError(t, err)
	require.Equal(t, "outer:\n  a: 1\n  b: 2\n", string(out))
}

func TestSerialize_UnsupportedType(t *testing.T) {
	_, err := Serialize(Section{{"bad", 1.5}})
	require.Error(t, err)
}
