package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

const (
	red   color = "red"
	green color = "green"
)

func newColors() *Normalizer[color] {
	return New("color", map[string]color{"red": red, "Green": green}, red)
}

func TestNormalize(t *testing.T) {
	n := newColors()
	tests := []struct {
		in   string
		want color
	}{
		{"red", red},
		{"  GREEN ", green},
		{"green", green},
		{"blue", red},
		{"", red},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	n := newColors()

	got, err := n.Parse("RED")
	require.NoError(t, err)
	assert.Equal(t, red, got)

	_, err = n.Parse("blue")
	require.Error(t, err)
	assert.Equal(t, `invalid color "blue", valid options: [green red]`, err.Error())
}

func TestKeysIsCopy(t *testing.T) {
	n := newColors()
	keys := n.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"green", "red"}, n.Keys())
}
