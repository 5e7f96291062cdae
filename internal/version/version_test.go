package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldV, oldC, oldT := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldV, oldC, oldT })

	assert.Equal(t, "docmerge dev (commit unknown, built unknown)", String())

	Version, GitCommit, BuildTime = "v1.2.0", "abc123", "2024-05-01"
	assert.Equal(t, "docmerge v1.2.0 (commit abc123, built 2024-05-01)", String())
}
