// Package gitinfo reports the git revision a documentation tree was merged from.
package gitinfo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Info identifies the source revision of a tree.
type Info struct {
	Commit string // HEAD commit hash
	Branch string // short branch name, empty when detached
}

// Short returns the first 12 characters of the commit hash.
func (i Info) Short() string {
	if len(i.Commit) > 12 {
		return i.Commit[:12]
	}
	return i.Commit
}

// Lookup finds the repository containing dir. ok is false when dir is not
// inside a git repository or the repository has no commits yet.
func Lookup(dir string) (info Info, ok bool, err error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Info{}, false, err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Info{}, false, nil
	}
	if err != nil {
		return Info{}, false, fmt.Errorf("open repository: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		// Freshly initialized repository without commits.
		return Info{}, false, nil
	}
	info.Commit = ref.Hash().String()
	if ref.Name().IsBranch() {
		info.Branch = ref.Name().Short()
	}
	return info, true, nil
}
