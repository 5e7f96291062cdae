// Package emit writes the merged document to the output directory.
package emit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/inful/mdfp"
	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
	"git.home.luguber.info/inful/docmerge/internal/frontmatter"
	"git.home.luguber.info/inful/docmerge/internal/logfields"
)

// IndexFile is the name of the generated document.
const IndexFile = "index.md"

// Result describes one write.
type Result struct {
	Path        string
	Bytes       int
	Fingerprint string
	// Unchanged is true when the previous file had the same fingerprint.
	Unchanged bool
}

// Emitter writes documents through an afero filesystem.
type Emitter struct {
	fs afero.Fs
}

// New creates an Emitter. A nil fs selects the OS filesystem.
func New(fs afero.Fs) *Emitter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Emitter{fs: fs}
}

// Fingerprint is the mdfp fingerprint of a header (without delimiters) and body.
func Fingerprint(header []byte, body string) string {
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(header), "\n"), body)
}

// Write replaces <outDir>/index.md with header and body. The file is written
// to a temporary name first and renamed into place.
func (e *Emitter) Write(outDir string, header []byte, body string) (Result, error) {
	path := filepath.Join(outDir, IndexFile)
	res := Result{
		Path:        path,
		Fingerprint: Fingerprint(header, body),
	}
	res.Unchanged = e.previousFingerprint(path) == res.Fingerprint

	content := frontmatter.Join(header, []byte(body))
	res.Bytes = len(content)

	tmp := path + ".tmp"
	if err := afero.WriteFile(e.fs, tmp, content, 0o644); err != nil {
		return Result{}, writeError(path, err)
	}
	if err := e.fs.Rename(tmp, path); err != nil {
		_ = e.fs.Remove(tmp)
		return Result{}, writeError(path, err)
	}

	slog.Debug("Wrote document", logfields.Path(path), slog.Int("bytes", res.Bytes), slog.Bool("unchanged", res.Unchanged))
	return res, nil
}

func (e *Emitter) previousFingerprint(path string) string {
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("Cannot read previous document", logfields.Path(path), logfields.Error(err))
		}
		return ""
	}
	header, body, had, err := frontmatter.Split(data)
	if err != nil || !had {
		return ""
	}
	return Fingerprint(header, string(body))
}

func writeError(path string, err error) error {
	return ferrors.FileSystemError(fmt.Sprintf("cannot write %s", path)).
		WithCause(err).
		WithContext("path", path).
		Build()
}
