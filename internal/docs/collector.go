// Package docs enumerates the markdown files of a documentation tree.
package docs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	derrors "git.home.luguber.info/inful/docmerge/internal/docs/errors"
	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
	"git.home.luguber.info/inful/docmerge/internal/logfields"
)

// MarkdownExt is the only extension collected.
const MarkdownExt = ".md"

// SourceFile is one markdown file read for merging.
type SourceFile struct {
	Path    string // Absolute path
	Name    string // Basename, also the anchor id
	Content []byte
}

// Collector walks documentation trees on an afero filesystem.
type Collector struct {
	fs afero.Fs
}

// NewCollector creates a collector over fs. A nil fs selects the OS filesystem.
func NewCollector(fs afero.Fs) *Collector {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Collector{fs: fs}
}

// Fs returns the underlying filesystem.
func (c *Collector) Fs() afero.Fs { return c.fs }

// ValidateDir checks that dir exists, is readable and is a directory, and
// returns its absolute form. Failures are configuration errors.
func (c *Collector) ValidateDir(dir string) (string, error) {
	notReadable := func(cause error) error {
		b := ferrors.ConfigError(fmt.Sprintf("%s is not an existing readable directory", dir)).
			WithCause(derrors.ErrNotReadableDir).
			WithContext("path", dir)
		if cause != nil {
			b = b.WithContext("cause", cause.Error())
		}
		return b.Build()
	}

	if strings.TrimSpace(dir) == "" {
		return "", notReadable(nil)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", notReadable(err)
	}
	info, err := c.fs.Stat(abs)
	if err != nil {
		return "", notReadable(err)
	}
	if !info.IsDir() {
		return "", notReadable(nil)
	}
	f, err := c.fs.Open(abs)
	if err != nil {
		return "", notReadable(err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
		return "", notReadable(err)
	}
	return abs, nil
}

// Glob returns the absolute paths of all markdown files below root in lexical
// walk order. Directories and hidden entries are skipped.
func (c *Collector) Glob(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, root, err)
	}

	var files []string
	err = afero.Walk(c.fs, abs, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path != abs && isHidden(info.Name()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || filepath.Ext(info.Name()) != MarkdownExt {
			return nil
		}
		files = append(files, path)
		slog.Debug("Collected file", logfields.File(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, abs, err)
	}
	return files, nil
}

// Subdirectories returns the absolute paths of the visible directories directly
// below root, sorted by name.
func (c *Collector) Subdirectories(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, root, err)
	}
	entries, err := afero.ReadDir(c.fs, abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, abs, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !isHidden(e.Name()) {
			dirs = append(dirs, filepath.Join(abs, e.Name()))
		}
	}
	return dirs, nil
}

// HasSubdirectories reports whether root holds at least one directory, hidden
// ones included. It selects grouped merging over flat merging.
func (c *Collector) HasSubdirectories(root string) (bool, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, root, err)
	}
	entries, err := afero.ReadDir(c.fs, abs)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, abs, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			return true, nil
		}
	}
	return false, nil
}

// Read loads one collected file.
func (c *Collector) Read(path string) (SourceFile, error) {
	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return SourceFile{}, ferrors.WrapError(
			fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, path, err),
			ferrors.CategoryFileSystem, fmt.Sprintf("cannot read %s", path)).
			WithContext("file", path).
			Fatal().
			Build()
	}
	return SourceFile{Path: path, Name: filepath.Base(path), Content: content}, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
