// Package merge concatenates the ordered files of a documentation tree into
// one markdown body with per-file anchors and in-page links.
package merge

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/docmerge/internal/config"
	"git.home.luguber.info/inful/docmerge/internal/docs"
	"git.home.luguber.info/inful/docmerge/internal/foundation/normalization"
	"git.home.luguber.info/inful/docmerge/internal/links"
	"git.home.luguber.info/inful/docmerge/internal/logfields"
	"git.home.luguber.info/inful/docmerge/internal/order"
)

// Mode selects how a tree is merged.
type Mode string

const (
	// ModeAuto picks grouped when the root has subdirectories, flat otherwise.
	ModeAuto    Mode = "auto"
	ModeGrouped Mode = "grouped"
	ModeFlat    Mode = "flat"
)

var modes = normalization.New("mode", map[string]Mode{
	"auto":    ModeAuto,
	"grouped": ModeGrouped,
	"flat":    ModeFlat,
	"legacy":  ModeFlat,
}, ModeAuto)

// ParseMode maps a flag value onto a Mode.
func ParseMode(raw string) (Mode, error) {
	return modes.Parse(raw)
}

// Merger merges one documentation root per call. It holds no state between calls.
type Merger struct {
	collector *docs.Collector
	settings  *config.Settings
	rewriter  *links.Rewriter
	mode      Mode
}

// Option configures a Merger.
type Option func(*Merger)

// WithMode forces a merge mode instead of detecting it.
func WithMode(mode Mode) Option {
	return func(m *Merger) {
		if mode != "" {
			m.mode = mode
		}
	}
}

// New creates a Merger reading through collector and ordering by settings.
func New(collector *docs.Collector, settings *config.Settings, opts ...Option) *Merger {
	m := &Merger{
		collector: collector,
		settings:  settings,
		rewriter:  links.New(settings.SampleCodeBase),
		mode:      ModeAuto,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DetectMode reports the mode Merge would use for root.
func (m *Merger) DetectMode(root string) (Mode, error) {
	if m.mode != ModeAuto {
		return m.mode, nil
	}
	grouped, err := m.collector.HasSubdirectories(root)
	if err != nil {
		return "", err
	}
	if grouped {
		return ModeGrouped, nil
	}
	return ModeFlat, nil
}

// Merge dispatches to MergeGrouped or MergeFlat.
func (m *Merger) Merge(ctx context.Context, root string) (*Document, error) {
	mode, err := m.DetectMode(root)
	if err != nil {
		return nil, err
	}
	slog.Debug("Merging documentation", logfields.Path(root), logfields.Mode(string(mode)))
	if mode == ModeGrouped {
		return m.MergeGrouped(ctx, root)
	}
	return m.MergeFlat(ctx, root)
}

// MergeFlat merges every markdown file below root in file-order-older-versions
// order, anchoring the first level-1 heading of each file.
func (m *Merger) MergeFlat(ctx context.Context, root string) (*Document, error) {
	files, err := m.collector.Glob(root)
	if err != nil {
		return nil, err
	}
	doc := &Document{Mode: ModeFlat}
	for _, path := range m.resolve(m.settings.FlatSpec(), files) {
		if err := m.mergeFile(ctx, doc, path, "", FlatLevel); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// MergeGrouped merges each subdirectory of root as a group headed by its
// label, anchoring the first level-2 heading of each file. Markdown files
// directly in root belong to no group and are skipped.
func (m *Merger) MergeGrouped(ctx context.Context, root string) (*Document, error) {
	dirs, err := m.collector.Subdirectories(root)
	if err != nil {
		return nil, err
	}
	if err := m.warnRootFiles(root); err != nil {
		return nil, err
	}

	doc := &Document{Mode: ModeGrouped}
	for _, dir := range m.resolve(m.settings.GroupSpec(), dirs) {
		files, err := m.collector.Glob(dir)
		if err != nil {
			return nil, err
		}
		files = m.resolve(m.settings.FolderSpec(dir), files)

		// Every group gets its heading, even one without markdown files.
		label := m.settings.Label(dir)
		doc.appendGroup(dir, label)
		if len(files) == 0 {
			slog.Debug("Empty group", logfields.Group(filepath.Base(dir)), logfields.Label(label))
		}
		for _, path := range files {
			if err := m.mergeFile(ctx, doc, path, label, GroupedLevel); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func (m *Merger) mergeFile(ctx context.Context, doc *Document, path, group string, level int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := m.collector.Read(path)
	if err != nil {
		return err
	}

	text, anchored := InjectAnchor(string(src.Content), src.Name, level)
	if !anchored {
		slog.Debug("No heading to anchor", logfields.File(path), slog.Int("level", level))
	}

	text, stats, err := m.rewriter.Rewrite(text, path)
	if err != nil {
		return err
	}
	doc.appendFile(File{Path: path, Name: src.Name, Group: group, Anchored: anchored}, text, stats)
	return nil
}

func (m *Merger) resolve(spec order.Spec, items []string) []string {
	res := order.NewResolver(spec).ResolveDetailed(items)
	for _, lost := range res.Overwritten {
		slog.Warn("Duplicate basename replaced by a later item", logfields.Path(lost))
	}
	for _, ignored := range res.Ignored {
		slog.Debug("Ignored", logfields.Path(ignored))
	}
	return res.Items
}

func (m *Merger) warnRootFiles(root string) error {
	files, err := m.collector.Glob(root)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	for _, f := range files {
		if filepath.Dir(f) == abs {
			slog.Warn("Skipping file outside any group", logfields.File(f))
		}
	}
	return nil
}

// Document is a merged body plus what went into it.
type Document struct {
	Mode   Mode
	Groups []Group
	Files  []File
	Links  links.Stats

	body strings.Builder
}

// Group is one emitted group heading.
type Group struct {
	Dir   string
	Label string
}

// File is one merged source file.
type File struct {
	Path     string
	Name     string
	Group    string // label, empty in flat mode
	Anchored bool
}

// String returns the merged body.
func (d *Document) String() string { return d.body.String() }

// Len returns the body length in bytes.
func (d *Document) Len() int { return d.body.Len() }

// Unanchored returns the files merged without an anchor.
func (d *Document) Unanchored() []File {
	var out []File
	for _, f := range d.Files {
		if !f.Anchored {
			out = append(out, f)
		}
	}
	return out
}

func (d *Document) appendGroup(dir, label string) {
	d.Groups = append(d.Groups, Group{Dir: dir, Label: label})
	d.body.WriteString("\n\n# " + label + "\n\n")
}

func (d *Document) appendFile(f File, text string, stats links.Stats) {
	d.Files = append(d.Files, f)
	d.Links.Links += stats.Links
	d.Links.Anchored += stats.Anchored
	d.Links.SampleCode += stats.SampleCode
	d.body.WriteString("\n\n" + text + "\n\n")
}
