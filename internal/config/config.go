// Package config loads the docmerge settings document: ordering lists for the
// grouped and flat merge modes plus optional output tweaks.
package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docmerge/internal/order"
)

// DefaultPath is the settings file used when --settings is not given.
const DefaultPath = "docmerge.yaml"

// Settings is the settings document.
type Settings struct {
	// Grouped mode
	FolderOrder []string               `yaml:"folder-order,omitempty"`
	FolderMap   map[string]FolderEntry `yaml:"folder-map,omitempty"`
	Ignore      []string               `yaml:"ignore,omitempty"`

	// Flat mode
	FileOrderOlderVersions   []string `yaml:"file-order-older-versions,omitempty"`
	IgnoreFilesOlderVersions []string `yaml:"ignore-files-older-versions,omitempty"`

	FrontMatter    *FrontMatter  `yaml:"front-matter,omitempty"`
	Replacements   []Replacement `yaml:"replacements,omitempty"`
	SampleCodeBase string        `yaml:"sample-code-base,omitempty"`

	path string
}

// FolderEntry configures one group directory.
type FolderEntry struct {
	Label     string   `yaml:"label,omitempty"`
	FileOrder []string `yaml:"file-order,omitempty"`
}

// Replacement is an exact-string substitution applied to the merged document.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// FrontMatter overrides fields of the generated document header. Unset
// fields keep their defaults.
type FrontMatter struct {
	Title        string        `yaml:"title,omitempty"`
	Search       *bool         `yaml:"search,omitempty"`
	LanguageTabs []LanguageTab `yaml:"language_tabs,omitempty"`
	TocFooters   []string      `yaml:"toc_footers,omitempty"`
}

// LanguageTab is one `- key: Label` entry of language_tabs.
type LanguageTab struct {
	Key   string
	Label string
}

// UnmarshalYAML reads the single-pair mapping form.
func (t *LanguageTab) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.Key, t.Label = value.Value, value.Value
		return nil
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: language tab must have exactly one key", value.Line)
		}
		t.Key, t.Label = value.Content[0].Value, value.Content[1].Value
		return nil
	default:
		return fmt.Errorf("line %d: unsupported language tab", value.Line)
	}
}

// MarshalYAML writes the single-pair mapping form.
func (t LanguageTab) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: t.Key},
			{Kind: yaml.ScalarNode, Value: t.Label},
		},
	}, nil
}

// Path returns the file the settings were loaded from, empty for built-in defaults.
func (s *Settings) Path() string { return s.path }

// Label returns the group heading for a directory, falling back to its name.
func (s *Settings) Label(dir string) string {
	name := filepath.Base(dir)
	if entry, ok := s.FolderMap[name]; ok && entry.Label != "" {
		return entry.Label
	}
	return name
}

// GroupSpec orders the group directories.
func (s *Settings) GroupSpec() order.Spec {
	return order.Spec{Order: s.FolderOrder, Ignore: s.Ignore}
}

// FolderSpec orders the files of one group directory.
func (s *Settings) FolderSpec(dir string) order.Spec {
	return order.Spec{Order: s.FolderMap[filepath.Base(dir)].FileOrder, Ignore: s.Ignore}
}

// FlatSpec orders the files of a tree without subdirectories.
func (s *Settings) FlatSpec() order.Spec {
	return order.Spec{Order: s.FileOrderOlderVersions, Ignore: s.IgnoreFilesOlderVersions}
}
