package config

import "strings"

// DefaultApplier applies defaults for one settings domain.
type DefaultApplier interface {
	ApplyDefaults(s *Settings) error
	Domain() string
}

// OrderDefaultApplier trims order and ignore entries and drops blank ones.
type OrderDefaultApplier struct{}

func (OrderDefaultApplier) Domain() string { return "order" }

func (OrderDefaultApplier) ApplyDefaults(s *Settings) error {
	s.FolderOrder = cleanList(s.FolderOrder)
	s.Ignore = cleanList(s.Ignore)
	s.FileOrderOlderVersions = cleanList(s.FileOrderOlderVersions)
	s.IgnoreFilesOlderVersions = cleanList(s.IgnoreFilesOlderVersions)
	if s.FolderMap == nil {
		s.FolderMap = map[string]FolderEntry{}
	}
	for name, entry := range s.FolderMap {
		entry.Label = strings.TrimSpace(entry.Label)
		entry.FileOrder = cleanList(entry.FileOrder)
		s.FolderMap[name] = entry
	}
	return nil
}

// OutputDefaultApplier normalizes output-related settings.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(s *Settings) error {
	s.SampleCodeBase = strings.TrimSuffix(strings.TrimSpace(s.SampleCodeBase), "/")
	return nil
}

var defaultAppliers = []DefaultApplier{OrderDefaultApplier{}, OutputDefaultApplier{}}

func applyDefaults(s *Settings) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(s); err != nil {
			return err
		}
	}
	return nil
}

func cleanList(in []string) []string {
	out := in[:0:0]
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
