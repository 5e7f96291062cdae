package config

import (
	"fmt"
	"net/url"
	"strings"

	ferrors "git.home.luguber.info/inful/docmerge/internal/foundation/errors"
)

// Validate checks a settings document. Order lists and folder-map keys hold
// basenames, never paths.
func Validate(s *Settings) error {
	return (&settingsValidator{s: s}).validate()
}

type settingsValidator struct {
	s *Settings
}

func (v *settingsValidator) validate() error {
	if err := v.validateOrders(); err != nil {
		return err
	}
	if err := v.validateFolderMap(); err != nil {
		return err
	}
	if err := v.validateReplacements(); err != nil {
		return err
	}
	if err := v.validateFrontMatter(); err != nil {
		return err
	}
	return v.validateSampleCodeBase()
}

func (v *settingsValidator) validateOrders() error {
	lists := []struct {
		field string
		names []string
	}{
		{"folder-order", v.s.FolderOrder},
		{"ignore", v.s.Ignore},
		{"file-order-older-versions", v.s.FileOrderOlderVersions},
		{"ignore-files-older-versions", v.s.IgnoreFilesOlderVersions},
	}
	for _, l := range lists {
		for _, name := range l.names {
			if err := checkBasename(l.field, name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *settingsValidator) validateFolderMap() error {
	for dir, entry := range v.s.FolderMap {
		if err := checkBasename("folder-map", dir); err != nil {
			return err
		}
		for _, name := range entry.FileOrder {
			if err := checkBasename("folder-map."+dir+".file-order", name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *settingsValidator) validateReplacements() error {
	for i, r := range v.s.Replacements {
		if r.From == "" {
			return invalid("replacements", fmt.Sprintf("replacement %d has an empty from", i+1))
		}
	}
	return nil
}

func (v *settingsValidator) validateFrontMatter() error {
	if v.s.FrontMatter == nil {
		return nil
	}
	for _, tab := range v.s.FrontMatter.LanguageTabs {
		if strings.TrimSpace(tab.Key) == "" {
			return invalid("front-matter.language_tabs", "language tab without a key")
		}
	}
	return nil
}

func (v *settingsValidator) validateSampleCodeBase() error {
	if v.s.SampleCodeBase == "" {
		return nil
	}
	u, err := url.Parse(v.s.SampleCodeBase)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("sample-code-base", fmt.Sprintf("sample-code-base %q must be an http(s) URL", v.s.SampleCodeBase))
	}
	return nil
}

func checkBasename(field, name string) error {
	if strings.ContainsAny(name, `/\`) {
		return invalid(field, fmt.Sprintf("%s entry %q must be a basename", field, name))
	}
	return nil
}

func invalid(field, msg string) error {
	return ferrors.ConfigError(msg).WithContext("field", field).Build()
}
