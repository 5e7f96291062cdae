package emit

import (
	"git.home.luguber.info/inful/docmerge/internal/config"
	"git.home.luguber.info/inful/docmerge/internal/frontmatter"
)

// DefaultFrontMatter is the header of the API reference page.
func DefaultFrontMatter() config.FrontMatter {
	search := true
	return config.FrontMatter{
		Title:  "API Reference",
		Search: &search,
		LanguageTabs: []config.LanguageTab{
			{Key: "ruby", Label: "Ruby"},
			{Key: "python", Label: "Python"},
			{Key: "java", Label: "Java"},
			{Key: "javascript", Label: "JavaScript"},
			{Key: "php", Label: "PHP"},
			{Key: "csharp", Label: "C#"},
		},
		TocFooters: []string{
			`<a href="https://github.com/appium/ruby_lib">Ruby bindings</a>`,
			`<a href="https://github.com/appium/python-client">Python bindings</a>`,
			`<a href="https://github.com/appium/java-client">Java bindings</a>`,
			`<a href="https://github.com/admc/wd">JavaScript bindings</a>`,
			`<a href="https://github.com/appium/php-client">PHP bindings</a>`,
			`<a href="https://github.com/appium/appium-dotnet-driver">C# bindings</a>`,
			`<a href="http://appium.io/">Appium home page</a>`,
		},
	}
}

// ResolveFrontMatter overlays the set fields of override on the defaults.
func ResolveFrontMatter(override *config.FrontMatter) config.FrontMatter {
	fm := DefaultFrontMatter()
	if override == nil {
		return fm
	}
	if override.Title != "" {
		fm.Title = override.Title
	}
	if override.Search != nil {
		fm.Search = override.Search
	}
	if len(override.LanguageTabs) > 0 {
		fm.LanguageTabs = override.LanguageTabs
	}
	if len(override.TocFooters) > 0 {
		fm.TocFooters = override.TocFooters
	}
	return fm
}

// Header renders front matter as YAML without delimiters: title and search,
// then language_tabs, then toc_footers, separated by blank lines.
func Header(fm config.FrontMatter) ([]byte, error) {
	head := frontmatter.Section{{Key: "title", Value: fm.Title}}
	if fm.Search != nil {
		head = append(head, frontmatter.Field{Key: "search", Value: *fm.Search})
	}

	var tabs frontmatter.Section
	if len(fm.LanguageTabs) > 0 {
		list := make([]any, len(fm.LanguageTabs))
		for i, t := range fm.LanguageTabs {
			list[i] = map[string]string{t.Key: t.Label}
		}
		tabs = frontmatter.Section{{Key: "language_tabs", Value: list}}
	}

	var footers frontmatter.Section
	if len(fm.TocFooters) > 0 {
		footers = frontmatter.Section{{Key: "toc_footers", Value: fm.TocFooters}}
	}

	return frontmatter.Serialize(head, tabs, footers)
}
