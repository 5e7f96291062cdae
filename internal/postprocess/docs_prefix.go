package postprocess

import "regexp"

// docsTreeLink matches a link target opener into the published docs tree plus
// any directory segments, e.g. `](/docs/en/writing-running-appium/`.
var docsTreeLink = regexp.MustCompile(`\]\(/docs/en/(?:[^()\s/]*/)*`)

// docsPrefix collapses absolute docs-tree links to in-page anchors. Only
// grouped documents carry such links.
type docsPrefix struct{}

func (docsPrefix) Name() string  { return "docs_prefix" }
func (docsPrefix) Priority() int { return 20 }
func (docsPrefix) Apply(text string, env Env) string {
	if !env.Grouped {
		return text
	}
	return docsTreeLink.ReplaceAllLiteralString(text, "](#")
}
