// Package postprocess applies the global text substitutions that run over a
// merged document before it is written.
package postprocess

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/docmerge/internal/config"
)

// Env describes the merge a pipeline runs for.
type Env struct {
	Grouped bool
}

// Step is one substitution over the whole document.
type Step interface {
	Name() string
	Priority() int // lower runs first
	Apply(text string, env Env) string
}

// DefaultReplacements are dead links that always get rewritten.
var DefaultReplacements = []config.Replacement{
	{
		From: "https://code.google.com/p/selenium/wiki/JsonWireProtocol",
		To:   "https://github.com/SeleniumHQ/selenium/wiki/JsonWireProtocol",
	},
	{
		From: "https://github.com/appium/sample-code",
		To:   "https://github.com/appium/appium/tree/master/sample-code",
	},
}

// Pipeline runs steps in priority order.
type Pipeline struct {
	steps []Step
}

// New builds the standard pipeline. extra replacements run after the defaults.
func New(extra []config.Replacement) *Pipeline {
	replacements := make([]config.Replacement, 0, len(DefaultReplacements)+len(extra))
	replacements = append(replacements, DefaultReplacements...)
	replacements = append(replacements, extra...)

	return NewPipeline(
		expandTable{},
		docsPrefix{},
		replace{pairs: replacements},
		centerCode{},
	)
}

// NewPipeline orders steps by priority, then name.
func NewPipeline(steps ...Step) *Pipeline {
	sorted := append([]Step(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority() == sorted[j].Priority() {
			return sorted[i].Name() < sorted[j].Name()
		}
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Pipeline{steps: sorted}
}

// Names lists the steps in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return names
}

// Apply runs every step over text.
func (p *Pipeline) Apply(text string, env Env) string {
	for _, s := range p.steps {
		text = s.Apply(text, env)
	}
	return text
}

// ExpandTableTag is the placeholder replaced by expandTable.
const ExpandTableTag = "<expand_table>"

type expandTable struct{}

func (expandTable) Name() string  { return "expand_table" }
func (expandTable) Priority() int { return 10 }
func (expandTable) Apply(text string, _ Env) string {
	return strings.ReplaceAll(text, ExpandTableTag, `<p class="expand_table"></p>`)
}

type replace struct {
	pairs []config.Replacement
}

func (replace) Name() string  { return "replacements" }
func (replace) Priority() int { return 30 }
func (r replace) Apply(text string, _ Env) string {
	for _, p := range r.pairs {
		text = strings.ReplaceAll(text, p.From, p.To)
	}
	return text
}
