package postprocess

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var centerFence = regexp.MustCompile("^([ \t]*)```center\\w*[ \t]*$")

// centerCode turns ```center fenced blocks into a centered inline code
// paragraph. The closing fence must sit at the opening fence's indentation;
// an unclosed fence is left as is.
type centerCode struct{}

func (centerCode) Name() string  { return "center_code" }
func (centerCode) Priority() int { return 40 }
func (centerCode) Apply(text string, _ Env) string {
	if !strings.Contains(text, "```center") {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		m := centerFence.FindStringSubmatch(lines[i])
		if m == nil {
			out = append(out, lines[i])
			continue
		}
		indent := m[1]
		end := closingFence(lines, i+1, indent)
		if end < 0 {
			out = append(out, lines[i])
			continue
		}
		body := strings.Join(lines[i+1:end], "\n")
		out = append(out, indent+`<p class="centercode"><code>`+html.EscapeString(body)+`</code></p>`)
		i = end
	}
	return strings.Join(out, "\n")
}

func closingFence(lines []string, from int, indent string) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimRight(lines[j], " \t\r") == indent+"```" {
			return j
		}
	}
	return -1
}
