package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment is one run of marker-free text produced by Split.
type Segment struct {
	Text       string
	Emphasized bool
}

// Split breaks a marker-delimited string into alternating plain and
// emphasized segments. Unbalanced or nested markers degrade to plain text;
// splitting never fails.
func Split(s string) []Segment {
	var segs []Segment
	rest := s

	for rest != "" {
		start := strings.Index(rest, MarkStart)
		if start < 0 {
			segs = append(segs, Segment{Text: rest})
			break
		}

		end := strings.Index(rest[start+len(MarkStart):], MarkEnd)
		if end < 0 {
			// Opening marker with no close: keep everything as plain text,
			// markers stripped.
			plain := strings.ReplaceAll(rest, MarkStart, "")
			segs = append(segs, Segment{Text: plain})
			break
		}

		if start > 0 {
			segs = append(segs, Segment{Text: rest[:start]})
		}
		inner := rest[start+len(MarkStart) : start+len(MarkStart)+end]
		segs = append(segs, Segment{Text: inner, Emphasized: true})
		rest = rest[start+len(MarkStart)+end+len(MarkEnd):]
	}

	return segs
}

// Evidence highlight style - amber on a dim background so the span stands
// out inside long note text
var emphasisStyle = lipgloss.NewStyle().
	Bold(true).
	Background(lipgloss.Color("#333333")).
	Foreground(lipgloss.Color("#FFB000"))

// Render produces terminal output for a marker-delimited string, styling
// emphasized segments and passing plain text through.
func Render(s string) string {
	var b strings.Builder
	for _, seg := range Split(s) {
		if seg.Emphasized {
			b.WriteString(emphasisStyle.Render(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
