package highlight

import (
	"strings"
	"unicode"
)

// Marker pair injected around a located evidence span. Chosen to be
// vanishingly unlikely in clinical text; the renderer splits on them.
const (
	MarkStart = "⟪" // ⟪
	MarkEnd   = "⟫" // ⟫
)

// NotFoundHeader labels the fallback block appended when a span cannot be
// located in its source text.
const NotFoundHeader = "--- extracted span not found verbatim ---"

// normChar is one rune of the whitespace-collapsed view of a text, with the
// byte range it covers in the original.
type normChar struct {
	r          rune
	start, end int
}

// normalize collapses whitespace runs to single spaces and trims the ends,
// keeping for every surviving rune the original byte range it stands for.
// A collapsed space covers its whole whitespace run, so a match that spans
// it maps back to the original spacing intact.
func normalize(text string) []normChar {
	var out []normChar
	inSpace := false
	spaceStart := 0

	for i, r := range text {
		if unicode.IsSpace(r) {
			if !inSpace {
				inSpace = true
				spaceStart = i
			}
			continue
		}
		if inSpace {
			inSpace = false
			if len(out) > 0 {
				out = append(out, normChar{r: ' ', start: spaceStart, end: i})
			}
		}
		out = append(out, normChar{r: r, start: i, end: i + len(string(r))})
	}
	return out
}

// foldedEqual compares two runes case-insensitively.
func foldedEqual(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// indexFolded finds the first occurrence of needle in haystack under
// case-insensitive rune comparison, returning the haystack offset or -1.
func indexFolded(haystack, needle []normChar) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if !foldedEqual(haystack[i+j].r, needle[j].r) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Apply locates span within text under whitespace/case normalization and
// returns text with the occurrence wrapped in MarkStart/MarkEnd. The wrapped
// substring keeps the original spacing and case. When the span cannot be
// located, the original text is returned with a delimited fallback block
// carrying the literal span. Empty text or span returns text unchanged.
func Apply(text, span string) string {
	if text == "" || span == "" {
		return text
	}

	normText := normalize(text)
	normSpan := normalize(span)
	if len(normSpan) == 0 {
		return text
	}

	i := indexFolded(normText, normSpan)
	if i < 0 {
		return notFound(text, span)
	}

	start := normText[i].start
	end := normText[i+len(normSpan)-1].end
	return text[:start] + MarkStart + text[start:end] + MarkEnd + text[end:]
}

func notFound(text, span string) string {
	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(NotFoundHeader)
	b.WriteString("\n")
	b.WriteString(span)
	b.WriteString("\n---")
	return b.String()
}
