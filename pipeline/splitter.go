package pipeline

import "strings"

// minUnitLen is the shortest trimmed fragment treated as a speakable
// sentence. Shorter fragments are non-speakable noise ("Ok.", stray
// punctuation) and are dropped.
const minUnitLen = 7

// SplitSentences splits text into sentence-like units on terminal
// punctuation, preserving source order. Runs of terminal punctuation stay
// attached to their sentence.
func SplitSentences(text string) []string {
	var units []string
	var b strings.Builder

	flush := func() {
		unit := strings.TrimSpace(b.String())
		b.Reset()
		if len(unit) >= minUnitLen {
			units = append(units, unit)
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if !isTerminal(r) {
			continue
		}
		// Boundary: end of text, or punctuation followed by whitespace.
		if i+1 == len(runes) || isSpace(runes[i+1]) {
			flush()
		}
	}
	flush()
	return units
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
