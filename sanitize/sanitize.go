// Package sanitize transforms dialogue-engine replies into speech-ready text.
//
// The transform is a fixed-order pipeline: strip non-speakable glyphs, expand
// informal abbreviations, then (for casual modes, with low probability)
// prepend a conversational filler. Later steps operate on already-cleaned
// text, so the order matters.
package sanitize

import (
	"math/rand"
	"regexp"
	"strings"

	"github.com/shillcollin/voicepipe/affect"
)

// fillerProbability is the chance a filler phrase is prepended for the
// casual modes.
const fillerProbability = 0.3

// fillers is the fixed set a filler is drawn from, uniformly.
var fillers = []string{"You know, ", "Honestly, ", "I feel like ", "Hmm, "}

// fillerModes are the modes that may receive a filler.
var fillerModes = map[affect.Mode]bool{
	affect.ModeVibeCheck:   true,
	affect.ModeGentleCheck: true,
}

// abbreviations is the static expansion table, matched case-insensitively on
// word boundaries.
var abbreviations = map[string]string{
	"ngl":  "not gonna lie",
	"tbh":  "to be honest",
	"idk":  "I don't know",
	"imo":  "in my opinion",
	"btw":  "by the way",
	"rn":   "right now",
	"fr":   "for real",
	"omg":  "oh my god",
	"ikr":  "I know right",
	"nvm":  "never mind",
	"smh":  "shaking my head",
	"brb":  "be right back",
	"lmk":  "let me know",
	"wyd":  "what are you doing",
	"hbu":  "how about you",
	"rly":  "really",
	"bc":   "because",
	"u":    "you",
	"ur":   "your",
	"pls":  "please",
	"thx":  "thanks",
	"ttyl": "talk to you later",
}

var abbrevPattern = buildAbbrevPattern()

func buildAbbrevPattern() *regexp.Regexp {
	alts := make([]string, 0, len(abbreviations))
	for k := range abbreviations {
		alts = append(alts, regexp.QuoteMeta(k))
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(alts, "|") + `)\b`)
}

// Sanitizer produces speech-ready text. The randomness source drives only the
// filler-injection step; pass a seeded source in tests, or nil to disable
// fillers entirely.
type Sanitizer struct {
	rng *rand.Rand
}

// New creates a Sanitizer. rng may be nil, which disables filler injection.
func New(rng *rand.Rand) *Sanitizer {
	return &Sanitizer{rng: rng}
}

// Sanitize runs the full pipeline for the given mode.
func (s *Sanitizer) Sanitize(text string, mode affect.Mode) string {
	out := ExpandAbbreviations(StripUnspeakable(text))

	if s.rng != nil && fillerModes[mode] && s.rng.Float64() < fillerProbability {
		out = fillers[s.rng.Intn(len(fillers))] + out
	}
	return out
}

// StripUnspeakable removes characters outside the extended-ASCII range,
// dropping emoji and most symbolic glyphs. Idempotent.
func StripUnspeakable(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 256 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ExpandAbbreviations expands informal abbreviations to full words,
// case-insensitively on word boundaries. Idempotent: no expansion is itself
// an abbreviation.
func ExpandAbbreviations(text string) string {
	return abbrevPattern.ReplaceAllStringFunc(text, func(match string) string {
		if full, ok := abbreviations[strings.ToLower(match)]; ok {
			return full
		}
		return match
	})
}
