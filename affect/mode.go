// Package affect maps dialogue-engine affect labels to reply policy and
// synthesis prosody.
package affect

// Mode is a discrete conversational-affect label produced by the dialogue
// engine. It drives prosody selection and low-confidence fallback policy.
type Mode string

const (
	// ModeVibeCheck is light, casual conversation.
	ModeVibeCheck Mode = "VIBE_CHECK"

	// ModeGentleCheck is a soft check-in on the user's wellbeing.
	ModeGentleCheck Mode = "GENTLE_CHECK"

	// ModeCrisisSupport is active support for a user in distress.
	ModeCrisisSupport Mode = "CRISIS_SUPPORT"

	// ModeHypeSession is high-energy encouragement.
	ModeHypeSession Mode = "HYPE_SESSION"

	// ModeChillTalk is the neutral mode. Low-confidence classifications are
	// downgraded to it.
	ModeChillTalk Mode = "CHILL_TALK"
)

// String returns the wire label for the mode.
func (m Mode) String() string { return string(m) }

// Prosody is the (rate, pitch) delta pair applied during synthesis, in the
// "+10%" / "-2Hz" form the synthesis engine accepts.
type Prosody struct {
	Rate  string
	Pitch string
}

// ProsodyFor returns the prosody for a mode. The mapping is total: any mode
// not explicitly listed, including labels this package does not know about,
// resolves to the neutral row.
func ProsodyFor(mode Mode) Prosody {
	switch mode {
	case ModeGentleCheck, ModeCrisisSupport:
		return Prosody{Rate: "-10%", Pitch: "-2Hz"}
	case ModeHypeSession:
		return Prosody{Rate: "+10%", Pitch: "+2Hz"}
	default:
		return Prosody{Rate: "+0%", Pitch: "+0Hz"}
	}
}
