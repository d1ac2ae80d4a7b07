package affect

import "github.com/shillcollin/voicepipe/dialogue"

// Confidence thresholds for mode gating.
const (
	// DowngradeThreshold is the confidence below which the reported mode is
	// replaced with the neutral mode.
	DowngradeThreshold = 0.55

	// OverrideThreshold is the confidence below which the reply text itself
	// is replaced with CalmingFallback.
	OverrideThreshold = 0.40
)

// CalmingFallback is the fixed reply used when the dialogue engine's
// confidence is too low to trust its reply at all.
const CalmingFallback = "I'm here with you. Let's take this one step at a time."

// Resolved is the final reply policy for one utterance: the text to speak,
// the mode after confidence gating, and the prosody to synthesize with.
type Resolved struct {
	Reply   string
	Mode    Mode
	Prosody Prosody
}

// Resolve applies confidence gating to a dialogue result and maps the final
// mode to prosody. It is deterministic: the same result always yields the
// same Resolved.
func Resolve(result dialogue.Result) Resolved {
	mode := Mode(result.Mode)
	reply := result.Reply

	if result.Confidence < DowngradeThreshold {
		mode = ModeChillTalk
	}
	if result.Confidence < OverrideThreshold {
		reply = CalmingFallback
	}

	return Resolved{
		Reply:   reply,
		Mode:    mode,
		Prosody: ProsodyFor(mode),
	}
}
