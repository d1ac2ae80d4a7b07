package affect

import (
	"testing"

	"github.com/shillcollin/voicepipe/dialogue"
)

func TestResolveHighConfidencePassesThrough(t *testing.T) {
	resolved := Resolve(dialogue.Result{
		Reply:      "Great job!",
		Mode:       "HYPE_SESSION",
		Confidence: 0.9,
	})

	if resolved.Reply != "Great job!" {
		t.Fatalf("reply modified: %q", resolved.Reply)
	}
	if resolved.Mode != ModeHypeSession {
		t.Fatalf("unexpected mode %q", resolved.Mode)
	}
	if resolved.Prosody.Rate != "+10%" || resolved.Prosody.Pitch != "+2Hz" {
		t.Fatalf("unexpected prosody %+v", resolved.Prosody)
	}
}

func TestResolveLowConfidenceDowngradesMode(t *testing.T) {
	resolved := Resolve(dialogue.Result{
		Reply:      "You got this!",
		Mode:       "HYPE_SESSION",
		Confidence: 0.5,
	})

	if resolved.Mode != ModeChillTalk {
		t.Fatalf("expected neutral downgrade, got %q", resolved.Mode)
	}
	if resolved.Reply != "You got this!" {
		t.Fatalf("reply should survive at confidence 0.5, got %q", resolved.Reply)
	}
}

func TestResolveVeryLowConfidenceOverridesReply(t *testing.T) {
	for _, mode := range []string{"VIBE_CHECK", "GENTLE_CHECK", "CRISIS_SUPPORT", "HYPE_SESSION", "SOMETHING_NEW"} {
		resolved := Resolve(dialogue.Result{
			Reply:      "original reply here",
			Mode:       mode,
			Confidence: 0.3,
		})

		if resolved.Reply != CalmingFallback {
			t.Fatalf("mode %s: expected calming fallback, got %q", mode, resolved.Reply)
		}
		if resolved.Mode != ModeChillTalk {
			t.Fatalf("mode %s: expected neutral mode, got %q", mode, resolved.Mode)
		}
	}
}

func TestResolveGatingIsMonotonic(t *testing.T) {
	// Decreasing confidence must never escalate: once below the downgrade
	// threshold the mode stays neutral, and once below the override
	// threshold the reply stays the fallback.
	confidences := []float64{1.0, 0.7, 0.55, 0.54, 0.41, 0.40, 0.39, 0.1, 0}
	sawDowngrade := false
	sawOverride := false

	for _, c := range confidences {
		resolved := Resolve(dialogue.Result{Reply: "hey", Mode: "CRISIS_SUPPORT", Confidence: c})

		if sawDowngrade && resolved.Mode != ModeChillTalk {
			t.Fatalf("confidence %v: mode escalated back to %q", c, resolved.Mode)
		}
		if sawOverride && resolved.Reply != CalmingFallback {
			t.Fatalf("confidence %v: reply reverted to %q", c, resolved.Reply)
		}
		if resolved.Mode == ModeChillTalk {
			sawDowngrade = true
		}
		if resolved.Reply == CalmingFallback {
			sawOverride = true
		}
	}
}

func TestProsodyMappingIsTotal(t *testing.T) {
	cases := []struct {
		mode  Mode
		rate  string
		pitch string
	}{
		{ModeGentleCheck, "-10%", "-2Hz"},
		{ModeCrisisSupport, "-10%", "-2Hz"},
		{ModeHypeSession, "+10%", "+2Hz"},
		{ModeVibeCheck, "+0%", "+0Hz"},
		{ModeChillTalk, "+0%", "+0Hz"},
		{Mode("NOT_A_REAL_MODE"), "+0%", "+0Hz"},
		{Mode(""), "+0%", "+0Hz"},
	}

	for _, tc := range cases {
		p := ProsodyFor(tc.mode)
		if p.Rate != tc.rate || p.Pitch != tc.pitch {
			t.Fatalf("mode %q: got %+v, want rate=%s pitch=%s", tc.mode, p, tc.rate, tc.pitch)
		}
	}
}
