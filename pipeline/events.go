// Package pipeline orchestrates one voice turn: normalize, transcribe,
// resolve the reply, then stream synthesized audio chunks to the session's
// delivery channel.
package pipeline

// Event names pushed over a session's delivery channel.
const (
	EventAudioChunk = "audio_chunk"
	EventAudioDone  = "audio_done"
)

// Event is one server-to-client push. Chunk events name an artifact that is
// fetchable from the static audio mount; the done event ends the stream.
type Event struct {
	Event    string `json:"event"`
	Filename string `json:"filename,omitempty"`
}
