package edge

import (
	"os"

	"github.com/shillcollin/voicepipe/tts"
)

func init() {
	tts.Register("edge", &Factory{})
}

// Factory creates edge TTS provider instances.
type Factory struct{}

// New implements tts.ProviderFactory.
func (f *Factory) New(config tts.ProviderConfig) (tts.Provider, error) {
	var opts []Option

	if config.BaseURL != "" {
		opts = append(opts, WithBaseURL(config.BaseURL))
	}
	if config.Voice != "" {
		opts = append(opts, WithVoice(config.Voice))
	}
	if config.HTTPClient != nil {
		opts = append(opts, WithHTTPClient(config.HTTPClient))
	}

	return New(opts...), nil
}

// DefaultConfig implements tts.ProviderFactory.
func (f *Factory) DefaultConfig() tts.ProviderConfig {
	return tts.ProviderConfig{
		BaseURL: os.Getenv("EDGE_TTS_BASE_URL"),
		Voice:   os.Getenv("VOICEPIPE_VOICE"),
	}
}
