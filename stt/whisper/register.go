package whisper

import (
	"os"

	"github.com/shillcollin/voicepipe/stt"
)

func init() {
	stt.Register("whisper", &Factory{})
}

// Factory creates whisper STT provider instances.
type Factory struct{}

// New implements stt.ProviderFactory.
func (f *Factory) New(config stt.ProviderConfig) (stt.Provider, error) {
	var opts []Option

	if config.BaseURL != "" {
		opts = append(opts, WithBaseURL(config.BaseURL))
	}
	if config.Model != "" {
		opts = append(opts, WithModel(config.Model))
	}
	if config.Device != "" {
		opts = append(opts, WithDevice(config.Device))
	}
	if config.HTTPClient != nil {
		opts = append(opts, WithHTTPClient(config.HTTPClient))
	}

	return New(opts...), nil
}

// DefaultConfig implements stt.ProviderFactory.
func (f *Factory) DefaultConfig() stt.ProviderConfig {
	return stt.ProviderConfig{
		BaseURL: os.Getenv("WHISPER_BASE_URL"),
		Model:   os.Getenv("WHISPER_MODEL"),
		Device:  os.Getenv("VOICEPIPE_DEVICE"),
	}
}
