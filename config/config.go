// Package config loads pipeline configuration from an optional YAML file
// with environment-variable overrides.
//
// Precedence: defaults, then the YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// TmpDir is the transient audio artifact directory, shared across
	// sessions and served at /audio/.
	TmpDir string `yaml:"tmp_dir"`

	// Workers bounds the pool running transcode and transcription work.
	Workers int `yaml:"workers"`

	// STT configures the speech-to-text provider.
	STT ProviderConfig `yaml:"stt"`

	// TTS configures the speech-synthesis provider.
	TTS ProviderConfig `yaml:"tts"`

	// Dialogue configures the dialogue engine endpoint.
	Dialogue ProviderConfig `yaml:"dialogue"`

	// Voice is the synthesis voice identity.
	Voice string `yaml:"voice"`

	// Device selects inference placement for the STT engine (cpu, cuda).
	Device string `yaml:"device"`
}

// ProviderConfig selects and points at one external engine.
type ProviderConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Addr:    ":8000",
		TmpDir:  "tmp_audio",
		Workers: 4,
		STT:     ProviderConfig{Provider: "whisper", Model: "small"},
		TTS:     ProviderConfig{Provider: "edge"},
		Dialogue: ProviderConfig{
			Provider: "tuesday",
		},
		Voice:  "en-US-JennyNeural",
		Device: "cpu",
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("config: workers must be >= 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Addr, "VOICEPIPE_ADDR")
	setString(&cfg.TmpDir, "VOICEPIPE_TMP_DIR")
	setInt(&cfg.Workers, "VOICEPIPE_WORKERS")
	setString(&cfg.STT.Provider, "VOICEPIPE_STT_PROVIDER")
	setString(&cfg.STT.BaseURL, "WHISPER_BASE_URL")
	setString(&cfg.STT.Model, "WHISPER_MODEL")
	setString(&cfg.TTS.Provider, "VOICEPIPE_TTS_PROVIDER")
	setString(&cfg.TTS.BaseURL, "EDGE_TTS_BASE_URL")
	setString(&cfg.Dialogue.BaseURL, "TUESDAY_BASE_URL")
	setString(&cfg.Voice, "VOICEPIPE_VOICE")
	setString(&cfg.Device, "VOICEPIPE_DEVICE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
