package tts

import (
	"fmt"
	"net/http"
	"sync"
)

// ProviderConfig holds configuration for initializing a TTS provider.
type ProviderConfig struct {
	BaseURL    string
	Voice      string
	HTTPClient *http.Client
	Custom     map[string]any
}

// ProviderFactory creates TTS provider instances from configuration.
type ProviderFactory interface {
	// New creates a new provider instance with the given configuration.
	New(config ProviderConfig) (Provider, error)

	// DefaultConfig returns default configuration, typically from
	// environment variables.
	DefaultConfig() ProviderConfig
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ProviderFactory)
)

// Register registers a TTS provider factory. This is typically called from
// a provider's init() function to enable self-registration on import.
//
// Panics if a provider with the same name is already registered.
func Register(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("tts: provider %q already registered", name))
	}
	registry[name] = factory
}

// NewProvider builds a registered provider by name, merging the given
// config over the factory's defaults.
func NewProvider(name string, config ProviderConfig) (Provider, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("tts: provider %q not registered (registered: %v)", name, Registered())
	}

	defaults := factory.DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Voice == "" {
		config.Voice = defaults.Voice
	}
	if config.HTTPClient == nil {
		config.HTTPClient = defaults.HTTPClient
	}
	return factory.New(config)
}

// Registered returns the names of all registered TTS providers.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
