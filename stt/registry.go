package stt

import (
	"fmt"
	"net/http"
	"sync"
)

// ProviderConfig holds configuration for initializing an STT provider.
type ProviderConfig struct {
	BaseURL    string
	Model      string
	Device     string
	HTTPClient *http.Client
	Custom     map[string]any
}

// ProviderFactory creates STT provider instances from configuration.
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

// Register registers an STT provider factory. This is typically called from
// a provider's init() function to enable self-registration on import.
//
// Panics if a provider with the same name is already registered.
func Register(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("stt: provider %q already registered", name))
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
		return nil, fmt.Errorf("stt: provider %q not registered (registered: %v)", name, Registered())
	}

	defaults := factory.DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Device == "" {
		config.Device = defaults.Device
	}
	if config.HTTPClient == nil {
		config.HTTPClient = defaults.HTTPClient
	}
	return factory.New(config)
}

// Registered returns the names of all registered STT providers.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
