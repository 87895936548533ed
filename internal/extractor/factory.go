package extractor

import (
	"fmt"

	"github.com/pil1/IngridProduction-sub001/internal/config"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

// ProviderFactory is a function that creates a DocumentExtractor from a provider config.
type ProviderFactory func(cfg *config.ExtractorProviderConfig) (port.DocumentExtractor, error)

// registry of extraction provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extraction provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a DocumentExtractor from a provider config using the registered factory.
func NewExtractor(cfg *config.ExtractorProviderConfig) (port.DocumentExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extraction provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
