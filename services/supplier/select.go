package supplier

import "roadstay/config"

// FromConfig picks the configured supplier once at startup. Anything other
// than a fully credentialed "amadeus" falls back to the mock inventory.
func FromConfig() Adapter {
	if config.AppConfig.Supplier == "amadeus" && config.AppConfig.AmadeusClientID != "" {
		return NewAmadeusAdapter()
	}
	return NewMockAdapter()
}
