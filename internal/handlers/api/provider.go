package api

import (
	"edunex/internal/models"
)

// pickProvider resolves the provider named in a request, falling back to
// the configured default when the name is empty.
func pickProvider(name, fallback string) (models.Provider, bool) {
	if name == "" {
		name = fallback
	}
	return models.ParseProvider(name)
}
