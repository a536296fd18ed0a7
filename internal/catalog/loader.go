// internal/catalog/loader.go
package catalog

import (
	_ "embed"
	"encoding/json"
	"os"

	"finhealth-assistant/internal/common/errors"
	"finhealth-assistant/internal/common/logger"
	"finhealth-assistant/internal/models"
)

//go:embed data/fallback_catalog.json
var fallbackCatalog []byte

// Load reads, validates and decodes the catalog at path. When path is empty
// or unreadable the embedded fallback catalog is used so the assistant can
// always answer pricing questions.
func Load(path string, log logger.Logger) (*Store, error) {
	raw, source := fallbackCatalog, "embedded"
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.WithError(err).Warn("Catalog file unreadable, using embedded fallback", map[string]interface{}{
				"path": path,
			})
		} else {
			raw, source = data, path
		}
	}

	store, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog loaded", map[string]interface{}{
		"source":    source,
		"cities":    store.CityCount(),
		"providers": store.ProviderCount(),
	})
	return store, nil
}

// Parse validates raw catalog JSON and builds a Store from it.
func Parse(raw []byte) (*Store, error) {
	if err := validateCatalog(raw); err != nil {
		return nil, err
	}

	var file models.CatalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, errors.NewCatalogLoadFailedError(err)
	}
	return NewStore(file), nil
}
