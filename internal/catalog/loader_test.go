package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth-assistant/internal/common/logger"
)

func TestLoadFromFile(t *testing.T) {
	raw := `{
		"hospitals": {
			"Texas": {
				"Waco": [
					{"name": "Waco General", "rating": 4.1, "procedures": {
						"X-ray": {"base_price": 150, "cash_price": 120}
					}}
				]
			}
		},
		"insurance_plans": {
			"Aetna": {"deductible": 1500, "out_of_pocket_max": 3500, "coverage_percent": 0.8}
		}
	}`
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	store, err := Load(path, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, store.CityCount())

	providers, city, found := store.FindProviders("Waco")
	require.True(t, found)
	assert.Equal(t, "Waco", city)
	require.Len(t, providers, 1)
	assert.Equal(t, "Waco General", providers[0].Name)
}

func TestLoadEmptyPathUsesEmbeddedFallback(t *testing.T) {
	store, err := Load("", logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Greater(t, store.CityCount(), 0)
	assert.Greater(t, store.ProviderCount(), 0)
}

func TestLoadFallsBackOnMissingFile(t *testing.T) {
	store, err := Load("/nonexistent/catalog.json", logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Greater(t, store.ProviderCount(), 0)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"insurance_plans": {}}`), 0o644))

	_, err := Load(path, logger.NewTestLogger(t))
	require.Error(t, err)
}
