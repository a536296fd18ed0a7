// internal/catalog/store.go
package catalog

import (
	"sort"
	"strings"

	"finhealth-assistant/internal/models"
)

// Store is an immutable in-memory view of one loaded catalog.
// All lookups are read-only and safe for concurrent use.
type Store struct {
	file models.CatalogFile

	// cityIndex maps lowercased city name to its providers.
	cityIndex map[string][]models.Provider
	// cityNames preserves the catalog's spelling per lowercased key.
	cityNames map[string]string
	// cityKeys holds the index keys sorted so fallback scans resolve
	// the same city on every call.
	cityKeys []string
}

func NewStore(file models.CatalogFile) *Store {
	s := &Store{
		file:      file,
		cityIndex: make(map[string][]models.Provider),
		cityNames: make(map[string]string),
	}
	for _, cities := range file.Hospitals {
		for city, providers := range cities {
			key := strings.ToLower(city)
			if _, seen := s.cityIndex[key]; !seen {
				s.cityKeys = append(s.cityKeys, key)
			}
			s.cityIndex[key] = append(s.cityIndex[key], providers...)
			s.cityNames[key] = city
		}
	}
	sort.Strings(s.cityKeys)
	return s
}

// FindProviders resolves a location to its providers. Exact city match wins;
// otherwise the first city in sorted order matching by case-insensitive
// substring in either direction is used. The second result is the catalog's
// spelling of the city.
func (s *Store) FindProviders(location string) ([]models.Provider, string, bool) {
	key := strings.ToLower(strings.TrimSpace(location))
	if key == "" {
		return nil, "", false
	}
	if providers, ok := s.cityIndex[key]; ok {
		return providers, s.cityNames[key], true
	}
	for _, cityKey := range s.cityKeys {
		if strings.Contains(cityKey, key) || strings.Contains(key, cityKey) {
			return s.cityIndex[cityKey], s.cityNames[cityKey], true
		}
	}
	return nil, "", false
}

// HasCity reports whether a location resolves to any catalog city.
func (s *Store) HasCity(location string) bool {
	_, _, ok := s.FindProviders(location)
	return ok
}

// FindPlan looks up an insurance plan by carrier, case-insensitively.
func (s *Store) FindPlan(carrier string) (models.InsurancePlan, string, bool) {
	want := strings.ToLower(strings.TrimSpace(carrier))
	for name, plan := range s.file.InsurancePlans {
		if strings.ToLower(name) == want {
			return plan, name, true
		}
	}
	return models.InsurancePlan{}, "", false
}

// FindCondition looks up a medical condition by name, case-insensitively.
func (s *Store) FindCondition(name string) (models.Condition, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for cond, entry := range s.file.MedicalConditions {
		if strings.ToLower(cond) == want {
			return entry, true
		}
	}
	return models.Condition{}, false
}

// EmergencyProviders returns the providers in a location flagged for
// emergency care.
func (s *Store) EmergencyProviders(location string) ([]models.Provider, string, bool) {
	providers, city, ok := s.FindProviders(location)
	if !ok {
		return nil, "", false
	}
	var out []models.Provider
	for _, p := range providers {
		if p.Emergency {
			out = append(out, p)
		}
	}
	return out, city, true
}

// ProvidersAcceptingCarrier filters a location's providers to those that
// list the carrier among accepted insurance.
func (s *Store) ProvidersAcceptingCarrier(location, carrier string) ([]models.Provider, string, bool) {
	providers, city, ok := s.FindProviders(location)
	if !ok {
		return nil, "", false
	}
	want := strings.ToLower(strings.TrimSpace(carrier))
	var out []models.Provider
	for _, p := range providers {
		for _, accepted := range p.InsuranceAccepted {
			if strings.ToLower(accepted) == want {
				out = append(out, p)
				break
			}
		}
	}
	return out, city, true
}

// PlanNames lists the carriers known to the catalog, sorted.
func (s *Store) PlanNames() []string {
	names := make([]string, 0, len(s.file.InsurancePlans))
	for name := range s.file.InsurancePlans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) CityCount() int {
	return len(s.cityIndex)
}

func (s *Store) ProviderCount() int {
	n := 0
	for _, providers := range s.cityIndex {
		n += len(providers)
	}
	return n
}
