package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"simple city", "i live in dallas", "Dallas"},
		{"two word city", "prices in fort worth please", "Fort Worth"},
		{"longest alias wins", "i'm in new york city", "New York"},
		{"short alias", "moving to la next month", "Los Angeles"},
		{"alias needs word boundary", "what plan covers this", ""},
		{"nickname", "flying to nyc tomorrow", "New York"},
		{"no location", "how much is an mri", ""},
		{"punctuation boundary", "dallas, texas here", "Dallas"},
		{"unknown city with state abbrev", "i'm in atlantis, tx", "Atlantis"},
		{"unknown city with state name", "pricing for wimberley, texas", "Wimberley"},
		{"comma without state", "well, maybe later", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Location(tt.message))
		})
	}
}

func TestProcedures(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"single", "need an mri", []string{"MRI"}},
		{"synonym", "my ekg results", []string{"ECG"}},
		{"multiple in rule order", "x-ray and mri and blood work", []string{"MRI", "X-ray", "Blood tests"}},
		{"duplicate mentions collapse", "mri or magnetic resonance imaging", []string{"MRI"}},
		{"xray without hyphen", "cheapest xray near me", []string{"X-ray"}},
		{"none", "hello there", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Procedures(tt.message))
		})
	}
}

func TestCarriers(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"single", "i have aetna", []string{"Aetna"}},
		{"abbreviation", "bcbs member here", []string{"Blue Cross Blue Shield"}},
		{"all matches in table order", "switching from cigna to aetna", []string{"Aetna", "Cigna"}},
		{"united health", "covered by united health", []string{"UnitedHealth"}},
		{"none", "no coverage at all", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Carriers(tt.message))
		})
	}
}

func TestSymptoms(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{"single phrase", "i have chest pain", []string{"chest pain"}},
		{"multiple", "fever and headache since monday", []string{"headache", "fever"}},
		{"not part of longer word", "coughing fits", nil},
		{"none", "just browsing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Symptoms(tt.message))
		})
	}
}

func TestExtractIsTotal(t *testing.T) {
	for _, message := range []string{"", "   ", "???", "zzz qqq"} {
		got := Extract(message)
		assert.False(t, got.HasAny(), "message %q", message)
	}
}

func TestExtractCombined(t *testing.T) {
	got := Extract("I need an MRI in Dallas, I have Aetna and chest pain")
	assert.Equal(t, "Dallas", got.Location)
	assert.Equal(t, []string{"MRI"}, got.Procedures)
	assert.Equal(t, []string{"Aetna"}, got.Carriers)
	assert.Equal(t, []string{"chest pain"}, got.Symptoms)
}
