package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finhealth-assistant/internal/models"
	"finhealth-assistant/internal/nlu/extract"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"location plus procedure", "MRI cost in Dallas", models.IntentLocationProcedure},
		{"location plus insurance", "does Aetna work in Houston", models.IntentLocationInsurance},
		{"bare location", "I'm in Austin", models.IntentLocationResponse},
		{"procedure only", "I need an X-ray", models.IntentProcedureLocation},
		{"insurance only", "I have Cigna coverage", models.IntentInsuranceLocation},
		{"symptoms", "my chest pain got worse", models.IntentSymptomAnalysis},
		{"greeting", "hello there", models.IntentGreeting},
		{"emergency", "this is an emergency", models.IntentEmergency},
		{"cost words", "how much does it usually run, pricing wise", models.IntentCostInquiry},
		{"facility words", "looking for a good clinic", models.IntentFacilityInquiry},
		{"fallback", "tell me a story", models.IntentConversational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message, extract.Extract(tt.message))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Location plus procedure must win over every lexicon rule even when
// the utterance also carries emergency or cost words.
func TestClassifyPrecedence(t *testing.T) {
	msg := "urgent: compare MRI price in Dallas please"
	got := Classify(msg, extract.Extract(msg))
	assert.Equal(t, models.IntentLocationProcedure, got)

	msg = "hello, I have chest pain and Aetna"
	got = Classify(msg, extract.Extract(msg))
	assert.Equal(t, models.IntentInsuranceLocation, got)
}

func TestClassifyEmptyMessage(t *testing.T) {
	got := Classify("", models.Entities{})
	assert.Equal(t, models.IntentConversational, got)
}
