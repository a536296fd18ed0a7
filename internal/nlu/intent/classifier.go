// internal/nlu/intent/classifier.go

// Package intent assigns a single intent label to an utterance given
// the entities already extracted from it. Rules are evaluated top to
// bottom and the first match wins.
package intent

import (
	"strings"

	"finhealth-assistant/internal/models"
)

var greetingWords = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
}

var emergencyWords = []string{
	"emergency", "urgent", "help", "911", "ambulance",
}

var costWords = []string{
	"cost", "price", "expensive", "cheap", "affordable", "money",
	"how much", "pricing", "comparison", "compare",
}

var facilityWords = []string{
	"hospital", "clinic", "medical center", "doctor", "physician",
}

// rule is one precedence step. Entity predicates run before lexicon scans.
type rule struct {
	intent  string
	matches func(e models.Entities, lower string) bool
}

var rules = []rule{
	{models.IntentLocationProcedure, func(e models.Entities, _ string) bool {
		return e.Location != "" && len(e.Procedures) > 0
	}},
	{models.IntentLocationInsurance, func(e models.Entities, _ string) bool {
		return e.Location != "" && len(e.Carriers) > 0
	}},
	{models.IntentLocationResponse, func(e models.Entities, _ string) bool {
		return e.Location != ""
	}},
	{models.IntentProcedureLocation, func(e models.Entities, _ string) bool {
		return len(e.Procedures) > 0
	}},
	{models.IntentInsuranceLocation, func(e models.Entities, _ string) bool {
		return len(e.Carriers) > 0
	}},
	{models.IntentSymptomAnalysis, func(e models.Entities, _ string) bool {
		return len(e.Symptoms) > 0
	}},
	{models.IntentGreeting, func(_ models.Entities, lower string) bool {
		return containsAny(lower, greetingWords)
	}},
	{models.IntentEmergency, func(_ models.Entities, lower string) bool {
		return containsAny(lower, emergencyWords)
	}},
	{models.IntentCostInquiry, func(_ models.Entities, lower string) bool {
		return containsAny(lower, costWords)
	}},
	{models.IntentFacilityInquiry, func(_ models.Entities, lower string) bool {
		return containsAny(lower, facilityWords)
	}},
}

// Classify returns the intent for one utterance. Never fails; utterances
// matching no rule are conversational.
func Classify(message string, entities models.Entities) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		if r.matches(entities, lower) {
			return r.intent
		}
	}
	return models.IntentConversational
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
