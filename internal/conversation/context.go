// internal/conversation/context.go

// Package conversation carries the per-session dialogue state machine.
package conversation

import (
	"strings"

	"finhealth-assistant/internal/models"
)

var locationRequestWords = []string{"city", "location", "where"}

var affirmationWords = []string{"yes", "sure", "okay", "please"}

var insuranceWords = []string{
	"insurance", "coverage", "plan",
	"aetna", "blue cross", "blue shield", "bcbs", "cigna",
	"unitedhealthcare", "united health", "humana", "kaiser",
	"medicare", "medicaid", "anthem",
}

var pricingWords = []string{
	"price", "cost", "comparison", "compare", "cheaper",
	"affordable", "pricing", "information",
}

// MergeEntities folds this turn's entities into the context. New evidence
// overwrites, absence never clears. A turn with several carriers keeps
// only the first.
func MergeEntities(conv models.ConversationContext, entities models.Entities) models.ConversationContext {
	if entities.Location != "" {
		conv.UserLocation = entities.Location
	}
	if len(entities.Procedures) > 0 {
		conv.RequiredProcedures = entities.Procedures
	}
	if len(entities.Carriers) > 0 {
		conv.InsurancePlan = entities.Carriers[0]
	}
	if len(entities.Symptoms) > 0 {
		conv.CurrentSymptoms = entities.Symptoms
	}
	return conv
}

// DeriveStage recomputes the conversation stage from the merged context
// and the current turn. Rules run in fixed order, first match wins; no
// rule matching leaves the stage as it was.
func DeriveStage(conv models.ConversationContext, entities models.Entities, lower, previous string) string {
	prevLower := strings.ToLower(previous)
	switch {
	case containsAny(prevLower, locationRequestWords) && entities.Location != "":
		return models.StageLocationProvided
	case len(conv.RequiredProcedures) > 0 && entities.Location != "":
		return models.StageReadyForCompare
	case containsAny(lower, affirmationWords):
		return models.StageAffirmative
	case entities.Location != "" && len(entities.Procedures) > 0:
		return models.StageCompleteRequest
	case len(entities.Symptoms) > 0:
		return models.StageSymptomAnalysis
	case containsAny(lower, insuranceWords):
		return models.StageInsuranceInquiry
	case conv.Stage == "":
		return models.StageInitial
	default:
		return conv.Stage
	}
}

// hasSufficientContext reports whether the turn can skip intent dispatch
// and answer with a price analysis outright.
func hasSufficientContext(conv models.ConversationContext, lower string) bool {
	return conv.UserLocation != "" &&
		len(conv.RequiredProcedures) > 0 &&
		containsAny(lower, pricingWords)
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
