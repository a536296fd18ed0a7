// internal/conversation/controller.go
package conversation

import (
	"context"
	"strings"
	"time"

	"finhealth-assistant/internal/catalog"
	"finhealth-assistant/internal/common/logger"
	"finhealth-assistant/internal/common/metrics"
	"finhealth-assistant/internal/medical"
	"finhealth-assistant/internal/models"
	"finhealth-assistant/internal/nlu/extract"
	"finhealth-assistant/internal/nlu/intent"
	"finhealth-assistant/internal/pricing"
)

// texasFallbackCities is tried in order when a Texas location has no
// pricing data of its own.
var texasFallbackCities = []string{
	"Houston", "Dallas", "Austin", "San Antonio", "Fort Worth", "Lubbock",
}

const defaultHospitalSearchProcedure = "Physical examination"

// Controller runs one conversation turn: extraction, context merge,
// intent dispatch, and response selection. It holds no per-session
// state; the caller persists the returned context between turns.
type Controller struct {
	catalog    *catalog.Store
	pricing    *pricing.Engine
	medical    *medical.Analyzer
	topResults int
	log        logger.Logger
}

func NewController(store *catalog.Store, engine *pricing.Engine, analyzer *medical.Analyzer, topResults int, log logger.Logger) *Controller {
	if topResults <= 0 {
		topResults = 5
	}
	return &Controller{
		catalog:    store,
		pricing:    engine,
		medical:    analyzer,
		topResults: topResults,
		log:        log,
	}
}

// ProcessTurn handles one utterance against the session's context and
// returns the response plus the updated context. Every input, including
// garbage, yields a user-facing response.
func (c *Controller) ProcessTurn(ctx context.Context, message string, conv models.ConversationContext) (models.Response, models.ConversationContext) {
	started := time.Now()

	if strings.TrimSpace(message) == "" {
		return models.Response{
			Kind:    models.KindMissingInfo,
			Message: emptyMessageClarification,
		}, conv
	}

	conv.History = append(conv.History, models.TurnRecord{
		Message:   message,
		Timestamp: time.Now().UTC(),
	})

	lower := strings.ToLower(message)
	entities := extract.Extract(message)
	conv = MergeEntities(conv, entities)

	// Sufficiency gate: with location, procedures and a pricing request
	// all present, answer directly instead of classifying further.
	if hasSufficientContext(conv, lower) {
		resp := c.directAnalysis(ctx, conv, lower)
		c.finishTurn(&conv, "direct_analysis", resp, started)
		return resp, conv
	}

	conv.Stage = DeriveStage(conv, entities, lower, conv.PreviousUtterance())

	// Stage shortcut: a location arriving while procedures are already
	// known goes straight to comparison, whatever the intent says.
	if conv.Stage == models.StageReadyForCompare && entities.Location != "" {
		resp := c.handleLocationProcedure(conv)
		c.finishTurn(&conv, models.IntentLocationProcedure, resp, started)
		return resp, conv
	}

	label := intent.Classify(message, entities)

	var resp models.Response
	switch label {
	case models.IntentGreeting:
		resp = c.handleGreeting(conv)
	case models.IntentLocationProcedure:
		resp = c.handleLocationProcedure(conv)
	case models.IntentLocationInsurance:
		resp = c.handleInsuranceAnalysis(conv)
	case models.IntentLocationResponse:
		resp = c.handleLocationResponse(entities)
	case models.IntentProcedureLocation:
		resp = c.handleProcedureInquiry(conv, entities)
	case models.IntentInsuranceLocation:
		resp = c.handleInsuranceLocation(conv)
	case models.IntentSymptomAnalysis:
		resp, conv = c.handleSymptoms(ctx, message, conv)
	case models.IntentEmergency:
		resp = c.handleEmergency(conv)
	case models.IntentCostInquiry:
		resp = c.handlePriceInquiry(conv, lower)
	case models.IntentFacilityInquiry:
		resp = c.handleHospitalInquiry(conv)
	case models.IntentConversational:
		resp = c.handleConversational(conv)
	default:
		resp = models.Response{
			Kind:        models.KindGeneral,
			Message:     generalMessage,
			Suggestions: generalSuggestions,
		}
	}

	c.finishTurn(&conv, label, resp, started)
	return resp, conv
}

func (c *Controller) finishTurn(conv *models.ConversationContext, label string, resp models.Response, started time.Time) {
	if n := len(conv.History); n > 0 {
		conv.History[n-1].Intent = label
	}
	metrics.TurnsProcessed.WithLabelValues(label).Inc()
	metrics.ResponsesByKind.WithLabelValues(resp.Kind).Inc()
	metrics.TurnDuration.WithLabelValues(label).Observe(time.Since(started).Seconds())
	c.log.Debug("Turn processed", map[string]interface{}{
		"intent": label,
		"kind":   resp.Kind,
	})
}

// directAnalysis answers a pricing request from context alone.
func (c *Controller) directAnalysis(ctx context.Context, conv models.ConversationContext, lower string) models.Response {
	quotes, city, err := c.pricing.Compare(conv.RequiredProcedures, conv.UserLocation)
	if err == nil && len(quotes) > 0 {
		return models.Response{
			Kind:       models.KindDirectPriceAnalysis,
			Message:    directAnalysisMessage(conv.RequiredProcedures, city, quotes, conv.InsurancePlan),
			Hospitals:  truncate(quotes, c.topResults),
			Location:   city,
			Procedures: conv.RequiredProcedures,
			Insurance:  conv.InsurancePlan,
		}
	}

	if resp, ok := c.nearbyTexasOptions(conv, lower); ok {
		return resp
	}
	return models.Response{
		Kind:    models.KindNoDataAvailable,
		Message: noDataAvailableMessage(conv.RequiredProcedures, conv.UserLocation),
	}
}

// nearbyTexasOptions scans major Texas cities for pricing data when the
// user's own Texas location has none.
func (c *Controller) nearbyTexasOptions(conv models.ConversationContext, lower string) (models.Response, bool) {
	inTexas := strings.Contains(strings.ToLower(conv.UserLocation), "texas") ||
		strings.Contains(lower, "texas")
	if !inTexas {
		return models.Response{}, false
	}

	for _, city := range texasFallbackCities {
		quotes, _, err := c.pricing.Compare(conv.RequiredProcedures, city)
		if err != nil || len(quotes) == 0 {
			continue
		}
		return models.Response{
			Kind:              models.KindNearbyOptions,
			Message:           nearbyOptionsMessage(city, conv.UserLocation, quotes),
			Hospitals:         truncate(quotes, 3),
			SuggestedLocation: city,
			Location:          conv.UserLocation,
			Procedures:        conv.RequiredProcedures,
		}, true
	}
	return models.Response{}, false
}

func (c *Controller) handleGreeting(conv models.ConversationContext) models.Response {
	if conv.UserLocation != "" {
		return models.Response{
			Kind:        models.KindGreetingWithLocation,
			Message:     greetingMessage(conv.UserLocation),
			Location:    conv.UserLocation,
			Suggestions: greetingSuggestions,
		}
	}
	return models.Response{
		Kind:        models.KindGreeting,
		Message:     greetingMessage(""),
		Suggestions: newUserSuggestions,
	}
}

func (c *Controller) handleLocationProcedure(conv models.ConversationContext) models.Response {
	if conv.UserLocation == "" || len(conv.RequiredProcedures) == 0 {
		return models.Response{
			Kind:    models.KindIncompleteInfo,
			Message: incompleteInfoMessage,
		}
	}

	quotes, city, err := c.pricing.Compare(conv.RequiredProcedures, conv.UserLocation)
	if err != nil || len(quotes) == 0 {
		return models.Response{
			Kind:     models.KindNoData,
			Message:  noDataMessage(conv.UserLocation),
			Location: conv.UserLocation,
		}
	}
	return models.Response{
		Kind:       models.KindCompleteAnalysis,
		Message:    completeAnalysisMessage(conv.RequiredProcedures, city, quotes),
		Hospitals:  truncate(quotes, 3),
		Location:   city,
		Procedures: conv.RequiredProcedures,
	}
}

func (c *Controller) handleLocationResponse(entities models.Entities) models.Response {
	if entities.Location == "" {
		return models.Response{
			Kind:    models.KindLocationUnclear,
			Message: locationUnclearMessage,
		}
	}
	message := locationConfirmedMessage(entities.Location)
	if !c.catalog.HasCity(entities.Location) {
		message = locationLimitedDataMessage(entities.Location)
	}
	return models.Response{
		Kind:        models.KindLocationConfirmed,
		Message:     message,
		Location:    entities.Location,
		Suggestions: locationConfirmedSuggestions,
	}
}

func (c *Controller) handleProcedureInquiry(conv models.ConversationContext, entities models.Entities) models.Response {
	if len(entities.Procedures) == 0 {
		return models.Response{
			Kind:    models.KindProcedureUnclear,
			Message: procedureUnclearMessage,
		}
	}
	if conv.UserLocation != "" {
		return c.handleLocationProcedure(conv)
	}
	return models.Response{
		Kind:        models.KindNeedLocation,
		Message:     needLocationMessage(entities.Procedures),
		Procedures:  entities.Procedures,
		Suggestions: needLocationSuggestions,
	}
}

// handleInsuranceAnalysis serves a turn carrying both location and carrier:
// which hospitals accept the plan, plus a coverage estimate when the
// needed procedures are already known.
func (c *Controller) handleInsuranceAnalysis(conv models.ConversationContext) models.Response {
	carrier := conv.InsurancePlan
	if _, planName, ok := c.catalog.FindPlan(carrier); ok {
		carrier = planName
	} else {
		return models.Response{
			Kind:      models.KindUnknownInsurance,
			Message:   insuranceNoPlanMessage(carrier, c.catalog.PlanNames()),
			Insurance: carrier,
		}
	}

	providers, city, found := c.catalog.ProvidersAcceptingCarrier(conv.UserLocation, carrier)
	if !found {
		return models.Response{
			Kind:     models.KindNoData,
			Message:  noDataMessage(conv.UserLocation),
			Location: conv.UserLocation,
		}
	}
	if len(providers) == 0 {
		return models.Response{
			Kind:      models.KindNoData,
			Message:   insuranceNoMatchMessage(carrier, city),
			Location:  city,
			Insurance: carrier,
		}
	}

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name)
	}
	resp := models.Response{
		Kind:      models.KindInsuranceAnalysis,
		Message:   insuranceAcceptedMessage(carrier, city, names),
		Location:  city,
		Insurance: carrier,
	}

	if len(conv.RequiredProcedures) > 0 {
		if est, err := c.pricing.Estimate(carrier, conv.RequiredProcedures, city); err == nil {
			resp.Coverage = est
			resp.Procedures = conv.RequiredProcedures
		}
	}
	return resp
}

func (c *Controller) handleInsuranceLocation(conv models.ConversationContext) models.Response {
	if conv.UserLocation != "" {
		return c.handleInsuranceAnalysis(conv)
	}
	return models.Response{
		Kind:        models.KindNeedLocation,
		Message:     insuranceNeedLocationMessage(conv.InsurancePlan),
		Insurance:   conv.InsurancePlan,
		Suggestions: needLocationSuggestions,
	}
}

func (c *Controller) handleSymptoms(ctx context.Context, message string, conv models.ConversationContext) (models.Response, models.ConversationContext) {
	condition := c.medical.AnalyzeSymptoms(ctx, message)
	procedures := c.medical.RecommendedProcedures(condition)

	conv.DiagnosedCondition = condition
	if len(procedures) > 0 {
		conv.RequiredProcedures = procedures
	}

	return models.Response{
		Kind:       models.KindSymptomAnalysis,
		Message:    symptomAnalysisMessage(condition, procedures, conv.UserLocation),
		Condition:  condition,
		Procedures: procedures,
		Location:   conv.UserLocation,
	}, conv
}

func (c *Controller) handleEmergency(conv models.ConversationContext) models.Response {
	resp := models.Response{
		Kind:     models.KindEmergency,
		Message:  emergencyMessage(conv.UserLocation),
		Location: conv.UserLocation,
		Urgent:   true,
	}
	if conv.UserLocation == "" {
		return resp
	}
	if providers, city, ok := c.catalog.EmergencyProviders(conv.UserLocation); ok && len(providers) > 0 {
		names := make([]string, 0, len(providers))
		for _, p := range providers {
			names = append(names, p.Name)
		}
		resp.Location = city
		resp.Message = emergencyWithProvidersMessage(city, names)
	}
	return resp
}

func (c *Controller) handlePriceInquiry(conv models.ConversationContext, lower string) models.Response {
	location := conv.UserLocation
	procedures := conv.RequiredProcedures
	if len(procedures) == 0 {
		procedures = []string{defaultHospitalSearchProcedure}
	}

	if location == "" {
		return models.Response{
			Kind:    models.KindMissingInfo,
			Message: missingInfoMessage(location, conv.RequiredProcedures),
		}
	}

	quotes, city, err := c.pricing.Compare(procedures, location)
	if err == nil && len(quotes) > 0 {
		return models.Response{
			Kind:       models.KindPriceComparison,
			Message:    directAnalysisMessage(procedures, city, quotes, conv.InsurancePlan),
			Hospitals:  truncate(quotes, c.topResults),
			Location:   city,
			Procedures: procedures,
			Insurance:  conv.InsurancePlan,
		}
	}

	conv.RequiredProcedures = procedures
	if resp, ok := c.nearbyTexasOptions(conv, lower); ok {
		return resp
	}
	return models.Response{
		Kind:     models.KindNoData,
		Message:  noDataMessage(location),
		Location: location,
	}
}

func (c *Controller) handleHospitalInquiry(conv models.ConversationContext) models.Response {
	if conv.UserLocation == "" {
		return models.Response{
			Kind:    models.KindNeedLocationHospital,
			Message: needLocationHospitalMessage,
		}
	}

	quotes, city, err := c.pricing.Compare([]string{defaultHospitalSearchProcedure}, conv.UserLocation)
	if err != nil || len(quotes) == 0 {
		return models.Response{
			Kind:     models.KindNoHospitals,
			Message:  noHospitalsMessage(conv.UserLocation),
			Location: conv.UserLocation,
		}
	}

	top := truncate(quotes, 3)
	return models.Response{
		Kind:      models.KindHospitalList,
		Message:   hospitalListMessage(city, top),
		Hospitals: top,
		Location:  city,
	}
}

func (c *Controller) handleConversational(conv models.ConversationContext) models.Response {
	switch {
	case conv.UserLocation != "" && len(conv.RequiredProcedures) > 0:
		return models.Response{
			Kind:       models.KindContextualHelp,
			Message:    contextualHelpMessage(conv.UserLocation, conv.RequiredProcedures),
			Location:   conv.UserLocation,
			Procedures: conv.RequiredProcedures,
		}
	case conv.UserLocation != "":
		return models.Response{
			Kind:     models.KindLocationKnown,
			Message:  locationKnownMessage(conv.UserLocation),
			Location: conv.UserLocation,
		}
	default:
		return models.Response{
			Kind:    models.KindGeneralHelp,
			Message: generalHelpMessage,
		}
	}
}

func truncate(quotes []models.ProviderQuote, n int) []models.ProviderQuote {
	if len(quotes) <= n {
		return quotes
	}
	return quotes[:n]
}
