// internal/models/conversation.go
package models

import "time"

// Entities is the result of running the extractor over one utterance.
// Order inside the slices is first-mention order.
type Entities struct {
	Location   string   `json:"location,omitempty"`
	Procedures []string `json:"procedures,omitempty"`
	Carriers   []string `json:"carriers,omitempty"`
	Symptoms   []string `json:"symptoms,omitempty"`
}

// HasAny reports whether the utterance carried any recognized entity.
func (e Entities) HasAny() bool {
	return e.Location != "" || len(e.Procedures) > 0 || len(e.Carriers) > 0 || len(e.Symptoms) > 0
}

// Intent labels. First-match-wins precedence lives in the classifier.
const (
	IntentLocationProcedure  = "location_procedure_inquiry"
	IntentLocationInsurance  = "location_insurance_inquiry"
	IntentLocationResponse   = "location_response"
	IntentProcedureLocation  = "procedure_location_request"
	IntentInsuranceLocation  = "insurance_location_request"
	IntentSymptomAnalysis    = "symptom_analysis"
	IntentGreeting           = "greeting"
	IntentEmergency          = "emergency"
	IntentCostInquiry        = "cost_inquiry"
	IntentFacilityInquiry    = "facility_inquiry"
	IntentConversational     = "conversational"
)

// Conversation stages derived after each merge.
const (
	StageInitial           = "initial"
	StageLocationProvided  = "location_provided"
	StageReadyForCompare   = "ready_for_comparison"
	StageAffirmative       = "affirmative_response"
	StageCompleteRequest   = "complete_request"
	StageSymptomAnalysis   = "symptom_analysis"
	StageInsuranceInquiry  = "insurance_inquiry"
)

// TurnRecord is one remembered user utterance.
type TurnRecord struct {
	Message   string    `json:"message"`
	Intent    string    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext is the accumulated state of one session.
// Fields only ever move from empty to set or get overwritten by new
// evidence; a turn that mentions nothing clears nothing.
type ConversationContext struct {
	SessionID          string       `json:"session_id,omitempty"`
	UserLocation       string       `json:"user_location,omitempty"`
	RequiredProcedures []string     `json:"required_procedures,omitempty"`
	CurrentSymptoms    []string     `json:"current_symptoms,omitempty"`
	DiagnosedCondition string       `json:"diagnosed_condition,omitempty"`
	InsurancePlan      string       `json:"insurance_plan,omitempty"`
	Stage              string       `json:"conversation_stage,omitempty"`
	History            []TurnRecord `json:"previous_queries,omitempty"`
	UpdatedAt          time.Time    `json:"updated_at,omitempty"`
}

// PreviousUtterance returns the user message before the current one,
// or "" on the first turn.
func (c ConversationContext) PreviousUtterance() string {
	if len(c.History) < 2 {
		return ""
	}
	return c.History[len(c.History)-2].Message
}

// Response kinds. The Kind string is part of the API contract.
const (
	KindGreeting             = "greeting"
	KindGreetingWithLocation = "greeting_with_location"
	KindDirectPriceAnalysis  = "direct_price_analysis"
	KindPriceComparison      = "price_comparison"
	KindNearbyOptions        = "nearby_options"
	KindNoData               = "no_data"
	KindNoDataAvailable      = "no_data_available"
	KindMissingInfo          = "missing_info"
	KindLocationConfirmed    = "location_confirmed"
	KindLocationUnclear      = "location_unclear"
	KindCompleteAnalysis     = "complete_analysis"
	KindIncompleteInfo       = "incomplete_info"
	KindNeedLocation         = "need_location"
	KindProcedureUnclear     = "procedure_unclear"
	KindSymptomAnalysis      = "symptom_analysis"
	KindHospitalList         = "hospital_list"
	KindNoHospitals          = "no_hospitals"
	KindNeedLocationHospital = "need_location_hospital"
	KindEmergency            = "emergency"
	KindInsuranceAnalysis    = "insurance_analysis"
	KindUnknownInsurance     = "unknown_insurance"
	KindContextualHelp       = "contextual_help"
	KindLocationKnown        = "location_known"
	KindGeneralHelp          = "general_help"
	KindGeneral              = "general"
)

// Response is what the controller returns for one processed turn.
type Response struct {
	Kind              string            `json:"type"`
	Message           string            `json:"message"`
	Hospitals         []ProviderQuote   `json:"hospitals,omitempty"`
	Location          string            `json:"location,omitempty"`
	SuggestedLocation string            `json:"suggested_location,omitempty"`
	Procedures        []string          `json:"procedures,omitempty"`
	Condition         string            `json:"condition,omitempty"`
	Insurance         string            `json:"insurance,omitempty"`
	Coverage          *CoverageEstimate `json:"coverage,omitempty"`
	Suggestions       []string          `json:"suggestions,omitempty"`
	Urgent            bool              `json:"urgent,omitempty"`
}
