package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth-assistant/internal/catalog"
	"finhealth-assistant/internal/common/logger"
	"finhealth-assistant/internal/medical"
	"finhealth-assistant/internal/models"
	"finhealth-assistant/internal/pricing"
)

func testController(t *testing.T) *Controller {
	t.Helper()
	log := logger.NewTestLogger(t)
	store, err := catalog.Load("", log)
	require.NoError(t, err)

	engine := pricing.NewEngine(store, 0.15, log)
	analyzer := medical.NewAnalyzer(store, nil, log)
	return NewController(store, engine, analyzer, 5, log)
}

func TestProcessTurnEmptyMessage(t *testing.T) {
	c := testController(t)

	resp, conv := c.ProcessTurn(context.Background(), "   ", models.ConversationContext{})
	assert.Equal(t, models.KindMissingInfo, resp.Kind)
	assert.Empty(t, conv.History)
}

func TestProcessTurnGreeting(t *testing.T) {
	c := testController(t)

	resp, conv := c.ProcessTurn(context.Background(), "hello!", models.ConversationContext{})
	assert.Equal(t, models.KindGreeting, resp.Kind)
	assert.NotEmpty(t, resp.Suggestions)
	require.Len(t, conv.History, 1)
	assert.Equal(t, models.IntentGreeting, conv.History[0].Intent)

	resp, _ = c.ProcessTurn(context.Background(), "hi again", conv)
	// Context still lacks a location, so the plain greeting repeats.
	assert.Equal(t, models.KindGreeting, resp.Kind)

	conv.UserLocation = "Dallas"
	resp, _ = c.ProcessTurn(context.Background(), "hello", conv)
	assert.Equal(t, models.KindGreetingWithLocation, resp.Kind)
	assert.Equal(t, "Dallas", resp.Location)
}

func TestProcessTurnCompleteRequest(t *testing.T) {
	c := testController(t)

	resp, conv := c.ProcessTurn(context.Background(), "I need an MRI in Dallas, Texas", models.ConversationContext{})
	assert.Equal(t, models.KindCompleteAnalysis, resp.Kind)
	require.NotEmpty(t, resp.Hospitals)
	for i := 1; i < len(resp.Hospitals); i++ {
		assert.LessOrEqual(t, resp.Hospitals[i-1].TotalCashCost, resp.Hospitals[i].TotalCashCost)
	}
	assert.Equal(t, "Dallas", conv.UserLocation)
	assert.Equal(t, []string{"MRI"}, conv.RequiredProcedures)
}

func TestProcessTurnSymptoms(t *testing.T) {
	c := testController(t)

	resp, conv := c.ProcessTurn(context.Background(), "I have chest pain", models.ConversationContext{})
	assert.Equal(t, models.KindSymptomAnalysis, resp.Kind)
	assert.Equal(t, "chest pain", resp.Condition)
	assert.NotEmpty(t, resp.Procedures)
	assert.Empty(t, resp.Hospitals)
	assert.Equal(t, "chest pain", conv.DiagnosedCondition)
	assert.Equal(t, resp.Procedures, conv.RequiredProcedures)
}

func TestProcessTurnUnknownCity(t *testing.T) {
	c := testController(t)

	resp, _ := c.ProcessTurn(context.Background(), "I need an X-ray in Atlantis, TX", models.ConversationContext{})
	assert.Equal(t, models.KindNoData, resp.Kind)
	assert.Empty(t, resp.Hospitals)
}

func TestProcessTurnSufficiencyGate(t *testing.T) {
	c := testController(t)

	conv := models.ConversationContext{
		UserLocation:       "Austin",
		RequiredProcedures: []string{"X-ray"},
	}
	resp, _ := c.ProcessTurn(context.Background(), "ok what is the cost", conv)
	assert.Equal(t, models.KindDirectPriceAnalysis, resp.Kind)
	assert.NotEmpty(t, resp.Hospitals)
	assert.Equal(t, "Austin", resp.Location)
}

func TestProcessTurnLocationAfterProcedure(t *testing.T) {
	c := testController(t)
	ctx := context.Background()

	resp, conv := c.ProcessTurn(ctx, "how much is an mri?", models.ConversationContext{})
	assert.Equal(t, models.KindNeedLocation, resp.Kind)
	assert.Equal(t, []string{"MRI"}, conv.RequiredProcedures)

	// The follow-up location goes straight to comparison without the
	// controller re-asking for the procedure.
	resp, conv = c.ProcessTurn(ctx, "I'm in Dallas", conv)
	assert.Equal(t, models.KindCompleteAnalysis, resp.Kind)
	assert.NotEmpty(t, resp.Hospitals)
	assert.Equal(t, models.StageReadyForCompare, conv.Stage)
}

func TestProcessTurnLocationStatement(t *testing.T) {
	c := testController(t)
	ctx := context.Background()

	resp, conv := c.ProcessTurn(ctx, "I'm in Austin", models.ConversationContext{})
	assert.Equal(t, models.KindLocationConfirmed, resp.Kind)
	assert.Equal(t, "Austin", conv.UserLocation)
	assert.NotContains(t, resp.Message, "limited pricing data")

	// A city outside the catalog is still remembered, with a caveat.
	resp, conv = c.ProcessTurn(ctx, "I'm in Wimberley, Texas", models.ConversationContext{})
	assert.Equal(t, models.KindLocationConfirmed, resp.Kind)
	assert.Equal(t, "Wimberley", conv.UserLocation)
	assert.Contains(t, resp.Message, "limited pricing data")
}

func TestProcessTurnMonotonicity(t *testing.T) {
	c := testController(t)
	ctx := context.Background()

	_, conv := c.ProcessTurn(ctx, "I need an mri", models.ConversationContext{})
	require.Equal(t, []string{"MRI"}, conv.RequiredProcedures)

	_, conv = c.ProcessTurn(ctx, "thanks for the info", conv)
	assert.Equal(t, []string{"MRI"}, conv.RequiredProcedures)
}

func TestProcessTurnNearbyTexasFallback(t *testing.T) {
	c := testController(t)

	conv := models.ConversationContext{
		UserLocation:       "Wimberley",
		RequiredProcedures: []string{"MRI"},
	}
	resp, _ := c.ProcessTurn(context.Background(), "compare prices near wimberley, texas", conv)
	assert.Equal(t, models.KindNearbyOptions, resp.Kind)
	assert.Equal(t, "Houston", resp.SuggestedLocation)
	assert.NotEmpty(t, resp.Hospitals)
}

func TestProcessTurnEmergency(t *testing.T) {
	c := testController(t)

	resp, _ := c.ProcessTurn(context.Background(), "this is urgent, call an ambulance", models.ConversationContext{})
	assert.Equal(t, models.KindEmergency, resp.Kind)
	assert.True(t, resp.Urgent)
	assert.NotContains(t, resp.Message, "Emergency rooms in")

	// With a remembered location the response names local emergency rooms.
	conv := models.ConversationContext{UserLocation: "Dallas"}
	resp, _ = c.ProcessTurn(context.Background(), "help, this is an emergency", conv)
	assert.Equal(t, models.KindEmergency, resp.Kind)
	assert.True(t, resp.Urgent)
	assert.Equal(t, "Dallas", resp.Location)
	assert.Contains(t, resp.Message, "UT Southwestern Medical Center")
}

func TestProcessTurnInsuranceAnalysis(t *testing.T) {
	c := testController(t)

	resp, conv := c.ProcessTurn(context.Background(), "I have Aetna in Dallas", models.ConversationContext{})
	assert.Equal(t, models.KindInsuranceAnalysis, resp.Kind)
	assert.Equal(t, "Aetna", resp.Insurance)
	assert.Equal(t, "Aetna", conv.InsurancePlan)
	assert.Nil(t, resp.Coverage)

	// A carrier-only follow-up reuses the remembered location, and with
	// procedures known it also carries a coverage estimate.
	conv.RequiredProcedures = []string{"MRI"}
	resp, _ = c.ProcessTurn(context.Background(), "is my aetna accepted?", conv)
	assert.Equal(t, models.KindInsuranceAnalysis, resp.Kind)
	require.NotNil(t, resp.Coverage)
	assert.Equal(t, 1500.0, resp.Coverage.Deductible)
}

func TestProcessTurnUnknownInsurance(t *testing.T) {
	c := testController(t)

	resp, _ := c.ProcessTurn(context.Background(), "I have Humana in Dallas", models.ConversationContext{})
	assert.Equal(t, models.KindUnknownInsurance, resp.Kind)
}

func TestProcessTurnInsuranceWithoutLocation(t *testing.T) {
	c := testController(t)

	resp, _ := c.ProcessTurn(context.Background(), "I'm covered by Cigna", models.ConversationContext{})
	assert.Equal(t, models.KindNeedLocation, resp.Kind)
	assert.Equal(t, "Cigna", resp.Insurance)
}

func TestProcessTurnHospitalInquiry(t *testing.T) {
	c := testController(t)

	resp, _ := c.ProcessTurn(context.Background(), "find me a good hospital", models.ConversationContext{})
	assert.Equal(t, models.KindNeedLocationHospital, resp.Kind)

	conv := models.ConversationContext{UserLocation: "Houston"}
	resp, _ = c.ProcessTurn(context.Background(), "find me a good hospital", conv)
	assert.Equal(t, models.KindHospitalList, resp.Kind)
	assert.NotEmpty(t, resp.Hospitals)
	assert.LessOrEqual(t, len(resp.Hospitals), 3)
}

func TestProcessTurnConversationalFallback(t *testing.T) {
	c := testController(t)
	ctx := context.Background()

	resp, _ := c.ProcessTurn(ctx, "tell me something", models.ConversationContext{})
	assert.Equal(t, models.KindGeneralHelp, resp.Kind)

	resp, _ = c.ProcessTurn(ctx, "tell me something", models.ConversationContext{UserLocation: "Dallas"})
	assert.Equal(t, models.KindLocationKnown, resp.Kind)

	resp, _ = c.ProcessTurn(ctx, "tell me something", models.ConversationContext{
		UserLocation:       "Dallas",
		RequiredProcedures: []string{"MRI"},
	})
	assert.Equal(t, models.KindContextualHelp, resp.Kind)
}
