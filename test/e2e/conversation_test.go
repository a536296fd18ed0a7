// test/e2e/conversation_test.go
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth-assistant/internal/catalog"
	"finhealth-assistant/internal/common/logger"
	"finhealth-assistant/internal/conversation"
	"finhealth-assistant/internal/medical"
	"finhealth-assistant/internal/models"
	"finhealth-assistant/internal/pricing"
	"finhealth-assistant/internal/session"
)

type fixture struct {
	controller *conversation.Controller
	sessions   session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewTestLogger(t)

	store, err := catalog.Load("", log)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	engine := pricing.NewEngine(store, 0.15, log)
	analyzer := medical.NewAnalyzer(store, nil, log)
	return &fixture{
		controller: conversation.NewController(store, engine, analyzer, 5, log),
		sessions:   session.NewRedisStore(client, time.Hour),
	}
}

// turn processes one utterance for a session, persisting context between
// calls the way the HTTP layer does.
func (f *fixture) turn(t *testing.T, sessionID, message string) models.Response {
	t.Helper()
	ctx := context.Background()

	conv, err := f.sessions.Get(ctx, sessionID)
	require.NoError(t, err)

	resp, conv := f.controller.ProcessTurn(ctx, message, conv)
	conv.SessionID = sessionID
	require.NoError(t, f.sessions.Save(ctx, conv))
	return resp
}

func TestPriceComparisonFlow(t *testing.T) {
	f := newFixture(t)

	resp := f.turn(t, "s1", "I need an MRI in Dallas, Texas")
	assert.Equal(t, models.KindCompleteAnalysis, resp.Kind)
	require.NotEmpty(t, resp.Hospitals)
	for i := 1; i < len(resp.Hospitals); i++ {
		assert.LessOrEqual(t, resp.Hospitals[i-1].TotalCashCost, resp.Hospitals[i].TotalCashCost)
	}

	// The session remembers both facts, so a bare cost question answers
	// immediately instead of re-asking.
	resp = f.turn(t, "s1", "which one is cheaper?")
	assert.Equal(t, models.KindDirectPriceAnalysis, resp.Kind)
	assert.NotEmpty(t, resp.Hospitals)
	assert.Equal(t, "Dallas", resp.Location)
}

func TestSymptomToComparisonFlow(t *testing.T) {
	f := newFixture(t)

	resp := f.turn(t, "s2", "I have chest pain")
	assert.Equal(t, models.KindSymptomAnalysis, resp.Kind)
	assert.NotEmpty(t, resp.Procedures)
	assert.Empty(t, resp.Hospitals)

	// Location arrives afterwards; the recommended procedures are already
	// in context and drive the comparison without another question.
	resp = f.turn(t, "s2", "I'm in Houston")
	assert.Equal(t, models.KindCompleteAnalysis, resp.Kind)
	assert.NotEmpty(t, resp.Hospitals)
	assert.Equal(t, "Houston", resp.Location)
}

func TestUnknownCityFlow(t *testing.T) {
	f := newFixture(t)

	resp := f.turn(t, "s3", "I need an X-ray in Atlantis, TX")
	assert.Equal(t, models.KindNoData, resp.Kind)
	assert.Empty(t, resp.Hospitals)
}

func TestGreetingRemembersLocation(t *testing.T) {
	f := newFixture(t)

	resp := f.turn(t, "s4", "I'm in Austin")
	assert.Equal(t, models.KindLocationConfirmed, resp.Kind)

	resp = f.turn(t, "s4", "hello!")
	assert.Equal(t, models.KindGreetingWithLocation, resp.Kind)
	assert.Equal(t, "Austin", resp.Location)
}

func TestInsuranceFlow(t *testing.T) {
	f := newFixture(t)

	resp := f.turn(t, "s5", "I need an MRI in Dallas")
	require.Equal(t, models.KindCompleteAnalysis, resp.Kind)

	resp = f.turn(t, "s5", "I have Aetna")
	assert.Equal(t, models.KindInsuranceAnalysis, resp.Kind)
	require.NotNil(t, resp.Coverage)
	assert.Equal(t, "Aetna", resp.Coverage.InsurancePlan)
	assert.Positive(t, resp.Coverage.InsuredCost)
}
