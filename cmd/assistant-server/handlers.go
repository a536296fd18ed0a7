// cmd/assistant-server/handlers.go
package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"finhealth-assistant/internal/catalog"
	"finhealth-assistant/internal/common/errors"
	"finhealth-assistant/internal/common/logger"
	"finhealth-assistant/internal/common/observability"
	"finhealth-assistant/internal/conversation"
	"finhealth-assistant/internal/medical"
	"finhealth-assistant/internal/models"
	"finhealth-assistant/internal/pricing"
	"finhealth-assistant/internal/session"
)

type api struct {
	controller *conversation.Controller
	pricing    *pricing.Engine
	medical    *medical.Analyzer
	catalog    *catalog.Store
	sessions   session.Store
	obs        *observability.Observability
	log        logger.Logger
}

func newAPI(controller *conversation.Controller, engine *pricing.Engine, analyzer *medical.Analyzer,
	store *catalog.Store, sessions session.Store, obs *observability.Observability, log logger.Logger) *api {
	return &api{
		controller: controller,
		pricing:    engine,
		medical:    analyzer,
		catalog:    store,
		sessions:   sessions,
		obs:        obs,
		log:        log,
	}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	models.Response
}

func (a *api) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	ctx := r.Context()
	started := time.Now()

	conv, err := a.sessions.Get(ctx, req.SessionID)
	if err != nil {
		a.log.WithError(err).Error("Session load failed", map[string]interface{}{
			"sessionId": req.SessionID,
		})
		writeStandardError(w, http.StatusInternalServerError, err)
		return
	}

	resp, conv := a.controller.ProcessTurn(ctx, req.Message, conv)
	conv.SessionID = req.SessionID

	if err := a.sessions.Save(ctx, conv); err != nil {
		// The turn already produced an answer; losing the context is
		// logged but not surfaced as a failure.
		a.log.WithError(err).Error("Session save failed", map[string]interface{}{
			"sessionId": req.SessionID,
		})
	}

	a.obs.RecordTurnProcessed(ctx, resp.Kind)
	a.obs.RecordTurnDuration(ctx, time.Since(started), resp.Kind)

	writeJSON(w, http.StatusOK, chatResponse{SessionID: req.SessionID, Response: resp})
}

type symptomsRequest struct {
	Symptoms string `json:"symptoms"`
}

type symptomsResponse struct {
	Condition  string                 `json:"condition"`
	Procedures []string               `json:"recommended_procedures"`
	Codes      []models.ProcedureCode `json:"procedure_codes"`
}

func (a *api) handleAnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	var req symptomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body")
		return
	}
	if req.Symptoms == "" {
		writeStandardError(w, http.StatusBadRequest, errors.NewEmptyMessageError())
		return
	}

	condition := a.medical.AnalyzeSymptoms(r.Context(), req.Symptoms)
	procedures := a.medical.RecommendedProcedures(condition)

	writeJSON(w, http.StatusOK, symptomsResponse{
		Condition:  condition,
		Procedures: procedures,
		Codes:      medical.ProcedureCodes(procedures),
	})
}

type compareRequest struct {
	Procedures []string `json:"procedures"`
	Location   string   `json:"location"`
}

type compareResponse struct {
	Location  string                 `json:"location"`
	Hospitals []models.ProviderQuote `json:"hospitals"`
}

func (a *api) handleCompareHospitals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body")
		return
	}

	quotes, city, err := a.pricing.Compare(req.Procedures, req.Location)
	if err != nil {
		writeStandardError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{Location: city, Hospitals: quotes})
}

type insuranceRequest struct {
	Carrier    string   `json:"insurance_plan"`
	Procedures []string `json:"procedures"`
	Location   string   `json:"location"`
}

func (a *api) handleAnalyzeInsurance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	var req insuranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body")
		return
	}

	estimate, err := a.pricing.Estimate(req.Carrier, req.Procedures, req.Location)
	if err != nil {
		writeStandardError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, estimate)
}

type summaryResponse struct {
	SessionID  string   `json:"session_id"`
	Location   string   `json:"location,omitempty"`
	Condition  string   `json:"condition,omitempty"`
	Procedures []string `json:"procedures,omitempty"`
	Insurance  string   `json:"insurance,omitempty"`
	Stage      string   `json:"stage,omitempty"`
	QueryCount int      `json:"query_count"`
}

func (a *api) handleConversationSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "session_id required")
		return
	}

	conv, err := a.sessions.Get(r.Context(), sessionID)
	if err != nil {
		writeStandardError(w, http.StatusInternalServerError, err)
		return
	}
	if len(conv.History) == 0 {
		writeStandardError(w, http.StatusNotFound, errors.NewSessionNotFoundError(sessionID))
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		SessionID:  sessionID,
		Location:   conv.UserLocation,
		Condition:  conv.DiagnosedCondition,
		Procedures: conv.RequiredProcedures,
		Insurance:  conv.InsurancePlan,
		Stage:      conv.Stage,
		QueryCount: len(conv.History),
	})
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"cities":    a.catalog.CityCount(),
		"providers": a.catalog.ProviderCount(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func writeStandardError(w http.ResponseWriter, status int, err error) {
	if stdErr, ok := err.(*errors.StandardError); ok {
		if errors.IsRetryableErrorCode(stdErr.Code) {
			status = http.StatusServiceUnavailable
		} else if errors.GetErrorCategory(stdErr.Code) == "LOOKUP" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, stdErr)
		return
	}
	writeError(w, status, "INTERNAL_ERROR", err.Error())
}
