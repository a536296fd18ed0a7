// internal/medical/analyzer.go

// Package medical maps symptoms to a likely condition and the procedures
// usually ordered for it. Analysis prefers the completion service when
// one is configured and always has a deterministic rule fallback.
package medical

import (
	"context"
	"fmt"
	"strings"

	"finhealth-assistant/internal/catalog"
	"finhealth-assistant/internal/common/logger"
	"finhealth-assistant/internal/common/metrics"
	"finhealth-assistant/internal/models"
)

const analysisPrompt = "You are a medical assistant. Based on the symptoms described, " +
	"provide the most likely medical condition in 1-3 words. Be conservative and " +
	"suggest seeing a healthcare professional. Only provide the condition name, " +
	"no additional explanation."

// Completer is the slice of the completion client the analyzer needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// conditionProcedures is the built-in condition to procedure mapping,
// used when the catalog has no entry for a condition.
var conditionProcedures = map[string][]string{
	"chest pain":          {"ECG", "Chest X-ray", "Blood tests", "Stress test"},
	"headache":            {"CT scan", "MRI", "Blood tests", "Physical examination"},
	"abdominal pain":      {"Ultrasound", "CT scan", "Blood tests", "Physical examination"},
	"back pain":           {"X-ray", "MRI", "Physical examination"},
	"fever":               {"Blood tests", "Chest X-ray", "Physical examination"},
	"shortness of breath": {"Chest X-ray", "ECG", "Blood tests"},
	"joint pain":          {"X-ray", "MRI", "Blood tests", "Physical examination"},
	"skin rash":           {"Physical examination", "Blood tests"},
}

// ruleConditions is checked in order by the fallback analyzer.
var ruleConditions = []string{
	"chest pain",
	"headache",
	"abdominal pain",
	"back pain",
	"fever",
}

const generalConsultation = "general consultation needed"

var procedureCodes = map[string]string{
	"ECG":                  "93000",
	"Chest X-ray":          "71020",
	"Blood tests":          "80053",
	"CT scan":              "74150",
	"MRI":                  "73721",
	"Ultrasound":           "76700",
	"Physical examination": "99213",
	"X-ray":                "73610",
	"Endoscopy":            "43235",
	"Stress test":          "93015",
}

const genericProcedureCode = "99999"

type Analyzer struct {
	catalog   *catalog.Store
	completer Completer
	log       logger.Logger
}

// NewAnalyzer builds an analyzer. completer may be nil, in which case
// only the rule fallback runs.
func NewAnalyzer(store *catalog.Store, completer Completer, log logger.Logger) *Analyzer {
	return &Analyzer{catalog: store, completer: completer, log: log}
}

// AnalyzeSymptoms names the likely condition for a symptom description.
func (a *Analyzer) AnalyzeSymptoms(ctx context.Context, symptoms string) string {
	if a.completer != nil {
		condition, err := a.completer.Complete(ctx, analysisPrompt, fmt.Sprintf("Symptoms: %s", symptoms))
		if err == nil && condition != "" {
			return condition
		}
		metrics.CompletionFallbacks.Inc()
		a.log.WithError(err).Warn("Completion analysis failed, using rules", map[string]interface{}{
			"symptoms": symptoms,
		})
	}
	return fallbackAnalysis(symptoms)
}

func fallbackAnalysis(symptoms string) string {
	lower := strings.ToLower(symptoms)
	for _, condition := range ruleConditions {
		if strings.Contains(lower, condition) {
			return condition
		}
	}
	return generalConsultation
}

// RecommendedProcedures lists the procedures usually ordered for a
// condition. Catalog data wins over the built-in mapping.
func (a *Analyzer) RecommendedProcedures(condition string) []string {
	if a.catalog != nil {
		if entry, ok := a.catalog.FindCondition(condition); ok {
			return entry.CommonProcedures
		}
	}
	return conditionProcedures[strings.ToLower(condition)]
}

// ProcedureCodes resolves CPT codes for procedures, with a generic code
// for anything unlisted.
func ProcedureCodes(procedures []string) []models.ProcedureCode {
	codes := make([]models.ProcedureCode, 0, len(procedures))
	for _, p := range procedures {
		code, ok := procedureCodes[p]
		if !ok {
			code = genericProcedureCode
		}
		codes = append(codes, models.ProcedureCode{Procedure: p, Code: code})
	}
	return codes
}
