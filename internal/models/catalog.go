// internal/models/catalog.go
package models

// ProcedurePrice is the price triple a provider publishes for one procedure.
// Invariant: CashPrice <= BasePrice and InsurancePrice <= BasePrice.
type ProcedurePrice struct {
	BasePrice      float64 `json:"base_price"`
	CashPrice      float64 `json:"cash_price"`
	InsurancePrice float64 `json:"insurance_price"`
}

// Provider is one medical facility in the catalog.
type Provider struct {
	ID                 string                    `json:"id,omitempty"`
	Name               string                    `json:"name"`
	Location           string                    `json:"location,omitempty"`
	Rating             float64                   `json:"rating"`
	Address            string                    `json:"address,omitempty"`
	Phone              string                    `json:"phone,omitempty"`
	Emergency          bool                      `json:"emergency"`
	Specialties        []string                  `json:"specialties,omitempty"`
	InsuranceAccepted  []string                  `json:"insurance_accepted,omitempty"`
	CashDiscountPct    float64                   `json:"cash_discount,omitempty"`
	AverageWaitMinutes int                       `json:"average_wait_time,omitempty"`
	Procedures         map[string]ProcedurePrice `json:"procedures"`
}

// Procedure is the catalog description of a billable procedure.
type Procedure struct {
	CanonicalName    string  `json:"canonical_name"`
	DisplayName      string  `json:"display_name,omitempty"`
	Description      string  `json:"description,omitempty"`
	DurationMinutes  int     `json:"duration_minutes,omitempty"`
	PrepNotes        string  `json:"prep_notes,omitempty"`
	NationalCostLow  float64 `json:"national_cost_low,omitempty"`
	NationalCostHigh float64 `json:"national_cost_high,omitempty"`
}

// InsurancePlan describes one carrier's plan terms.
type InsurancePlan struct {
	Carrier         string  `json:"carrier,omitempty"`
	Deductible      float64 `json:"deductible"`
	OutOfPocketMax  float64 `json:"out_of_pocket_max"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// Condition maps a diagnosed condition to the procedures usually ordered for it.
type Condition struct {
	Name             string   `json:"name,omitempty"`
	Description      string   `json:"description,omitempty"`
	CommonProcedures []string `json:"common_procedures"`
}

// CatalogFile mirrors the JSON layout produced by the data collaborator:
// hospitals keyed state -> city -> providers.
type CatalogFile struct {
	Hospitals         map[string]map[string][]Provider `json:"hospitals"`
	InsurancePlans    map[string]InsurancePlan         `json:"insurance_plans"`
	MedicalConditions map[string]Condition             `json:"medical_conditions"`
}

// ProcedureCost is one priced line inside a ProviderQuote.
type ProcedureCost struct {
	Procedure      string  `json:"procedure"`
	BasePrice      float64 `json:"base_price"`
	CashPrice      float64 `json:"cash_price"`
	InsurancePrice float64 `json:"insurance_price"`
	SavingsCash    float64 `json:"savings_cash"`
}

// ProviderSummary is the provider slice of a quote shown to callers.
type ProviderSummary struct {
	Name               string   `json:"name"`
	Rating             float64  `json:"rating"`
	Address            string   `json:"address,omitempty"`
	Phone              string   `json:"phone,omitempty"`
	Emergency          bool     `json:"emergency"`
	InsuranceAccepted  []string `json:"insurance_accepted,omitempty"`
	Specialties        []string `json:"specialties,omitempty"`
	AverageWaitMinutes int      `json:"average_wait_time"`
}

// ProviderQuote is one provider's priced answer to a comparison request.
// Totals cover only the procedures the provider actually prices.
type ProviderQuote struct {
	Provider            ProviderSummary `json:"hospital"`
	Procedures          []ProcedureCost `json:"procedures"`
	TotalCost           float64         `json:"total_cost"`
	TotalCashCost       float64         `json:"total_cash_cost"`
	TotalSavingsCash    float64         `json:"total_savings_cash"`
	CashDiscountPercent float64         `json:"cash_discount_percent"`
	EstimatedWait       string          `json:"estimated_wait_time"`
}

// CoverageEstimate is the insurance estimator's result for a total cost.
type CoverageEstimate struct {
	InsurancePlan           string  `json:"insurance_plan"`
	TotalProceduresCost     float64 `json:"total_procedures_cost"`
	InsuredCost             float64 `json:"insured_cost"`
	UninsuredCost           float64 `json:"uninsured_cost"`
	SavingsWithInsurance    float64 `json:"savings_with_insurance"`
	SavingsWithoutInsurance float64 `json:"savings_without_insurance"`
	Deductible              float64 `json:"deductible"`
	OutOfPocketMax          float64 `json:"out_of_pocket_max"`
	CoveragePercent         float64 `json:"coverage_percent"`
}

// ProcedureCode pairs a procedure with its CPT/HCPCS billing code.
type ProcedureCode struct {
	Procedure string `json:"procedure"`
	Code      string `json:"code"`
}
