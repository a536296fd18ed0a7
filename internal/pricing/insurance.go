// internal/pricing/insurance.go
package pricing

import (
	"finhealth-assistant/internal/common/errors"
	"finhealth-assistant/internal/models"
)

// Estimate computes insured and uninsured out-of-pocket cost for the total
// base price of the given procedures in a location. The insured cost is the
// plan's coverage amount clamped between deductible and out-of-pocket max;
// the uninsured cost applies the configured flat cash discount.
func (e *Engine) Estimate(carrier string, procedures []string, location string) (*models.CoverageEstimate, error) {
	plan, planName, found := e.catalog.FindPlan(carrier)
	if !found {
		return nil, errors.NewUnknownInsuranceError(carrier)
	}

	quotes, _, err := e.Compare(procedures, location)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, errors.NewUnknownLocationError(location)
	}

	// The lowest base total across providers is the reference cost.
	total := quotes[0].TotalCost
	for _, q := range quotes[1:] {
		if q.TotalCost < total {
			total = q.TotalCost
		}
	}

	coverageAmount := total * plan.CoveragePercent
	insured := coverageAmount
	if insured < plan.Deductible {
		insured = plan.Deductible
	}
	if insured > plan.OutOfPocketMax {
		insured = plan.OutOfPocketMax
	}
	uninsured := total * (1 - e.uninsuredDiscount)

	return &models.CoverageEstimate{
		InsurancePlan:           planName,
		TotalProceduresCost:     total,
		InsuredCost:             insured,
		UninsuredCost:           uninsured,
		SavingsWithInsurance:    nonNegative(total - insured),
		SavingsWithoutInsurance: nonNegative(total - uninsured),
		Deductible:              plan.Deductible,
		OutOfPocketMax:          plan.OutOfPocketMax,
		CoveragePercent:         plan.CoveragePercent,
	}, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
