// internal/pricing/compare.go

// Package pricing ranks providers by out-of-pocket cost and estimates
// insurance coverage.
package pricing

import (
	"fmt"
	"sort"
	"time"

	"finhealth-assistant/internal/catalog"
	"finhealth-assistant/internal/common/errors"
	"finhealth-assistant/internal/common/logger"
	"finhealth-assistant/internal/common/metrics"
	"finhealth-assistant/internal/models"
)

// Engine compares provider prices against a loaded catalog.
type Engine struct {
	catalog           *catalog.Store
	uninsuredDiscount float64
	log               logger.Logger
}

func NewEngine(store *catalog.Store, uninsuredDiscount float64, log logger.Logger) *Engine {
	return &Engine{
		catalog:           store,
		uninsuredDiscount: uninsuredDiscount,
		log:               log,
	}
}

// Compare prices the requested procedures at every provider in a location.
// Providers pricing none of the procedures are excluded; the rest are
// totaled over the procedures they do price. Results sort by cash total
// ascending, ties broken by rating descending. An empty result is a valid
// answer; an empty procedure list is a caller error.
func (e *Engine) Compare(procedures []string, location string) ([]models.ProviderQuote, string, error) {
	if len(procedures) == 0 {
		return nil, "", errors.NewNoProceduresError()
	}

	started := time.Now()
	providers, city, found := e.catalog.FindProviders(location)
	if !found {
		return nil, "", errors.NewUnknownLocationError(location)
	}

	var quotes []models.ProviderQuote
	for _, p := range providers {
		quote, priced := e.quoteProvider(p, procedures)
		if priced {
			quotes = append(quotes, quote)
		}
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		if quotes[i].TotalCashCost != quotes[j].TotalCashCost {
			return quotes[i].TotalCashCost < quotes[j].TotalCashCost
		}
		return quotes[i].Provider.Rating > quotes[j].Provider.Rating
	})

	metrics.ComparisonDuration.Observe(time.Since(started).Seconds())
	e.log.Debug("Comparison complete", map[string]interface{}{
		"city":       city,
		"procedures": procedures,
		"providers":  len(quotes),
	})
	return quotes, city, nil
}

func (e *Engine) quoteProvider(p models.Provider, procedures []string) (models.ProviderQuote, bool) {
	quote := models.ProviderQuote{
		Provider: models.ProviderSummary{
			Name:               p.Name,
			Rating:             p.Rating,
			Address:            p.Address,
			Phone:              p.Phone,
			Emergency:          p.Emergency,
			InsuranceAccepted:  p.InsuranceAccepted,
			Specialties:        p.Specialties,
			AverageWaitMinutes: p.AverageWaitMinutes,
		},
		CashDiscountPercent: p.CashDiscountPct * 100,
		EstimatedWait:       fmt.Sprintf("%d minutes", p.AverageWaitMinutes),
	}

	for _, name := range procedures {
		price, ok := p.Procedures[name]
		if !ok {
			continue
		}
		quote.Procedures = append(quote.Procedures, models.ProcedureCost{
			Procedure:      name,
			BasePrice:      price.BasePrice,
			CashPrice:      price.CashPrice,
			InsurancePrice: price.InsurancePrice,
			SavingsCash:    price.BasePrice - price.CashPrice,
		})
		quote.TotalCost += price.BasePrice
		quote.TotalCashCost += price.CashPrice
	}
	if len(quote.Procedures) == 0 {
		return models.ProviderQuote{}, false
	}
	quote.TotalSavingsCash = quote.TotalCost - quote.TotalCashCost
	return quote, true
}
