// Package currency provides currency normalization to the reporting currency
// and persistence for the exchange-rate table.
package currency

import "github.com/foliotracker/folio/internal/domain"

// Convert converts an amount denominated in the given currency to the
// reporting currency (ILS) using the rate table. Amounts already in ILS are
// returned unchanged. The rate table is total over the closed currency set,
// so there is no error path: a missing rate is a programming error.
func Convert(amount float64, cur domain.Currency, rates domain.ExchangeRates) float64 {
	if cur == domain.ReportingCurrency {
		return amount
	}
	return amount * rates.Rate(cur)
}
