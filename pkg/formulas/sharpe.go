package formulas

import (
	"math"
)

// MinReturnsForRatio is the minimum number of periodic returns required
// before Sharpe/Sortino ratios are considered computable. Below this the
// ratio is nil, which callers treat as "not yet computable".
const MinReturnsForRatio = 12

// CalculateSharpeRatio calculates the annualized Sharpe Ratio from periodic
// (monthly-cadence) returns.
//
// Sharpe Formula:
//
//	Sharpe = (Annualized Mean Return - Risk-free Rate) / Annualized Std Dev
//	Annualized Mean = mean(returns) * 12
//	Annualized Std Dev = stddev(returns) * sqrt(12)
//
// Args:
//
//	returns: periodic returns as decimals (0.01 = 1%)
//	riskFreeRate: annual risk-free rate as decimal (e.g. 0.04 for 4%)
//
// Returns:
//
//	Sharpe ratio, or nil with fewer than MinReturnsForRatio returns or a
//	zero standard deviation.
func CalculateSharpeRatio(returns []float64, riskFreeRate float64) *float64 {
	if len(returns) < MinReturnsForRatio {
		return nil
	}

	annualizedMean := Mean(returns) * PeriodsPerYear
	annualizedStdDev := StdDev(returns) * math.Sqrt(PeriodsPerYear)
	if annualizedStdDev == 0 {
		return nil
	}

	sharpe := (annualizedMean - riskFreeRate) / annualizedStdDev
	return &sharpe
}

// CalculateSortinoRatio calculates the annualized Sortino Ratio (downside
// deviation version of Sharpe). Only returns below the target contribute to
// the denominator, and downside variance uses the population form (divide by
// the count of downside returns, not n-1).
//
// Args:
//
//	returns: periodic returns as decimals
//	riskFreeRate: annual risk-free rate as decimal
//	targetReturn: periodic Minimum Acceptable Return (default 0)
//
// Returns:
//
//	Sortino ratio, or nil with fewer than MinReturnsForRatio returns or a
//	zero downside deviation.
func CalculateSortinoRatio(returns []float64, riskFreeRate float64, targetReturn float64) *float64 {
	if len(returns) < MinReturnsForRatio {
		return nil
	}

	var downsideSquaredSum float64
	downsideCount := 0
	for _, ret := range returns {
		if ret < targetReturn {
			deviation := ret - targetReturn
			downsideSquaredSum += deviation * deviation
			downsideCount++
		}
	}
	if downsideCount == 0 {
		return nil
	}

	downsideDeviation := math.Sqrt(downsideSquaredSum / float64(downsideCount))
	if downsideDeviation == 0 {
		return nil
	}
	annualizedDownside := downsideDeviation * math.Sqrt(PeriodsPerYear)

	annualizedMean := Mean(returns) * PeriodsPerYear
	sortino := (annualizedMean - riskFreeRate) / annualizedDownside
	return &sortino
}
