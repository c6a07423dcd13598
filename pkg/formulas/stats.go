// Package formulas provides pure numeric routines for portfolio analytics.
// All functions are side-effect free and return nil (not errors) when the
// input series is too short to produce a meaningful result.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PeriodsPerYear is the assumed snapshot cadence used for annualization.
// Snapshots are expected roughly monthly, so mean returns scale by 12 and
// deviations by sqrt(12).
const PeriodsPerYear = 12

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (n-1 denominator)
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the sample variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// CalculateReturns converts a value series to periodic percentage returns.
// Returns[i] = (Value[i+1] - Value[i]) / Value[i]. Pairs whose starting
// value is zero or negative are skipped rather than producing infinities.
func CalculateReturns(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}

	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] <= 0 {
			continue
		}
		returns = append(returns, (values[i]-values[i-1])/values[i-1])
	}

	return returns
}

// AnnualizedVolatility calculates annualized volatility from periodic
// returns, assuming the monthly cadence of PeriodsPerYear.
func AnnualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return StdDev(returns) * math.Sqrt(PeriodsPerYear)
}

// AnnualizedReturn converts a cumulative growth factor over spanDays into a
// compound annual growth rate. A span shorter than a day counts as one day.
//
// Formula: CAGR = cumulative^(365/spanDays) - 1
func AnnualizedReturn(cumulative float64, spanDays float64) float64 {
	if spanDays < 1 {
		spanDays = 1
	}
	years := spanDays / 365.0
	if years == 0 {
		return cumulative - 1
	}
	return math.Pow(cumulative, 1/years) - 1
}
