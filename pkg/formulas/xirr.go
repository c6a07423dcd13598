package formulas

import (
	"math"
	"time"
)

// CashFlow is a dated, signed amount used for money-weighted return
// calculations. Outflows from the investor (deposits) are negative,
// inflows (withdrawals, final value) positive.
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// XIRRConfig controls the Newton-Raphson iteration. Zero values fall back
// to the defaults, so XIRRConfig{} is a valid configuration.
type XIRRConfig struct {
	InitialGuess  float64 // starting rate, default 0.10
	Tolerance     float64 // stop when the rate moves less than this, default 1e-5
	MaxIterations int     // default 100
}

const derivativeFloor = 1e-10

func (c XIRRConfig) withDefaults() XIRRConfig {
	if c.InitialGuess == 0 {
		c.InitialGuess = 0.10
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-5
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	return c
}

// XIRR computes the money-weighted internal rate of return over irregularly
// dated cash flows by Newton-Raphson root-finding on the NPV function.
//
//	NPV(r)  = sum( amount / (1+r)^years )
//	NPV'(r) = sum( -years * amount / (1+r)^(years+1) )
//
// where years is measured from the first flow as days/365.
//
// Returns the rate as a percentage, or nil when fewer than 2 flows are given
// or the iteration fails to converge (including a near-zero derivative).
func XIRR(flows []CashFlow, cfg XIRRConfig) *float64 {
	if len(flows) < 2 {
		return nil
	}
	cfg = cfg.withDefaults()

	first := flows[0].Date
	for _, f := range flows {
		if f.Date.Before(first) {
			first = f.Date
		}
	}

	years := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = f.Date.Sub(first).Hours() / 24.0 / 365.0
	}

	rate := cfg.InitialGuess
	for i := 0; i < cfg.MaxIterations; i++ {
		var npv, derivative float64
		for j, f := range flows {
			base := 1 + rate
			if base <= 0 {
				// NPV is undefined left of -100%; treat as non-convergence.
				return nil
			}
			npv += f.Amount / math.Pow(base, years[j])
			derivative += -years[j] * f.Amount / math.Pow(base, years[j]+1)
		}

		if math.Abs(derivative) < derivativeFloor {
			return nil
		}

		next := rate - npv/derivative
		if math.Abs(next-rate) < cfg.Tolerance {
			result := next * 100
			return &result
		}
		rate = next
	}

	return nil
}
