package scheduler

import (
	"github.com/rs/zerolog"
)

// RateRefresher pulls fresh exchange rates into the local store.
type RateRefresher interface {
	RefreshRates() error
}

// RateRefreshJob keeps the exchange rate table current.
type RateRefreshJob struct {
	rates RateRefresher
	log   zerolog.Logger
}

// NewRateRefreshJob creates a new rate refresh job
func NewRateRefreshJob(rates RateRefresher, log zerolog.Logger) *RateRefreshJob {
	return &RateRefreshJob{
		rates: rates,
		log:   log.With().Str("job", "rate_refresh").Logger(),
	}
}

// Name returns the job name
func (j *RateRefreshJob) Name() string {
	return "rate_refresh"
}

// Run refreshes all foreign currency rates.
func (j *RateRefreshJob) Run() error {
	return j.rates.RefreshRates()
}
