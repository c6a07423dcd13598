package currency

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// RateSource defines the contract for fetching a conversion factor between
// two currencies. Implemented by the exchangerate client.
type RateSource interface {
	GetRate(from, to domain.Currency) (float64, error)
}

// Service exposes the rate table and keeps it refreshed from a RateSource.
type Service struct {
	repo   *Repository
	source RateSource
	log    zerolog.Logger
}

// NewService creates a new currency service.
// source is optional - if nil, RefreshRates is a no-op and the stored table
// is served as-is.
func NewService(repo *Repository, source RateSource, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		source: source,
		log:    log.With().Str("service", "currency").Logger(),
	}
}

// GetRates returns the current rate table from storage.
func (s *Service) GetRates() (domain.ExchangeRates, error) {
	return s.repo.GetAll()
}

// Convert normalizes an amount to the reporting currency using the stored
// rate table.
func (s *Service) Convert(amount float64, cur domain.Currency) (float64, error) {
	rates, err := s.repo.GetAll()
	if err != nil {
		return 0, err
	}
	return Convert(amount, cur, rates), nil
}

// RefreshRates fetches the conversion factor for every foreign currency and
// stores it. A single failed currency does not abort the refresh; the error
// of the last failure is returned so schedulers can log it.
func (s *Service) RefreshRates() error {
	if s.source == nil {
		return nil
	}

	now := time.Now()
	var lastErr error
	for _, cur := range domain.Currencies {
		if cur == domain.ReportingCurrency {
			continue
		}
		rate, err := s.source.GetRate(cur, domain.ReportingCurrency)
		if err != nil {
			s.log.Warn().Err(err).Str("currency", string(cur)).Msg("Failed to fetch rate")
			lastErr = fmt.Errorf("failed to fetch rate for %s: %w", cur, err)
			continue
		}
		if err := s.repo.Upsert(cur, rate, now); err != nil {
			lastErr = err
			continue
		}
		s.log.Debug().Str("currency", string(cur)).Float64("rate", rate).Msg("Rate refreshed")
	}

	return lastErr
}
