package snapshots

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// StocksSource supplies the combined holdings value in ILS.
type StocksSource interface {
	TotalMarketValueILS() (float64, error)
}

// BondsSource supplies the combined bond value in ILS.
type BondsSource interface {
	TotalValue() (float64, error)
}

// CashSource supplies the combined cash balance in ILS.
type CashSource interface {
	TotalBalanceILS() (float64, error)
}

// Service creates and serves portfolio snapshots.
type Service struct {
	repo   *Repository
	stocks StocksSource
	bonds  BondsSource
	cash   CashSource
	log    zerolog.Logger
}

// NewService creates a new snapshots service
func NewService(repo *Repository, stocks StocksSource, bonds BondsSource, cash CashSource, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		stocks: stocks,
		bonds:  bonds,
		cash:   cash,
		log:    log.With().Str("service", "snapshots").Logger(),
	}
}

// GetAll returns the full snapshot series, oldest first.
func (s *Service) GetAll() ([]domain.Snapshot, error) {
	return s.repo.GetAll()
}

// GetRange returns snapshots within the given period, oldest first.
func (s *Service) GetRange(from, to time.Time) ([]domain.Snapshot, error) {
	return s.repo.GetRange(from, to)
}

// CreateSnapshot measures the portfolio and records a snapshot. cashFlow is
// the external flow that triggered the snapshot (positive for deposits,
// negative for withdrawals) and is assumed to already be reflected in the
// measured cash balance, so the stored value_before_flow backs it out.
func (s *Service) CreateSnapshot(trigger domain.SnapshotTrigger, cashFlow float64) (*domain.Snapshot, error) {
	stocks, err := s.stocks.TotalMarketValueILS()
	if err != nil {
		return nil, fmt.Errorf("failed to value holdings: %w", err)
	}
	bonds, err := s.bonds.TotalValue()
	if err != nil {
		return nil, fmt.Errorf("failed to value bonds: %w", err)
	}
	cash, err := s.cash.TotalBalanceILS()
	if err != nil {
		return nil, fmt.Errorf("failed to value cash: %w", err)
	}

	snap := &domain.Snapshot{
		Date:            time.Now().UTC(),
		Trigger:         trigger,
		ValueBeforeFlow: stocks + bonds + cash - cashFlow,
		CashFlow:        cashFlow,
		Stocks:          stocks,
		Bonds:           bonds,
		Cash:            cash,
	}

	if err := s.repo.Create(snap); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("trigger", string(trigger)).
		Float64("value_before_flow", snap.ValueBeforeFlow).
		Float64("cash_flow", cashFlow).
		Msg("Snapshot created")

	return snap, nil
}

// CreateDailySnapshot records a daily snapshot unless one already exists
// for today. Returns the snapshot, or nil when skipped.
func (s *Service) CreateDailySnapshot() (*domain.Snapshot, error) {
	exists, err := s.repo.ExistsOnDay(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.Debug().Msg("Daily snapshot already exists, skipping")
		return nil, nil
	}

	return s.CreateSnapshot(domain.SnapshotDaily, 0)
}

// Delete removes a snapshot from the series.
func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}
