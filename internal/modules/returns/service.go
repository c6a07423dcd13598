package returns

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/pkg/formulas"
)

// SnapshotSource supplies the snapshot series for return calculations.
type SnapshotSource interface {
	GetAll() ([]domain.Snapshot, error)
	GetRange(from, to time.Time) ([]domain.Snapshot, error)
}

// Service computes portfolio returns from snapshots.
type Service struct {
	snapshots SnapshotSource
	log       zerolog.Logger
}

// NewService creates a new returns service
func NewService(snapshots SnapshotSource, log zerolog.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		log:       log.With().Str("service", "returns").Logger(),
	}
}

// GetTWR returns the time-weighted return over the whole series, or nil
// when fewer than two snapshots exist.
func (s *Service) GetTWR() (*TWRResult, error) {
	snaps, err := s.snapshots.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}
	return CalculateTWR(snaps), nil
}

// GetTWRForPeriod returns the time-weighted return within [from, to].
func (s *Service) GetTWRForPeriod(from, to time.Time) (*TWRResult, error) {
	snaps, err := s.snapshots.GetRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}
	return CalculateTWR(snaps), nil
}

// GetXIRR returns the annualized money-weighted return as a percentage,
// or nil when the series is too short or iteration fails to converge.
func (s *Service) GetXIRR() (*float64, error) {
	snaps, err := s.snapshots.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}

	flows := BuildCashFlows(snaps)
	result := formulas.XIRR(flows, formulas.XIRRConfig{})
	if result == nil {
		s.log.Debug().Int("flows", len(flows)).Msg("XIRR did not converge")
	}
	return result, nil
}
