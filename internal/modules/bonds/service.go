package bonds

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// BondWithCalculations is a bond enriched with valuation results.
// All monetary amounts are in ILS.
type BondWithCalculations struct {
	domain.Bond
	MarketValue     float64 `json:"market_value"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}

// Service provides bond management and valuation.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new bonds service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "bonds").Logger(),
	}
}

// Valuate computes the market value and gain of a single bond.
func Valuate(b domain.Bond) BondWithCalculations {
	marketValue := b.Units * b.CurrentPrice
	gainLoss := marketValue - b.CostBasis

	var gainLossPercent float64
	if b.CostBasis > 0 {
		gainLossPercent = (gainLoss / b.CostBasis) * 100
	}

	return BondWithCalculations{
		Bond:            b,
		MarketValue:     marketValue,
		GainLoss:        gainLoss,
		GainLossPercent: gainLossPercent,
	}
}

// GetAllWithCalculations returns all bonds with their valuations.
func (s *Service) GetAllWithCalculations() ([]BondWithCalculations, error) {
	list, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get bonds: %w", err)
	}

	result := make([]BondWithCalculations, 0, len(list))
	for _, b := range list {
		result = append(result, Valuate(b))
	}
	return result, nil
}

// GetByID returns one valuated bond.
func (s *Service) GetByID(id string) (*BondWithCalculations, error) {
	b, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	calc := Valuate(*b)
	return &calc, nil
}

// TotalValue returns the combined market value of all bonds in ILS.
func (s *Service) TotalValue() (float64, error) {
	list, err := s.repo.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to get bonds: %w", err)
	}

	var total float64
	for _, b := range list {
		total += b.Units * b.CurrentPrice
	}
	return total, nil
}

// Create validates and stores a new bond.
func (s *Service) Create(b *domain.Bond) error {
	if b.Name == "" {
		return fmt.Errorf("bond name is required")
	}
	if b.Units < 0 {
		return fmt.Errorf("units cannot be negative")
	}
	if b.CostBasis < 0 {
		return fmt.Errorf("cost basis cannot be negative")
	}

	if err := s.repo.Create(b); err != nil {
		return err
	}

	s.log.Info().Str("name", b.Name).Str("id", b.ID).Msg("Bond created")
	return nil
}

// Update stores changed bond fields.
func (s *Service) Update(b *domain.Bond) error {
	if b.Units < 0 {
		return fmt.Errorf("units cannot be negative")
	}
	return s.repo.Update(b)
}

// Delete removes a bond.
func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("Bond deleted")
	return nil
}
