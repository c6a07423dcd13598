package allocation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/holdings"
)

// HoldingsProvider supplies valuated holdings for allocation math.
type HoldingsProvider interface {
	GetAllWithCalculations() ([]holdings.HoldingWithCalculations, error)
}

// Service computes allocation breakdowns against group targets.
type Service struct {
	repo      *Repository
	holdings  HoldingsProvider
	threshold float64
	log       zerolog.Logger
}

// NewService creates a new allocation service. threshold is the absolute
// deviation in percentage points that flags a group for rebalancing.
func NewService(repo *Repository, holdings HoldingsProvider, threshold float64, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		holdings:  holdings,
		threshold: threshold,
		log:       log.With().Str("service", "allocation").Logger(),
	}
}

// GetAllocation returns the current allocation breakdown.
func (s *Service) GetAllocation() (AllocationResult, error) {
	groups, err := s.repo.GetAllGroups()
	if err != nil {
		return AllocationResult{}, fmt.Errorf("failed to get groups: %w", err)
	}

	valuated, err := s.holdings.GetAllWithCalculations()
	if err != nil {
		return AllocationResult{}, fmt.Errorf("failed to get valuated holdings: %w", err)
	}

	return CalculateGroupAllocation(groups, valuated, s.threshold), nil
}

// GetGroups returns all groups.
func (s *Service) GetGroups() ([]domain.Group, error) {
	return s.repo.GetAllGroups()
}

// CreateGroup validates and stores a new group.
func (s *Service) CreateGroup(g *domain.Group) error {
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	if g.TargetPct < 0 || g.TargetPct > 100 {
		return fmt.Errorf("target percentage must be between 0 and 100")
	}
	return s.repo.CreateGroup(g)
}

// UpdateGroup stores changed group fields.
func (s *Service) UpdateGroup(g *domain.Group) error {
	if g.TargetPct < 0 || g.TargetPct > 100 {
		return fmt.Errorf("target percentage must be between 0 and 100")
	}
	return s.repo.UpdateGroup(g)
}

// DeleteGroup removes a group; member holdings become ungrouped.
func (s *Service) DeleteGroup(id string) error {
	return s.repo.DeleteGroup(id)
}
