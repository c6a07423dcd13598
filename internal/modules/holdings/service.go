package holdings

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
)

// RatesProvider supplies the latest exchange rates for valuation.
type RatesProvider interface {
	GetRates() (domain.ExchangeRates, error)
}

// Service provides holding management and valuation.
type Service struct {
	repo  *Repository
	rates RatesProvider
	log   zerolog.Logger
}

// NewService creates a new holdings service
func NewService(repo *Repository, rates RatesProvider, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		rates: rates,
		log:   log.With().Str("service", "holdings").Logger(),
	}
}

// GetAll returns all holdings without valuation.
func (s *Service) GetAll() ([]domain.Holding, error) {
	return s.repo.GetAll()
}

// GetAllWithCalculations returns all holdings valuated against the current
// exchange rates.
func (s *Service) GetAllWithCalculations() ([]HoldingWithCalculations, error) {
	list, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	rates, err := s.rates.GetRates()
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rates: %w", err)
	}

	return ValuateAll(list, rates), nil
}

// TotalMarketValueILS returns the combined market value of all holdings
// in the reporting currency.
func (s *Service) TotalMarketValueILS() (float64, error) {
	valuated, err := s.GetAllWithCalculations()
	if err != nil {
		return 0, err
	}

	var total float64
	for _, h := range valuated {
		total += h.MarketValueILS
	}
	return total, nil
}

// GetByID returns one valuated holding.
func (s *Service) GetByID(id string) (*HoldingWithCalculations, error) {
	h, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	rates, err := s.rates.GetRates()
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rates: %w", err)
	}

	calc := Valuate(*h, rates)
	return &calc, nil
}

// Create validates and stores a new holding.
func (s *Service) Create(h *domain.Holding) error {
	if h.Symbol == "" {
		return fmt.Errorf("holding symbol is required")
	}
	if !validCurrency(h.Currency) {
		return fmt.Errorf("unsupported currency: %s", h.Currency)
	}
	if h.Shares < 0 {
		return fmt.Errorf("shares cannot be negative")
	}

	if err := s.repo.Create(h); err != nil {
		return err
	}

	s.log.Info().Str("symbol", h.Symbol).Str("id", h.ID).Msg("Holding created")
	return nil
}

// Update stores the mutable fields of an existing holding.
func (s *Service) Update(h *domain.Holding) error {
	if !validCurrency(h.Currency) {
		return fmt.Errorf("unsupported currency: %s", h.Currency)
	}
	if h.Shares < 0 {
		return fmt.Errorf("shares cannot be negative")
	}
	return s.repo.Update(h)
}

// Delete removes a holding and its transaction log.
func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("Holding deleted")
	return nil
}

// RecordTransaction appends a transaction and adjusts the stored share
// count for buys, sells and splits. The stored count stays authoritative;
// the log is the audit trail behind it.
func (s *Service) RecordTransaction(tx *domain.Transaction) error {
	h, err := s.repo.GetByID(tx.HoldingID)
	if err != nil {
		return err
	}

	if tx.Shares <= 0 && tx.Type != domain.TransactionDividend {
		return fmt.Errorf("transaction shares must be positive")
	}

	switch tx.Type {
	case domain.TransactionBuy:
		h.Shares += tx.Shares
	case domain.TransactionSell:
		if tx.Shares > h.Shares {
			return fmt.Errorf("cannot sell %.4f shares, only %.4f held", tx.Shares, h.Shares)
		}
		h.Shares -= tx.Shares
	case domain.TransactionSplit:
		// Shares carries the split ratio, e.g. 2 for a 2-for-1 split.
		h.Shares *= tx.Shares
	case domain.TransactionDividend:
		// Cash dividends do not change the share count.
	default:
		return fmt.Errorf("unknown transaction type: %s", tx.Type)
	}

	if err := s.repo.AddTransaction(tx); err != nil {
		return err
	}
	if err := s.repo.Update(h); err != nil {
		return err
	}

	s.log.Info().
		Str("holding_id", tx.HoldingID).
		Str("type", string(tx.Type)).
		Float64("shares", tx.Shares).
		Msg("Transaction recorded")
	return nil
}

// UpdatePrice stores a fresh market price for a holding.
func (s *Service) UpdatePrice(id string, price float64) error {
	if price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	h, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	h.CurrentPrice = price
	return s.repo.Update(h)
}

func validCurrency(c domain.Currency) bool {
	for _, known := range domain.Currencies {
		if c == known {
			return true
		}
	}
	return false
}
