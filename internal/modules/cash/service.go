package cash

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/currency"
)

// RatesProvider supplies exchange rates for reporting-currency totals.
type RatesProvider interface {
	GetRates() (domain.ExchangeRates, error)
}

// Snapshotter records a portfolio snapshot after an external flow.
type Snapshotter interface {
	CreateSnapshot(trigger domain.SnapshotTrigger, cashFlowILS float64) (*domain.Snapshot, error)
}

// Service manages cash balances. Deposits and withdrawals are external
// flows and trigger a snapshot; dividends, interest and exchanges move
// value inside the portfolio and do not.
type Service struct {
	repo        *Repository
	rates       RatesProvider
	snapshotter Snapshotter
	log         zerolog.Logger
}

// NewService creates a new cash service
func NewService(repo *Repository, rates RatesProvider, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		rates: rates,
		log:   log.With().Str("service", "cash").Logger(),
	}
}

// SetSnapshotter wires the snapshot service. Set after construction to
// break the cycle between cash and snapshots.
func (s *Service) SetSnapshotter(snapshotter Snapshotter) {
	s.snapshotter = snapshotter
}

// GetAccounts returns all cash accounts with their movement logs.
func (s *Service) GetAccounts() ([]domain.CashAccount, error) {
	return s.repo.GetAccounts()
}

// TotalBalanceILS returns the combined cash balance in the reporting currency.
func (s *Service) TotalBalanceILS() (float64, error) {
	accounts, err := s.repo.GetAccounts()
	if err != nil {
		return 0, err
	}

	rates, err := s.rates.GetRates()
	if err != nil {
		return 0, fmt.Errorf("failed to get exchange rates: %w", err)
	}

	var total float64
	for _, acc := range accounts {
		total += currency.Convert(acc.Balance, acc.Currency, rates)
	}
	return total, nil
}

// Deposit credits an account and records a deposit-triggered snapshot.
func (s *Service) Deposit(cur domain.Currency, amount float64, note string) error {
	if amount <= 0 {
		return fmt.Errorf("deposit amount must be positive")
	}

	tx := domain.CashTransaction{Currency: cur, Type: domain.CashDeposit, Amount: amount, Note: note}
	if err := s.repo.Apply(&tx); err != nil {
		return err
	}

	s.log.Info().Str("currency", string(cur)).Float64("amount", amount).Msg("Deposit recorded")
	return s.snapshotFlow(domain.SnapshotDeposit, cur, amount)
}

// Withdraw debits an account and records a withdrawal-triggered snapshot.
func (s *Service) Withdraw(cur domain.Currency, amount float64, note string) error {
	if amount <= 0 {
		return fmt.Errorf("withdrawal amount must be positive")
	}

	balance, err := s.repo.GetBalance(cur)
	if err != nil {
		return err
	}
	if amount > balance {
		return fmt.Errorf("insufficient %s balance: have %.2f, need %.2f", cur, balance, amount)
	}

	tx := domain.CashTransaction{Currency: cur, Type: domain.CashWithdrawal, Amount: -amount, Note: note}
	if err := s.repo.Apply(&tx); err != nil {
		return err
	}

	s.log.Info().Str("currency", string(cur)).Float64("amount", amount).Msg("Withdrawal recorded")
	return s.snapshotFlow(domain.SnapshotWithdrawal, cur, -amount)
}

// Exchange moves value between two currency accounts. Both legs are
// recorded; no snapshot is taken since total portfolio value is unchanged
// up to the spread.
func (s *Service) Exchange(from, to domain.Currency, fromAmount, toAmount float64, note string) error {
	if from == to {
		return fmt.Errorf("cannot exchange %s into itself", from)
	}
	if fromAmount <= 0 || toAmount <= 0 {
		return fmt.Errorf("exchange amounts must be positive")
	}

	balance, err := s.repo.GetBalance(from)
	if err != nil {
		return err
	}
	if fromAmount > balance {
		return fmt.Errorf("insufficient %s balance: have %.2f, need %.2f", from, balance, fromAmount)
	}

	debit := domain.CashTransaction{Currency: from, Type: domain.CashExchange, Amount: -fromAmount, Note: note}
	if err := s.repo.Apply(&debit); err != nil {
		return err
	}
	credit := domain.CashTransaction{Currency: to, Type: domain.CashExchange, Amount: toAmount, Note: note}
	if err := s.repo.Apply(&credit); err != nil {
		return err
	}

	s.log.Info().
		Str("from", string(from)).
		Str("to", string(to)).
		Float64("from_amount", fromAmount).
		Float64("to_amount", toAmount).
		Msg("Exchange recorded")
	return nil
}

// RecordDividend credits a dividend payout to the account matching the
// holding's currency. Dividends are internal income, not external flows.
func (s *Service) RecordDividend(cur domain.Currency, amount float64, holdingID, note string) error {
	if amount <= 0 {
		return fmt.Errorf("dividend amount must be positive")
	}

	tx := domain.CashTransaction{
		Currency:         cur,
		Type:             domain.CashDividend,
		Amount:           amount,
		Note:             note,
		RelatedHoldingID: holdingID,
	}
	if err := s.repo.Apply(&tx); err != nil {
		return err
	}

	s.log.Info().
		Str("currency", string(cur)).
		Float64("amount", amount).
		Str("holding_id", holdingID).
		Msg("Dividend recorded")
	return nil
}

// RecordInterest credits interest income to an account.
func (s *Service) RecordInterest(cur domain.Currency, amount float64, note string) error {
	if amount <= 0 {
		return fmt.Errorf("interest amount must be positive")
	}

	tx := domain.CashTransaction{Currency: cur, Type: domain.CashInterest, Amount: amount, Note: note}
	return s.repo.Apply(&tx)
}

// snapshotFlow records a flow-triggered snapshot with the flow converted
// to the reporting currency. Snapshot failures are logged, not returned:
// the movement itself already committed.
func (s *Service) snapshotFlow(trigger domain.SnapshotTrigger, cur domain.Currency, amount float64) error {
	if s.snapshotter == nil {
		return nil
	}

	rates, err := s.rates.GetRates()
	if err != nil {
		s.log.Warn().Err(err).Msg("Skipping flow snapshot, no exchange rates")
		return nil
	}

	if _, err := s.snapshotter.CreateSnapshot(trigger, currency.Convert(amount, cur, rates)); err != nil {
		s.log.Warn().Err(err).Msg("Failed to record flow snapshot")
	}
	return nil
}
