// Package domain provides core domain models and types.
package domain

import "time"

// Currency represents a currency code.
// The tracker supports a closed set: ILS is the reporting currency,
// USD and EUR are the foreign currencies positions may trade in.
type Currency string

const (
	CurrencyILS Currency = "ILS"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists the closed currency set, reporting currency first.
var Currencies = []Currency{CurrencyILS, CurrencyUSD, CurrencyEUR}

// ReportingCurrency is the currency all portfolio totals are normalized to.
const ReportingCurrency = CurrencyILS

// TransactionType represents the type of a holding transaction.
type TransactionType string

const (
	TransactionBuy      TransactionType = "buy"
	TransactionSell     TransactionType = "sell"
	TransactionDividend TransactionType = "dividend"
	TransactionSplit    TransactionType = "split"
)

// Transaction is a single entry in a holding's append-only transaction log.
// Transactions are immutable once created.
type Transaction struct {
	ID            string          `json:"id"`
	HoldingID     string          `json:"holding_id"`
	Type          TransactionType `json:"type"`
	Date          time.Time       `json:"date"`
	Shares        float64         `json:"shares"`
	PricePerShare float64         `json:"price_per_share"`
	Fees          float64         `json:"fees"`
	Note          string          `json:"note,omitempty"`
}

// Holding represents an equity or ETF position.
//
// Shares is the authoritative share count for valuation. The transaction
// log is an audit trail used for cost basis and tax computations; the two
// can be reconciled but Shares wins for market value.
type Holding struct {
	ID           string        `json:"id"`
	Symbol       string        `json:"symbol"`
	Name         string        `json:"name"`
	Shares       float64       `json:"shares"`
	Currency     Currency      `json:"currency"`
	GroupID      string        `json:"group_id,omitempty"`
	CurrentPrice float64       `json:"current_price"`
	LastUpdated  time.Time     `json:"last_updated"`
	Transactions []Transaction `json:"transactions"`
}

// Bond represents a bond position. CostBasis is the stored total in the
// reporting currency (resolved at entry time, not recomputed per unit).
type Bond struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Units        float64    `json:"units"`
	CostBasis    float64    `json:"cost_basis"`
	CurrentPrice float64    `json:"current_price"`
	LastUpdated  time.Time  `json:"last_updated"`
	MaturityDate *time.Time `json:"maturity_date,omitempty"`
	CouponRate   float64    `json:"coupon_rate,omitempty"`
}

// Group is a user-defined allocation bucket with a target percentage.
// Targets are expected to sum to 100 across groups but this is not enforced.
type Group struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	TargetPct float64 `json:"target_pct"`
	Color     string  `json:"color,omitempty"`
}

// CashTransactionType represents the type of a cash account movement.
type CashTransactionType string

const (
	CashDeposit    CashTransactionType = "deposit"
	CashWithdrawal CashTransactionType = "withdrawal"
	CashExchange   CashTransactionType = "exchange"
	CashDividend   CashTransactionType = "dividend"
	CashInterest   CashTransactionType = "interest"
)

// CashTransaction is a single movement on a cash account.
type CashTransaction struct {
	ID               string              `json:"id"`
	Currency         Currency            `json:"currency"`
	Type             CashTransactionType `json:"type"`
	Amount           float64             `json:"amount"`
	Date             time.Time           `json:"date"`
	Note             string              `json:"note,omitempty"`
	RelatedHoldingID string              `json:"related_holding_id,omitempty"`
}

// CashAccount holds the balance for a single currency.
type CashAccount struct {
	Currency     Currency          `json:"currency"`
	Balance      float64           `json:"balance"`
	Transactions []CashTransaction `json:"transactions"`
}

// ExchangeRates holds conversion factors from each foreign currency to the
// reporting currency (ILS), plus the time the table was last refreshed.
// The table is total over the closed currency set; a missing rate is a
// programming error, not a runtime condition.
type ExchangeRates struct {
	Rates       map[Currency]float64 `json:"rates"`
	LastUpdated time.Time            `json:"last_updated"`
}

// Rate returns the conversion factor from the given currency to ILS.
// The reporting currency converts at 1.
func (r ExchangeRates) Rate(c Currency) float64 {
	if c == ReportingCurrency {
		return 1
	}
	return r.Rates[c]
}

// SnapshotTrigger represents the reason a snapshot was recorded.
type SnapshotTrigger string

const (
	SnapshotDeposit    SnapshotTrigger = "deposit"
	SnapshotWithdrawal SnapshotTrigger = "withdrawal"
	SnapshotManual     SnapshotTrigger = "manual"
	SnapshotDaily      SnapshotTrigger = "daily"
)

// Snapshot is a point-in-time valuation record. ValueBeforeFlow is the
// portfolio value immediately before any cash flow that day; CashFlow is the
// signed flow amount. Together they reconstruct the post-flow value. All
// amounts are in the reporting currency.
type Snapshot struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Trigger         SnapshotTrigger `json:"trigger"`
	ValueBeforeFlow float64         `json:"value_before_flow"`
	CashFlow        float64         `json:"cash_flow"`
	Stocks          float64         `json:"stocks"`
	Bonds           float64         `json:"bonds"`
	Cash            float64         `json:"cash"`
}

// TotalValue returns the stocks+bonds+cash breakdown total.
func (s Snapshot) TotalValue() float64 {
	return s.Stocks + s.Bonds + s.Cash
}
