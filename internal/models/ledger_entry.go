package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryKind string

const (
	EntryContribution EntryKind = "contribution"
	EntryRefund       EntryKind = "refund"
)

// LedgerEntry is one audit record in the crowdsale ledger: either money
// coming in from a contributor or money paid back out to one.
type LedgerEntry struct {
	ID          string          // unique identifier
	Contributor string          // identity the entry belongs to
	Kind        EntryKind       // contribution or refund
	Amount      decimal.Decimal // smallest funding denomination, always positive
	CreatedAt   time.Time       // timestamp
}
