package funds

import (
	"context"
	"sync"
	"time"

	interfaces "github.com/openfund/crowdsale-ledger-system/internal/interfaces"
	"github.com/shopspring/decimal"
)

// Payout is one completed outbound transfer.
type Payout struct {
	To     string
	Amount decimal.Decimal
	PaidAt time.Time
}

// MemoryGateway is an in-memory funds gateway that records every transfer
// it is asked to make. It stands in for the real payment rail.
type MemoryGateway struct {
	mu      sync.Mutex
	payouts []Payout
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		payouts: make([]Payout, 0),
	}
}

func (g *MemoryGateway) Transfer(ctx context.Context, to string, amount decimal.Decimal) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.payouts = append(g.payouts, Payout{
		To:     to,
		Amount: amount,
		PaidAt: time.Now().UTC(),
	})
	return nil
}

// Payouts returns a copy of all recorded transfers.
func (g *MemoryGateway) Payouts() []Payout {
	g.mu.Lock()
	defer g.mu.Unlock()

	copied := make([]Payout, len(g.payouts))
	copy(copied, g.payouts)
	return copied
}

var _ interfaces.FundsGateway = (*MemoryGateway)(nil)
