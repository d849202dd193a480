package token

import (
	"context"
	"sync"

	interfaces "github.com/openfund/crowdsale-ledger-system/internal/interfaces"
	"github.com/shopspring/decimal"
)

// MemoryIssuer is an in-memory token contract: it starts with zero supply,
// accumulates minted-but-locked units per beneficiary, and unlocks them all
// when the sale releases. Only the crowdsale ledger is expected to call
// Mint and Release.
type MemoryIssuer struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	supply   decimal.Decimal
	released bool
}

func NewMemoryIssuer() *MemoryIssuer {
	return &MemoryIssuer{
		balances: make(map[string]decimal.Decimal),
	}
}

// Mint credits locked units to a beneficiary.
func (i *MemoryIssuer) Mint(ctx context.Context, beneficiary string, units decimal.Decimal) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.balances[beneficiary] = i.balances[beneficiary].Add(units)
	i.supply = i.supply.Add(units)
	return nil
}

// Release unlocks everything minted so far. Idempotent.
func (i *MemoryIssuer) Release(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.released = true
	return nil
}

// BalanceOf returns the units minted to a beneficiary.
func (i *MemoryIssuer) BalanceOf(beneficiary string) decimal.Decimal {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.balances[beneficiary]
}

// TotalSupply returns the total units minted across all beneficiaries.
func (i *MemoryIssuer) TotalSupply() decimal.Decimal {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.supply
}

// Released reports whether the minted units have been unlocked.
func (i *MemoryIssuer) Released() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.released
}

var _ interfaces.TokenIssuer = (*MemoryIssuer)(nil)
