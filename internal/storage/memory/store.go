package memory

import (
	"context"
	"sync"

	interfaces "github.com/openfund/crowdsale-ledger-system/internal/interfaces"
	"github.com/openfund/crowdsale-ledger-system/internal/models"
)

// MemorySaleStore is an in-memory implementation of interfaces.SaleStore.
// It keeps audit entries in a slice and is safe for concurrent use.
type MemorySaleStore struct {
	mu      sync.Mutex
	entries []models.LedgerEntry
}

// NewMemorySaleStore creates and returns a new MemorySaleStore instance.
func NewMemorySaleStore() *MemorySaleStore {
	return &MemorySaleStore{
		entries: make([]models.LedgerEntry, 0),
	}
}

// SaveEntry appends an audit entry. Always succeeds in memory.
func (m *MemorySaleStore) SaveEntry(ctx context.Context, entry models.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	return nil
}

// GetLedgerEntries returns a copy of all audit entries, so external code
// cannot modify internal state.
func (m *MemorySaleStore) GetLedgerEntries() ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.LedgerEntry, len(m.entries))
	copy(copied, m.entries)
	return copied, nil
}

// GetEntriesByContributor returns all entries recorded for one contributor.
func (m *MemorySaleStore) GetEntriesByContributor(contributor string) ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.LedgerEntry
	for _, e := range m.entries {
		if e.Contributor == contributor {
			result = append(result, e)
		}
	}
	return result, nil
}

// Compile-time check: ensure MemorySaleStore implements SaleStore.
var _ interfaces.SaleStore = (*MemorySaleStore)(nil)
