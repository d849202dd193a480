package interfaces

import (
	"context"

	"github.com/openfund/crowdsale-ledger-system/internal/models"
)

type SaleStore interface {
	SaveEntry(ctx context.Context, entry models.LedgerEntry) error
	GetEntriesByContributor(contributor string) ([]models.LedgerEntry, error)
	GetLedgerEntries() ([]models.LedgerEntry, error)
}
