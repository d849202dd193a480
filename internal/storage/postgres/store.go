package postgres

import (
	"context"
	"database/sql"

	interfaces "github.com/openfund/crowdsale-ledger-system/internal/interfaces"
	"github.com/openfund/crowdsale-ledger-system/internal/models"
)

// PostgresSaleStore persists crowdsale audit entries in the
// crowdsale_entries table.
type PostgresSaleStore struct {
	db *sql.DB
}

func NewPostgresSaleStore(db *sql.DB) *PostgresSaleStore {
	return &PostgresSaleStore{
		db: db,
	}
}

func (p *PostgresSaleStore) SaveEntry(ctx context.Context, entry models.LedgerEntry) error {
	const query = `INSERT INTO crowdsale_entries (id, contributor, kind, amount, created_at)
	VALUES ($1,$2,$3,$4,$5)`

	_, err := p.db.ExecContext(ctx, query, entry.ID, entry.Contributor, string(entry.Kind), entry.Amount, entry.CreatedAt)
	return err
}

func (p *PostgresSaleStore) GetLedgerEntries() ([]models.LedgerEntry, error) {
	const query = `SELECT id, contributor, kind, amount, created_at from crowdsale_entries`

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var kind string
		err := rows.Scan(
			&entry.ID,
			&entry.Contributor,
			&kind,
			&entry.Amount,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entry.Kind = models.EntryKind(kind)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (p *PostgresSaleStore) GetEntriesByContributor(contributor string) ([]models.LedgerEntry, error) {
	const query = `SELECT id, contributor, kind, amount, created_at from crowdsale_entries
	WHERE contributor = $1`

	rows, err := p.db.Query(query, contributor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		var kind string
		if err := rows.Scan(&entry.ID, &entry.Contributor, &kind, &entry.Amount, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Kind = models.EntryKind(kind)
		entries = append(entries, entry)
	}
	return entries, nil
}

var _ interfaces.SaleStore = (*PostgresSaleStore)(nil)
