package pgsql

import (
	"context"
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	"github.com/ganges/ganges_backend/internal/models"
	"github.com/ganges/ganges_backend/internal/utils/mapping"
	"github.com/ganges/ganges_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const defaultEntriesPageSize = 20

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(base BaseRepository) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: base}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `entry_id, account_id, amount, reason, shipment_id, related_entry_id, idempotency_key, note, created_at, created_by`

func scanLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.AccountID,
			&m.Amount,
			&m.Reason,
			&m.ShipmentID,
			&m.RelatedEntryID,
			&m.IdempotencyKey,
			&m.Note,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, err
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	return entries, rows.Err()
}

// InsertEntry appends one ledger entry within tx.
func (r *PgxLedgerRepository) InsertEntry(ctx context.Context, tx portsrepo.Tx, entry domain.LedgerEntry) error {
	q, err := r.requireTx(tx)
	if err != nil {
		return err
	}
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = q.Exec(ctx, query,
		m.EntryID,
		m.AccountID,
		m.Amount,
		m.Reason,
		m.ShipmentID,
		m.RelatedEntryID,
		m.IdempotencyKey,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to insert ledger entry %s", m.EntryID))
	}
	return nil
}

// SumByAccount folds every entry of the account.
func (r *PgxLedgerRepository) SumByAccount(ctx context.Context, tx portsrepo.Tx, accountID string) (decimal.Decimal, error) {
	q, err := r.db(tx)
	if err != nil {
		return decimal.Zero, err
	}
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE account_id = $1;`
	if err := q.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, mapPgError(err, "failed to sum ledger entries for account "+accountID)
	}
	return sum, nil
}

// LatestSeq is answered from idx_ledger_entries_account_seq.
func (r *PgxLedgerRepository) LatestSeq(ctx context.Context, accountID string) (int64, error) {
	var seq int64
	query := `SELECT COALESCE(MAX(seq), 0) FROM ledger_entries WHERE account_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&seq); err != nil {
		return 0, mapPgError(err, "failed to read latest ledger seq for account "+accountID)
	}
	return seq, nil
}

// ListEntriesByAccount returns a page of entries, newest first. The token's
// entry id is the keyset position; seq preserves commit order.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.ClampLimit(limit, defaultEntriesPageSize, 100)
	fetchLimit := limit + 1

	args := []any{accountID}
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE account_id = $1`

	if nextToken != nil && *nextToken != "" {
		cur, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		query += ` AND seq < (SELECT seq FROM ledger_entries WHERE entry_id = $2 AND account_id = $1)`
		args = append(args, cur.ID)
	}

	query += fmt.Sprintf(` ORDER BY seq DESC LIMIT $%d;`, len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to list ledger entries for account "+accountID)
	}
	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, nil, mapPgError(err, "failed to scan ledger entries for account "+accountID)
	}

	var newNextToken *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		newNextToken = &token
		entries = entries[:limit]
	}

	return entries, newNextToken, nil
}

// FindEntriesByShipment returns the shipment's entries in append order.
func (r *PgxLedgerRepository) FindEntriesByShipment(ctx context.Context, tx portsrepo.Tx, shipmentID string) ([]domain.LedgerEntry, error) {
	q, err := r.db(tx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE shipment_id = $1 ORDER BY seq ASC;`
	rows, err := q.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, mapPgError(err, "failed to find ledger entries for shipment "+shipmentID)
	}
	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, mapPgError(err, "failed to scan ledger entries for shipment "+shipmentID)
	}
	return entries, nil
}
