package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganges/ganges_backend/internal/apperrors"
	"github.com/ganges/ganges_backend/internal/core/domain"
	portsrepo "github.com/ganges/ganges_backend/internal/core/ports/repositories"
	"github.com/ganges/ganges_backend/internal/models"
	"github.com/ganges/ganges_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxShipmentRepository struct {
	BaseRepository
}

func newPgxShipmentRepository(base BaseRepository) portsrepo.ShipmentRepositoryFacade {
	return &PgxShipmentRepository{BaseRepository: base}
}

var _ portsrepo.ShipmentRepositoryFacade = (*PgxShipmentRepository)(nil)

const shipmentColumns = `shipment_id, tracking_number, customer_id, account_id, assignee_id,
	pickup_address, delivery_address, weight, tier, service_level,
	base_cost, distance_cost, surcharge, total_cost, status, delivered_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanShipment(row pgx.Row) (*domain.Shipment, error) {
	var m models.Shipment
	err := row.Scan(
		&m.ShipmentID,
		&m.TrackingNumber,
		&m.CustomerID,
		&m.AccountID,
		&m.AssigneeID,
		&m.PickupAddress,
		&m.DeliveryAddress,
		&m.Weight,
		&m.Tier,
		&m.ServiceLevel,
		&m.BaseCost,
		&m.DistanceCost,
		&m.Surcharge,
		&m.TotalCost,
		&m.Status,
		&m.DeliveredAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d, err := mapping.ToDomainShipment(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "corrupt shipment row", err)
	}
	return &d, nil
}

func (r *PgxShipmentRepository) findOne(ctx context.Context, q querier, query, label string, arg any) (*domain.Shipment, error) {
	s, err := scanShipment(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: shipment %s", apperrors.ErrNotFound, label)
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, mapPgError(err, "failed to load shipment "+label)
	}
	return s, nil
}

// FindShipmentByID retrieves a shipment by its ID.
func (r *PgxShipmentRepository) FindShipmentByID(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE shipment_id = $1;`
	return r.findOne(ctx, r.Pool, query, shipmentID, shipmentID)
}

// FindShipmentByTrackingNumber retrieves a shipment by its public tracking number.
func (r *PgxShipmentRepository) FindShipmentByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE tracking_number = $1;`
	return r.findOne(ctx, r.Pool, query, trackingNumber, trackingNumber)
}

// LockShipment selects the shipment row FOR UPDATE.
func (r *PgxShipmentRepository) LockShipment(ctx context.Context, tx portsrepo.Tx, shipmentID string) (*domain.Shipment, error) {
	q, err := r.requireTx(tx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE shipment_id = $1 FOR UPDATE;`
	return r.findOne(ctx, q, query, shipmentID, shipmentID)
}

// InsertShipment stores a new shipment. ON CONFLICT keeps the transaction
// usable when the tracking number is taken.
func (r *PgxShipmentRepository) InsertShipment(ctx context.Context, tx portsrepo.Tx, shipment domain.Shipment) error {
	q, err := r.requireTx(tx)
	if err != nil {
		return err
	}
	m, err := mapping.ToModelShipment(shipment)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode shipment", err)
	}
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (tracking_number) DO NOTHING;
	`
	tag, err := q.Exec(ctx, query,
		m.ShipmentID,
		m.TrackingNumber,
		m.CustomerID,
		m.AccountID,
		m.AssigneeID,
		m.PickupAddress,
		m.DeliveryAddress,
		m.Weight,
		m.Tier,
		m.ServiceLevel,
		m.BaseCost,
		m.DistanceCost,
		m.Surcharge,
		m.TotalCost,
		m.Status,
		m.DeliveredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert shipment "+m.ShipmentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tracking number %s", apperrors.ErrDuplicate, m.TrackingNumber)
	}
	return nil
}

// UpdateShipmentStatus writes the fields a transition may change.
func (r *PgxShipmentRepository) UpdateShipmentStatus(ctx context.Context, tx portsrepo.Tx, shipment domain.Shipment) error {
	q, err := r.requireTx(tx)
	if err != nil {
		return err
	}
	query := `
		UPDATE shipments
		SET status = $2, assignee_id = $3, delivered_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE shipment_id = $1;
	`
	tag, err := q.Exec(ctx, query,
		shipment.ShipmentID,
		string(shipment.Status),
		shipment.AssigneeID,
		shipment.DeliveredAt,
		shipment.LastUpdatedAt,
		shipment.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update shipment "+shipment.ShipmentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: shipment %s", apperrors.ErrNotFound, shipment.ShipmentID)
	}
	return nil
}

// AppendHistory stores one status history record.
func (r *PgxShipmentRepository) AppendHistory(ctx context.Context, tx portsrepo.Tx, record domain.StatusHistoryRecord) error {
	q, err := r.requireTx(tx)
	if err != nil {
		return err
	}
	m := mapping.ToModelStatusHistory(record)
	query := `
		INSERT INTO shipment_status_history (history_id, shipment_id, status, note, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := q.Exec(ctx, query, m.HistoryID, m.ShipmentID, m.Status, m.Note, m.ChangedBy, m.ChangedAt); err != nil {
		return mapPgError(err, "failed to append history for shipment "+m.ShipmentID)
	}
	return nil
}

// ListHistory returns the shipment's history oldest first.
func (r *PgxShipmentRepository) ListHistory(ctx context.Context, tx portsrepo.Tx, shipmentID string) ([]domain.StatusHistoryRecord, error) {
	q, err := r.db(tx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT history_id, shipment_id, status, note, changed_by, changed_at
		FROM shipment_status_history
		WHERE shipment_id = $1
		ORDER BY changed_at ASC, history_id ASC;
	`
	rows, err := q.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, mapPgError(err, "failed to list history for shipment "+shipmentID)
	}
	defer rows.Close()

	history := make([]domain.StatusHistoryRecord, 0)
	for rows.Next() {
		var m models.StatusHistory
		if err := rows.Scan(&m.HistoryID, &m.ShipmentID, &m.Status, &m.Note, &m.ChangedBy, &m.ChangedAt); err != nil {
			return nil, mapPgError(err, "failed to scan history row")
		}
		history = append(history, mapping.ToDomainStatusHistory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "failed to iterate history rows")
	}
	return history, nil
}
