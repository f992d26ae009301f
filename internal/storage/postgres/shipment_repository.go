package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type shipmentRepository struct {
	db *sql.DB
}

// NewShipmentRepository создаёт PostgreSQL-реализацию ShipmentRepository.
func NewShipmentRepository(store *Store) domain.ShipmentRepository {
	return &shipmentRepository{db: store.DB()}
}

const shipmentColumns = `id, order_id, carrier_id, status, tracking_number, created_at, updated_at`

func scanShipment(row interface{ Scan(...any) error }) (domain.Shipment, error) {
	var sh domain.Shipment
	var status string
	err := row.Scan(
		&sh.ID, &sh.OrderID, &sh.CarrierID, &status,
		&sh.TrackingNumber, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return domain.Shipment{}, err
	}
	sh.Status = domain.ShipmentStatus(status)
	return sh, nil
}

func (r *shipmentRepository) Create(shipment domain.Shipment) (domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	shipment.ID = uuid.NewString()
	shipment.CreatedAt = now
	shipment.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO shipments (
			id, order_id, carrier_id, status, tracking_number, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+shipmentColumns+`
	`,
		shipment.ID, shipment.OrderID, shipment.CarrierID, string(shipment.Status),
		shipment.TrackingNumber, shipment.CreatedAt, shipment.UpdatedAt,
	)

	created, err := scanShipment(row)
	if err != nil {
		return domain.Shipment{}, tagStoreError(fmt.Errorf("insert shipment: %w", err))
	}
	return created, nil
}

func (r *shipmentRepository) Get(id string) (domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+shipmentColumns+`
		FROM shipments
		WHERE id = $1
	`, id)

	sh, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Shipment{}, domain.ErrShipmentNotFound
		}
		return domain.Shipment{}, tagStoreError(fmt.Errorf("select shipment: %w", err))
	}
	return sh, nil
}

func (r *shipmentRepository) List() ([]domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+shipmentColumns+`
		FROM shipments
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, tagStoreError(fmt.Errorf("list shipments: %w", err))
	}
	defer rows.Close()

	return collectShipments(rows)
}

func (r *shipmentRepository) ListByOrder(orderID string) ([]domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+shipmentColumns+`
		FROM shipments
		WHERE order_id = $1
		ORDER BY created_at DESC, id DESC
	`, orderID)
	if err != nil {
		return nil, tagStoreError(fmt.Errorf("list shipments by order: %w", err))
	}
	defer rows.Close()

	return collectShipments(rows)
}

// FindByTracking собирает трекинг-представление: отправление плюс
// происхождение, пункт назначения и габариты заказа и название маршрута
// через цепочку carrier -> route.
func (r *shipmentRepository) FindByTracking(trackingNumber string) (domain.TrackingView, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		view            domain.TrackingView
		status          string
		origin          sql.NullString
		destinationJSON []byte
		dimensionsJSON  []byte
		routeName       sql.NullString
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.order_id, s.carrier_id, s.status, s.tracking_number,
		       s.created_at, s.updated_at,
		       o.origin, o.destination, o.dimensions,
		       r.name
		FROM shipments s
		LEFT JOIN orders o ON s.order_id = o.id
		LEFT JOIN carriers ca ON s.carrier_id = ca.id
		LEFT JOIN routes r ON ca.route_id = r.id
		WHERE s.tracking_number = $1
		ORDER BY s.created_at DESC
	`, trackingNumber).Scan(
		&view.ID, &view.OrderID, &view.CarrierID, &status, &view.TrackingNumber,
		&view.CreatedAt, &view.UpdatedAt,
		&origin, &destinationJSON, &dimensionsJSON,
		&routeName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TrackingView{}, domain.ErrTrackingNotFound
		}
		return domain.TrackingView{}, tagStoreError(fmt.Errorf("select tracking view: %w", err))
	}

	view.Status = domain.ShipmentStatus(status)
	view.Origin = origin.String
	view.RouteName = routeName.String
	if err := unmarshalJSONColumn(destinationJSON, &view.Destination); err != nil {
		return domain.TrackingView{}, fmt.Errorf("decode destination: %w", err)
	}
	if err := unmarshalJSONColumn(dimensionsJSON, &view.Dimensions); err != nil {
		return domain.TrackingView{}, fmt.Errorf("decode dimensions: %w", err)
	}

	return view, nil
}

// Update применяет частичное обновление: незаполненные поля не трогаются
// (COALESCE на стороне базы, один оператор без read-modify-write).
func (r *shipmentRepository) Update(id string, upd domain.ShipmentUpdate) (domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE shipments
		SET carrier_id      = COALESCE($1, carrier_id),
		    status          = COALESCE($2, status),
		    tracking_number = COALESCE($3, tracking_number),
		    updated_at      = $4
		WHERE id = $5
		RETURNING `+shipmentColumns+`
	`, upd.CarrierID, status, upd.TrackingNumber, time.Now().UTC(), id)

	sh, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Shipment{}, domain.ErrShipmentNotFound
		}
		return domain.Shipment{}, tagStoreError(fmt.Errorf("update shipment: %w", err))
	}
	return sh, nil
}

func (r *shipmentRepository) UpdateStatus(id string, status domain.ShipmentStatus) (domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		UPDATE shipments
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+shipmentColumns+`
	`, string(status), time.Now().UTC(), id)

	sh, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Shipment{}, domain.ErrShipmentNotFound
		}
		return domain.Shipment{}, tagStoreError(fmt.Errorf("update shipment status: %w", err))
	}
	return sh, nil
}

func (r *shipmentRepository) Delete(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return false, tagStoreError(fmt.Errorf("delete shipment: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func collectShipments(rows *sql.Rows) ([]domain.Shipment, error) {
	shipments := make([]domain.Shipment, 0)
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment row: %w", err)
		}
		shipments = append(shipments, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipment rows: %w", err)
	}
	return shipments, nil
}

var _ domain.ShipmentRepository = (*shipmentRepository)(nil)
