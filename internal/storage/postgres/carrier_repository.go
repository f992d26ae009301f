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

type carrierRepository struct {
	db *sql.DB
}

// NewCarrierRepository создаёт PostgreSQL-реализацию CarrierRepository.
func NewCarrierRepository(store *Store) domain.CarrierRepository {
	return &carrierRepository{db: store.DB()}
}

const carrierColumns = `id, user_id, max_weight, max_items, route_id, created_at, updated_at`

func scanCarrier(row interface{ Scan(...any) error }) (domain.Carrier, error) {
	var ca domain.Carrier
	err := row.Scan(
		&ca.ID, &ca.UserID, &ca.MaxWeight, &ca.MaxItems,
		&ca.RouteID, &ca.CreatedAt, &ca.UpdatedAt,
	)
	if err != nil {
		return domain.Carrier{}, err
	}
	return ca, nil
}

func (r *carrierRepository) Create(carrier domain.Carrier) (domain.Carrier, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	carrier.ID = uuid.NewString()
	carrier.CreatedAt = now
	carrier.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO carriers (
			id, user_id, max_weight, max_items, route_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+carrierColumns+`
	`,
		carrier.ID, carrier.UserID, carrier.MaxWeight, carrier.MaxItems,
		carrier.RouteID, carrier.CreatedAt, carrier.UpdatedAt,
	)

	created, err := scanCarrier(row)
	if err != nil {
		return domain.Carrier{}, tagStoreError(fmt.Errorf("insert carrier: %w", err))
	}
	return created, nil
}

func (r *carrierRepository) Get(id string) (domain.Carrier, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+carrierColumns+`
		FROM carriers
		WHERE id = $1
	`, id)

	ca, err := scanCarrier(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Carrier{}, domain.ErrCarrierNotFound
		}
		return domain.Carrier{}, tagStoreError(fmt.Errorf("select carrier: %w", err))
	}
	return ca, nil
}

// List дополняет каждого перевозчика названием маршрута.
func (r *carrierRepository) List() ([]domain.CarrierWithRoute, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT ca.id, ca.user_id, ca.max_weight, ca.max_items, ca.route_id,
		       ca.created_at, ca.updated_at,
		       r.name
		FROM carriers ca
		LEFT JOIN routes r ON ca.route_id = r.id
		ORDER BY ca.created_at DESC, ca.id DESC
	`)
	if err != nil {
		return nil, tagStoreError(fmt.Errorf("list carriers: %w", err))
	}
	defer rows.Close()

	carriers := make([]domain.CarrierWithRoute, 0)
	for rows.Next() {
		var item domain.CarrierWithRoute
		var routeName sql.NullString
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.MaxWeight, &item.MaxItems,
			&item.RouteID, &item.CreatedAt, &item.UpdatedAt, &routeName,
		); err != nil {
			return nil, fmt.Errorf("scan carrier row: %w", err)
		}
		item.RouteName = routeName.String
		carriers = append(carriers, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carrier rows: %w", err)
	}
	return carriers, nil
}

func (r *carrierRepository) Update(id string, upd domain.CarrierUpdate) (domain.Carrier, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		UPDATE carriers
		SET max_weight = COALESCE($1, max_weight),
		    max_items  = COALESCE($2, max_items),
		    route_id   = COALESCE($3, route_id),
		    updated_at = $4
		WHERE id = $5
		RETURNING `+carrierColumns+`
	`, upd.MaxWeight, upd.MaxItems, upd.RouteID, time.Now().UTC(), id)

	ca, err := scanCarrier(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Carrier{}, domain.ErrCarrierNotFound
		}
		return domain.Carrier{}, tagStoreError(fmt.Errorf("update carrier: %w", err))
	}
	return ca, nil
}

func (r *carrierRepository) Delete(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM carriers WHERE id = $1`, id)
	if err != nil {
		return false, tagStoreError(fmt.Errorf("delete carrier: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

var _ domain.CarrierRepository = (*carrierRepository)(nil)
