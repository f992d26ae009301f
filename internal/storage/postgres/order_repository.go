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

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

const orderColumns = `id, user_id, origin, destination, order_status, dimensions, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (domain.Order, error) {
	var (
		order           domain.Order
		status          string
		destinationJSON []byte
		dimensionsJSON  []byte
	)
	err := row.Scan(
		&order.ID, &order.UserID, &order.Origin, &destinationJSON,
		&status, &dimensionsJSON, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.OrderStatus(status)
	if err := unmarshalJSONColumn(destinationJSON, &order.Destination); err != nil {
		return domain.Order{}, fmt.Errorf("decode destination: %w", err)
	}
	if err := unmarshalJSONColumn(dimensionsJSON, &order.Dimensions); err != nil {
		return domain.Order{}, fmt.Errorf("decode dimensions: %w", err)
	}
	return order, nil
}

func (r *orderRepository) Create(order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	order.ID = uuid.NewString()
	order.Status = domain.OrderStatusPending
	order.CreatedAt = now
	order.UpdatedAt = now

	destinationJSON, err := marshalJSONColumn(order.Destination)
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode destination: %w", err)
	}
	dimensionsJSON, err := marshalJSONColumn(order.Dimensions)
	if err != nil {
		return domain.Order{}, fmt.Errorf("encode dimensions: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, user_id, origin, destination, order_status, dimensions, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+orderColumns+`
	`,
		order.ID, order.UserID, order.Origin, destinationJSON,
		string(order.Status), dimensionsJSON, order.CreatedAt, order.UpdatedAt,
	)

	created, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, tagStoreError(fmt.Errorf("insert order: %w", err))
	}
	return created, nil
}

func (r *orderRepository) Get(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, tagStoreError(fmt.Errorf("select order: %w", err))
	}
	return order, nil
}

func (r *orderRepository) List() ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, tagStoreError(fmt.Errorf("list orders: %w", err))
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

// ListByUser дополняет каждый заказ трек-номером его отправления,
// если отправление уже создано.
func (r *orderRepository) ListByUser(userID string) ([]domain.OrderWithTracking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.origin, o.destination, o.order_status,
		       o.dimensions, o.created_at, o.updated_at,
		       s.tracking_number
		FROM orders o
		LEFT JOIN shipments s ON o.id = s.order_id
		WHERE o.user_id = $1
		ORDER BY o.created_at ASC
	`, userID)
	if err != nil {
		return nil, tagStoreError(fmt.Errorf("list orders by user: %w", err))
	}
	defer rows.Close()

	result := make([]domain.OrderWithTracking, 0)
	for rows.Next() {
		var (
			item            domain.OrderWithTracking
			status          string
			destinationJSON []byte
			dimensionsJSON  []byte
			tracking        sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Origin, &destinationJSON, &status,
			&dimensionsJSON, &item.CreatedAt, &item.UpdatedAt, &tracking,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		item.Status = domain.OrderStatus(status)
		item.TrackingNumber = tracking.String
		if err := unmarshalJSONColumn(destinationJSON, &item.Destination); err != nil {
			return nil, fmt.Errorf("decode destination: %w", err)
		}
		if err := unmarshalJSONColumn(dimensionsJSON, &item.Dimensions); err != nil {
			return nil, fmt.Errorf("decode dimensions: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return result, nil
}

func (r *orderRepository) Update(id string, upd domain.OrderUpdate) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var destinationJSON, dimensionsJSON []byte
	var err error
	if upd.Destination != nil {
		if destinationJSON, err = marshalJSONColumn(upd.Destination); err != nil {
			return domain.Order{}, fmt.Errorf("encode destination: %w", err)
		}
	}
	if upd.Dimensions != nil {
		if dimensionsJSON, err = marshalJSONColumn(upd.Dimensions); err != nil {
			return domain.Order{}, fmt.Errorf("encode dimensions: %w", err)
		}
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET origin      = COALESCE($1, origin),
		    destination = COALESCE($2, destination),
		    dimensions  = COALESCE($3, dimensions),
		    updated_at  = $4
		WHERE id = $5
		RETURNING `+orderColumns+`
	`, upd.Origin, destinationJSON, dimensionsJSON, time.Now().UTC(), id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, tagStoreError(fmt.Errorf("update order: %w", err))
	}
	return order, nil
}

func (r *orderRepository) UpdateStatus(id string, status domain.OrderStatus) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET order_status = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+orderColumns+`
	`, string(status), time.Now().UTC(), id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, tagStoreError(fmt.Errorf("update order status: %w", err))
	}
	return order, nil
}

func (r *orderRepository) Delete(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, tagStoreError(fmt.Errorf("delete order: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
