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

type routeRepository struct {
	db *sql.DB
}

// NewRouteRepository создаёт PostgreSQL-реализацию RouteRepository.
func NewRouteRepository(store *Store) domain.RouteRepository {
	return &routeRepository{db: store.DB()}
}

const routeColumns = `id, name, origin, destination, created_at, updated_at`

func scanRoute(row interface{ Scan(...any) error }) (domain.Route, error) {
	var rt domain.Route
	err := row.Scan(&rt.ID, &rt.Name, &rt.Origin, &rt.Destination, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return domain.Route{}, err
	}
	return rt, nil
}

func (r *routeRepository) Create(route domain.Route) (domain.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	route.ID = uuid.NewString()
	route.CreatedAt = now
	route.UpdatedAt = now

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO routes (id, name, origin, destination, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING `+routeColumns+`
	`, route.ID, route.Name, route.Origin, route.Destination, route.CreatedAt, route.UpdatedAt)

	created, err := scanRoute(row)
	if err != nil {
		return domain.Route{}, tagStoreError(fmt.Errorf("insert route: %w", err))
	}
	return created, nil
}

func (r *routeRepository) Get(id string) (domain.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+routeColumns+`
		FROM routes
		WHERE id = $1
	`, id)

	rt, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Route{}, domain.ErrRouteNotFound
		}
		return domain.Route{}, tagStoreError(fmt.Errorf("select route: %w", err))
	}
	return rt, nil
}

func (r *routeRepository) List() ([]domain.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+routeColumns+`
		FROM routes
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, tagStoreError(fmt.Errorf("list routes: %w", err))
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate route rows: %w", err)
	}
	return routes, nil
}

func (r *routeRepository) Update(id string, upd domain.RouteUpdate) (domain.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		UPDATE routes
		SET name        = COALESCE($1, name),
		    origin      = COALESCE($2, origin),
		    destination = COALESCE($3, destination),
		    updated_at  = $4
		WHERE id = $5
		RETURNING `+routeColumns+`
	`, upd.Name, upd.Origin, upd.Destination, time.Now().UTC(), id)

	rt, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Route{}, domain.ErrRouteNotFound
		}
		return domain.Route{}, tagStoreError(fmt.Errorf("update route: %w", err))
	}
	return rt, nil
}

func (r *routeRepository) Delete(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return false, tagStoreError(fmt.Errorf("delete route: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

var _ domain.RouteRepository = (*routeRepository)(nil)
