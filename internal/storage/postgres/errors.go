package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// constraintFields сопоставляет имена ограничений схемы с полями домена,
// чтобы сервисный слой не зависел от кодов PostgreSQL.
var constraintFields = map[string]string{
	"shipments_tracking_number_key": "tracking_number",
	"shipments_order_id_fkey":       "order_id",
	"shipments_carrier_id_fkey":     "carrier_id",
	"carriers_user_id_fkey":         "user_id",
	"carriers_route_id_fkey":        "route_id",
	"orders_user_id_fkey":           "user_id",
	"users_email_key":               "email",
}

// tagStoreError переводит ошибку драйвера в тегированную доменную ошибку.
func tagStoreError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return &domain.StoreError{Kind: domain.StoreErrOther, Err: err}
	}

	field := constraintFields[pgErr.ConstraintName]
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &domain.StoreError{Kind: domain.StoreErrUnique, Field: field, Err: err}
	case pgerrcode.ForeignKeyViolation:
		return &domain.StoreError{Kind: domain.StoreErrForeignKey, Field: field, Err: err}
	default:
		return &domain.StoreError{Kind: domain.StoreErrOther, Field: field, Err: err}
	}
}
