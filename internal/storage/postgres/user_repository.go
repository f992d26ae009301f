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

type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

const userColumns = `id, email, password_hash, first_name, last_name, document_type,
	document_number, phone_number, role, default_address, is_active, email_verified,
	last_login, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		user        domain.User
		role        string
		addressJSON []byte
		lastLogin   sql.NullTime
	)
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.DocumentType, &user.DocumentNumber, &user.PhoneNumber, &role,
		&addressJSON, &user.IsActive, &user.EmailVerified,
		&lastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	user.Role = domain.UserRole(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	if len(addressJSON) > 0 {
		var addr domain.Address
		if err := unmarshalJSONColumn(addressJSON, &addr); err != nil {
			return domain.User{}, fmt.Errorf("decode default address: %w", err)
		}
		user.DefaultAddress = &addr
	}
	return user, nil
}

func (r *userRepository) Create(user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	addressJSON, err := marshalJSONColumn(user.DefaultAddress)
	if err != nil {
		return domain.User{}, fmt.Errorf("encode default address: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, document_type,
			document_number, phone_number, role, default_address, is_active,
			email_verified, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING `+userColumns+`
	`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.DocumentType, user.DocumentNumber, user.PhoneNumber, string(user.Role),
		addressJSON, user.IsActive, user.EmailVerified, user.CreatedAt, user.UpdatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, tagStoreError(fmt.Errorf("insert user: %w", err))
	}
	return created, nil
}

func (r *userRepository) Get(id string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, tagStoreError(fmt.Errorf("select user: %w", err))
	}
	return user, nil
}

func (r *userRepository) GetByEmail(email string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, tagStoreError(fmt.Errorf("select user by email: %w", err))
	}
	return user, nil
}

func (r *userRepository) List() ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, tagStoreError(fmt.Errorf("list users: %w", err))
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}

// Update перезаписывает изменяемые поля пользователя целиком;
// частичное слияние делает сервисный слой, прочитав запись заранее.
func (r *userRepository) Update(user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	addressJSON, err := marshalJSONColumn(user.DefaultAddress)
	if err != nil {
		return domain.User{}, fmt.Errorf("encode default address: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, first_name = $3, last_name = $4,
		    document_type = $5, document_number = $6, phone_number = $7,
		    role = $8, default_address = $9, is_active = $10,
		    email_verified = $11, last_login = $12, updated_at = $13
		WHERE id = $14
		RETURNING `+userColumns+`
	`,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.DocumentType, user.DocumentNumber, user.PhoneNumber,
		string(user.Role), addressJSON, user.IsActive,
		user.EmailVerified, user.LastLogin, time.Now().UTC(), user.ID,
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, tagStoreError(fmt.Errorf("update user: %w", err))
	}
	return updated, nil
}

func (r *userRepository) Delete(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, tagStoreError(fmt.Errorf("delete user: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

var _ domain.UserRepository = (*userRepository)(nil)
