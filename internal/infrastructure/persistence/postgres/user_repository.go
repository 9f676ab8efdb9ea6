package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KothuriSowmya/blood-donation-backend/internal/application/ports"
	"github.com/KothuriSowmya/blood-donation-backend/internal/domain"
	domerrors "github.com/KothuriSowmya/blood-donation-backend/internal/domain/errors"
)

const (
	createUserSQL = `INSERT INTO users (id, username, email, password_hash, phone, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	getUserByEmailSQL = `SELECT id, username, email, password_hash, phone, location, created_at, updated_at
		FROM users WHERE email = $1`
	getUserByIDSQL = `SELECT id, username, email, password_hash, phone, location, created_at, updated_at
		FROM users WHERE id = $1`
	updateProfileSQL = `UPDATE users SET phone = $1, location = $2, updated_at = NOW() WHERE id = $3`
)

// UserRepository is the pgx-backed ports.UserRepository. Email uniqueness is
// enforced by the users_email_unique_idx constraint, so concurrent duplicate
// registrations cannot both succeed even when both pass the advisory lookup.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Migrate creates the users table and its unique email index.
func (r *UserRepository) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email);`,
	}
	for _, stmt := range stmts {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, createUserSQL,
		user.ID.UUID, user.Username, user.Email, user.PasswordHash,
		user.Phone, user.Location, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domerrors.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, getUserByEmailSQL, email))
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, getUserByIDSQL, userID.UUID))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID domain.UserID, phone, location string) error {
	tag, err := r.pool.Exec(ctx, updateProfileSQL, phone, location, userID.UUID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID.UUID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Phone, &u.Location, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
