package repository

import (
	"context"
	"errors"

	"github.com/contactdesk/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository defines the persistence interface for operator accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository creates a PgUserRepository backed by the given pool.
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ UserRepository = (*PgUserRepository)(nil)

const userSelectCols = `id, email, google_id, name, password_hash, created_at, updated_at`

func scanUser(scan func(...any) error) (*model.User, error) {
	var u model.User
	var googleID, passwordHash *string
	err := scan(&u.ID, &u.Email, &googleID, &u.Name, &passwordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if googleID != nil {
		u.GoogleID = *googleID
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	return &u, nil
}

// FindByID returns the user with the given ID or ErrNotFound.
func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE id = $1`, id)
	return scanUser(row.Scan)
}

// FindByEmail returns the user with the given email or ErrNotFound.
func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE email = $1`, email)
	return scanUser(row.Scan)
}

// FindByGoogleID returns the user linked to the given Google account or ErrNotFound.
func (r *PgUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE google_id = $1`, googleID)
	return scanUser(row.Scan)
}

// Create inserts a new users row and populates user.ID and timestamps from
// the database RETURNING clause.
func (r *PgUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (email, google_id, name, password_hash)
		 VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''))
		 RETURNING id, created_at, updated_at`,
		user.Email, user.GoogleID, user.Name, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}
