package repository

import (
	"context"
	"errors"

	"github.com/contactdesk/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository defines the persistence interface for contact form
// submissions. It is defined here (in repository) to avoid an import cycle
// with service.
type ContactRepository interface {
	Save(ctx context.Context, contact *model.Contact) error
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)
	FindByID(ctx context.Context, id string) (*model.Contact, error)
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Save inserts a new contacts row and populates contact.ID and CreatedAt
// from the database RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, contact *model.Contact) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		contact.Name, contact.Email, contact.Message,
	).Scan(&contact.ID, &contact.CreatedAt)
}

// List returns contacts newest-first, paginated by limit/offset.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	query := `SELECT id, name, email, message, created_at
	          FROM contacts
	          ORDER BY created_at DESC
	          LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// FindByID returns one contact or ErrNotFound.
func (r *PgContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, message, created_at FROM contacts WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
