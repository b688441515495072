package repository

import (
	"context"

	"github.com/contactdesk/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EmailLogRepository defines the persistence interface for the append-only
// send log. Rows are inserted after a successful provider call and never
// updated or deleted.
type EmailLogRepository interface {
	Insert(ctx context.Context, entry *model.EmailLog) error
	ListByContact(ctx context.Context, contactID string) ([]*model.EmailLog, error)
	ListByContactIDs(ctx context.Context, contactIDs []string) (map[string][]*model.EmailLog, error)
}

// PgEmailLogRepository is the PostgreSQL implementation of EmailLogRepository.
type PgEmailLogRepository struct {
	pool *pgxpool.Pool
}

// NewPgEmailLogRepository creates a PgEmailLogRepository backed by the given pool.
func NewPgEmailLogRepository(pool *pgxpool.Pool) *PgEmailLogRepository {
	return &PgEmailLogRepository{pool: pool}
}

var _ EmailLogRepository = (*PgEmailLogRepository)(nil)

const emailLogSelectCols = `id, contact_id, template_name, content, sent_at`

// Insert appends one email_logs row and populates entry.ID and SentAt from
// the database RETURNING clause.
func (r *PgEmailLogRepository) Insert(ctx context.Context, entry *model.EmailLog) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO email_logs (contact_id, template_name, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, sent_at`,
		entry.ContactID, entry.TemplateName, entry.Content,
	).Scan(&entry.ID, &entry.SentAt)
}

// ListByContact returns all log entries for one contact, newest-first.
func (r *PgEmailLogRepository) ListByContact(ctx context.Context, contactID string) ([]*model.EmailLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+emailLogSelectCols+`
		 FROM email_logs
		 WHERE contact_id = $1
		 ORDER BY sent_at DESC`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmailLogs(rows.Next, rows.Scan, rows.Err)
}

// ListByContactIDs returns log entries for a batch of contacts in one query,
// grouped by contact_id. Used by the admin dashboard join so listing N
// contacts does not issue N queries.
func (r *PgEmailLogRepository) ListByContactIDs(ctx context.Context, contactIDs []string) (map[string][]*model.EmailLog, error) {
	grouped := make(map[string][]*model.EmailLog, len(contactIDs))
	if len(contactIDs) == 0 {
		return grouped, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+emailLogSelectCols+`
		 FROM email_logs
		 WHERE contact_id = ANY($1)
		 ORDER BY sent_at DESC`, contactIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanEmailLogs(rows.Next, rows.Scan, rows.Err)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		grouped[e.ContactID] = append(grouped[e.ContactID], e)
	}
	return grouped, nil
}

func scanEmailLogs(next func() bool, scan func(...any) error, rowsErr func() error) ([]*model.EmailLog, error) {
	var entries []*model.EmailLog
	for next() {
		var e model.EmailLog
		if err := scan(&e.ID, &e.ContactID, &e.TemplateName, &e.Content, &e.SentAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rowsErr()
}
