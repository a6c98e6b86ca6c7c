package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"venuestore/internal/domain"
	"venuestore/internal/repository"

	_ "modernc.org/sqlite"
)

// DefaultListLimit caps audit listings that do not ask for a limit.
const DefaultListLimit = 100

var _ repository.AuditRepository = (*Repository)(nil)

// Repository implements repository.AuditRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New opens (or creates) the audit database at dbPath and migrates it.
// ":memory:" gives a private in-memory database.
func New(dbPath string) (*Repository, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("audit database path is required")
	}
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serializes writers; one connection also keeps :memory: to a
	// single database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		kind TEXT NOT NULL,
		entity_id INTEGER NOT NULL,
		detail TEXT,
		at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(kind, entity_id);
	CREATE INDEX IF NOT EXISTS idx_audit_at ON audit_log(at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Record appends an entry. A zero At is stamped with the current time.
func (r *Repository) Record(ctx context.Context, entry domain.AuditEntry) (domain.AuditEntry, error) {
	if entry.Action == "" || entry.Kind == "" {
		return entry, fmt.Errorf("audit entry needs action and kind: %w", domain.ErrInvalidInput)
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	entry.At = fromMillis(toMillis(entry.At))

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (action, kind, entity_id, detail, at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Action, entry.Kind, entry.EntityID, stringToNull(entry.Detail), toMillis(entry.At))
	if err != nil {
		return entry, fmt.Errorf("failed to insert audit entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return entry, fmt.Errorf("failed to read audit entry id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// List returns entries matching q, newest first
func (r *Repository) List(ctx context.Context, q repository.AuditQuery) ([]domain.AuditEntry, error) {
	var (
		where []string
		args  []any
	)
	if q.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, q.Kind)
	}
	if q.EntityID != 0 {
		where = append(where, "entity_id = ?")
		args = append(args, q.EntityID)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, action, kind, entity_id, detail, at FROM audit_log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var (
			e      domain.AuditEntry
			detail sql.NullString
			at     int64
		)
		if err := rows.Scan(&e.ID, &e.Action, &e.Kind, &e.EntityID, &detail, &at); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.Detail = nullToString(detail)
		e.At = fromMillis(at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
