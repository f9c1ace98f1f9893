package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	StatusParsed = "parsed"
	StatusFailed = "failed"
)

var ErrNotFound = errors.New("problem not found")

// Record is one submitted problem file and the outcome of parsing it.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Report    string    `json:"report"`
	Input     string    `json:"-"`
	Slots     string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository persists problem records in sqlite.
type Repository struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS problem (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	status     TEXT NOT NULL,
	report     TEXT NOT NULL,
	input      TEXT NOT NULL,
	slots      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

// Open opens (and creates if needed) the database at path.
func Open(ctx context.Context, path string) (*Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// sqlite allows one writer; ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Insert stores rec under a new ID and returns it.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	rec.ID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO problem (id, name, status, report, input, slots, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Name, rec.Status, rec.Report, rec.Input, rec.Slots, rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("inserting problem: %w", err)
	}
	return rec, nil
}

// List returns every record without input and slot data, oldest first.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, status, report, created_at FROM problem ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("listing problems: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Status, &rec.Report, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning problem: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, status, report, input, slots, created_at FROM problem WHERE id = ?", id).
		Scan(&rec.ID, &rec.Name, &rec.Status, &rec.Report, &rec.Input, &rec.Slots, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("loading problem %s: %w", id, err)
	}
	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM problem WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting problem %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting problem %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
