package accessory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository defines the interface for accessory persistence operations.
//
// This is the persisted-accessory collaborator pair: a lookup by identity
// and a one-time registration. The SQLite implementation below is the
// default; tests use in-memory fakes.
type Repository interface {
	// GetByID retrieves a record by its identity.
	// Returns ErrAccessoryNotFound if the record does not exist.
	GetByID(ctx context.Context, id string) (*Record, error)

	// List retrieves all persisted records, ordered by creation time.
	List(ctx context.Context) ([]Record, error)

	// Create inserts a new record.
	// Returns ErrAccessoryExists if a record with the same ID already exists.
	Create(ctx context.Context, record *Record) error

	// Delete removes a record by ID.
	// Returns ErrAccessoryNotFound if the record does not exist.
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection with the accessories
// table migrated.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByID retrieves a record by its identity.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Record, error) {
	query := `
		SELECT id, address, name, created_at, updated_at
		FROM accessories
		WHERE id = ?`

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccessoryNotFound
		}
		return nil, fmt.Errorf("querying accessory by id: %w", err)
	}
	return record, nil
}

// List retrieves all persisted records, ordered by creation time.
func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, address, name, created_at, updated_at
		FROM accessories
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accessories: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning accessory row: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// Create inserts a new record.
func (r *SQLiteRepository) Create(ctx context.Context, record *Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	query := `
		INSERT INTO accessories (id, address, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Address,
		record.Name,
		record.CreatedAt.UTC().Format(time.RFC3339),
		record.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAccessoryExists
		}
		return fmt.Errorf("inserting accessory: %w", err)
	}
	return nil
}

// Delete removes a record by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM accessories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting accessory: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrAccessoryNotFound
	}
	return nil
}

// validateRecord checks required fields before persistence.
func validateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	if record.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if record.Address == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidRecord)
	}
	if record.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRecord)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one accessory row.
func scanRecord(s scanner) (*Record, error) {
	var (
		record    Record
		createdAt string
		updatedAt string
	)

	if err := s.Scan(&record.ID, &record.Address, &record.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	record.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &record, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
