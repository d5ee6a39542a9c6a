package accessory

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const testSchema = `
	CREATE TABLE accessories (
		id          TEXT PRIMARY KEY,
		address     TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE INDEX idx_accessories_address ON accessories(address);
`

// setupTestDB creates an in-memory SQLite database with the accessories table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if _, err := db.Exec(testSchema); err != nil {
		db.Close() //nolint:errcheck // Test cleanup
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close() //nolint:errcheck // Test cleanup
	})
	return db
}

func testRecord(address string) *Record {
	now := time.Now().UTC().Truncate(time.Second)
	return &Record{
		ID:        Identity(address),
		Address:   address,
		Name:      "Scoreboard " + address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	record := testRecord("192.168.1.50")
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ID != record.ID {
		t.Errorf("ID = %q, want %q", got.ID, record.ID)
	}
	if got.Address != record.Address {
		t.Errorf("Address = %q, want %q", got.Address, record.Address)
	}
	if got.Name != record.Name {
		t.Errorf("Name = %q, want %q", got.Name, record.Name)
	}
	if !got.CreatedAt.Equal(record.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, record.CreatedAt)
	}
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), Identity("10.0.0.1"))
	if !errors.Is(err, ErrAccessoryNotFound) {
		t.Errorf("GetByID() error = %v, want ErrAccessoryNotFound", err)
	}
}

func TestSQLiteRepository_CreateDuplicate(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	record := testRecord("192.168.1.50")
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Create(ctx, record); !errors.Is(err, ErrAccessoryExists) {
		t.Errorf("second Create() error = %v, want ErrAccessoryExists", err)
	}
}

func TestSQLiteRepository_CreateInvalid(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		record *Record
	}{
		{name: "nil record", record: nil},
		{name: "empty id", record: &Record{Address: "10.0.0.1", Name: "x"}},
		{name: "empty address", record: &Record{ID: "abc", Name: "x"}},
		{name: "empty name", record: &Record{ID: "abc", Address: "10.0.0.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.Create(ctx, tt.record); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Create() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestSQLiteRepository_List(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	for _, addr := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if err := repo.Create(ctx, testRecord(addr)); err != nil {
			t.Fatalf("Create(%s) error = %v", addr, err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 3 {
		t.Errorf("len(List()) = %d, want 3", len(records))
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	record := testRecord("10.0.0.1")
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, record.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, record.ID); !errors.Is(err, ErrAccessoryNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrAccessoryNotFound", err)
	}

	if err := repo.Delete(ctx, record.ID); !errors.Is(err, ErrAccessoryNotFound) {
		t.Errorf("second Delete() error = %v, want ErrAccessoryNotFound", err)
	}
}

// TestSQLiteRepository_SurvivesReopen simulates a process restart: records
// written through one connection are visible through a fresh one.
func TestSQLiteRepository_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "restart.db")
	ctx := context.Background()

	open := func() *sql.DB {
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			t.Fatalf("opening database: %v", err)
		}
		return db
	}

	db := open()
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	record := testRecord("192.168.1.50")
	if err := NewSQLiteRepository(db).Create(ctx, record); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	db.Close() //nolint:errcheck // Simulated shutdown

	db = open()
	defer db.Close() //nolint:errcheck // Test cleanup

	got, err := NewSQLiteRepository(db).GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("GetByID() after reopen error = %v", err)
	}
	if got.Address != record.Address {
		t.Errorf("Address after reopen = %q, want %q", got.Address, record.Address)
	}
}
