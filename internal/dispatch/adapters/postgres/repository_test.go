package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"notification-dispatch-service/internal/dispatch/core/domain"

	"github.com/google/uuid"
)

// Fake sql.Result
type fakeResult struct {
	rowsAffected int64
	err          error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rowsAffected, f.err }

// Fake DB capturing the executed statement.
type fakeDB struct {
	ExecFn    func(ctx context.Context, query string, args ...any) (sql.Result, error)
	lastQuery string
	lastArgs  []any
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.lastQuery = query
	f.lastArgs = args
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	return fakeResult{}, nil
}

func sampleRecord() *domain.HistoryRecord {
	return &domain.HistoryRecord{
		ID:             uuid.New(),
		EventID:        uuid.New(),
		EndpointID:     uuid.New(),
		Status:         200,
		Success:        true,
		InvocationTime: 1500 * time.Millisecond,
		Details:        map[string]any{"method": "POST", "url": "https://gateway/emails"},
		CreatedAt:      time.Now().UTC(),
	}
}

// ------------------------------------------------------------
// INSERT
// ------------------------------------------------------------
func TestHistoryRepository_Insert(t *testing.T) {
	db := &fakeDB{}
	repo := NewHistoryRepository(db)

	record := sampleRecord()

	if err := repo.Insert(context.Background(), record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(db.lastQuery, "INSERT INTO notification_history") {
		t.Fatalf("unexpected query: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 8 {
		t.Fatalf("expected 8 args, got %d", len(db.lastArgs))
	}
	if db.lastArgs[0] != record.ID || db.lastArgs[1] != record.EventID || db.lastArgs[2] != record.EndpointID {
		t.Fatalf("unexpected identifier args: %v", db.lastArgs[:3])
	}
	if db.lastArgs[3] != 200 || db.lastArgs[4] != true {
		t.Fatalf("unexpected status args: %v", db.lastArgs[3:5])
	}
	if db.lastArgs[5] != int64(1500) {
		t.Fatalf("expected invocation time in milliseconds, got %v", db.lastArgs[5])
	}

	var details map[string]any
	if err := json.Unmarshal(db.lastArgs[6].([]byte), &details); err != nil {
		t.Fatalf("expected json-encoded details, got %v", db.lastArgs[6])
	}
	if details["method"] != "POST" {
		t.Fatalf("unexpected details: %v", details)
	}
}

func TestHistoryRepository_InsertError(t *testing.T) {
	dbErr := errors.New("connection lost")
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, dbErr
		},
	}
	repo := NewHistoryRepository(db)

	if err := repo.Insert(context.Background(), sampleRecord()); !errors.Is(err, dbErr) {
		t.Fatalf("expected the db error, got %v", err)
	}
}

// ------------------------------------------------------------
// RETENTION DELETE
// ------------------------------------------------------------
func TestHistoryRepository_DeleteCreatedBefore(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return fakeResult{rowsAffected: 42}, nil
		},
	}
	repo := NewHistoryRepository(db)

	cutoff := time.Now().UTC().Add(-14 * 24 * time.Hour)

	deleted, err := repo.DeleteCreatedBefore(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 42 {
		t.Fatalf("expected 42 deleted rows, got %d", deleted)
	}
	if !strings.Contains(db.lastQuery, "DELETE FROM notification_history") {
		t.Fatalf("unexpected query: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 1 || db.lastArgs[0] != cutoff {
		t.Fatalf("expected the cutoff as the only arg, got %v", db.lastArgs)
	}
}

func TestHistoryRepository_DeleteCreatedBeforeError(t *testing.T) {
	dbErr := errors.New("deadlock detected")
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, dbErr
		},
	}
	repo := NewHistoryRepository(db)

	if _, err := repo.DeleteCreatedBefore(context.Background(), time.Now()); !errors.Is(err, dbErr) {
		t.Fatalf("expected the db error, got %v", err)
	}
}
