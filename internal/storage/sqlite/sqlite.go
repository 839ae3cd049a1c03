// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// PRAGMAs are per connection; one connection keeps foreign keys on everywhere
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTrip persists a new trip, its participants and any expenses it already carries.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips (id, name, created_at) VALUES (?, ?, ?)",
		trip.ID, trip.Name, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	for i := range trip.Participants {
		p := &trip.Participants[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO participants (id, trip_id, name, position) VALUES (?, ?, ?, ?)",
			p.ID, trip.ID, p.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	// Expenses are stored oldest first so that the newest ends up with the highest seq
	for i := len(trip.Expenses) - 1; i >= 0; i-- {
		if err := insertExpense(ctx, tx, trip.ID, &trip.Expenses[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID, including participants and expenses.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: trip %s", storage.ErrNotFound, tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	if trip.Participants, err = s.getParticipants(ctx, tripID); err != nil {
		return nil, err
	}
	if trip.Expenses, err = s.getExpenses(ctx, tripID); err != nil {
		return nil, err
	}

	return trip, nil
}

// ListTrips returns a summary row for every trip, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]storage.TripSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.created_at,
		       (SELECT COUNT(*) FROM participants p WHERE p.trip_id = t.id),
		       (SELECT COUNT(*) FROM expenses e WHERE e.trip_id = t.id),
		       (SELECT COALESCE(SUM(e.total_amount), 0) FROM expenses e WHERE e.trip_id = t.id)
		FROM trips t
		ORDER BY t.created_at DESC, t.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var summaries []storage.TripSummary
	for rows.Next() {
		var sum storage.TripSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.CreatedAt,
			&sum.ParticipantCount, &sum.ExpenseCount, &sum.TotalSpent); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return summaries, nil
}

// DeleteTrip removes a trip; participants and expenses cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return requireAffected(res, "trip", tripID)
}

// AddParticipant appends a participant at the end of the trip's participant list.
func (s *SQLiteStore) AddParticipant(ctx context.Context, tripID string, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireTrip(ctx, tx, tripID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO participants (id, trip_id, name, position)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM participants WHERE trip_id = ?))`,
		participant.ID, tripID, participant.Name, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AddExpense records a new expense; it becomes the trip's newest.
func (s *SQLiteStore) AddExpense(ctx context.Context, tripID string, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireTrip(ctx, tx, tripID); err != nil {
		return err
	}
	if err := insertExpense(ctx, tx, tripID, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateExpense replaces an expense's fields and entries in place.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, tripID string, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE expenses SET title = ?, total_amount = ?, date = ? WHERE id = ? AND trip_id = ?",
		expense.Title, expense.TotalAmount, expense.Date, expense.ID, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if err := requireAffected(res, "expense", expense.ID); err != nil {
		return err
	}

	for _, table := range []string{"expense_payers", "expense_splitters", "expense_adjustments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE expense_id = ?", expense.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertExpenseEntries(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense belonging to the trip.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND trip_id = ?",
		expenseID, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(res, "expense", expenseID)
}

func insertExpense(ctx context.Context, tx execer, tripID string, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date == 0 {
		expense.Date = time.Now().UnixMilli()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO expenses (id, trip_id, title, total_amount, date, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM expenses WHERE trip_id = ?))`,
		expense.ID, tripID, expense.Title, expense.TotalAmount, expense.Date, tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return insertExpenseEntries(ctx, tx, expense)
}

func insertExpenseEntries(ctx context.Context, tx execer, expense *models.Expense) error {
	for i, p := range expense.Payers {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_payers (expense_id, position, participant_id, amount) VALUES (?, ?, ?, ?)",
			expense.ID, i, p.ParticipantID, p.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}

	for i, id := range expense.Splitters {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splitters (expense_id, position, participant_id) VALUES (?, ?, ?)",
			expense.ID, i, id,
		)
		if err != nil {
			return fmt.Errorf("failed to insert splitter: %w", err)
		}
	}

	for i, a := range expense.Adjustments {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_adjustments (expense_id, position, participant_id, amount) VALUES (?, ?, ?, ?)",
			expense.ID, i, a.ParticipantID, a.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert adjustment: %w", err)
		}
	}

	return nil
}

func requireTrip(ctx context.Context, tx execer, tripID string) error {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", tripID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: trip %s", storage.ErrNotFound, tripID)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", storage.ErrNotFound, kind, id)
	}
	return nil
}
