package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func dinner(payer string, splitters ...string) models.Expense {
	return models.Expense{
		Title:       "Dinner",
		TotalAmount: 300,
		Date:        1700000000000,
		Payers:      []models.Payer{{ParticipantID: payer, Amount: 300}},
		Splitters:   splitters,
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates IDs and timestamp", func(t *testing.T) {
		trip := &models.Trip{
			Name:         "Kyoto",
			Participants: []models.Participant{{Name: "Alice"}, {Name: "Bob"}},
		}

		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if trip.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		for i, p := range trip.Participants {
			if p.ID == "" {
				t.Errorf("Expected participant %d ID to be generated", i)
			}
		}
	})

	t.Run("GetTrip retrieves complete trip", func(t *testing.T) {
		original := models.NewTrip("Lisbon", []string{"Charlie", "Diana", "Eve"})
		c, d, e := original.Participants[0].ID, original.Participants[1].ID, original.Participants[2].ID

		if err := store.CreateTrip(ctx, original); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		exp := dinner(c, c, d, e)
		exp.Adjustments = []models.Adjustment{{ParticipantID: d, Amount: 30}}
		if err := store.AddExpense(ctx, original.ID, &exp); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		retrieved, err := store.GetTrip(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}

		if retrieved.Name != "Lisbon" {
			t.Errorf("Name mismatch: got %s, want Lisbon", retrieved.Name)
		}
		if retrieved.CreatedAt != original.CreatedAt {
			t.Errorf("CreatedAt mismatch: got %d, want %d", retrieved.CreatedAt, original.CreatedAt)
		}
		for i, p := range retrieved.Participants {
			if p != original.Participants[i] {
				t.Errorf("Participant %d mismatch: got %+v, want %+v", i, p, original.Participants[i])
			}
		}
		if len(retrieved.Expenses) != 1 {
			t.Fatalf("Expenses count mismatch: got %d, want 1", len(retrieved.Expenses))
		}

		got := retrieved.Expenses[0]
		if got.ID != exp.ID || got.Title != "Dinner" || got.TotalAmount != 300 || got.Date != exp.Date {
			t.Errorf("Expense mismatch: got %+v", got)
		}
		if len(got.Payers) != 1 || got.Payers[0] != exp.Payers[0] {
			t.Errorf("Payers mismatch: got %+v", got.Payers)
		}
		if len(got.Splitters) != 3 || got.Splitters[0] != c || got.Splitters[2] != e {
			t.Errorf("Splitters mismatch: got %v", got.Splitters)
		}
		if len(got.Adjustments) != 1 || got.Adjustments[0] != exp.Adjustments[0] {
			t.Errorf("Adjustments mismatch: got %+v", got.Adjustments)
		}
	})

	t.Run("GetTrip returns ErrNotFound for nonexistent trip", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Expenses come back newest first", func(t *testing.T) {
		trip := models.NewTrip("Order", []string{"Alice"})
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		a := trip.Participants[0].ID

		var ids []string
		for _, title := range []string{"first", "second", "third"} {
			exp := dinner(a, a)
			exp.Title = title
			if err := store.AddExpense(ctx, trip.ID, &exp); err != nil {
				t.Fatalf("AddExpense failed: %v", err)
			}
			ids = append(ids, exp.ID)
		}

		retrieved, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		for i, want := range []string{ids[2], ids[1], ids[0]} {
			if retrieved.Expenses[i].ID != want {
				t.Errorf("Expense %d: got %s, want %s", i, retrieved.Expenses[i].ID, want)
			}
		}
	})

	t.Run("Unknown participant references round-trip", func(t *testing.T) {
		trip := models.NewTrip("Ghosts", []string{"Alice"})
		trip.Expenses = []models.Expense{dinner("ghost", "ghost", trip.Participants[0].ID)}
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		retrieved, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if retrieved.Expenses[0].Payers[0].ParticipantID != "ghost" {
			t.Errorf("Expected ghost payer, got %+v", retrieved.Expenses[0].Payers)
		}
	})

	t.Run("AddParticipant appends in order", func(t *testing.T) {
		trip := models.NewTrip("Growing", []string{"Alice", "Bob"})
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		p := models.Participant{Name: "Zed"}
		if err := store.AddParticipant(ctx, trip.ID, &p); err != nil {
			t.Fatalf("AddParticipant failed: %v", err)
		}
		if p.ID == "" {
			t.Error("Expected participant ID to be generated")
		}

		retrieved, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if len(retrieved.Participants) != 3 || retrieved.Participants[2].Name != "Zed" {
			t.Errorf("Unexpected participants: %+v", retrieved.Participants)
		}
	})

	t.Run("AddParticipant to nonexistent trip", func(t *testing.T) {
		err := store.AddParticipant(ctx, "nonexistent-id", &models.Participant{Name: "X"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateExpense replaces entries", func(t *testing.T) {
		trip := models.NewTrip("Edits", []string{"Alice", "Bob"})
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		a, b := trip.Participants[0].ID, trip.Participants[1].ID

		exp := dinner(a, a, b)
		if err := store.AddExpense(ctx, trip.ID, &exp); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		exp.Title = "Late dinner"
		exp.TotalAmount = 120
		exp.Payers = []models.Payer{{ParticipantID: b, Amount: 120}}
		exp.Splitters = []string{a}
		if err := store.UpdateExpense(ctx, trip.ID, &exp); err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}

		retrieved, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		got := retrieved.Expenses[0]
		if got.Title != "Late dinner" || got.TotalAmount != 120 {
			t.Errorf("Expense not updated: %+v", got)
		}
		if len(got.Payers) != 1 || got.Payers[0].ParticipantID != b {
			t.Errorf("Payers not replaced: %+v", got.Payers)
		}
		if len(got.Splitters) != 1 || got.Splitters[0] != a {
			t.Errorf("Splitters not replaced: %v", got.Splitters)
		}
	})

	t.Run("UpdateExpense on another trip is not found", func(t *testing.T) {
		trip := models.NewTrip("Owner", []string{"Alice"})
		other := models.NewTrip("Other", []string{"Bob"})
		for _, tr := range []*models.Trip{trip, other} {
			if err := store.CreateTrip(ctx, tr); err != nil {
				t.Fatalf("CreateTrip failed: %v", err)
			}
		}
		exp := dinner(trip.Participants[0].ID, trip.Participants[0].ID)
		if err := store.AddExpense(ctx, trip.ID, &exp); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		err := store.UpdateExpense(ctx, other.ID, &exp)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		err = store.DeleteExpense(ctx, other.ID, exp.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteExpense and DeleteTrip", func(t *testing.T) {
		trip := models.NewTrip("Short", []string{"Alice"})
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		exp := dinner(trip.Participants[0].ID, trip.Participants[0].ID)
		if err := store.AddExpense(ctx, trip.ID, &exp); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		if err := store.DeleteExpense(ctx, trip.ID, exp.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		retrieved, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if len(retrieved.Expenses) != 0 {
			t.Errorf("Expected no expenses, got %d", len(retrieved.Expenses))
		}

		if err := store.DeleteTrip(ctx, trip.ID); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}
		if _, err := store.GetTrip(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteTrip(ctx, trip.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestListTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := models.NewTrip("Older", []string{"Alice", "Bob"})
	older.CreatedAt = 1000
	newer := models.NewTrip("Newer", []string{"Carol"})
	newer.CreatedAt = 2000

	for _, tr := range []*models.Trip{older, newer} {
		if err := store.CreateTrip(ctx, tr); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
	}

	a := older.Participants[0].ID
	for _, amount := range []float64{300, 45.5} {
		exp := dinner(a, a)
		exp.TotalAmount = amount
		if err := store.AddExpense(ctx, older.ID, &exp); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}

	summaries, err := store.ListTrips(ctx)
	if err != nil {
		t.Fatalf("ListTrips failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != newer.ID {
		t.Errorf("Expected newest trip first, got %s", summaries[0].Name)
	}

	got := summaries[1]
	if got.ParticipantCount != 2 || got.ExpenseCount != 2 || got.TotalSpent != 345.5 {
		t.Errorf("Unexpected summary: %+v", got)
	}
}
