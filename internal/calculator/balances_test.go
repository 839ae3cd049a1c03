package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/tripsplit/internal/models"
)

func threePersonTrip(expenses ...models.Expense) *models.Trip {
	return &models.Trip{
		ID:   "trip-1",
		Name: "Road Trip",
		Participants: []models.Participant{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
			{ID: "c", Name: "Charlie"},
		},
		Expenses: expenses,
	}
}

func byID(balances []Balance) map[string]Balance {
	m := make(map[string]Balance, len(balances))
	for _, b := range balances {
		m[b.ParticipantID] = b
	}
	return m
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestComputeBalances(t *testing.T) {
	type want struct{ paid, consumed, net float64 }

	tests := []struct {
		name string
		trip *models.Trip
		want map[string]want
	}{
		{
			name: "dinner paid by one, split three ways",
			trip: threePersonTrip(models.Expense{
				ID: "e1", Title: "Dinner", TotalAmount: 300,
				Payers:    []models.Payer{{ParticipantID: "a", Amount: 300}},
				Splitters: []string{"a", "b", "c"},
			}),
			want: map[string]want{
				"a": {300, 100, 200},
				"b": {0, 100, -100},
				"c": {0, 100, -100},
			},
		},
		{
			name: "adjustment charged on top of base share",
			trip: threePersonTrip(models.Expense{
				ID: "e1", Title: "Dinner", TotalAmount: 300,
				Payers:      []models.Payer{{ParticipantID: "a", Amount: 300}},
				Splitters:   []string{"a", "b", "c"},
				Adjustments: []models.Adjustment{{ParticipantID: "b", Amount: 30}},
			}),
			want: map[string]want{
				"a": {300, 90, 210},
				"b": {0, 120, -120},
				"c": {0, 90, -90},
			},
		},
		{
			name: "no expenses yields all-zero balances",
			trip: threePersonTrip(),
			want: map[string]want{
				"a": {0, 0, 0},
				"b": {0, 0, 0},
				"c": {0, 0, 0},
			},
		},
		{
			name: "multiple payers and subset of splitters",
			trip: threePersonTrip(
				models.Expense{
					ID: "e1", Title: "Hotel", TotalAmount: 400,
					Payers: []models.Payer{
						{ParticipantID: "a", Amount: 250},
						{ParticipantID: "b", Amount: 150},
					},
					Splitters: []string{"a", "b"},
				},
				models.Expense{
					ID: "e2", Title: "Taxi", TotalAmount: 60,
					Payers:    []models.Payer{{ParticipantID: "c", Amount: 60}},
					Splitters: []string{"a", "b", "c"},
				},
			),
			want: map[string]want{
				"a": {250, 220, 30},
				"b": {150, 220, -70},
				"c": {60, 20, 40},
			},
		},
		{
			name: "empty splitters credits payer and charges nobody",
			trip: threePersonTrip(models.Expense{
				ID: "e1", Title: "Mystery", TotalAmount: 90,
				Payers: []models.Payer{{ParticipantID: "a", Amount: 90}},
			}),
			want: map[string]want{
				"a": {90, 0, 90},
				"b": {0, 0, 0},
				"c": {0, 0, 0},
			},
		},
		{
			name: "adjustments exceeding total give negative base shares",
			trip: threePersonTrip(models.Expense{
				ID: "e1", Title: "Odd", TotalAmount: 30,
				Payers:      []models.Payer{{ParticipantID: "a", Amount: 30}},
				Splitters:   []string{"a", "b", "c"},
				Adjustments: []models.Adjustment{{ParticipantID: "c", Amount: 60}},
			}),
			want: map[string]want{
				"a": {30, -10, 40},
				"b": {0, -10, 10},
				"c": {0, 50, -50},
			},
		},
		{
			name: "unknown ids are ignored, unknown adjustment still shrinks base share",
			trip: threePersonTrip(models.Expense{
				ID: "e1", Title: "Lunch", TotalAmount: 120,
				Payers: []models.Payer{
					{ParticipantID: "a", Amount: 100},
					{ParticipantID: "ghost", Amount: 20},
				},
				Splitters:   []string{"a", "b", "ghost"},
				Adjustments: []models.Adjustment{{ParticipantID: "ghost", Amount: 30}},
			}),
			want: map[string]want{
				"a": {100, 30, 70},
				"b": {0, 30, -30},
				"c": {0, 0, 0},
			},
		},
		{
			name: "payer sum mismatch propagates unchanged",
			trip: threePersonTrip(models.Expense{
				ID: "e1", Title: "Snacks", TotalAmount: 30,
				Payers:    []models.Payer{{ParticipantID: "b", Amount: 45}},
				Splitters: []string{"a", "b", "c"},
			}),
			want: map[string]want{
				"a": {0, 10, -10},
				"b": {45, 10, 35},
				"c": {0, 10, -10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := ComputeBalances(tt.trip)
			if len(balances) != len(tt.trip.Participants) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.trip.Participants))
			}

			got := byID(balances)
			for id, w := range tt.want {
				b, ok := got[id]
				if !ok {
					t.Fatalf("missing balance for %s", id)
				}
				if !approx(b.Paid, w.paid) {
					t.Errorf("%s paid = %v, want %v", id, b.Paid, w.paid)
				}
				if !approx(b.Consumed, w.consumed) {
					t.Errorf("%s consumed = %v, want %v", id, b.Consumed, w.consumed)
				}
				if !approx(b.Net, w.net) {
					t.Errorf("%s net = %v, want %v", id, b.Net, w.net)
				}
			}
		})
	}
}

func TestComputeBalances_ParticipantOrder(t *testing.T) {
	balances := ComputeBalances(threePersonTrip())
	for i, want := range []string{"a", "b", "c"} {
		if balances[i].ParticipantID != want {
			t.Errorf("balances[%d] = %s, want %s", i, balances[i].ParticipantID, want)
		}
	}
}

func TestComputeBalances_NilTrip(t *testing.T) {
	if got := ComputeBalances(nil); got != nil {
		t.Errorf("ComputeBalances(nil) = %v, want nil", got)
	}
}

func TestComputeBalances_DoesNotMutateTrip(t *testing.T) {
	trip := threePersonTrip(models.Expense{
		ID: "e1", TotalAmount: 300,
		Payers:      []models.Payer{{ParticipantID: "a", Amount: 300}},
		Splitters:   []string{"a", "b", "c"},
		Adjustments: []models.Adjustment{{ParticipantID: "b", Amount: 30}},
	})

	first := ComputeBalances(trip)
	second := ComputeBalances(trip)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("recomputation drifted: %+v vs %+v", first[i], second[i])
		}
	}
	if trip.Expenses[0].Adjustments[0].Amount != 30 {
		t.Error("trip was mutated")
	}
}

func TestComputeBalances_Conservation(t *testing.T) {
	// Uneven thirds and mixed adjustments to exercise float accumulation
	trip := threePersonTrip(
		models.Expense{
			ID: "e1", TotalAmount: 100,
			Payers:    []models.Payer{{ParticipantID: "a", Amount: 100}},
			Splitters: []string{"a", "b", "c"},
		},
		models.Expense{
			ID: "e2", TotalAmount: 77.77,
			Payers: []models.Payer{
				{ParticipantID: "b", Amount: 50},
				{ParticipantID: "c", Amount: 27.77},
			},
			Splitters:   []string{"a", "c"},
			Adjustments: []models.Adjustment{{ParticipantID: "a", Amount: 12.5}},
		},
		models.Expense{
			ID: "e3", TotalAmount: 10.01,
			Payers:      []models.Payer{{ParticipantID: "c", Amount: 10.01}},
			Splitters:   []string{"b"},
			Adjustments: []models.Adjustment{{ParticipantID: "a", Amount: 3}, {ParticipantID: "c", Amount: 1}},
		},
	)

	balances := ComputeBalances(trip)
	if total := NetTotal(balances); math.Abs(total) > Epsilon {
		t.Errorf("net total = %v, want 0", total)
	}

	var paid, consumed float64
	for _, b := range balances {
		paid += b.Paid
		consumed += b.Consumed
	}
	if math.Abs(paid-trip.TotalSpent()) > Epsilon {
		t.Errorf("paid total = %v, want %v", paid, trip.TotalSpent())
	}
	if math.Abs(consumed-trip.TotalSpent()) > Epsilon {
		t.Errorf("consumed total = %v, want %v", consumed, trip.TotalSpent())
	}
}

func TestComputeBalances_SinglePayerShortcut(t *testing.T) {
	for n := 1; n <= 3; n++ {
		trip := threePersonTrip(models.Expense{
			ID: "e1", TotalAmount: 99,
			Payers:    []models.Payer{{ParticipantID: "c", Amount: 99}},
			Splitters: []string{"a", "b", "c"}[:n],
		})
		got := byID(ComputeBalances(trip))

		if !approx(got["c"].Paid, 99) {
			t.Errorf("n=%d: payer paid = %v, want 99", n, got["c"].Paid)
		}
		for _, id := range []string{"a", "b", "c"}[:n] {
			if !approx(got[id].Consumed, 99/float64(n)) {
				t.Errorf("n=%d: %s consumed = %v, want %v", n, id, got[id].Consumed, 99/float64(n))
			}
		}
	}
}

func TestComputeBalancesStrict(t *testing.T) {
	valid := threePersonTrip(models.Expense{
		ID: "e1", TotalAmount: 300,
		Payers:    []models.Payer{{ParticipantID: "a", Amount: 300}},
		Splitters: []string{"a", "b", "c"},
	})
	balances, err := ComputeBalancesStrict(valid)
	if err != nil {
		t.Fatalf("ComputeBalancesStrict() error = %v", err)
	}
	if len(balances) != 3 {
		t.Errorf("got %d balances, want 3", len(balances))
	}

	invalid := threePersonTrip(models.Expense{
		ID: "e1", TotalAmount: 300,
		Payers:      []models.Payer{{ParticipantID: "a", Amount: 300}},
		Splitters:   []string{"a", "b", "c"},
		Adjustments: []models.Adjustment{{ParticipantID: "ghost", Amount: 30}},
	})
	balances, err = ComputeBalancesStrict(invalid)
	if err == nil {
		t.Fatal("expected error for unknown adjustment target")
	}
	if balances != nil {
		t.Errorf("expected nil balances on error, got %v", balances)
	}
}
