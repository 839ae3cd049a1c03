package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   string
	}{
		{100, 0, "100"},
		{99.5, 0, "100"},
		{33.333333, 2, "33.33"},
		{-12.345, 2, "-12.34"},
		{2.5, 0, "3"},
		{-2.5, 0, "-2"},
		{-0.4, 0, "0"},
		{0.004, 2, "0.00"},
		{7, 2, "7.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in, tt.places), "FormatAmount(%v, %d)", tt.in, tt.places)
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+200", FormatSigned(200, 0))
	assert.Equal(t, "-100", FormatSigned(-100, 0))
	assert.Equal(t, "0", FormatSigned(-0.2, 0))
	assert.Equal(t, "0", FormatSigned(0.4, 0))
	assert.Equal(t, "0.00", FormatSigned(0, 2))
	assert.Equal(t, "-2", FormatSigned(-2.5, 0))
	assert.Equal(t, "-0.01", FormatSigned(-0.006, 2))
}

func TestStatement(t *testing.T) {
	trip := &models.Trip{
		Name: "Tokyo",
		Participants: []models.Participant{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
			{ID: "c", Name: "Charlie"},
		},
		Expenses: []models.Expense{{
			ID: "e1", Title: "Dinner", TotalAmount: 300,
			Payers:    []models.Payer{{ParticipantID: "a", Amount: 300}},
			Splitters: []string{"a", "b", "c"},
		}},
	}

	balances := calculator.ComputeBalances(trip)
	settlements := calculator.ComputeSettlements(balances, trip)

	want := "Tokyo balances:\n\n" +
		"Alice: +200\n" +
		"Bob: -100\n" +
		"Charlie: -100\n" +
		"\n" +
		"Transfers:\n" +
		"Bob -> Alice: 100\n" +
		"Charlie -> Alice: 100\n"
	assert.Equal(t, want, Statement(trip, balances, settlements, 0))
}

func TestStatement_AllSettled(t *testing.T) {
	trip := &models.Trip{
		Name:         "Quiet",
		Participants: []models.Participant{{ID: "a", Name: "Alice"}},
	}

	got := Statement(trip, calculator.ComputeBalances(trip), nil, 2)
	assert.Equal(t, "Quiet balances:\n\nAlice: 0.00\n\nAll settled.\n", got)
}

func TestFormat_NonFinite(t *testing.T) {
	assert.Equal(t, "+Inf", FormatAmount(math.Inf(1), 2))
	assert.Equal(t, "-Inf", FormatSigned(math.Inf(-1), 0))
	assert.Equal(t, "NaN", FormatSigned(math.NaN(), 2))

	trip := &models.Trip{
		Name:         "Overflow",
		Participants: []models.Participant{{ID: "a", Name: "Alice"}},
	}
	balances := []calculator.Balance{{ParticipantID: "a", Net: math.Inf(1)}}
	assert.NotPanics(t, func() {
		got := Statement(trip, balances, nil, 0)
		assert.Contains(t, got, "Alice: +Inf\n")
	})
}
