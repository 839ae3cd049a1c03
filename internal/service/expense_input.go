package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	pb "github.com/mmynk/tripsplit/pkg/api"
)

// MaxAmount bounds every amount accepted at entry so that sums over a trip
// stay finite.
const MaxAmount = 1e12

// lonePayerTolerance is how far a single payer's amount may sit from the total
// before it is snapped to the total.
const lonePayerTolerance = 0.01

var (
	errExpenseRequired = errors.New("expense required")
	errTitleRequired   = errors.New("title required")
	errInvalidTotal    = errors.New("total_amount must be a positive number")
	errAmountTooLarge  = fmt.Errorf("amounts must not exceed %v", MaxAmount)
	errNoPayers        = errors.New("at least one payer required")
	errNoSplitters     = errors.New("at least one splitter required")
)

// normalizeExpense turns user input into an expense ready for storage:
//   - payers and adjustments with amount <= 0 are dropped
//   - a lone payer is charged the full total
//   - duplicate splitters collapse, keeping first occurrence order
//
// Amounts above MaxAmount are rejected. It also rejects input the calculator
// would otherwise absorb with a fallback:
// no splitters, payer sum off by more than calculator.PayerTolerance,
// references to participants outside the trip.
func normalizeExpense(in *pb.ExpenseInput, trip *models.Trip) (*models.Expense, error) {
	if in == nil {
		return nil, errExpenseRequired
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errTitleRequired
	}
	if !isFinite(in.TotalAmount) || in.TotalAmount <= 0 {
		return nil, errInvalidTotal
	}
	if in.TotalAmount > MaxAmount {
		return nil, errAmountTooLarge
	}

	exp := &models.Expense{
		Title:       title,
		TotalAmount: in.TotalAmount,
		Date:        in.Date,
	}

	// Payers
	named := make(map[string]bool, len(in.Payers))
	var lastNamed string
	for _, p := range in.Payers {
		if p == nil {
			continue
		}
		if err := requireParticipant(trip, p.ParticipantId, "payer"); err != nil {
			return nil, err
		}
		if named[p.ParticipantId] {
			return nil, fmt.Errorf("duplicate payer %q", p.ParticipantId)
		}
		if p.Amount > MaxAmount {
			return nil, errAmountTooLarge
		}
		named[p.ParticipantId] = true
		lastNamed = p.ParticipantId

		if isFinite(p.Amount) && p.Amount > 0 {
			exp.Payers = append(exp.Payers, models.Payer{ParticipantID: p.ParticipantId, Amount: p.Amount})
		}
	}
	if len(named) == 0 {
		return nil, errNoPayers
	}
	if len(named) == 1 && (len(exp.Payers) == 0 || math.Abs(exp.Payers[0].Amount-exp.TotalAmount) > lonePayerTolerance) {
		exp.Payers = []models.Payer{{ParticipantID: lastNamed, Amount: exp.TotalAmount}}
	}
	if paid := exp.PaidTotal(); math.Abs(paid-exp.TotalAmount) > calculator.PayerTolerance {
		return nil, fmt.Errorf("payers add up to %v but total_amount is %v", paid, exp.TotalAmount)
	}

	// Splitters
	seen := make(map[string]bool, len(in.Splitters))
	for _, id := range in.Splitters {
		if seen[id] {
			continue
		}
		if err := requireParticipant(trip, id, "splitter"); err != nil {
			return nil, err
		}
		seen[id] = true
		exp.Splitters = append(exp.Splitters, id)
	}
	if len(exp.Splitters) == 0 {
		return nil, errNoSplitters
	}

	// Adjustments
	adjusted := make(map[string]bool, len(in.Adjustments))
	for _, a := range in.Adjustments {
		if a == nil || !isFinite(a.Amount) || a.Amount <= 0 {
			continue
		}
		if a.Amount > MaxAmount {
			return nil, errAmountTooLarge
		}
		if err := requireParticipant(trip, a.ParticipantId, "adjustment"); err != nil {
			return nil, err
		}
		if adjusted[a.ParticipantId] {
			return nil, fmt.Errorf("duplicate adjustment for %q", a.ParticipantId)
		}
		adjusted[a.ParticipantId] = true
		exp.Adjustments = append(exp.Adjustments, models.Adjustment{ParticipantID: a.ParticipantId, Amount: a.Amount})
	}

	return exp, nil
}

func requireParticipant(trip *models.Trip, id, role string) error {
	if !trip.HasParticipant(id) {
		return fmt.Errorf("%s %q is not a participant of this trip", role, id)
	}
	return nil
}

// checkInlineAmounts applies the entry bound to a trip snapshot that skipped
// normalization.
func checkInlineAmounts(trip *models.Trip) error {
	for _, e := range trip.Expenses {
		amounts := []float64{e.TotalAmount}
		for _, p := range e.Payers {
			amounts = append(amounts, p.Amount)
		}
		for _, a := range e.Adjustments {
			amounts = append(amounts, a.Amount)
		}
		for _, v := range amounts {
			if !isFinite(v) || math.Abs(v) > MaxAmount {
				return fmt.Errorf("expense %q: %w", e.ID, errAmountTooLarge)
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
