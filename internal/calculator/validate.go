package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/tripsplit/internal/models"
)

// PayerTolerance is how far the payer sum may drift from an expense total
// before strict validation rejects it.
const PayerTolerance = 0.1

var (
	ErrNoSplitters        = errors.New("expense has no splitters")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrPayerMismatch      = errors.New("payer amounts do not add up to total")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
)

// Validate reports every expense that ComputeBalances would handle with a
// degraded fallback: missing splitters, references to unknown participants,
// payer sums that miss the total and non-positive amounts. Problems are joined
// into one error; each wraps one of the Err* sentinels. A nil trip is valid.
func Validate(trip *models.Trip) error {
	if trip == nil {
		return nil
	}

	known := make(map[string]bool, len(trip.Participants))
	for _, p := range trip.Participants {
		known[p.ID] = true
	}

	var errs []error
	for _, exp := range trip.Expenses {
		errs = append(errs, validateExpense(&exp, known)...)
	}
	return errors.Join(errs...)
}

func validateExpense(exp *models.Expense, known map[string]bool) []error {
	var errs []error
	fail := func(err error, format string, args ...any) {
		errs = append(errs, fmt.Errorf("expense %q: %w: %s", exp.ID, err, fmt.Sprintf(format, args...)))
	}

	if exp.TotalAmount <= 0 {
		fail(ErrNonPositiveAmount, "total %v", exp.TotalAmount)
	}
	if len(exp.Splitters) == 0 {
		fail(ErrNoSplitters, "total %v is absorbed by no one", exp.TotalAmount)
	}

	for _, p := range exp.Payers {
		if !known[p.ParticipantID] {
			fail(ErrUnknownParticipant, "payer %q", p.ParticipantID)
		}
		if p.Amount <= 0 {
			fail(ErrNonPositiveAmount, "payer %q amount %v", p.ParticipantID, p.Amount)
		}
	}
	if paid := exp.PaidTotal(); math.Abs(paid-exp.TotalAmount) > PayerTolerance {
		fail(ErrPayerMismatch, "paid %v, total %v", paid, exp.TotalAmount)
	}

	for _, id := range exp.Splitters {
		if !known[id] {
			fail(ErrUnknownParticipant, "splitter %q", id)
		}
	}

	for _, a := range exp.Adjustments {
		if !known[a.ParticipantID] {
			fail(ErrUnknownParticipant, "adjustment target %q", a.ParticipantID)
		}
		if a.Amount <= 0 {
			fail(ErrNonPositiveAmount, "adjustment for %q amount %v", a.ParticipantID, a.Amount)
		}
	}

	return errs
}
