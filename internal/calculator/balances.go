// Package calculator derives per-participant balances and suggested
// settlement transfers from a trip's expense history.
//
// Both operations are pure: they hold no state between calls and never
// mutate their input, so they are safe to call concurrently on independent
// trip snapshots.
package calculator

import "github.com/mmynk/tripsplit/internal/models"

// Epsilon absorbs floating point noise; nets within Epsilon of zero are settled.
const Epsilon = 0.01

// Balance is one participant's position across all expenses of a trip.
type Balance struct {
	ParticipantID string
	Paid          float64 // Sum of this participant's payer amounts
	Consumed      float64 // Sum of this participant's fair shares
	Net           float64 // Paid - Consumed. Positive = owed money, negative = owes money
}

// ComputeBalances returns one Balance per trip participant, in participant order.
//
// Algorithm:
//   - Every payer amount is credited to Paid
//   - For an expense with splitters: base share = (total - sum of adjustments) / splitters,
//     added to every splitter's Consumed; each adjustment is added to its target's Consumed
//   - Expenses without splitters credit Paid but charge nobody
//   - Net = Paid - Consumed
//
// References to IDs that are not trip participants are ignored. An adjustment
// with an unknown target still reduces the base share of everyone else.
// Adjustments larger than the total produce negative base shares. Neither case
// is corrected here; see Validate for a strict check.
func ComputeBalances(trip *models.Trip) []Balance {
	if trip == nil {
		return nil
	}

	// Seed every participant so zero-activity members still show up
	balances := make(map[string]*Balance, len(trip.Participants))
	for _, p := range trip.Participants {
		balances[p.ID] = &Balance{ParticipantID: p.ID}
	}

	for _, exp := range trip.Expenses {
		for _, payer := range exp.Payers {
			if bal, ok := balances[payer.ParticipantID]; ok {
				bal.Paid += payer.Amount
			}
		}

		splitCount := len(exp.Splitters)
		if splitCount == 0 {
			continue
		}

		remaining := exp.TotalAmount - exp.AdjustmentTotal()
		baseShare := remaining / float64(splitCount)

		for _, id := range exp.Splitters {
			if bal, ok := balances[id]; ok {
				bal.Consumed += baseShare
			}
		}
		for _, adj := range exp.Adjustments {
			if bal, ok := balances[adj.ParticipantID]; ok {
				bal.Consumed += adj.Amount
			}
		}
	}

	result := make([]Balance, 0, len(trip.Participants))
	for _, p := range trip.Participants {
		bal := balances[p.ID]
		// Duplicate participant IDs share one accumulator; emit it once
		if bal == nil {
			continue
		}
		bal.Net = bal.Paid - bal.Consumed
		result = append(result, *bal)
		delete(balances, p.ID)
	}

	return result
}

// ComputeBalancesStrict validates the trip before computing balances.
// It returns the joined validation errors instead of degraded numbers.
func ComputeBalancesStrict(trip *models.Trip) ([]Balance, error) {
	if err := Validate(trip); err != nil {
		return nil, err
	}
	return ComputeBalances(trip), nil
}

// NetTotal sums the net of every balance. It is zero (within Epsilon) for a
// trip whose expenses all have splitters and reference known participants.
func NetTotal(balances []Balance) float64 {
	var total float64
	for _, b := range balances {
		total += b.Net
	}
	return total
}
