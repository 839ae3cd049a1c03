package calculator

import (
	"cmp"
	"math"
	"slices"
)

// UnknownParticipant is the display name used when a resolver has no name for an ID.
const UnknownParticipant = "Unknown"

// NameResolver maps participant IDs to display names. *models.Trip implements it.
type NameResolver interface {
	ParticipantName(id string) (string, bool)
}

// NameResolverFunc adapts a plain function to NameResolver.
type NameResolverFunc func(id string) (string, bool)

// ParticipantName implements NameResolver.
func (f NameResolverFunc) ParticipantName(id string) (string, bool) {
	return f(id)
}

// Settlement is a suggested transfer that reduces outstanding imbalance.
type Settlement struct {
	FromID string  // Participant who owes
	From   string  // Display name of FromID
	ToID   string  // Participant who is owed
	To     string  // Display name of ToID
	Amount float64 // Always > 0
}

// ComputeSettlements plans transfers that bring every balance to zero.
//
// Greedy matching: debtors sorted most negative first, creditors most positive
// first, and each step moves min(|debt|, credit) from the current debtor to the
// current creditor. Nets within Epsilon of zero are treated as settled. Every
// step settles at least one side, so the result has at most debtors+creditors-1
// transfers. That can exceed min(debtors, creditors), and it is not guaranteed
// to be the minimum possible count.
// Residual imbalance left when one side runs out is dropped.
func ComputeSettlements(balances []Balance, names NameResolver) []Settlement {
	type position struct {
		id  string
		net float64
	}

	var debtors, creditors []position
	for _, b := range balances {
		if b.Net < -Epsilon {
			debtors = append(debtors, position{id: b.ParticipantID, net: b.Net})
		} else if b.Net > Epsilon {
			creditors = append(creditors, position{id: b.ParticipantID, net: b.Net})
		}
	}

	// Stable so ties keep input order and the plan is deterministic
	slices.SortStableFunc(debtors, func(a, b position) int { return cmp.Compare(a.net, b.net) })
	slices.SortStableFunc(creditors, func(a, b position) int { return cmp.Compare(b.net, a.net) })

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := min(-debtor.net, creditor.net)
		if amount > 0 {
			settlements = append(settlements, Settlement{
				FromID: debtor.id,
				From:   resolveName(names, debtor.id),
				ToID:   creditor.id,
				To:     resolveName(names, creditor.id),
				Amount: amount,
			})
		}

		debtor.net += amount
		creditor.net -= amount

		// Both may settle in the same step
		if math.Abs(debtor.net) < Epsilon {
			i++
		}
		if creditor.net < Epsilon {
			j++
		}
	}

	return settlements
}

// ApplySettlements returns a copy of balances with every transfer executed:
// the payer's Paid grows and the receiver's Consumed grows by the amount.
// Transfers naming unknown participants are ignored.
func ApplySettlements(balances []Balance, settlements []Settlement) []Balance {
	result := slices.Clone(balances)
	index := make(map[string]int, len(result))
	for i, b := range result {
		index[b.ParticipantID] = i
	}

	for _, s := range settlements {
		if i, ok := index[s.FromID]; ok {
			result[i].Paid += s.Amount
			result[i].Net += s.Amount
		}
		if j, ok := index[s.ToID]; ok {
			result[j].Consumed += s.Amount
			result[j].Net -= s.Amount
		}
	}

	return result
}

func resolveName(names NameResolver, id string) string {
	if names == nil {
		return UnknownParticipant
	}
	if name, ok := names.ParticipantName(id); ok {
		return name
	}
	return UnknownParticipant
}
