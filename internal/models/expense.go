package models

// Expense is one spending event.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Title is the reason for the spending (e.g., "Dinner").
	Title string

	// TotalAmount is the full cost of the event.
	TotalAmount float64

	// Date is the Unix timestamp in milliseconds of the spending event.
	Date int64

	// Payers lists who fronted money and how much each fronted.
	// The amounts should add up to TotalAmount; callers enforce that.
	Payers []Payer

	// Splitters are the participant IDs sharing the base cost.
	Splitters []string

	// Adjustments are surcharges charged to one participant on top of
	// their base share.
	Adjustments []Adjustment
}

// Payer is one participant's contribution to an expense.
type Payer struct {
	ParticipantID string
	Amount        float64
}

// Adjustment is an extra amount one participant consumed beyond the even split
// (e.g., a pricier dish).
type Adjustment struct {
	ParticipantID string
	Amount        float64
}

// PaidTotal sums the payer amounts.
func (e *Expense) PaidTotal() float64 {
	var total float64
	for _, p := range e.Payers {
		total += p.Amount
	}
	return total
}

// AdjustmentTotal sums the adjustment amounts.
func (e *Expense) AdjustmentTotal() float64 {
	var total float64
	for _, a := range e.Adjustments {
		total += a.Amount
	}
	return total
}
