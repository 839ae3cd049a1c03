// Package api defines the request and response messages of the
// tripsplit.v1.TripService Connect service. Messages are plain structs
// carried as JSON; see package apiconnect for handlers and clients.
package api

// Participant is a trip member on the wire.
type Participant struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// Payer is who fronted money for an expense and how much.
type Payer struct {
	ParticipantId string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// Adjustment is an extra amount charged to one participant.
type Adjustment struct {
	ParticipantId string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// Expense is one spending event.
type Expense struct {
	Id          string        `json:"id"`
	Title       string        `json:"title"`
	TotalAmount float64       `json:"total_amount"`
	Date        int64         `json:"date"`
	Payers      []*Payer      `json:"payers"`
	Splitters   []string      `json:"splitters"`
	Adjustments []*Adjustment `json:"adjustments,omitempty"`
}

// Trip is a complete trip snapshot.
type Trip struct {
	Id           string         `json:"id"`
	Name         string         `json:"name"`
	Participants []*Participant `json:"participants"`
	Expenses     []*Expense     `json:"expenses"`
	CreatedAt    int64          `json:"created_at"`
}

// TripSummary is a trip listing row.
type TripSummary struct {
	Id               string  `json:"id"`
	Name             string  `json:"name"`
	CreatedAt        int64   `json:"created_at"`
	ParticipantCount int32   `json:"participant_count"`
	ExpenseCount     int32   `json:"expense_count"`
	TotalSpent       float64 `json:"total_spent"`
}

// Balance is one participant's derived position.
type Balance struct {
	ParticipantId string  `json:"participant_id"`
	Name          string  `json:"name"`
	Paid          float64 `json:"paid"`
	Consumed      float64 `json:"consumed"`
	Net           float64 `json:"net"`
}

// Settlement is a suggested transfer.
type Settlement struct {
	FromId string  `json:"from_id"`
	From   string  `json:"from"`
	ToId   string  `json:"to_id"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// ExpenseInput is the user-entered form of an expense, before normalization.
type ExpenseInput struct {
	Title       string        `json:"title"`
	TotalAmount float64       `json:"total_amount"`
	Date        int64         `json:"date,omitempty"`
	Payers      []*Payer      `json:"payers"`
	Splitters   []string      `json:"splitters"`
	Adjustments []*Adjustment `json:"adjustments,omitempty"`
}

type CreateTripRequest struct {
	Name             string   `json:"name"`
	ParticipantNames []string `json:"participant_names"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripId string `json:"trip_id"`
}

type GetTripResponse struct {
	Trip       *Trip   `json:"trip"`
	TotalSpent float64 `json:"total_spent"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*TripSummary `json:"trips"`
}

type DeleteTripRequest struct {
	TripId string `json:"trip_id"`
}

type DeleteTripResponse struct{}

type AddParticipantRequest struct {
	TripId string `json:"trip_id"`
	Name   string `json:"name"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type AddExpenseRequest struct {
	TripId  string        `json:"trip_id"`
	Expense *ExpenseInput `json:"expense"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	TripId    string        `json:"trip_id"`
	ExpenseId string        `json:"expense_id"`
	Expense   *ExpenseInput `json:"expense"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	TripId    string `json:"trip_id"`
	ExpenseId string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type GetBalancesRequest struct {
	TripId string `json:"trip_id"`
	// Strict rejects trips whose expenses would need a fallback
	// (missing splitters, unknown participants, payer mismatch).
	Strict bool `json:"strict,omitempty"`
}

type GetBalancesResponse struct {
	Balances   []*Balance `json:"balances"`
	TotalSpent float64    `json:"total_spent"`
}

type GetSettlementsRequest struct {
	TripId string `json:"trip_id"`
	Strict bool   `json:"strict,omitempty"`
}

type GetSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type GetStatementRequest struct {
	TripId string `json:"trip_id"`
}

type GetStatementResponse struct {
	Text string `json:"text"`
}

// CalculateBalancesRequest carries an inline trip; nothing is stored.
type CalculateBalancesRequest struct {
	Trip   *Trip `json:"trip"`
	Strict bool  `json:"strict,omitempty"`
}

type CalculateBalancesResponse struct {
	Balances    []*Balance    `json:"balances"`
	Settlements []*Settlement `json:"settlements"`
	TotalSpent  float64       `json:"total_spent"`
}
