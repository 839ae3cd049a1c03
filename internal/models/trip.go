package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a shared expense pool.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Tokyo 2026").
	Name string

	// Participants is the ordered list of people in the trip.
	// Participants are only ever appended.
	Participants []Participant

	// Expenses is the list of spending events, newest first by convention.
	// Order carries no meaning for balance computation.
	Expenses []Expense

	// CreatedAt is the Unix timestamp in milliseconds when the trip was created.
	CreatedAt int64
}

// Participant is one person in a trip's expense pool.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// Name is the display name.
	Name string
}

// NewTrip creates a trip with freshly generated participant IDs.
func NewTrip(name string, participantNames []string) *Trip {
	participants := make([]Participant, 0, len(participantNames))
	for _, n := range participantNames {
		participants = append(participants, NewParticipant(n))
	}
	return &Trip{
		ID:           uuid.New().String(),
		Name:         name,
		Participants: participants,
		CreatedAt:    time.Now().UnixMilli(),
	}
}

// NewParticipant creates a participant with a generated ID.
func NewParticipant(name string) Participant {
	return Participant{ID: uuid.New().String(), Name: name}
}

// ParticipantName returns the display name for a participant ID.
func (t *Trip) ParticipantName(id string) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, p := range t.Participants {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "", false
}

// HasParticipant reports whether id belongs to the trip.
func (t *Trip) HasParticipant(id string) bool {
	_, ok := t.ParticipantName(id)
	return ok
}

// TotalSpent sums the total amount of every expense in the trip.
func (t *Trip) TotalSpent() float64 {
	if t == nil {
		return 0
	}
	var total float64
	for _, e := range t.Expenses {
		total += e.TotalAmount
	}
	return total
}

// FindExpense returns the expense with the given ID, or nil.
func (t *Trip) FindExpense(id string) *Expense {
	for i := range t.Expenses {
		if t.Expenses[i].ID == id {
			return &t.Expenses[i]
		}
	}
	return nil
}
