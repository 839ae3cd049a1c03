// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrNotFound is wrapped by every store error caused by a missing trip,
// participant or expense.
var ErrNotFound = errors.New("not found")

// TripSummary is a lightweight listing row for a trip.
type TripSummary struct {
	ID               string
	Name             string
	CreatedAt        int64
	ParticipantCount int
	ExpenseCount     int
	TotalSpent       float64
}

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip with its participants and any expenses.
	// Empty IDs and a zero CreatedAt are filled in by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip with participants in insertion order and
	// expenses newest first.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns summaries of all trips, newest first.
	ListTrips(ctx context.Context) ([]TripSummary, error)

	// DeleteTrip removes a trip and everything it owns.
	DeleteTrip(ctx context.Context, tripID string) error

	// AddParticipant appends a participant to a trip.
	AddParticipant(ctx context.Context, tripID string, participant *models.Participant) error

	// AddExpense records a new expense on a trip.
	AddExpense(ctx context.Context, tripID string, expense *models.Expense) error

	// UpdateExpense replaces an existing expense, keeping its position.
	UpdateExpense(ctx context.Context, tripID string, expense *models.Expense) error

	// DeleteExpense removes an expense from a trip.
	DeleteExpense(ctx context.Context, tripID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
