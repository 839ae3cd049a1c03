package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/tripsplit/internal/models"
)

// getParticipants loads a trip's participants in insertion order.
func (s *SQLiteStore) getParticipants(ctx context.Context, tripID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM participants WHERE trip_id = ? ORDER BY position",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// getExpenses loads a trip's expenses newest first, with payers, splitters and
// adjustments in their original order. Each result set is drained before the
// next query starts since the store runs on a single connection.
func (s *SQLiteStore) getExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, total_amount, date FROM expenses WHERE trip_id = ? ORDER BY seq DESC",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.TotalAmount, &e.Date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if len(expenses) == 0 {
		return nil, nil
	}

	index := make(map[string]*models.Expense, len(expenses))
	for i := range expenses {
		index[expenses[i].ID] = &expenses[i]
	}

	if err := s.loadPayers(ctx, tripID, index); err != nil {
		return nil, err
	}
	if err := s.loadSplitters(ctx, tripID, index); err != nil {
		return nil, err
	}
	if err := s.loadAdjustments(ctx, tripID, index); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (s *SQLiteStore) loadPayers(ctx context.Context, tripID string, index map[string]*models.Expense) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.expense_id, p.participant_id, p.amount
		FROM expense_payers p JOIN expenses e ON e.id = p.expense_id
		WHERE e.trip_id = ?
		ORDER BY p.expense_id, p.position`,
		tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to get payers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		var p models.Payer
		if err := rows.Scan(&expenseID, &p.ParticipantID, &p.Amount); err != nil {
			return fmt.Errorf("failed to scan payer: %w", err)
		}
		if e, ok := index[expenseID]; ok {
			e.Payers = append(e.Payers, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payers: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadSplitters(ctx context.Context, tripID string, index map[string]*models.Expense) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sp.expense_id, sp.participant_id
		FROM expense_splitters sp JOIN expenses e ON e.id = sp.expense_id
		WHERE e.trip_id = ?
		ORDER BY sp.expense_id, sp.position`,
		tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to get splitters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, participantID string
		if err := rows.Scan(&expenseID, &participantID); err != nil {
			return fmt.Errorf("failed to scan splitter: %w", err)
		}
		if e, ok := index[expenseID]; ok {
			e.Splitters = append(e.Splitters, participantID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splitters: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadAdjustments(ctx context.Context, tripID string, index map[string]*models.Expense) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.expense_id, a.participant_id, a.amount
		FROM expense_adjustments a JOIN expenses e ON e.id = a.expense_id
		WHERE e.trip_id = ?
		ORDER BY a.expense_id, a.position`,
		tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to get adjustments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		var a models.Adjustment
		if err := rows.Scan(&expenseID, &a.ParticipantID, &a.Amount); err != nil {
			return fmt.Errorf("failed to scan adjustment: %w", err)
		}
		if e, ok := index[expenseID]; ok {
			e.Adjustments = append(e.Adjustments, a)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate adjustments: %w", err)
	}
	return nil
}
