package service

import (
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	pb "github.com/mmynk/tripsplit/pkg/api"
)

func toProtoTrip(trip *models.Trip) *pb.Trip {
	participants := make([]*pb.Participant, len(trip.Participants))
	for i, p := range trip.Participants {
		participants[i] = toProtoParticipant(p)
	}

	expenses := make([]*pb.Expense, len(trip.Expenses))
	for i := range trip.Expenses {
		expenses[i] = toProtoExpense(&trip.Expenses[i])
	}

	return &pb.Trip{
		Id:           trip.ID,
		Name:         trip.Name,
		Participants: participants,
		Expenses:     expenses,
		CreatedAt:    trip.CreatedAt,
	}
}

func toProtoParticipant(p models.Participant) *pb.Participant {
	return &pb.Participant{Id: p.ID, Name: p.Name}
}

func toProtoExpense(e *models.Expense) *pb.Expense {
	payers := make([]*pb.Payer, len(e.Payers))
	for i, p := range e.Payers {
		payers[i] = &pb.Payer{ParticipantId: p.ParticipantID, Amount: p.Amount}
	}

	var adjustments []*pb.Adjustment
	for _, a := range e.Adjustments {
		adjustments = append(adjustments, &pb.Adjustment{ParticipantId: a.ParticipantID, Amount: a.Amount})
	}

	return &pb.Expense{
		Id:          e.ID,
		Title:       e.Title,
		TotalAmount: e.TotalAmount,
		Date:        e.Date,
		Payers:      payers,
		Splitters:   append([]string{}, e.Splitters...),
		Adjustments: adjustments,
	}
}

// fromProtoTrip converts an inline trip snapshot as-is, without validation.
// Nil entries are skipped.
func fromProtoTrip(t *pb.Trip) *models.Trip {
	trip := &models.Trip{
		ID:        t.Id,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}

	for _, p := range t.Participants {
		if p == nil {
			continue
		}
		trip.Participants = append(trip.Participants, models.Participant{ID: p.Id, Name: p.Name})
	}

	for _, e := range t.Expenses {
		if e == nil {
			continue
		}
		exp := models.Expense{
			ID:          e.Id,
			Title:       e.Title,
			TotalAmount: e.TotalAmount,
			Date:        e.Date,
			Splitters:   e.Splitters,
		}
		for _, p := range e.Payers {
			if p != nil {
				exp.Payers = append(exp.Payers, models.Payer{ParticipantID: p.ParticipantId, Amount: p.Amount})
			}
		}
		for _, a := range e.Adjustments {
			if a != nil {
				exp.Adjustments = append(exp.Adjustments, models.Adjustment{ParticipantID: a.ParticipantId, Amount: a.Amount})
			}
		}
		trip.Expenses = append(trip.Expenses, exp)
	}

	return trip
}

func toProtoBalances(balances []calculator.Balance, names calculator.NameResolver) []*pb.Balance {
	result := make([]*pb.Balance, len(balances))
	for i, b := range balances {
		name, ok := names.ParticipantName(b.ParticipantID)
		if !ok {
			name = calculator.UnknownParticipant
		}
		result[i] = &pb.Balance{
			ParticipantId: b.ParticipantID,
			Name:          name,
			Paid:          b.Paid,
			Consumed:      b.Consumed,
			Net:           b.Net,
		}
	}
	return result
}

func toProtoSettlements(settlements []calculator.Settlement) []*pb.Settlement {
	result := make([]*pb.Settlement, len(settlements))
	for i, s := range settlements {
		result[i] = &pb.Settlement{
			FromId: s.FromID,
			From:   s.From,
			ToId:   s.ToID,
			To:     s.To,
			Amount: s.Amount,
		}
	}
	return result
}

func toProtoSummary(s storage.TripSummary) *pb.TripSummary {
	return &pb.TripSummary{
		Id:               s.ID,
		Name:             s.Name,
		CreatedAt:        s.CreatedAt,
		ParticipantCount: int32(s.ParticipantCount),
		ExpenseCount:     int32(s.ExpenseCount),
		TotalSpent:       s.TotalSpent,
	}
}
