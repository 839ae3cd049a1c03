package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/report"
	"github.com/mmynk/tripsplit/internal/storage"
	pb "github.com/mmynk/tripsplit/pkg/api"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

// DefaultDisplayPlaces is the number of decimals used in statements:
// whole currency units.
const DefaultDisplayPlaces int32 = 0

var (
	errTripNameRequired        = errors.New("trip name required")
	errParticipantsRequired    = errors.New("at least one participant required")
	errParticipantNameRequired = errors.New("participant name required")
	errTripIDRequired          = errors.New("trip_id required")
	errExpenseIDRequired       = errors.New("expense_id required")
	errTripRequired            = errors.New("trip required")
)

// TripService implements the Connect TripService
type TripService struct {
	apiconnect.UnimplementedTripServiceHandler
	store         storage.Store
	displayPlaces int32
}

// Option configures a TripService.
type Option func(*TripService)

// WithDisplayPlaces sets the decimals used when rendering statements.
func WithDisplayPlaces(places int32) Option {
	return func(s *TripService) {
		s.displayPlaces = places
	}
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store, opts ...Option) *TripService {
	s := &TripService{store: store, displayPlaces: DefaultDisplayPlaces}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTrip creates a trip with its initial participants.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[pb.CreateTripRequest]) (*connect.Response[pb.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"name", req.Msg.Name,
		"participants_count", len(req.Msg.ParticipantNames),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errTripNameRequired)
	}
	if len(req.Msg.ParticipantNames) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errParticipantsRequired)
	}

	names := make([]string, len(req.Msg.ParticipantNames))
	for i, n := range req.Msg.ParticipantNames {
		names[i] = strings.TrimSpace(n)
		if names[i] == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument, errParticipantNameRequired)
		}
	}

	trip := models.NewTrip(name, names)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Trip created", "trip_id", trip.ID)

	return connect.NewResponse(&pb.CreateTripResponse{Trip: toProtoTrip(trip)}), nil
}

// GetTrip retrieves a trip with its participants and expenses.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[pb.GetTripRequest]) (*connect.Response[pb.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripId)

	trip, err := s.loadTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, err
	}

	slog.Info("GetTrip successful", "trip_id", trip.ID, "expenses_count", len(trip.Expenses))

	return connect.NewResponse(&pb.GetTripResponse{
		Trip:       toProtoTrip(trip),
		TotalSpent: trip.TotalSpent(),
	}), nil
}

// ListTrips returns summaries of all trips.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[pb.ListTripsRequest]) (*connect.Response[pb.ListTripsResponse], error) {
	slog.Info("ListTrips request received")

	summaries, err := s.store.ListTrips(ctx)
	if err != nil {
		slog.Error("ListTrips failed", "error", err)
		return nil, storeError(err)
	}

	trips := make([]*pb.TripSummary, len(summaries))
	for i, sum := range summaries {
		trips[i] = toProtoSummary(sum)
	}

	slog.Info("ListTrips successful", "count", len(trips))

	return connect.NewResponse(&pb.ListTripsResponse{Trips: trips}), nil
}

// DeleteTrip removes a trip and its expenses.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[pb.DeleteTripRequest]) (*connect.Response[pb.DeleteTripResponse], error) {
	slog.Info("DeleteTrip request received", "trip_id", req.Msg.TripId)

	if req.Msg.TripId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errTripIDRequired)
	}
	if err := s.store.DeleteTrip(ctx, req.Msg.TripId); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Trip deleted", "trip_id", req.Msg.TripId)

	return connect.NewResponse(&pb.DeleteTripResponse{}), nil
}

// AddParticipant appends a participant to a trip.
func (s *TripService) AddParticipant(ctx context.Context, req *connect.Request[pb.AddParticipantRequest]) (*connect.Response[pb.AddParticipantResponse], error) {
	slog.Info("AddParticipant request received", "trip_id", req.Msg.TripId, "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errParticipantNameRequired)
	}

	participant := models.NewParticipant(name)
	if err := s.store.AddParticipant(ctx, req.Msg.TripId, &participant); err != nil {
		slog.Error("AddParticipant failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Participant added", "trip_id", req.Msg.TripId, "participant_id", participant.ID)

	return connect.NewResponse(&pb.AddParticipantResponse{
		Participant: toProtoParticipant(participant),
	}), nil
}

// AddExpense records a new expense after normalizing the input.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[pb.AddExpenseRequest]) (*connect.Response[pb.AddExpenseResponse], error) {
	slog.Info("AddExpense request received", "trip_id", req.Msg.TripId)

	trip, err := s.loadTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("AddExpense failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, err
	}

	expense, err := normalizeExpense(req.Msg.Expense, trip)
	if err != nil {
		slog.Warn("AddExpense rejected", "trip_id", trip.ID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.AddExpense(ctx, trip.ID, expense); err != nil {
		slog.Error("AddExpense failed", "trip_id", trip.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense added",
		"trip_id", trip.ID,
		"expense_id", expense.ID,
		"total", expense.TotalAmount,
	)

	return connect.NewResponse(&pb.AddExpenseResponse{Expense: toProtoExpense(expense)}), nil
}

// UpdateExpense replaces an expense's contents. A zero date keeps the old one.
func (s *TripService) UpdateExpense(ctx context.Context, req *connect.Request[pb.UpdateExpenseRequest]) (*connect.Response[pb.UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received", "trip_id", req.Msg.TripId, "expense_id", req.Msg.ExpenseId)

	if req.Msg.ExpenseId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errExpenseIDRequired)
	}

	trip, err := s.loadTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("UpdateExpense failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, err
	}

	existing := trip.FindExpense(req.Msg.ExpenseId)
	if existing == nil {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}

	expense, err := normalizeExpense(req.Msg.Expense, trip)
	if err != nil {
		slog.Warn("UpdateExpense rejected", "trip_id", trip.ID, "expense_id", existing.ID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	expense.ID = existing.ID
	if expense.Date == 0 {
		expense.Date = existing.Date
	}

	if err := s.store.UpdateExpense(ctx, trip.ID, expense); err != nil {
		slog.Error("UpdateExpense failed", "trip_id", trip.ID, "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense updated", "trip_id", trip.ID, "expense_id", expense.ID)

	return connect.NewResponse(&pb.UpdateExpenseResponse{Expense: toProtoExpense(expense)}), nil
}

// DeleteExpense removes an expense from a trip.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[pb.DeleteExpenseRequest]) (*connect.Response[pb.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "trip_id", req.Msg.TripId, "expense_id", req.Msg.ExpenseId)

	if req.Msg.ExpenseId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errExpenseIDRequired)
	}
	if err := s.store.DeleteExpense(ctx, req.Msg.TripId, req.Msg.ExpenseId); err != nil {
		slog.Error("DeleteExpense failed", "trip_id", req.Msg.TripId, "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense deleted", "trip_id", req.Msg.TripId, "expense_id", req.Msg.ExpenseId)

	return connect.NewResponse(&pb.DeleteExpenseResponse{}), nil
}

// GetBalances computes per-participant balances for a stored trip.
func (s *TripService) GetBalances(ctx context.Context, req *connect.Request[pb.GetBalancesRequest]) (*connect.Response[pb.GetBalancesResponse], error) {
	slog.Info("GetBalances request received", "trip_id", req.Msg.TripId, "strict", req.Msg.Strict)

	trip, err := s.loadTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetBalances failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, err
	}

	balances, err := computeBalances(trip, req.Msg.Strict)
	if err != nil {
		slog.Warn("GetBalances rejected", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	slog.Info("GetBalances successful", "trip_id", trip.ID, "participants", len(balances))

	return connect.NewResponse(&pb.GetBalancesResponse{
		Balances:   toProtoBalances(balances, trip),
		TotalSpent: trip.TotalSpent(),
	}), nil
}

// GetSettlements plans the transfers that settle a stored trip.
func (s *TripService) GetSettlements(ctx context.Context, req *connect.Request[pb.GetSettlementsRequest]) (*connect.Response[pb.GetSettlementsResponse], error) {
	slog.Info("GetSettlements request received", "trip_id", req.Msg.TripId, "strict", req.Msg.Strict)

	trip, err := s.loadTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetSettlements failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, err
	}

	balances, err := computeBalances(trip, req.Msg.Strict)
	if err != nil {
		slog.Warn("GetSettlements rejected", "trip_id", trip.ID, "error", err)
		return nil, err
	}
	settlements := calculator.ComputeSettlements(balances, trip)

	slog.Info("GetSettlements successful", "trip_id", trip.ID, "transfers", len(settlements))

	return connect.NewResponse(&pb.GetSettlementsResponse{
		Settlements: toProtoSettlements(settlements),
	}), nil
}

// GetStatement renders balances and transfers as shareable text.
func (s *TripService) GetStatement(ctx context.Context, req *connect.Request[pb.GetStatementRequest]) (*connect.Response[pb.GetStatementResponse], error) {
	slog.Info("GetStatement request received", "trip_id", req.Msg.TripId)

	trip, err := s.loadTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetStatement failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, err
	}

	balances := calculator.ComputeBalances(trip)
	settlements := calculator.ComputeSettlements(balances, trip)
	text := report.Statement(trip, balances, settlements, s.displayPlaces)

	return connect.NewResponse(&pb.GetStatementResponse{Text: text}), nil
}

// CalculateBalances computes balances and settlements for an inline trip
// without touching storage.
func (s *TripService) CalculateBalances(ctx context.Context, req *connect.Request[pb.CalculateBalancesRequest]) (*connect.Response[pb.CalculateBalancesResponse], error) {
	if req.Msg.Trip == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errTripRequired)
	}

	slog.Info("CalculateBalances request received",
		"participants_count", len(req.Msg.Trip.Participants),
		"expenses_count", len(req.Msg.Trip.Expenses),
	)

	trip := fromProtoTrip(req.Msg.Trip)
	if err := checkInlineAmounts(trip); err != nil {
		slog.Warn("CalculateBalances rejected", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	balances, err := computeBalances(trip, req.Msg.Strict)
	if err != nil {
		slog.Warn("CalculateBalances rejected", "error", err)
		return nil, err
	}
	settlements := calculator.ComputeSettlements(balances, trip)

	slog.Info("CalculateBalances successful",
		"total", trip.TotalSpent(),
		"transfers", len(settlements),
	)

	return connect.NewResponse(&pb.CalculateBalancesResponse{
		Balances:    toProtoBalances(balances, trip),
		Settlements: toProtoSettlements(settlements),
		TotalSpent:  trip.TotalSpent(),
	}), nil
}

// loadTrip fetches a trip and maps store errors to Connect codes.
func (s *TripService) loadTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	if tripID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errTripIDRequired)
	}
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, storeError(err)
	}
	return trip, nil
}

func computeBalances(trip *models.Trip, strict bool) ([]calculator.Balance, error) {
	if !strict {
		return calculator.ComputeBalances(trip), nil
	}
	balances, err := calculator.ComputeBalancesStrict(trip)
	if err != nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	return balances, nil
}

func storeError(err error) *connect.Error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
