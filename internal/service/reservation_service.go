package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stormkid2009/restooo/internal/auth"
	"github.com/stormkid2009/restooo/internal/domain"
	"github.com/stormkid2009/restooo/internal/events"
	"github.com/stormkid2009/restooo/internal/observability"
	"github.com/stormkid2009/restooo/internal/repository"
	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

// ReservationService books and cancels table reservations.
type ReservationService struct {
	reservations repository.ReservationRepository
	tables       repository.TableRepository
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
}

// NewReservationService builds the service.
func NewReservationService(reservations repository.ReservationRepository, tables repository.TableRepository, dispatcher events.Dispatcher, metrics *observability.Metrics) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		tables:       tables,
		dispatcher:   dispatcher,
		metrics:      metrics,
	}
}

// BookInput carries a booking request.
type BookInput struct {
	GuestName  string
	GuestPhone string
	PartySize  int
	StartsAt   time.Time
}

// Book assigns the smallest free table that fits the party and stores the
// reservation with a fresh confirmation code.
func (s *ReservationService) Book(ctx context.Context, in BookInput, caller *auth.Claims) (*domain.Reservation, error) {
	if in.StartsAt.Before(time.Now()) {
		return nil, apperrors.NewValidationError("reservation time is in the past", nil)
	}

	tables, err := s.tables.List(ctx)
	if err != nil {
		return nil, err
	}
	bookedIDs, err := s.reservations.BookedTableIDs(ctx, in.StartsAt)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	// tables come back ordered by capacity, so the first fit is the
	// smallest fit
	var table *domain.Table
	for i := range tables {
		if tables[i].Capacity < in.PartySize {
			continue
		}
		if _, taken := booked[tables[i].ID]; taken {
			continue
		}
		table = &tables[i]
		break
	}
	if table == nil {
		return nil, apperrors.NewConflict("No table available for the requested time")
	}

	res := &domain.Reservation{
		ConfirmationCode: uuid.NewString(),
		TableID:          table.ID,
		GuestName:        in.GuestName,
		GuestPhone:       in.GuestPhone,
		PartySize:        in.PartySize,
		StartsAt:         in.StartsAt,
		Status:           domain.ReservationStatusBooked,
		CreatedBy:        caller.SubjectID(),
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	s.metrics.RecordReservationBooked()

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:          events.EventReservationCreated,
			ReservationID: res.ID,
			Actor:         events.Actor{UserID: caller.SubjectID(), Role: caller.Role},
			Payload: events.ReservationCreatedPayload{
				TableID:          res.TableID,
				GuestName:        res.GuestName,
				PartySize:        res.PartySize,
				StartsAt:         res.StartsAt,
				ConfirmationCode: res.ConfirmationCode,
			},
		})
	}
	return res, nil
}

// Cancel marks a booked reservation as cancelled.
func (s *ReservationService) Cancel(ctx context.Context, id string, caller *auth.Claims) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Reservation")
		}
		return err
	}

	if err := s.reservations.Cancel(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflict("Reservation is not booked")
		}
		return err
	}

	s.metrics.RecordReservationCancelled()

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:          events.EventReservationCancelled,
			ReservationID: id,
			Actor:         events.Actor{UserID: caller.SubjectID(), Role: caller.Role},
			Payload: events.ReservationCancelledPayload{
				TableID:  res.TableID,
				StartsAt: res.StartsAt,
			},
		})
	}
	return nil
}

// ListByDay returns the reservations for a calendar day.
func (s *ReservationService) ListByDay(ctx context.Context, day time.Time) ([]domain.Reservation, error) {
	return s.reservations.ListByDay(ctx, day)
}
