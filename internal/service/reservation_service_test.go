package service

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	"github.com/stormkid2009/restooo/internal/auth"
	"github.com/stormkid2009/restooo/internal/domain"
	"github.com/stormkid2009/restooo/internal/events"
	"github.com/stormkid2009/restooo/internal/observability"
	apperrors "github.com/stormkid2009/restooo/pkg/util"
)

// MockReservationRepository is a mock implementation of repository.ReservationRepository.
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Cancel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) ListByDay(ctx context.Context, day time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) BookedTableIDs(ctx context.Context, startsAt time.Time) ([]string, error) {
	args := m.Called(ctx, startsAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTableRepository is a mock implementation of repository.TableRepository.
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *MockTableRepository) List(ctx context.Context) ([]domain.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Table), args.Error(1)
}

func staffClaims(userID string) *auth.Claims {
	return &auth.Claims{
		Email: userID + "@restooo.dev",
		Role:  domain.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}
}

func diningTables() []domain.Table {
	// ordered by capacity, as the repository returns them
	return []domain.Table{
		{ID: "t1", Number: 1, Capacity: 2},
		{ID: "t2", Number: 2, Capacity: 4},
		{ID: "t3", Number: 3, Capacity: 6},
	}
}

func TestBookPicksSmallestFreeTable(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockTables := new(MockTableRepository)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	var published []events.Event
	dispatcher.Subscribe(events.EventReservationCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	metrics := observability.NewMetrics()
	service := NewReservationService(mockRes, mockTables, dispatcher, metrics)
	ctx := context.Background()
	startsAt := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	mockTables.On("List", ctx).Return(diningTables(), nil).Once()
	mockRes.On("BookedTableIDs", ctx, startsAt).Return([]string{"t2"}, nil).Once()
	mockRes.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Reservation).ID = "res-1"
		}).Return(nil).Once()

	res, err := service.Book(ctx, BookInput{
		GuestName: "Smith",
		PartySize: 3,
		StartsAt:  startsAt,
	}, staffClaims("user-1"))
	require.NoError(t, err)

	// t1 too small, t2 taken, so t3 is the smallest fit
	assert.Equal(t, "t3", res.TableID)
	assert.Equal(t, domain.ReservationStatusBooked, res.Status)
	assert.Equal(t, "user-1", res.CreatedBy)
	assert.NotEmpty(t, res.ConfirmationCode)

	require.Len(t, published, 1)
	assert.Equal(t, "res-1", published[0].ReservationID)
	assert.NotEmpty(t, published[0].ID)
	assert.False(t, published[0].Timestamp.IsZero())

	booked, cancelled := metrics.ReservationCounts()
	assert.Equal(t, int64(1), booked)
	assert.Equal(t, int64(0), cancelled)
	mockRes.AssertExpectations(t)
}

func TestBookNoTableAvailable(t *testing.T) {
	mockRes := new(MockReservationRepository)
	mockTables := new(MockTableRepository)
	service := NewReservationService(mockRes, mockTables, nil, nil)
	ctx := context.Background()
	startsAt := time.Now().Add(24 * time.Hour)

	mockTables.On("List", ctx).Return(diningTables(), nil).Once()
	mockRes.On("BookedTableIDs", ctx, startsAt).Return([]string{"t3"}, nil).Once()

	_, err := service.Book(ctx, BookInput{
		GuestName: "Smith",
		PartySize: 5,
		StartsAt:  startsAt,
	}, staffClaims("user-1"))
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
	mockRes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookRejectsPastSlot(t *testing.T) {
	service := NewReservationService(new(MockReservationRepository), new(MockTableRepository), nil, nil)

	_, err := service.Book(context.Background(), BookInput{
		GuestName: "Smith",
		PartySize: 2,
		StartsAt:  time.Now().Add(-time.Hour),
	}, staffClaims("user-1"))
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCancelPublishesEvent(t *testing.T) {
	mockRes := new(MockReservationRepository)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	var published []events.Event
	dispatcher.Subscribe(events.EventReservationCancelled, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	metrics := observability.NewMetrics()
	service := NewReservationService(mockRes, new(MockTableRepository), dispatcher, metrics)
	ctx := context.Background()

	res := &domain.Reservation{ID: "res-1", TableID: "t2", Status: domain.ReservationStatusBooked}
	mockRes.On("GetByID", ctx, "res-1").Return(res, nil).Once()
	mockRes.On("Cancel", ctx, "res-1").Return(nil).Once()

	require.NoError(t, service.Cancel(ctx, "res-1", staffClaims("user-1")))
	require.Len(t, published, 1)
	assert.Equal(t, "res-1", published[0].ReservationID)
	assert.NotEmpty(t, published[0].ID)

	booked, cancelled := metrics.ReservationCounts()
	assert.Equal(t, int64(0), booked)
	assert.Equal(t, int64(1), cancelled)
}
