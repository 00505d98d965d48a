package change_reservation_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
	"github.com/GBTour/GBT-ReservationService/internal/service/calendar"
)

// Mocks

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) ApplyConfirm(ctx context.Context, res *domain.Reservation, now time.Time) error {
	args := m.Called(ctx, res, now)
	return args.Error(0)
}

func (m *MockCalendarService) Release(ctx context.Context, res *domain.Reservation, now time.Time) error {
	args := m.Called(ctx, res, now)
	return args.Error(0)
}

type MockNotificationClient struct {
	mock.Mock
}

func (m *MockNotificationClient) SendAsync(event notifservice.Event) {
	m.Called(event)
}

// fakeTxManager exécute la closure directement, sans transaction
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type testMocks struct {
	reservations *MockReservationRepository
	vehicles     *MockVehicleRepository
	calendar     *MockCalendarService
	notif        *MockNotificationClient
}

func newTestUseCase(now time.Time) (*UseCase, *testMocks) {
	m := &testMocks{
		reservations: &MockReservationRepository{},
		vehicles:     &MockVehicleRepository{},
		calendar:     &MockCalendarService{},
		notif:        &MockNotificationClient{},
	}
	uc := &UseCase{
		reservationRepo: m.reservations,
		vehicleRepo:     m.vehicles,
		calendarSvc:     m.calendar,
		notifClient:     m.notif,
		txManager:       &fakeTxManager{},
		timeProvider:    &fixedTimeProvider{now: now},
		logger:          nopLogger{},
	}
	return uc, m
}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:                10,
		UserID:            7,
		VehicleID:         3,
		Plate:             "225TU1234",
		PickupDate:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		DropoffDate:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:            domain.ReservationConfirmed,
		PaymentPercentage: 30,
		TotalPrice:        500,
		AmountPaid:        150,
	}
}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:          3,
		Name:        "Clio 5",
		PricePerDay: 100,
		Matriculations: []domain.Matriculation{
			{ID: 1, VehicleID: 3, Plate: "225TU1234", Status: domain.MatriculationAvailable},
			{ID: 2, VehicleID: 3, Plate: "226TU5678", Status: domain.MatriculationAvailable},
		},
	}
}

func strPtr(s string) *string { return &s }

// Édition des dates d'une réservation confirmée : l'ancienne période
// est libérée, le prix recalculé depuis le tarif du véhicule et la
// nouvelle période réinscrite avec contrôle complet, dans la même
// transaction
func TestChangeReservationStatus_EditDates_ReleaseThenReapply(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	res := confirmedReservation()

	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()
	m.calendar.On("Release", mock.Anything, res, now).Return(nil).Once()
	m.vehicles.On("GetByID", mock.Anything, int64(3)).Return(testVehicle(), nil).Once()
	m.calendar.On("ApplyConfirm", mock.Anything, res, now).Return(nil).Once()
	m.reservations.On("Update", mock.Anything, res).Return(nil).Once()

	// 10 -> 18 juin : 8 jours, remise 5%, 8 x 100 x 0.95 = 760
	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		DropoffDate:   strPtr("2025-06-18"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, string(domain.ReservationConfirmed), resp.Status)
	assert.Equal(t, 760.0, resp.TotalPrice)
	assert.Equal(t, 228.0, resp.AmountPaid)

	m.reservations.AssertExpectations(t)
	m.calendar.AssertExpectations(t)
	m.vehicles.AssertExpectations(t)
}

// Conflit sur la nouvelle période : la transaction avorte, le rollback
// restaure l'ancienne période libérée
func TestChangeReservationStatus_EditDates_ConflictAborts(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	res := confirmedReservation()

	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()
	m.calendar.On("Release", mock.Anything, res, now).Return(nil).Once()
	m.vehicles.On("GetByID", mock.Anything, int64(3)).Return(testVehicle(), nil).Once()
	m.calendar.On("ApplyConfirm", mock.Anything, res, now).Return(calendar.ErrDateConflict).Once()

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		DropoffDate:   strPtr("2025-06-18"),
	})

	assert.ErrorIs(t, err, ErrDateConflict)
	assert.Nil(t, resp)
	m.reservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// Annulation d'une réservation confirmée : période libérée, pas de
// réinscription, notification envoyée après commit. Le pourcentage de
// paiement est remis à zéro, amount_paid reste la trace de l'encaissement
func TestChangeReservationStatus_CancelConfirmed(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	res := confirmedReservation()

	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()
	m.calendar.On("Release", mock.Anything, res, now).Return(nil).Once()
	m.reservations.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.ReservationCancelled &&
			r.PaymentPercentage == 0 && r.AmountPaid == 150.0
	})).Return(nil).Once()
	m.notif.On("SendAsync", mock.AnythingOfType("notifservice.Event")).Once()

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Status:        strPtr("cancelled"),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.ReservationCancelled), resp.Status)
	m.reservations.AssertExpectations(t)
	m.calendar.AssertNotCalled(t, "ApplyConfirm", mock.Anything, mock.Anything, mock.Anything)
	m.notif.AssertExpectations(t)
}

// Passage pending -> confirmed sans édition : inscription au calendrier
// sans libération préalable
func TestChangeReservationStatus_ConfirmPending(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	res := confirmedReservation()
	res.Status = domain.ReservationPending

	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()
	m.calendar.On("ApplyConfirm", mock.Anything, res, now).Return(nil).Once()
	m.reservations.On("Update", mock.Anything, res).Return(nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Status:        strPtr("confirmed"),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.ReservationConfirmed), resp.Status)
	m.calendar.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

// Transition interdite refusée
func TestChangeReservationStatus_InvalidTransition(t *testing.T) {
	uc, m := newTestUseCase(time.Now())
	res := confirmedReservation()
	res.Status = domain.ReservationCompleted

	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Status:        strPtr("confirmed"),
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, resp)
}

// Les éditions sur une réservation terminale sont rejetées
func TestChangeReservationStatus_EditTerminalRejected(t *testing.T) {
	uc, m := newTestUseCase(time.Now())
	res := confirmedReservation()
	res.Status = domain.ReservationCancelled

	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		DropoffDate:   strPtr("2025-06-18"),
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, resp)
	m.calendar.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

// Dates inversées après édition
func TestChangeReservationStatus_InvalidDates(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	res := confirmedReservation()

	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()
	m.calendar.On("Release", mock.Anything, res, now).Return(nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		DropoffDate:   strPtr("2025-06-01"), // avant le départ du 10 juin
	})

	assert.ErrorIs(t, err, ErrInvalidDates)
	assert.Nil(t, resp)
	m.reservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// Requête vide refusée avant toute lecture
func TestChangeReservationStatus_NothingToChange(t *testing.T) {
	uc, m := newTestUseCase(time.Now())

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, resp)
	m.reservations.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// Statut inconnu refusé
func TestChangeReservationStatus_UnknownStatus(t *testing.T) {
	uc, _ := newTestUseCase(time.Now())

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Status:        strPtr("archived"),
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Nil(t, resp)
}
