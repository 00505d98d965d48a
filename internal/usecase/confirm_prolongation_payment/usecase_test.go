package confirm_prolongation_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	prolongationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/prolongation"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
	"github.com/GBTour/GBT-ReservationService/internal/integrations/paymee"
	"github.com/GBTour/GBT-ReservationService/internal/pricing"
	"github.com/GBTour/GBT-ReservationService/internal/service/calendar"
)

// Mocks

type MockProlongationRepository struct {
	mock.Mock
}

func (m *MockProlongationRepository) GetByPaymentOrder(ctx context.Context, id int64, orderID, paymentRef string) (*domain.ProlongationRequest, error) {
	args := m.Called(ctx, id, orderID, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProlongationRequest), args.Error(1)
}

func (m *MockProlongationRepository) Settle(ctx context.Context, id int64, paymentStatus domain.ProlongationPaymentStatus) error {
	args := m.Called(ctx, id, paymentStatus)
	return args.Error(0)
}

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

func (m *MockReservationRepository) ExtendDropoff(ctx context.Context, id int64, newDropoff time.Time, totalPrice, amountPaid float64) error {
	args := m.Called(ctx, id, newDropoff, totalPrice, amountPaid)
	return args.Error(0)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) ExtendPeriod(ctx context.Context, res *domain.Reservation, newDropoff time.Time) error {
	args := m.Called(ctx, res, newDropoff)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) GetPayment(ctx context.Context, paymentRef string) (*paymee.Payment, error) {
	args := m.Called(ctx, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymee.Payment), args.Error(1)
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
	prolongations *MockProlongationRepository
	reservations  *MockReservationRepository
	calendar      *MockCalendarService
	gateway       *MockPaymentGateway
	notif         *MockNotificationClient
}

func newTestUseCase(now time.Time) (*UseCase, *testMocks) {
	m := &testMocks{
		prolongations: &MockProlongationRepository{},
		reservations:  &MockReservationRepository{},
		calendar:      &MockCalendarService{},
		gateway:       &MockPaymentGateway{},
		notif:         &MockNotificationClient{},
	}
	uc := &UseCase{
		prolongationRepo: m.prolongations,
		reservationRepo:  m.reservations,
		calendarSvc:      m.calendar,
		gateway:          m.gateway,
		notifClient:      m.notif,
		txManager:        &fakeTxManager{},
		timeProvider:     &fixedTimeProvider{now: now},
		logger:           nopLogger{},
	}
	return uc, m
}

const (
	testOrderID    = "ord-123"
	testPaymentRef = "ref-456"
)

func waitingProlongation(expiresAt time.Time) *domain.ProlongationRequest {
	orderID := testOrderID
	paymentRef := testPaymentRef
	return &domain.ProlongationRequest{
		ID:               5,
		ReservationID:    10,
		NewDropoffDate:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		AdditionalDays:   5,
		ReductionPercent: 5,
		TotalPrice:       475,
		Status:           domain.ProlongationWaitingForPayment,
		PaymentStatus:    domain.ProlongationUnpaid,
		OrderID:          &orderID,
		PaymentRef:       &paymentRef,
		PaymentExpiresAt: &expiresAt,
	}
}

func extendedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:                10,
		UserID:            7,
		VehicleID:         3,
		Plate:             "225TU1234",
		PickupDate:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		DropoffDate:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:            domain.ReservationConfirmed,
		PaymentPercentage: 30,
		TotalPrice:        1000,
		AmountPaid:        300,
	}
}

func completedPayment(amount int64) *paymee.Payment {
	return &paymee.Payment{
		PaymentRef: testPaymentRef,
		OrderID:    testOrderID,
		Status:     paymee.PaymentStatusCompleted,
		Amount:     amount,
	}
}

func validRequest() *Request {
	return &Request{ProlongationID: 5, OrderID: testOrderID, PaymentRef: testPaymentRef}
}

// Callback nominal : paiement vérifié, période étendue, prix majoré et
// prolongation réglée
func TestConfirmProlongationPayment_Success(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	p := waitingProlongation(now.Add(30 * time.Minute))
	res := extendedReservation()

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(completedPayment(pricing.ToSmallestUnit(475)), nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).Return(p, nil).Once()
	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()
	m.calendar.On("ExtendPeriod", mock.Anything, res, p.NewDropoffDate).Return(nil).Once()
	m.reservations.On("ExtendDropoff", mock.Anything, int64(10), p.NewDropoffDate, 1475.0, 442.5).Return(nil).Once()
	m.prolongations.On("Settle", mock.Anything, int64(5), domain.ProlongationPaid).Return(nil).Once()
	m.notif.On("SendAsync", mock.AnythingOfType("notifservice.Event")).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
	m.prolongations.AssertExpectations(t)
	m.reservations.AssertExpectations(t)
	m.calendar.AssertExpectations(t)
	m.notif.AssertExpectations(t)
}

// Rejeu du callback sur une prolongation déjà réglée : no-op, ni
// nouvelle extension ni nouvelle notification
func TestConfirmProlongationPayment_IdempotentReplay(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	p := waitingProlongation(now.Add(30 * time.Minute))
	p.Status = domain.ProlongationAccepted
	p.PaymentStatus = domain.ProlongationPaid

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(completedPayment(pricing.ToSmallestUnit(475)), nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).Return(p, nil).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
	m.calendar.AssertNotCalled(t, "ExtendPeriod", mock.Anything, mock.Anything, mock.Anything)
	m.reservations.AssertNotCalled(t, "ExtendDropoff", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.prolongations.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
	m.notif.AssertNotCalled(t, "SendAsync", mock.Anything)
}

// Montant encaissé différent du coût attendu : fatal, aucun état modifié
func TestConfirmProlongationPayment_AmountMismatch(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	p := waitingProlongation(now.Add(30 * time.Minute))

	// La passerelle annonce 400.00 au lieu de 475.00
	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(completedPayment(40000), nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).Return(p, nil).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPaymentAmountMismatch)
	m.calendar.AssertNotCalled(t, "ExtendPeriod", mock.Anything, mock.Anything, mock.Anything)
	m.prolongations.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
}

// Conflit de dates survenu depuis l'envoi du lien : fatal même après
// paiement, la prolongation reste en attente et rien n'est étendu
func TestConfirmProlongationPayment_ConflictAfterPayment(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	p := waitingProlongation(now.Add(30 * time.Minute))
	res := extendedReservation()

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(completedPayment(pricing.ToSmallestUnit(475)), nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).Return(p, nil).Once()
	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()
	m.calendar.On("ExtendPeriod", mock.Anything, res, p.NewDropoffDate).Return(calendar.ErrDateConflict).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDateConflict)
	m.reservations.AssertNotCalled(t, "ExtendDropoff", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.prolongations.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
	m.notif.AssertNotCalled(t, "SendAsync", mock.Anything)
}

// La réservation a été annulée entre l'envoi du lien et le callback :
// elle ne détient plus de période, fatal même après paiement, rien
// n'est étendu ni réglé
func TestConfirmProlongationPayment_ReservationCancelled(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	p := waitingProlongation(now.Add(30 * time.Minute))
	res := extendedReservation()
	res.Status = domain.ReservationCancelled

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(completedPayment(pricing.ToSmallestUnit(475)), nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).Return(p, nil).Once()
	m.reservations.On("GetByID", mock.Anything, int64(10)).Return(res, nil).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrReservationNotConfirmed)
	m.calendar.AssertNotCalled(t, "ExtendPeriod", mock.Anything, mock.Anything, mock.Anything)
	m.reservations.AssertNotCalled(t, "ExtendDropoff", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.prolongations.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
	m.notif.AssertNotCalled(t, "SendAsync", mock.Anything)
}

// Callback reçu après expiration du lien de paiement
func TestConfirmProlongationPayment_Expired(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	p := waitingProlongation(now.Add(-time.Minute))

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(completedPayment(pricing.ToSmallestUnit(475)), nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).Return(p, nil).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPaymentExpired)
	m.calendar.AssertNotCalled(t, "ExtendPeriod", mock.Anything, mock.Anything, mock.Anything)
}

// La passerelle n'annonce pas un paiement abouti
func TestConfirmProlongationPayment_NotCompleted(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	p := waitingProlongation(now.Add(30 * time.Minute))

	payment := completedPayment(pricing.ToSmallestUnit(475))
	payment.Status = paymee.PaymentStatusPending

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(payment, nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).Return(p, nil).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPaymentNotCompleted)
}

// L'ordre annoncé par la passerelle ne correspond pas à la requête
func TestConfirmProlongationPayment_OrderIDMismatch(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)
	p := waitingProlongation(now.Add(30 * time.Minute))

	payment := completedPayment(pricing.ToSmallestUnit(475))
	payment.OrderID = "autre-ordre"

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(payment, nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).Return(p, nil).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrOrderIDMismatch)
}

// Aucune prolongation ne correspond au triplet (id, ordre, référence)
func TestConfirmProlongationPayment_NotFound(t *testing.T) {
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	uc, m := newTestUseCase(now)

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(completedPayment(pricing.ToSmallestUnit(475)), nil).Once()
	m.prolongations.On("GetByPaymentOrder", mock.Anything, int64(5), testOrderID, testPaymentRef).
		Return(nil, prolongationRepo.ErrProlongationNotFound).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrProlongationNotFound)
}

// Paiement inconnu côté passerelle : traité comme non abouti
func TestConfirmProlongationPayment_PaymentMissingAtGateway(t *testing.T) {
	uc, m := newTestUseCase(time.Now())

	m.gateway.On("GetPayment", mock.Anything, testPaymentRef).Return(nil, paymee.ErrPaymentNotFound).Once()

	err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPaymentNotCompleted)
	m.prolongations.AssertNotCalled(t, "GetByPaymentOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
