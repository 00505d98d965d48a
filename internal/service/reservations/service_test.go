package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	vehicleRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/vehicle"
	"github.com/GBTour/GBT-ReservationService/internal/service/reservations/models"
)

// MockReservationRepository mock du repository réservations
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, res)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByVehicleWithFilter(ctx context.Context, filter domain.VehicleReservationsFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

// MockVehicleRepository mock du repository véhicules
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

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:          3,
		Name:        "Clio 5",
		PricePerDay: 100,
		Matriculations: []domain.Matriculation{
			{ID: 7, VehicleID: 3, Plate: "225TU1234", Status: domain.MatriculationAvailable},
		},
	}
}

func createRequest() *models.CreateReservationRequest {
	return &models.CreateReservationRequest{
		UserID:            42,
		VehicleID:         3,
		Plate:             "225TU1234",
		PickupLocation:    "Aéroport Tunis-Carthage",
		DropoffLocation:   "Hammamet",
		PickupDate:        "2025-06-10",
		DropoffDate:       "2025-06-15",
		PickupTime:        "10:00",
		DropoffTime:       "18:00",
		PaymentPercentage: 30,
	}
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	mockVehicles.On("GetByID", ctx, int64(3)).Return(testVehicle(), nil).Once()
	mockReservations.On("Create", ctx, mock.MatchedBy(func(res *domain.Reservation) bool {
		// 5 jours : palier 5 %, 5 × 100 × 0.95
		return res.Status == domain.ReservationPending &&
			res.TotalPrice == 475.0 &&
			res.AmountPaid == 0
	})).Return(&domain.Reservation{
		ID:                11,
		UserID:            42,
		VehicleID:         3,
		Plate:             "225TU1234",
		PickupDate:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		DropoffDate:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:            domain.ReservationPending,
		PaymentPercentage: 30,
		TotalPrice:        475.0,
	}, nil).Once()

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	resp, err := svc.Create(ctx, createRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 475.0, resp.TotalPrice)
	mockReservations.AssertExpectations(t)
	mockVehicles.AssertExpectations(t)
}

func TestCreate_LongStayReduction(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	req := createRequest()
	req.DropoffDate = "2025-06-22" // 12 jours : palier 10 %

	mockVehicles.On("GetByID", ctx, int64(3)).Return(testVehicle(), nil).Once()
	mockReservations.On("Create", ctx, mock.MatchedBy(func(res *domain.Reservation) bool {
		return res.TotalPrice == 1080.0
	})).Return(&domain.Reservation{ID: 12, Status: domain.ReservationPending, TotalPrice: 1080.0}, nil).Once()

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	resp, err := svc.Create(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, 1080.0, resp.TotalPrice)
	mockReservations.AssertExpectations(t)
}

func TestCreate_InvalidDates(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	tests := []struct {
		name    string
		mutate  func(req *models.CreateReservationRequest)
		wantErr error
	}{
		{
			name:    "date de restitution avant la prise en charge",
			mutate:  func(req *models.CreateReservationRequest) { req.DropoffDate = "2025-06-05" },
			wantErr: ErrInvalidDates,
		},
		{
			name:    "mêmes dates",
			mutate:  func(req *models.CreateReservationRequest) { req.DropoffDate = req.PickupDate },
			wantErr: ErrInvalidDates,
		},
		{
			name:    "date mal formée",
			mutate:  func(req *models.CreateReservationRequest) { req.PickupDate = "10/06/2025" },
			wantErr: ErrInvalidDates,
		},
		{
			name:    "heure mal formée",
			mutate:  func(req *models.CreateReservationRequest) { req.PickupTime = "10h00" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "pourcentage d'acompte hors barème",
			mutate:  func(req *models.CreateReservationRequest) { req.PaymentPercentage = 50 },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			tt.mutate(req)

			resp, err := svc.Create(ctx, req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Aucune écriture ne doit avoir lieu sur une entrée invalide
	mockReservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_VehicleNotFound(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	mockVehicles.On("GetByID", ctx, int64(3)).Return(nil, vehicleRepo.ErrVehicleNotFound).Once()

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	resp, err := svc.Create(ctx, createRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	mockReservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_UnknownPlate(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	req := createRequest()
	req.Plate = "999TU0000"

	mockVehicles.On("GetByID", ctx, int64(3)).Return(testVehicle(), nil).Once()

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	resp, err := svc.Create(ctx, req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrMatriculationNotFound)
	mockReservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetByID_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	stored := &domain.Reservation{ID: 11, UserID: 42, Status: domain.ReservationConfirmed}
	mockReservations.On("GetByID", ctx, int64(11)).Return(stored, nil).Twice()

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	// Le propriétaire voit sa réservation
	resp, err := svc.GetByID(ctx, 11, 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), resp.ID)

	// Un autre utilisateur est rejeté
	resp, err = svc.GetByID(ctx, 11, 99)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAccessDenied)

	mockReservations.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	mockReservations.On("GetByID", ctx, int64(404)).Return(nil, reservationRepo.ErrReservationNotFound).Once()

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	resp, err := svc.GetByID(ctx, 404, 42)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations_FiltersByStatus(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	status := domain.ReservationConfirmed
	list := []*domain.Reservation{
		{ID: 1, UserID: 42, Status: domain.ReservationConfirmed},
		{ID: 2, UserID: 42, Status: domain.ReservationConfirmed},
	}
	mockReservations.On("GetByUserID", ctx, int64(42), &status).Return(list, nil).Once()

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	filter := "confirmed"
	resp, err := svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{UserID: 42, Status: &filter})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	mockReservations.AssertExpectations(t)
}

func TestGetUserReservations_UnknownStatus(t *testing.T) {
	ctx := context.Background()

	mockReservations := new(MockReservationRepository)
	mockVehicles := new(MockVehicleRepository)

	svc := NewService(mockReservations, mockVehicles, nopLogger{})

	filter := "archived"
	resp, err := svc.GetUserReservations(ctx, &models.GetUserReservationsRequest{UserID: 42, Status: &filter})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidInput)
	mockReservations.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything, mock.Anything)
}
