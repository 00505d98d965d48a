package list_available_vehicles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
)

// Mocks

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]*domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

type MockFleetCache struct {
	mock.Mock
}

func (m *MockFleetCache) GetFleet(ctx context.Context) ([]*domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

func (m *MockFleetCache) SetFleet(ctx context.Context, fleet []*domain.Vehicle) error {
	args := m.Called(ctx, fleet)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

// testFleet deux véhicules : le premier a un matricule libre et un
// matricule occupé du 12 au 14 juin, le second n'a qu'un matricule en
// maintenance
func testFleet() []*domain.Vehicle {
	return []*domain.Vehicle{
		{
			ID:          3,
			Name:        "Clio 5",
			PricePerDay: 100,
			Matriculations: []domain.Matriculation{
				{ID: 1, VehicleID: 3, Plate: "225TU1234", Status: domain.MatriculationAvailable},
				{ID: 2, VehicleID: 3, Plate: "226TU5678", Status: domain.MatriculationAvailable,
					UnavailablePeriods: []domain.UnavailablePeriod{
						{ID: 50, MatriculationID: 2, ReservationID: 42, StartDate: day(12), EndDate: day(14)},
					}},
			},
		},
		{
			ID:          4,
			Name:        "Symbol",
			PricePerDay: 70,
			Matriculations: []domain.Matriculation{
				{ID: 5, VehicleID: 4, Plate: "310TU9999", Status: domain.MatriculationMaintenance},
			},
		},
	}
}

// Flotte lue depuis le repository, mise en cache, matricules en
// maintenance ou en chevauchement exclus
func TestListAvailableVehicles_CacheMiss(t *testing.T) {
	repo := &MockVehicleRepository{}
	cache := &MockFleetCache{}
	uc := NewUseCase(repo, cache, nopLogger{})
	fleet := testFleet()

	cache.On("GetFleet", mock.Anything).Return(nil, nil).Once()
	repo.On("List", mock.Anything).Return(fleet, nil).Once()
	cache.On("SetFleet", mock.Anything, fleet).Return(nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{StartDate: "2025-06-10", EndDate: "2025-06-15"})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(3), resp.Vehicles[0].ID)
	// Le matricule occupé du 12 au 14 chevauche [10, 15], bornes incluses
	assert.Equal(t, []string{"225TU1234"}, resp.Vehicles[0].AvailablePlates)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

// Flotte servie depuis le cache, le repository n'est pas sollicité
func TestListAvailableVehicles_CacheHit(t *testing.T) {
	repo := &MockVehicleRepository{}
	cache := &MockFleetCache{}
	uc := NewUseCase(repo, cache, nopLogger{})

	cache.On("GetFleet", mock.Anything).Return(testFleet(), nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{StartDate: "2025-06-01", EndDate: "2025-06-05"})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	// Hors de toute période occupée : les deux matricules de la Clio sont libres
	assert.Equal(t, []string{"225TU1234", "226TU5678"}, resp.Vehicles[0].AvailablePlates)

	repo.AssertNotCalled(t, "List", mock.Anything)
}

// Panne du cache tolérée : la BDD fait autorité
func TestListAvailableVehicles_CacheFailure(t *testing.T) {
	repo := &MockVehicleRepository{}
	cache := &MockFleetCache{}
	uc := NewUseCase(repo, cache, nopLogger{})
	fleet := testFleet()

	cache.On("GetFleet", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	repo.On("List", mock.Anything).Return(fleet, nil).Once()
	cache.On("SetFleet", mock.Anything, fleet).Return(nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{StartDate: "2025-06-10", EndDate: "2025-06-15"})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

// Sans cache configuré le usecase interroge directement le repository
func TestListAvailableVehicles_NoCache(t *testing.T) {
	repo := &MockVehicleRepository{}
	uc := NewUseCase(repo, nil, nopLogger{})

	repo.On("List", mock.Anything).Return(testFleet(), nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{StartDate: "2025-06-10", EndDate: "2025-06-15"})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	repo.AssertExpectations(t)
}

// Bornes absentes, mal formées ou inversées
func TestListAvailableVehicles_InvalidDates(t *testing.T) {
	testCases := []struct {
		name  string
		start string
		end   string
	}{
		{"Start missing", "", "2025-06-15"},
		{"End malformed", "2025-06-10", "15/06/2025"},
		{"Start after end", "2025-06-15", "2025-06-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockVehicleRepository{}
			uc := NewUseCase(repo, nil, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{StartDate: tc.start, EndDate: tc.end})

			assert.ErrorIs(t, err, ErrInvalidDates)
			assert.Nil(t, resp)
			repo.AssertNotCalled(t, "List", mock.Anything)
		})
	}
}
