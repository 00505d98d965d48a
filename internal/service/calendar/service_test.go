package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	vehicleRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/vehicle"
)

// Mocks

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) GetMatriculation(ctx context.Context, vehicleID int64, plate string) (*domain.Matriculation, error) {
	args := m.Called(ctx, vehicleID, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Matriculation), args.Error(1)
}

func (m *MockVehicleRepository) UpdateMatriculationStatus(ctx context.Context, matriculationID int64, status domain.MatriculationStatus) error {
	args := m.Called(ctx, matriculationID, status)
	return args.Error(0)
}

func (m *MockVehicleRepository) AddUnavailablePeriod(ctx context.Context, period *domain.UnavailablePeriod) (*domain.UnavailablePeriod, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnavailablePeriod), args.Error(1)
}

func (m *MockVehicleRepository) RemoveUnavailablePeriod(ctx context.Context, matriculationID, reservationID int64) error {
	args := m.Called(ctx, matriculationID, reservationID)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:          10,
		UserID:      7,
		VehicleID:   3,
		Plate:       "225TU1234",
		PickupDate:  day(10),
		DropoffDate: day(15),
		Status:      domain.ReservationPending,
	}
}

func freeMatriculation() *domain.Matriculation {
	return &domain.Matriculation{
		ID:        1,
		VehicleID: 3,
		Plate:     "225TU1234",
		Status:    domain.MatriculationAvailable,
	}
}

// Inscription nominale : période insérée, le matricule reste
// "available" tant que la location n'a pas commencé
func TestApplyConfirm_Success(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()
	repo.On("AddUnavailablePeriod", mock.Anything, mock.MatchedBy(func(p *domain.UnavailablePeriod) bool {
		return p.MatriculationID == 1 && p.ReservationID == 10 &&
			p.StartDate.Equal(day(10)) && p.EndDate.Equal(day(15))
	})).Return(&domain.UnavailablePeriod{ID: 99}, nil).Once()

	err := svc.ApplyConfirm(context.Background(), res, day(1))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateMatriculationStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Location déjà entamée au moment de la confirmation : le matricule
// passe en "rented"
func TestApplyConfirm_StartedMarksRented(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()
	repo.On("AddUnavailablePeriod", mock.Anything, mock.Anything).Return(&domain.UnavailablePeriod{ID: 99}, nil).Once()
	repo.On("UpdateMatriculationStatus", mock.Anything, int64(1), domain.MatriculationRented).Return(nil).Once()

	err := svc.ApplyConfirm(context.Background(), res, day(12))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// Chevauchement avec une période d'une autre réservation : les bornes
// sont incluses, un retour le jour du départ suivant est un conflit
func TestApplyConfirm_DateConflict(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()
	mat.UnavailablePeriods = []domain.UnavailablePeriod{
		{ID: 50, MatriculationID: 1, ReservationID: 42, StartDate: day(15), EndDate: day(18)},
	}

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()

	err := svc.ApplyConfirm(context.Background(), res, day(1))

	assert.ErrorIs(t, err, ErrDateConflict)
	repo.AssertNotCalled(t, "AddUnavailablePeriod", mock.Anything, mock.Anything)
}

// La période propre à la réservation est ignorée lors du contrôle
func TestApplyConfirm_IgnoresOwnPeriod(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()
	mat.UnavailablePeriods = []domain.UnavailablePeriod{
		{ID: 50, MatriculationID: 1, ReservationID: 10, StartDate: day(10), EndDate: day(15)},
	}

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()
	repo.On("AddUnavailablePeriod", mock.Anything, mock.Anything).Return(&domain.UnavailablePeriod{ID: 99}, nil).Once()

	err := svc.ApplyConfirm(context.Background(), res, day(1))

	assert.NoError(t, err)
}

// Matricule en maintenance : inscription refusée
func TestApplyConfirm_Maintenance(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()
	mat.Status = domain.MatriculationMaintenance

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()

	err := svc.ApplyConfirm(context.Background(), res, day(1))

	assert.ErrorIs(t, err, ErrMatriculationUnavailable)
	repo.AssertNotCalled(t, "AddUnavailablePeriod", mock.Anything, mock.Anything)
}

// Matricule inconnu sur le véhicule
func TestApplyConfirm_MatriculationNotFound(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").
		Return(nil, vehicleRepo.ErrMatriculationNotFound).Once()

	err := svc.ApplyConfirm(context.Background(), res, day(1))

	assert.ErrorIs(t, err, ErrMatriculationNotFound)
}

// Libération nominale : la location est entamée, la période est retirée
// et le matricule loué par cette réservation redevient disponible
func TestRelease_RentedBackToAvailable(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()
	mat.Status = domain.MatriculationRented

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()
	repo.On("RemoveUnavailablePeriod", mock.Anything, int64(1), int64(10)).Return(nil).Once()
	repo.On("UpdateMatriculationStatus", mock.Anything, int64(1), domain.MatriculationAvailable).Return(nil).Once()

	err := svc.Release(context.Background(), res, day(12))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// Libération d'une réservation future alors que le matricule est sorti
// pour une autre location en cours : la période est retirée mais le
// statut "rented" ne lui appartient pas et reste intact
func TestRelease_FutureReservationKeepsRented(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()
	mat.Status = domain.MatriculationRented
	mat.UnavailablePeriods = []domain.UnavailablePeriod{
		{ID: 49, MatriculationID: 1, ReservationID: 42, StartDate: day(1), EndDate: day(5)},
		{ID: 50, MatriculationID: 1, ReservationID: 10, StartDate: day(10), EndDate: day(15)},
	}

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()
	repo.On("RemoveUnavailablePeriod", mock.Anything, int64(1), int64(10)).Return(nil).Once()

	err := svc.Release(context.Background(), res, day(3))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateMatriculationStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Aucune période inscrite : la libération est un no-op, pas une erreur
func TestRelease_NoPeriodIsNoop(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()
	repo.On("RemoveUnavailablePeriod", mock.Anything, int64(1), int64(10)).
		Return(vehicleRepo.ErrPeriodNotFound).Once()

	err := svc.Release(context.Background(), res, day(12))

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateMatriculationStatus", mock.Anything, mock.Anything, mock.Anything)
}

// Extension nominale : l'ancienne période est remplacée par l'intervalle
// prolongé [départ, nouveau retour]
func TestExtendPeriod_Success(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()
	mat.UnavailablePeriods = []domain.UnavailablePeriod{
		{ID: 50, MatriculationID: 1, ReservationID: 10, StartDate: day(10), EndDate: day(15)},
	}

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()
	repo.On("RemoveUnavailablePeriod", mock.Anything, int64(1), int64(10)).Return(nil).Once()
	repo.On("AddUnavailablePeriod", mock.Anything, mock.MatchedBy(func(p *domain.UnavailablePeriod) bool {
		return p.ReservationID == 10 && p.StartDate.Equal(day(10)) && p.EndDate.Equal(day(20))
	})).Return(&domain.UnavailablePeriod{ID: 99}, nil).Once()

	err := svc.ExtendPeriod(context.Background(), res, day(20))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// Une autre réservation occupe l'intervalle prolongé : conflit, la
// période d'origine n'est pas touchée
func TestExtendPeriod_Conflict(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()
	mat.UnavailablePeriods = []domain.UnavailablePeriod{
		{ID: 50, MatriculationID: 1, ReservationID: 10, StartDate: day(10), EndDate: day(15)},
		{ID: 51, MatriculationID: 1, ReservationID: 42, StartDate: day(18), EndDate: day(25)},
	}

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()

	err := svc.ExtendPeriod(context.Background(), res, day(20))

	assert.ErrorIs(t, err, ErrDateConflict)
	repo.AssertNotCalled(t, "RemoveUnavailablePeriod", mock.Anything, mock.Anything, mock.Anything)
}

// La réservation ne détient plus de période (annulée ou clôturée entre
// la demande et le paiement) : la prolongation est refusée et rien
// n'est inscrit
func TestExtendPeriod_PeriodNotHeld(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Once()
	repo.On("RemoveUnavailablePeriod", mock.Anything, int64(1), int64(10)).
		Return(vehicleRepo.ErrPeriodNotFound).Once()

	err := svc.ExtendPeriod(context.Background(), res, day(20))

	assert.ErrorIs(t, err, ErrPeriodNotHeld)
	repo.AssertNotCalled(t, "AddUnavailablePeriod", mock.Anything, mock.Anything)
}

// Contrôle sans mutation du calendrier
func TestCheckAvailability(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewService(repo, nopLogger{})
	res := testReservation()
	mat := freeMatriculation()
	mat.UnavailablePeriods = []domain.UnavailablePeriod{
		{ID: 51, MatriculationID: 1, ReservationID: 42, StartDate: day(18), EndDate: day(25)},
	}

	repo.On("GetMatriculation", mock.Anything, int64(3), "225TU1234").Return(mat, nil).Twice()

	assert.NoError(t, svc.CheckAvailability(context.Background(), res, day(10), day(15)))
	assert.ErrorIs(t, svc.CheckAvailability(context.Background(), res, day(10), day(20)), ErrDateConflict)

	repo.AssertNotCalled(t, "AddUnavailablePeriod", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "RemoveUnavailablePeriod", mock.Anything, mock.Anything, mock.Anything)
}
