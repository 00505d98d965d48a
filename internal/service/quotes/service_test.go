package quotes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GBTour/GBT-ReservationService/internal/domain"
	catalogRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/catalog"
	"github.com/GBTour/GBT-ReservationService/internal/service/quotes/models"
)

// Mocks

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetTransferRoute(ctx context.Context, departure, destination string) (*domain.TransferRoute, error) {
	args := m.Called(ctx, departure, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRoute), args.Error(1)
}

func (m *MockCatalogRepository) ListDestinations(ctx context.Context, departure string) ([]string, error) {
	args := m.Called(ctx, departure)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogRepository) GetExcursion(ctx context.Context, id int64) (*domain.Excursion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Excursion), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func tunisHammamet() *domain.TransferRoute {
	return &domain.TransferRoute{
		ID:          1,
		Departure:   "Tunis",
		Destination: "Hammamet",
		DistanceKm:  65,
		PricePerKm:  2,
	}
}

// Devis de transfert : distance x tarif, doublé en aller-retour,
// supplément forfaitaire dès qu'une langue est demandée
func TestTransferQuote(t *testing.T) {
	testCases := []struct {
		name     string
		req      *models.TransferQuoteRequest
		expected float64
	}{
		{
			name:     "Simple",
			req:      &models.TransferQuoteRequest{Departure: "Tunis", Destination: "Hammamet"},
			expected: 130, // 65 x 2
		},
		{
			name:     "Aller-retour",
			req:      &models.TransferQuoteRequest{Departure: "Tunis", Destination: "Hammamet", RoundTrip: true},
			expected: 260, // 65 x 2 x 2
		},
		{
			name:     "Avec langues",
			req:      &models.TransferQuoteRequest{Departure: "Tunis", Destination: "Hammamet", Languages: []string{"fr", "en"}},
			expected: 160, // 130 + 30
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockCatalogRepository{}
			svc := NewService(repo, nopLogger{})

			repo.On("GetTransferRoute", mock.Anything, "Tunis", "Hammamet").Return(tunisHammamet(), nil).Once()

			resp, err := svc.TransferQuote(context.Background(), tc.req)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, resp.Price)
			assert.Equal(t, 65.0, resp.DistanceKm)
		})
	}
}

// Liaison de moins de 50 km non sélectionnable
func TestTransferQuote_RouteTooShort(t *testing.T) {
	repo := &MockCatalogRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetTransferRoute", mock.Anything, "Tunis", "La Marsa").Return(&domain.TransferRoute{
		ID: 2, Departure: "Tunis", Destination: "La Marsa", DistanceKm: 18, PricePerKm: 2,
	}, nil).Once()

	resp, err := svc.TransferQuote(context.Background(), &models.TransferQuoteRequest{
		Departure: "Tunis", Destination: "La Marsa",
	})

	assert.ErrorIs(t, err, ErrRouteTooShort)
	assert.Nil(t, resp)
}

// Aucun trajet entre les deux villes
func TestTransferQuote_RouteNotFound(t *testing.T) {
	repo := &MockCatalogRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetTransferRoute", mock.Anything, "Tunis", "Alger").
		Return(nil, catalogRepo.ErrRouteNotFound).Once()

	resp, err := svc.TransferQuote(context.Background(), &models.TransferQuoteRequest{
		Departure: "Tunis", Destination: "Alger",
	})

	assert.ErrorIs(t, err, ErrRouteNotFound)
	assert.Nil(t, resp)
}

func TestListDestinations(t *testing.T) {
	repo := &MockCatalogRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("ListDestinations", mock.Anything, "Tunis").
		Return([]string{"Hammamet", "Sousse", "Monastir"}, nil).Once()

	resp, err := svc.ListDestinations(context.Background(), "Tunis")

	assert.NoError(t, err)
	assert.Equal(t, "Tunis", resp.Departure)
	assert.Len(t, resp.Destinations, 3)
}

func testExcursion() *domain.Excursion {
	return &domain.Excursion{
		ID:               7,
		Name:             "Cap Bon",
		PriceTierOneFour: 400,
		PriceTierFiveSix: 520,
		PriceTierSevenUp: 640,
	}
}

// Devis d'excursion : prix au palier d'effectif, bébés compris dans le
// décompte, supplément guide forfaitaire
func TestExcursionQuote(t *testing.T) {
	testCases := []struct {
		name     string
		req      *models.ExcursionQuoteRequest
		expected float64
	}{
		{
			name:     "Palier 1-4",
			req:      &models.ExcursionQuoteRequest{ExcursionID: 7, Adults: 2, Children: 1},
			expected: 400,
		},
		{
			name:     "Palier 5-6 avec bebe",
			req:      &models.ExcursionQuoteRequest{ExcursionID: 7, Adults: 3, Children: 1, Babies: 1},
			expected: 520,
		},
		{
			name:     "Palier 7-8 avec guide",
			req:      &models.ExcursionQuoteRequest{ExcursionID: 7, Adults: 6, Children: 2, WithGuide: true},
			expected: 840, // 640 + 200
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockCatalogRepository{}
			svc := NewService(repo, nopLogger{})

			repo.On("GetExcursion", mock.Anything, int64(7)).Return(testExcursion(), nil).Once()

			resp, err := svc.ExcursionQuote(context.Background(), tc.req)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, resp.Price)
		})
	}
}

// Effectif hors bornes (0 ou plus de 8 personnes)
func TestExcursionQuote_InvalidHeadcount(t *testing.T) {
	repo := &MockCatalogRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetExcursion", mock.Anything, int64(7)).Return(testExcursion(), nil).Twice()

	_, err := svc.ExcursionQuote(context.Background(), &models.ExcursionQuoteRequest{ExcursionID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ExcursionQuote(context.Background(), &models.ExcursionQuoteRequest{ExcursionID: 7, Adults: 9})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Excursion inconnue
func TestExcursionQuote_NotFound(t *testing.T) {
	repo := &MockCatalogRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetExcursion", mock.Anything, int64(99)).
		Return(nil, catalogRepo.ErrExcursionNotFound).Once()

	resp, err := svc.ExcursionQuote(context.Background(), &models.ExcursionQuoteRequest{ExcursionID: 99, Adults: 2})

	assert.ErrorIs(t, err, ErrExcursionNotFound)
	assert.Nil(t, resp)
}
