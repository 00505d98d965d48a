package quotes

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/catalog"
	"github.com/GBTour/GBT-ReservationService/internal/pricing"
	"github.com/GBTour/GBT-ReservationService/internal/service/quotes/models"
)

// Service service de devis transferts et excursions
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService crée un nouveau service de devis
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// TransferQuote calcule un devis de transfert entre deux villes.
// Les liaisons de moins de 50 km ne sont pas sélectionnables.
func (s *Service) TransferQuote(ctx context.Context, req *models.TransferQuoteRequest) (*models.TransferQuoteResponse, error) {
	s.logger.Info("TransferQuote: quoting %s -> %s, roundTrip=%v", req.Departure, req.Destination, req.RoundTrip)

	if req.Departure == "" || req.Destination == "" {
		return nil, fmt.Errorf("%w: departure and destination are required", ErrInvalidInput)
	}

	route, err := s.catalogRepo.GetTransferRoute(ctx, req.Departure, req.Destination)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrRouteNotFound) {
			s.logger.Warn("TransferQuote: route %s -> %s not found", req.Departure, req.Destination)
			return nil, ErrRouteNotFound
		}
		s.logger.Error("TransferQuote: repository error for %s -> %s: %v", req.Departure, req.Destination, err)
		return nil, fmt.Errorf("%w: TransferQuote - repository error: %v", ErrInternal, err)
	}

	price, err := pricing.TransferPrice(pricing.TransferInput{
		DistanceKm: route.DistanceKm,
		PricePerKm: route.PricePerKm,
		RoundTrip:  req.RoundTrip,
		Languages:  req.Languages,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrRouteTooShort) {
			s.logger.Warn("TransferQuote: route %s -> %s is below minimum distance (%.1f km)",
				req.Departure, req.Destination, route.DistanceKm)
			return nil, ErrRouteTooShort
		}
		s.logger.Warn("TransferQuote: pricing rejected route %s -> %s: %v", req.Departure, req.Destination, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &models.TransferQuoteResponse{
		Departure:   route.Departure,
		Destination: route.Destination,
		DistanceKm:  route.DistanceKm,
		RoundTrip:   req.RoundTrip,
		Price:       price,
	}, nil
}

// ListDestinations liste les destinations sélectionnables depuis un
// départ donné
func (s *Service) ListDestinations(ctx context.Context, departure string) (*models.DestinationsResponse, error) {
	s.logger.Info("ListDestinations: listing destinations from %s", departure)

	if departure == "" {
		return nil, fmt.Errorf("%w: departure is required", ErrInvalidInput)
	}

	destinations, err := s.catalogRepo.ListDestinations(ctx, departure)
	if err != nil {
		s.logger.Error("ListDestinations: repository error for %s: %v", departure, err)
		return nil, fmt.Errorf("%w: ListDestinations - repository error: %v", ErrInternal, err)
	}

	return &models.DestinationsResponse{
		Departure:    departure,
		Destinations: destinations,
	}, nil
}

// ExcursionQuote calcule un devis d'excursion selon l'effectif et le
// supplément guide
func (s *Service) ExcursionQuote(ctx context.Context, req *models.ExcursionQuoteRequest) (*models.ExcursionQuoteResponse, error) {
	s.logger.Info("ExcursionQuote: quoting excursion=%d, adults=%d, children=%d, babies=%d, guide=%v",
		req.ExcursionID, req.Adults, req.Children, req.Babies, req.WithGuide)

	excursion, err := s.catalogRepo.GetExcursion(ctx, req.ExcursionID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrExcursionNotFound) {
			s.logger.Warn("ExcursionQuote: excursion=%d not found", req.ExcursionID)
			return nil, ErrExcursionNotFound
		}
		s.logger.Error("ExcursionQuote: repository error for excursion=%d: %v", req.ExcursionID, err)
		return nil, fmt.Errorf("%w: ExcursionQuote - repository error: %v", ErrInternal, err)
	}

	in := pricing.ExcursionInput{
		Tiers: pricing.ExcursionTiers{
			OneToFour:    excursion.PriceTierOneFour,
			FiveToSix:    excursion.PriceTierFiveSix,
			SevenToEight: excursion.PriceTierSevenUp,
		},
		Adults:    req.Adults,
		Children:  req.Children,
		Babies:    req.Babies,
		WithGuide: req.WithGuide,
	}

	price, err := pricing.ExcursionPrice(in)
	if err != nil {
		s.logger.Warn("ExcursionQuote: pricing rejected excursion=%d: %v", req.ExcursionID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &models.ExcursionQuoteResponse{
		ExcursionID: excursion.ID,
		Name:        excursion.Name,
		Headcount:   in.Headcount(),
		WithGuide:   req.WithGuide,
		Price:       price,
	}, nil
}
