package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	acceptProlongationHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/accept_prolongation"
	changeReservationStatusHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/change_reservation_status"
	confirmReservationHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/confirm_reservation"
	createProlongationHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/create_prolongation"
	createReservationHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/delete_reservation"
	excursionQuoteHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/excursion_quote"
	getReservationHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/get_user_reservations"
	getVehicleReservationsHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/get_vehicle_reservations"
	listAvailableVehiclesHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/list_available_vehicles"
	paymentCallbackHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/payment_callback"
	rejectProlongationHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/reject_prolongation"
	transferQuoteHandler "github.com/GBTour/GBT-ReservationService/internal/api/handlers/transfer_quote"
	"github.com/GBTour/GBT-ReservationService/internal/api/middleware"
	"github.com/GBTour/GBT-ReservationService/internal/config"
	"github.com/GBTour/GBT-ReservationService/internal/infra/cache"
	catalogRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/catalog"
	prolongationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/prolongation"
	reservationRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/reservation"
	vehicleRepo "github.com/GBTour/GBT-ReservationService/internal/infra/storage/vehicle"
	notifServiceClient "github.com/GBTour/GBT-ReservationService/internal/integrations/notifservice"
	paymeeClient "github.com/GBTour/GBT-ReservationService/internal/integrations/paymee"
	calendarService "github.com/GBTour/GBT-ReservationService/internal/service/calendar"
	quotesService "github.com/GBTour/GBT-ReservationService/internal/service/quotes"
	reservationsService "github.com/GBTour/GBT-ReservationService/internal/service/reservations"
	acceptProlongationUC "github.com/GBTour/GBT-ReservationService/internal/usecase/accept_prolongation"
	changeReservationStatusUC "github.com/GBTour/GBT-ReservationService/internal/usecase/change_reservation_status"
	confirmProlongationPaymentUC "github.com/GBTour/GBT-ReservationService/internal/usecase/confirm_prolongation_payment"
	confirmReservationUC "github.com/GBTour/GBT-ReservationService/internal/usecase/confirm_reservation"
	createProlongationUC "github.com/GBTour/GBT-ReservationService/internal/usecase/create_prolongation"
	deleteReservationUC "github.com/GBTour/GBT-ReservationService/internal/usecase/delete_reservation"
	listAvailableVehiclesUC "github.com/GBTour/GBT-ReservationService/internal/usecase/list_available_vehicles"
	rejectProlongationUC "github.com/GBTour/GBT-ReservationService/internal/usecase/reject_prolongation"
	"github.com/GBTour/GBT-ReservationService/pkg/dbmetrics"
	"github.com/GBTour/GBT-ReservationService/pkg/logger"
	"github.com/GBTour/GBT-ReservationService/pkg/metrics"
	"github.com/GBTour/GBT-ReservationService/pkg/simpletxmanager"
	"github.com/GBTour/GBT-ReservationService/pkg/txmanager"
)

func main() {
	// Chargement de la configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialisation du logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GBT-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Initialisation des métriques (si activées)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connexion à la base de données
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Réglage du connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Vérification de la connexion
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialisation des clients d'intégration
	gateway := paymeeClient.NewClient(
		cfg.Paymee.URL,
		cfg.Paymee.APIKey,
		time.Duration(cfg.Paymee.Timeout)*time.Second,
		log,
	)
	notifClient := notifServiceClient.NewClient(
		cfg.NotifService.URL,
		time.Duration(cfg.NotifService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Paymee=%s timeout=%ds, NotifService=%s timeout=%ds)",
		cfg.Paymee.URL, cfg.Paymee.Timeout, cfg.NotifService.URL, cfg.NotifService.Timeout)

	// Cache de la flotte (optionnel). Les use cases qui mutent le
	// calendrier le purgent après commit via fleetInvalidator.
	type FleetInvalidator interface {
		Invalidate(ctx context.Context) error
	}
	var (
		fleetCache       listAvailableVehiclesUC.FleetCache
		fleetInvalidator FleetInvalidator
	)
	if cfg.Redis.Enabled {
		fc := cache.NewFleetCache(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTL)*time.Second,
		)
		fleetCache = fc
		fleetInvalidator = fc
		log.Info("Fleet cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Initialisation des repositories et du transaction manager
	// (avec ou sans métriques)
	var (
		reservationRepository  *reservationRepo.Repository
		vehicleRepository      *vehicleRepo.Repository
		prolongationRepository *prolongationRepo.Repository
		catalogRepository      *catalogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		prolongationRepository = prolongationRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		prolongationRepository = prolongationRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Initialisation des services
	calendarSvc := calendarService.NewService(vehicleRepository, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		vehicleRepository,
		log,
	)
	quotesSvc := quotesService.NewService(catalogRepository, log)

	// Initialisation des use cases
	confirmReservationUseCase := confirmReservationUC.NewUseCase(
		reservationRepository,
		calendarSvc,
		notifClient,
		fleetInvalidator,
		txMgr,
		log,
	)

	changeReservationStatusUseCase := changeReservationStatusUC.NewUseCase(
		reservationRepository,
		vehicleRepository,
		calendarSvc,
		notifClient,
		fleetInvalidator,
		txMgr,
		log,
	)

	deleteReservationUseCase := deleteReservationUC.NewUseCase(
		reservationRepository,
		calendarSvc,
		fleetInvalidator,
		txMgr,
		log,
	)

	createProlongationUseCase := createProlongationUC.NewUseCase(
		reservationRepository,
		vehicleRepository,
		prolongationRepository,
		txMgr,
		log,
	)

	acceptProlongationUseCase := acceptProlongationUC.NewUseCase(
		prolongationRepository,
		reservationRepository,
		calendarSvc,
		gateway,
		notifClient,
		fleetInvalidator,
		txMgr,
		time.Duration(cfg.Payment.LinkTTLMinutes)*time.Minute,
		log,
	)

	rejectProlongationUseCase := rejectProlongationUC.NewUseCase(
		prolongationRepository,
		reservationRepository,
		notifClient,
		txMgr,
		log,
	)

	confirmProlongationPaymentUseCase := confirmProlongationPaymentUC.NewUseCase(
		prolongationRepository,
		reservationRepository,
		calendarSvc,
		gateway,
		notifClient,
		fleetInvalidator,
		txMgr,
		log,
	)

	listAvailableVehiclesUseCase := listAvailableVehiclesUC.NewUseCase(
		vehicleRepository,
		fleetCache,
		log,
	)

	// Initialisation des handlers
	createReservation := createReservationHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getVehicleReservations := getVehicleReservationsHandler.NewHandler(reservationsSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(confirmReservationUseCase, log)
	changeReservationStatus := changeReservationStatusHandler.NewHandler(changeReservationStatusUseCase, log)
	deleteReservation := deleteReservationHandler.NewHandler(deleteReservationUseCase, log)
	createProlongation := createProlongationHandler.NewHandler(createProlongationUseCase, log)
	acceptProlongation := acceptProlongationHandler.NewHandler(acceptProlongationUseCase, log)
	rejectProlongation := rejectProlongationHandler.NewHandler(rejectProlongationUseCase, log)
	paymentCallback := paymentCallbackHandler.NewHandler(confirmProlongationPaymentUseCase, log)
	listAvailableVehicles := listAvailableVehiclesHandler.NewHandler(listAvailableVehiclesUseCase, log)
	transferQuote := transferQuoteHandler.NewHandler(quotesSvc, log)
	excursionQuote := excursionQuoteHandler.NewHandler(quotesSvc, log)

	// Configuration du routeur
	r := mux.NewRouter()

	// Middleware de métriques HTTP (si activées)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Endpoint de métriques (public, sans authentification)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Préfixe API
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// ROUTES PUBLIQUES (sans authentification)
	// ============================================================

	// Recherche de véhicules disponibles sur une période
	api.HandleFunc("/vehicles/available", listAvailableVehicles.Handle).Methods(http.MethodGet)

	// Devis de transfert et destinations sélectionnables
	api.HandleFunc("/quotes/transfer", transferQuote.HandleQuote).Methods(http.MethodGet)
	api.HandleFunc("/quotes/transfer/destinations", transferQuote.HandleDestinations).Methods(http.MethodGet)

	// Devis d'excursion
	api.HandleFunc("/quotes/excursion", excursionQuote.Handle).Methods(http.MethodGet)

	// Callback de la passerelle de paiement
	api.HandleFunc("/prolongations/payment/callback", paymentCallback.Handle).Methods(http.MethodGet)

	// ============================================================
	// ROUTES PROTÉGÉES (header X-User-ID requis)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Réservations ---
	// Création d'une réservation
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Consultation d'une réservation
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Confirmation d'une réservation (pose le blocage calendrier)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPost)

	// Changement de statut et modification des dates / du matricule
	protected.HandleFunc("/reservations/{reservationId}/status", changeReservationStatus.Handle).Methods(http.MethodPatch)

	// Suppression d'une réservation
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// Historique des réservations d'un utilisateur
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// Réservations d'un véhicule (planning flotte)
	protected.HandleFunc("/vehicles/{vehicleId}/reservations", getVehicleReservations.Handle).Methods(http.MethodGet)

	// --- Prolongations ---
	// Demande de prolongation d'une réservation confirmée
	protected.HandleFunc("/reservations/{reservationId}/prolongations", createProlongation.Handle).Methods(http.MethodPost)

	// Acceptation (en agence ou par carte)
	protected.HandleFunc("/prolongations/{prolongationId}/accept", acceptProlongation.Handle).Methods(http.MethodPost)

	// Rejet
	protected.HandleFunc("/prolongations/{prolongationId}/reject", rejectProlongation.Handle).Methods(http.MethodPost)

	// Création du serveur HTTP
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Attente du signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Arrêt de la collecte des métriques du connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
