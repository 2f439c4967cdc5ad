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

	approveBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/approve_booking"
	authLoginHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/auth_login"
	authRegisterHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/auth_register"
	cancelBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/cancel_booking"
	checkinBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/checkin_booking"
	completeBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_booking"
	createResourceHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_resource"
	createExceptionHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_schedule_exception"
	createStudioHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/create_studio"
	getAvailableSlotsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_booking"
	getResourceScheduleHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_resource_schedule"
	getStudioHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_studio"
	getStudioBookingsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_studio_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_user_bookings"
	listOwnStudiosHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/list_own_studios"
	listResourcesHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/list_resources"
	listStudiosHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/list_studios"
	publishStudioHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/publish_studio"
	rejectBookingHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/reject_booking"
	updateResourceHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/update_resource"
	updateStudioHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/update_studio"
	upsertScheduleHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/upsert_schedule"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/config"
	"github.com/m04kA/SMC-StudioBookingService/internal/infra/migrator"
	availabilityRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/booking"
	eventlogRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/eventlog"
	resourceRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/resource"
	studioRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/studio"
	userRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/user"
	paymentServiceClient "github.com/m04kA/SMC-StudioBookingService/internal/integrations/paymentservice"
	authService "github.com/m04kA/SMC-StudioBookingService/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-StudioBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-StudioBookingService/internal/service/catalog"
	scheduleService "github.com/m04kA/SMC-StudioBookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-StudioBookingService/pkg/authtoken"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/logger"
	"github.com/m04kA/SMC-StudioBookingService/pkg/metrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-StudioBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StudioBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	mg, err := migrator.New(db, cfg.Database.MigrationsDir)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := mg.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := mg.Version(context.Background()); err == nil {
		log.Info("Database schema at version %d", version)
	}

	// Сервис выпуска и проверки JWT токенов
	tokens := authtoken.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	// Клиент платежного сервиса
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentService=%s timeout=%ds)",
		cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		resourceRepository     *resourceRepo.Repository
		studioRepository       *studioRepo.Repository
		userRepository         *userRepo.Repository
		eventlogRepository     *eventlogRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		studioRepository = studioRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		eventlogRepository = eventlogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		studioRepository = studioRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		eventlogRepository = eventlogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	authSvc := authService.NewService(userRepository, eventlogRepository, tokens, log)
	catalogSvc := catalogService.NewService(studioRepository, resourceRepository, eventlogRepository, log)
	scheduleSvc := scheduleService.NewService(availabilityRepository, resourceRepository, studioRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		studioRepository,
		eventlogRepository,
		paymentClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		resourceRepository,
		studioRepository,
		eventlogRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		resourceRepository,
		log,
	)

	// Инициализируем handlers
	authRegister := authRegisterHandler.NewHandler(authSvc, log)
	authLogin := authLoginHandler.NewHandler(authSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getStudioBookings := getStudioBookingsHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	checkinBooking := checkinBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)

	createStudio := createStudioHandler.NewHandler(catalogSvc, log)
	getStudio := getStudioHandler.NewHandler(catalogSvc, log)
	listStudios := listStudiosHandler.NewHandler(catalogSvc, log)
	listOwnStudios := listOwnStudiosHandler.NewHandler(catalogSvc, log)
	updateStudio := updateStudioHandler.NewHandler(catalogSvc, log)
	publishStudio := publishStudioHandler.NewHandler(catalogSvc, log)
	createResource := createResourceHandler.NewHandler(catalogSvc, log)
	listResources := listResourcesHandler.NewHandler(catalogSvc, log)
	updateResource := updateResourceHandler.NewHandler(catalogSvc, log)

	getResourceSchedule := getResourceScheduleHandler.NewHandler(scheduleSvc, log)
	upsertSchedule := upsertScheduleHandler.NewHandler(scheduleSvc, log)
	createException := createExceptionHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация и вход
	api.HandleFunc("/auth/register", authRegister.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authLogin.Handle).Methods(http.MethodPost)

	// Каталог опубликованных студий
	api.HandleFunc("/studios", listStudios.Handle).Methods(http.MethodGet)
	api.HandleFunc("/studios/{studioId}", getStudio.Handle).Methods(http.MethodGet)
	api.HandleFunc("/studios/{studioId}/resources", listResources.Handle).Methods(http.MethodGet)

	// Доступные слоты ресурса на дату
	api.HandleFunc("/resources/{resourceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkinBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет владельца ---
	protected.HandleFunc("/owner/bookings", getStudioBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owner/studios", listOwnStudios.Handle).Methods(http.MethodGet)

	// --- Управление студиями ---
	protected.HandleFunc("/studios", createStudio.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/studios/{studioId}", updateStudio.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/studios/{studioId}/publish", publishStudio.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/studios/{studioId}/resources", createResource.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId}", updateResource.Handle).Methods(http.MethodPatch)

	// --- Расписание ресурсов ---
	protected.HandleFunc("/resources/{resourceId}/schedule", getResourceSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/resources/{resourceId}/schedule/{dayOfWeek}", upsertSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/resources/{resourceId}/exceptions", createException.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
