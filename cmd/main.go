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

	cancelBookingHandler "github.com/salonhq/scheduling-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/salonhq/scheduling-service/internal/api/handlers/create_booking"
	createRecurringHandler "github.com/salonhq/scheduling-service/internal/api/handlers/create_recurring_booking"
	getAvailabilityHandler "github.com/salonhq/scheduling-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/salonhq/scheduling-service/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/salonhq/scheduling-service/internal/api/handlers/get_customer_bookings"
	getStaffScheduleHandler "github.com/salonhq/scheduling-service/internal/api/handlers/get_staff_schedule"
	updateBookingStatusHandler "github.com/salonhq/scheduling-service/internal/api/handlers/update_booking_status"
	"github.com/salonhq/scheduling-service/internal/api/middleware"
	"github.com/salonhq/scheduling-service/internal/config"
	"github.com/salonhq/scheduling-service/internal/domain"
	bookingRepo "github.com/salonhq/scheduling-service/internal/infra/storage/booking"
	workingHoursRepo "github.com/salonhq/scheduling-service/internal/infra/storage/workinghours"
	notifierClient "github.com/salonhq/scheduling-service/internal/integrations/notifier"
	bookingsService "github.com/salonhq/scheduling-service/internal/service/bookings"
	createBookingUC "github.com/salonhq/scheduling-service/internal/usecase/create_booking"
	createRecurringUC "github.com/salonhq/scheduling-service/internal/usecase/create_recurring_booking"
	getAvailabilityUC "github.com/salonhq/scheduling-service/internal/usecase/get_availability"
	getStaffScheduleUC "github.com/salonhq/scheduling-service/internal/usecase/get_staff_schedule"
	"github.com/salonhq/scheduling-service/pkg/dbmetrics"
	"github.com/salonhq/scheduling-service/pkg/logger"
	"github.com/salonhq/scheduling-service/pkg/metrics"
	"github.com/salonhq/scheduling-service/pkg/simpletxmanager"
	"github.com/salonhq/scheduling-service/pkg/txmanager"
	"github.com/salonhq/scheduling-service/pkg/types"
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

	log.Info("Starting scheduling-service...")
	log.Info("Configuration loaded from config.toml")

	// Дефолтный рабочий интервал (пустой - значит не задан)
	defaultInterval, err := buildDefaultInterval(cfg.Scheduling)
	if err != nil {
		log.Fatal("Invalid default working interval in config: %v", err)
	}

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

	// Инициализируем клиент сервиса уведомлений
	var notifier createBookingUC.NotifierClient
	if cfg.Notifier.Enabled {
		notifier = notifierClient.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	} else {
		notifier = notifierClient.NopClient{}
		log.Info("Notifier disabled, intents will be dropped")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		scheduleRepo      *workingHoursRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepo = workingHoursRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepo = workingHoursRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		notifier,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepo,
		getAvailabilityUC.Options{
			SlotStepMinutes:        cfg.Scheduling.SlotStepMinutes,
			DefaultDurationMinutes: cfg.Scheduling.DefaultDurationMinutes,
			DefaultInterval:        defaultInterval,
		},
		log,
	)

	getStaffScheduleUseCase := getStaffScheduleUC.NewUseCase(
		bookingRepository,
		scheduleRepo,
		getStaffScheduleUC.Options{
			SlotStepMinutes:        cfg.Scheduling.SlotStepMinutes,
			DefaultDurationMinutes: cfg.Scheduling.DefaultDurationMinutes,
			DefaultInterval:        defaultInterval,
		},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepo,
		txMgr,
		notifier,
		createBookingUC.Options{
			DefaultDurationMinutes: cfg.Scheduling.DefaultDurationMinutes,
			DefaultInterval:        defaultInterval,
			ScheduleTimeout:        time.Duration(cfg.Scheduling.ScheduleTimeout) * time.Second,
		},
		log,
	)

	createRecurringUseCase := createRecurringUC.NewUseCase(createBookingUseCase, log)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getStaffSchedule := getStaffScheduleHandler.NewHandler(getStaffScheduleUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createRecurring := createRecurringHandler.NewHandler(createRecurringUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Доступные слоты на день
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Расписания мастеров на день
	api.HandleFunc("/staff-schedule", getStaffSchedule.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// История бронирований клиента
	api.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Создание серии повторяющихся бронирований
	protected.HandleFunc("/bookings/recurring", createRecurring.Handle).Methods(http.MethodPost)

	// Отмена бронирования (или всей серии)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования и/или статуса оплаты
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

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

// buildDefaultInterval собирает дефолтный рабочий интервал из конфигурации.
// Обе границы пустые - интервал не задан (нулевое значение).
func buildDefaultInterval(cfg config.SchedulingConfig) (domain.WorkingInterval, error) {
	if cfg.DefaultOpenTime == "" && cfg.DefaultCloseTime == "" {
		return domain.WorkingInterval{}, nil
	}

	open, err := types.NewTimeStringFromString(cfg.DefaultOpenTime)
	if err != nil {
		return domain.WorkingInterval{}, fmt.Errorf("default_open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.DefaultCloseTime)
	if err != nil {
		return domain.WorkingInterval{}, fmt.Errorf("default_close_time: %w", err)
	}
	if !open.IsBefore(closeTime) {
		return domain.WorkingInterval{}, fmt.Errorf("default_open_time must precede default_close_time")
	}

	return domain.WorkingInterval{Start: open, End: closeTime}, nil
}
