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

	bookAppointmentHandler "github.com/Dramanable/rv-server-sub004/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/Dramanable/rv-server-sub004/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/Dramanable/rv-server-sub004/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/Dramanable/rv-server-sub004/internal/api/handlers/get_available_slots"
	updateStatusHandler "github.com/Dramanable/rv-server-sub004/internal/api/handlers/update_appointment_status"
	"github.com/Dramanable/rv-server-sub004/internal/api/middleware"
	"github.com/Dramanable/rv-server-sub004/internal/config"
	appointmentRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/appointment"
	directoryRepo "github.com/Dramanable/rv-server-sub004/internal/infra/storage/directory"
	notifyServiceClient "github.com/Dramanable/rv-server-sub004/internal/integrations/notifyservice"
	appointmentsService "github.com/Dramanable/rv-server-sub004/internal/service/appointments"
	conflictsService "github.com/Dramanable/rv-server-sub004/internal/service/conflicts"
	bookAppointmentUC "github.com/Dramanable/rv-server-sub004/internal/usecase/book_appointment"
	generateSlotsUC "github.com/Dramanable/rv-server-sub004/internal/usecase/generate_slots"
	"github.com/Dramanable/rv-server-sub004/pkg/dbmetrics"
	"github.com/Dramanable/rv-server-sub004/pkg/logger"
	"github.com/Dramanable/rv-server-sub004/pkg/metrics"
	"github.com/Dramanable/rv-server-sub004/pkg/simpletxmanager"
	"github.com/Dramanable/rv-server-sub004/pkg/txmanager"
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

	log.Info("Starting booking engine...")
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

	// Инициализируем клиента сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notification client initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		directoryRepository   *directoryRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		directoryRepository = directoryRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		directoryRepository = directoryRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	conflictDetector := conflictsService.NewDetector(appointmentRepository, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)

	// Рабочее окно дня для генератора слотов
	windowProvider, err := generateSlotsUC.NewFixedWindowProvider(
		cfg.Booking.WorkingDayStart,
		cfg.Booking.WorkingDayEnd,
	)
	if err != nil {
		log.Fatal("Failed to build working window provider: %v", err)
	}

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		conflictDetector,
		directoryRepository,
		notifyClient,
		txMgr,
		cfg.Booking.MinNoticeMinutes,
		log,
	)

	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		appointmentRepository,
		directoryRepository,
		windowProvider,
		cfg.Booking.SlotDurationMinutes,
		cfg.Booking.AdvanceHorizonMonths,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.New(bookAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.New(generateSlotsUseCase, log)
	getAppointment := getAppointmentHandler.New(appointmentSvc, log)
	updateStatus := updateStatusHandler.New(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.New(appointmentSvc, log)

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

	// Получение доступных слотов для бронирования
	api.HandleFunc("/calendars/{calendarId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Изменение статуса бронирования
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

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
