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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	cancelBookingHandler "github.com/mosparks/PKS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/mosparks/PKS-BookingService/internal/api/handlers/create_booking"
	decideBookingHandler "github.com/mosparks/PKS-BookingService/internal/api/handlers/decide_booking"
	getAvailabilityHandler "github.com/mosparks/PKS-BookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/mosparks/PKS-BookingService/internal/api/handlers/get_booking"
	getRequesterBookingsHandler "github.com/mosparks/PKS-BookingService/internal/api/handlers/get_requester_bookings"
	getResourceBookingsHandler "github.com/mosparks/PKS-BookingService/internal/api/handlers/get_resource_bookings"
	settlePaymentHandler "github.com/mosparks/PKS-BookingService/internal/api/handlers/settle_payment"
	"github.com/mosparks/PKS-BookingService/internal/api/middleware"
	"github.com/mosparks/PKS-BookingService/internal/config"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	bookingRepo "github.com/mosparks/PKS-BookingService/internal/infra/storage/booking"
	ledgerRepo "github.com/mosparks/PKS-BookingService/internal/infra/storage/ledger"
	catalogClient "github.com/mosparks/PKS-BookingService/internal/integrations/catalog"
	bookingsService "github.com/mosparks/PKS-BookingService/internal/service/bookings"
	"github.com/mosparks/PKS-BookingService/internal/service/jobs"
	cancelBookingUC "github.com/mosparks/PKS-BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/mosparks/PKS-BookingService/internal/usecase/create_booking"
	decideBookingUC "github.com/mosparks/PKS-BookingService/internal/usecase/decide_booking"
	getAvailabilityUC "github.com/mosparks/PKS-BookingService/internal/usecase/get_availability"
	settlePaymentUC "github.com/mosparks/PKS-BookingService/internal/usecase/settle_payment"
	"github.com/mosparks/PKS-BookingService/pkg/dbmetrics"
	"github.com/mosparks/PKS-BookingService/pkg/logger"
	"github.com/mosparks/PKS-BookingService/pkg/metrics"
	"github.com/mosparks/PKS-BookingService/pkg/simpletxmanager"
	"github.com/mosparks/PKS-BookingService/pkg/txmanager"
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

	log.Info("Starting PKS-BookingService...")
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

	// Инициализируем клиент каталога ресурсов
	catalog := catalogClient.NewClient(
		cfg.Catalog.URL,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	// Инициализируем публикацию событий
	var publisher interface {
		Publish(ctx context.Context, event events.Event) error
	}
	var producer *events.Producer

	if cfg.Kafka.Enabled {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		publisher = producer
		log.Info("Kafka producer initialized (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		publisher = events.NopPublisher{}
		log.Info("Kafka disabled, events will not be published")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		ledgerRepository  *ledgerRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		ledgerRepository = ledgerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		ledgerRepository = ledgerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &createBookingUC.RealTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.New(
		bookingRepository,
		ledgerRepository,
		catalog,
		publisher,
		txMgr,
		timeProvider,
		log,
	)
	decideBookingUseCase := decideBookingUC.New(
		bookingRepository,
		ledgerRepository,
		publisher,
		txMgr,
		timeProvider,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.New(
		bookingRepository,
		ledgerRepository,
		publisher,
		txMgr,
		timeProvider,
		log,
	)
	settlePaymentUseCase := settlePaymentUC.New(
		bookingRepository,
		publisher,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.New(
		ledgerRepository,
		catalog,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	decideBooking := decideBookingHandler.NewHandler(decideBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	settlePayment := settlePaymentHandler.NewHandler(settlePaymentUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getRequesterBookings := getRequesterBookingsHandler.NewHandler(bookingSvc, log)
	getResourceBookings := getResourceBookingsHandler.NewHandler(bookingSvc, log)

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

	// Витрина доступности ресурса
	api.HandleFunc("/resources/{resourceId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Решение модерации (для администраторов)
	protected.HandleFunc("/bookings/{bookingId}/decision", decideBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getRequesterBookings.Handle).Methods(http.MethodGet)

	// Список бронирований ресурса (для администраторов)
	protected.HandleFunc("/resources/{resourceId}/bookings", getResourceBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (для внутренних модулей, закрыты на гейтвее)
	// ============================================================

	internal := r.PathPrefix("/internal/v1").Subrouter()

	// Уведомление об оплате от платёжного модуля
	internal.HandleFunc("/payments/settle", settlePayment.Handle).Methods(http.MethodPost)

	// Фоновая задача завершения прошедших бронирований
	sweeper := jobs.NewCompletionSweeper(
		bookingRepository,
		ledgerRepository,
		publisher,
		txMgr,
		timeProvider,
		log,
	)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Jobs.CompletionSweepSchedule, func() {
		if err := sweeper.Run(context.Background()); err != nil {
			log.Error("Completion sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatal("Failed to schedule completion sweep: %v", err)
	}
	scheduler.Start()
	log.Info("Completion sweep scheduled (%s)", cfg.Jobs.CompletionSweepSchedule)

	// CORS для браузерных клиентов портала
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole}),
	)(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	// Останавливаем планировщик фоновых задач
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()
	log.Info("Background jobs stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	// Закрываем Kafka producer
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close Kafka producer: %v", err)
		}
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
