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
	"github.com/redis/go-redis/v9"

	advanceSessionHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/advance_session"
	cancelReservationHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/cancel_reservation"
	confirmSessionHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/confirm_session"
	getAvailableSlotsHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/get_reservation"
	getSessionHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/get_session"
	getStaffReservationsHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/get_staff_reservations"
	getUserReservationsHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/get_user_reservations"
	offerResponseHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/offer_response"
	startSessionHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/start_session"
	updateReservationStatusHandler "github.com/bookline/BL-BookingEngine/internal/api/handlers/update_reservation_status"
	"github.com/bookline/BL-BookingEngine/internal/api/middleware"
	"github.com/bookline/BL-BookingEngine/internal/config"
	"github.com/bookline/BL-BookingEngine/internal/infra/sessionstore"
	reservationRepo "github.com/bookline/BL-BookingEngine/internal/infra/storage/reservation"
	messengerClient "github.com/bookline/BL-BookingEngine/internal/integrations/messenger"
	staffServiceClient "github.com/bookline/BL-BookingEngine/internal/integrations/staffservice"
	reservationsService "github.com/bookline/BL-BookingEngine/internal/service/reservations"
	commitReservationUC "github.com/bookline/BL-BookingEngine/internal/usecase/commit_reservation"
	getAvailableSlotsUC "github.com/bookline/BL-BookingEngine/internal/usecase/get_available_slots"
	"github.com/bookline/BL-BookingEngine/internal/workflow"
	"github.com/bookline/BL-BookingEngine/pkg/dbmetrics"
	"github.com/bookline/BL-BookingEngine/pkg/logger"
	"github.com/bookline/BL-BookingEngine/pkg/metrics"
	"github.com/bookline/BL-BookingEngine/pkg/simpletxmanager"
	"github.com/bookline/BL-BookingEngine/pkg/txmanager"
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

	log.Info("Starting BL-BookingEngine...")
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

	// Подключаемся к Redis (хранилище сессий бронирования)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	sessionStore := sessionstore.NewStore(
		redisClient,
		time.Duration(cfg.Redis.SessionTTLMinutes)*time.Minute,
	)

	// Инициализируем интеграционных клиентов
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	msgClient := messengerClient.NewClient(
		cfg.Messenger.URL,
		time.Duration(cfg.Messenger.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds, Messenger=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.Messenger.URL, cfg.Messenger.Timeout)

	// Инициализируем репозиторий (с метриками или без)
	var reservationRepository *reservationRepo.Repository

	// Интерфейс для transaction manager (используется в commit-пути)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		msgClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		staffClient,
		log,
	)

	commitReservationUseCase := commitReservationUC.NewUseCase(
		reservationRepository,
		staffClient,
		msgClient,
		txMgr,
		log,
	)

	// Менеджер сессий бронирования
	workflowManager := workflow.NewManager(
		sessionStore,
		commitReservationUseCase,
		reservationRepository,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getStaffReservations := getStaffReservationsHandler.NewHandler(reservationSvc, log)
	startSession := startSessionHandler.NewHandler(workflowManager, log)
	getSession := getSessionHandler.NewHandler(workflowManager, log)
	advanceSession := advanceSessionHandler.NewHandler(workflowManager, log)
	confirmSession := confirmSessionHandler.NewHandler(workflowManager, log)
	offerResponse := offerResponseHandler.NewHandler(workflowManager, log)

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

	// Получение доступных слотов сотрудника
	api.HandleFunc("/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии бронирования ---
	// Создание сессии (обычное бронирование или перенос)
	protected.HandleFunc("/booking-sessions", startSession.Handle).Methods(http.MethodPost)

	// Текущее состояние сессии
	protected.HandleFunc("/booking-sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Применение события к сессии (выбор сотрудника, услуг, слота, ввод данных, назад)
	protected.HandleFunc("/booking-sessions/{sessionId}/events", advanceSession.Handle).Methods(http.MethodPost)

	// Подтверждение сессии (фиксация бронирования)
	protected.HandleFunc("/booking-sessions/{sessionId}/confirm", confirmSession.Handle).Methods(http.MethodPost)

	// Ответ на предложенную акцию
	protected.HandleFunc("/booking-sessions/{sessionId}/offer-response", offerResponse.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (подтверждение сотрудником)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// Список бронирований сотрудника
	protected.HandleFunc("/staff/{staffId}/reservations", getStaffReservations.Handle).Methods(http.MethodGet)

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
