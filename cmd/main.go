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

	cancelAppointmentHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/cancel_appointment"
	chatSessionHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/chat_session"
	checkAvailabilityHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/check_availability"
	confirmAppointmentHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/create_appointment"
	getAvailableDatesHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/get_available_dates"
	getAvailableTimesHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/get_available_times"
	getBusinessAppointmentsHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/get_business_appointments"
	getCatalogHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/get_business_catalog"
	getBusinessSettingsHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/get_business_settings"
	getCustomerAppointmentsHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/get_customer_appointments"
	updateBusinessSettingsHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/update_business_settings"
	updateStatusHandler "github.com/lerthy/Appointlify-Amazon-sub002/internal/api/handlers/update_status"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/api/middleware"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/chatsession"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/config"
	apptRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/appointment"
	catalogRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/catalog"
	customerRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/customer"
	settingsRepo "github.com/lerthy/Appointlify-Amazon-sub002/internal/infra/storage/settings"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/integrations/smsgateway"
	"github.com/lerthy/Appointlify-Amazon-sub002/internal/notify"
	appointmentsService "github.com/lerthy/Appointlify-Amazon-sub002/internal/service/appointments"
	settingsService "github.com/lerthy/Appointlify-Amazon-sub002/internal/service/settings"
	checkAvailabilityUC "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/check_availability"
	createAppointmentUC "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/create_appointment"
	getAvailableDatesUC "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/get_available_dates"
	getAvailableTimesUC "github.com/lerthy/Appointlify-Amazon-sub002/internal/usecase/get_available_times"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/dbmetrics"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/logger"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/metrics"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/simpletxmanager"
	"github.com/lerthy/Appointlify-Amazon-sub002/pkg/txmanager"
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

	log.Info("Starting Appointlify booking service...")
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

	// Инициализируем отправку уведомлений
	var emailSender notify.EmailSender
	if cfg.Notifier.EmailEnabled {
		emailSender = notify.NewSendGridSender(
			cfg.Notifier.SendGridAPIKey,
			cfg.Notifier.FromEmail,
			cfg.Notifier.FromName,
			log,
		)
		log.Info("Email notifications enabled (from=%s)", cfg.Notifier.FromEmail)
	}

	var smsSender notify.SMSSender
	if cfg.Notifier.SMSEnabled {
		smsSender = smsgateway.NewClient(
			cfg.Notifier.SMSGatewayURL,
			cfg.Notifier.SMSGatewayToken,
			time.Duration(cfg.Notifier.SMSTimeout)*time.Second,
			log,
		)
		log.Info("SMS notifications enabled (gateway=%s)", cfg.Notifier.SMSGatewayURL)
	}

	dispatcher := notify.NewDispatcher(
		emailSender,
		smsSender,
		time.Duration(cfg.Notifier.DispatchTimeout)*time.Second,
		log,
	)

	// Инициализируем хранилище чат-сессий (если настроен Redis)
	var sessionStore *chatsession.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		sessionStore = chatsession.NewStore(rdb, time.Duration(cfg.Redis.SessionTTLMinutes)*time.Minute)
		log.Info("Chat session store enabled (redis=%s, ttl=%dm)", cfg.Redis.Addr, cfg.Redis.SessionTTLMinutes)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *apptRepo.Repository
		settingsRepository    *settingsRepo.Repository
		catalogRepository     *catalogRepo.Repository
		customerRepository    *customerRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = apptRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = apptRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		customerRepository,
		dispatcher,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		appointmentRepository,
		settingsRepository,
		catalogRepository,
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		settingsRepository,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		getAvailableTimesUseCase,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		settingsRepository,
		catalogRepository,
		customerRepository,
		dispatcher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentSvc, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getCatalog := getCatalogHandler.NewHandler(catalogRepository, log)
	getBusinessSettings := getBusinessSettingsHandler.NewHandler(settingsSvc, log)
	updateBusinessSettings := updateBusinessSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные даты и время для записи
	api.HandleFunc("/businesses/{businessId}/available-dates",
		getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/available-times",
		getAvailableTimes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Расписание бизнеса (публичное чтение)
	api.HandleFunc("/businesses/{businessId}/settings",
		getBusinessSettings.Handle).Methods(http.MethodGet)

	// Каталог услуг и сотрудников (для клиентского флоу бронирования)
	api.HandleFunc("/businesses/{businessId}/services",
		getCatalog.HandleServices).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/employees",
		getCatalog.HandleEmployees).Methods(http.MethodGet)

	// Создание и подтверждение записи (клиентский флоу)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/confirm", confirmAppointment.Handle).Methods(http.MethodPost)

	// Состояние чат-сессий бронирования
	if sessionStore != nil {
		chatSession := chatSessionHandler.NewHandler(sessionStore, log)
		api.HandleFunc("/chat/sessions/{sessionId}", chatSession.HandleGet).Methods(http.MethodGet)
		api.HandleFunc("/chat/sessions/{sessionId}", chatSession.HandlePut).Methods(http.MethodPut)
		api.HandleFunc("/chat/sessions/{sessionId}", chatSession.HandleDelete).Methods(http.MethodDelete)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Отмена записи и управление статусом
	protected.HandleFunc("/appointments/{appointmentId}/cancel",
		cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status",
		updateStatus.Handle).Methods(http.MethodPatch)

	// Управление бизнесом
	protected.HandleFunc("/businesses/{businessId}/appointments",
		getBusinessAppointments.Handle).Methods(http.MethodGet)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments",
		getCustomerAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/appointments",
		getCustomerAppointments.HandleByEmail).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/settings",
		updateBusinessSettings.Handle).Methods(http.MethodPut)

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

	// Дожидаемся фоновых уведомлений
	dispatcher.Wait()

	log.Info("Server stopped gracefully")
}
