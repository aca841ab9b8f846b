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

	checkAvailabilityHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/check_availability"
	createAppointmentHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/create_appointment"
	createWithClientHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/create_appointment_with_client"
	deleteAppointmentHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_appointment"
	getMyAppointmentsHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_my_appointments"
	getServiceHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/get_service"
	listAppointmentsHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/list_appointments"
	updateAppointmentHandler "github.com/m04kA/SMC-QueueService/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-QueueService/internal/api/middleware"
	"github.com/m04kA/SMC-QueueService/internal/config"
	"github.com/m04kA/SMC-QueueService/internal/infra/events"
	"github.com/m04kA/SMC-QueueService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/appointment"
	blacklistRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/blacklist"
	catalogRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-QueueService/internal/infra/storage/client"
	userServiceClient "github.com/m04kA/SMC-QueueService/internal/integrations/userservice"
	appointmentsService "github.com/m04kA/SMC-QueueService/internal/service/appointments"
	"github.com/m04kA/SMC-QueueService/internal/service/availability"
	catalogService "github.com/m04kA/SMC-QueueService/internal/service/catalog"
	checkAvailabilityUC "github.com/m04kA/SMC-QueueService/internal/usecase/check_availability"
	createWithClientUC "github.com/m04kA/SMC-QueueService/internal/usecase/create_appointment_with_client"
	"github.com/m04kA/SMC-QueueService/pkg/auth"
	"github.com/m04kA/SMC-QueueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-QueueService/pkg/logger"
	"github.com/m04kA/SMC-QueueService/pkg/metrics"
	"github.com/m04kA/SMC-QueueService/pkg/txmanager"
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

	log.Info("Starting SMC-QueueService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var appointmentMetrics appointmentsService.MetricsRecorder
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		appointmentMetrics = metricsCollector
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

	// Без метрик обертка только передает запросы и транзакции через context
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	blacklistRepository := blacklistRepo.NewRepository(wrappedDB)

	// Справочник мастеров (необязателен)
	var workerDirectory appointmentsService.WorkerDirectory
	if cfg.UserService.URL != "" {
		workerDirectory = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	} else {
		log.Warn("UserService URL is empty, worker existence is not checked")
	}

	// Блокировка мастеров
	var workerLocker appointmentsService.WorkerLocker
	switch cfg.Lock.Backend {
	case config.LockBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancel()

		workerLocker = lock.NewRedisLocker(rdb, cfg.Lock.RedisPrefix, cfg.Lock.TTL())
		log.Info("Worker lock: redis (addr=%s)", cfg.Redis.Addr)
	default:
		workerLocker = lock.NewLocalLocker()
		log.Info("Worker lock: in-process")
	}

	// Публикация событий
	var publisher appointmentsService.EventPublisher = events.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Events are published to exchange %q", cfg.RabbitMQ.Exchange)
	}

	// Сервисы
	var catalogCache *catalogService.Cache
	if cfg.Catalog.CacheSize > 0 {
		catalogCache = catalogService.NewCache(cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL())
	}
	catalogSvc := catalogService.NewService(catalogRepository, catalogCache, log)
	checker := availability.NewChecker(appointmentRepository)

	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		catalogSvc,
		checker,
		workerDirectory,
		workerLocker,
		txMgr,
		publisher,
		appointmentMetrics,
		cfg.Lock.Timeout(),
		log,
	)

	// Use cases
	createWithClientUseCase := createWithClientUC.NewUseCase(
		blacklistRepository,
		clientRepository,
		appointmentSvc,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(catalogSvc, checker, log)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(appointmentSvc, log)
	createWithClient := createWithClientHandler.NewHandler(createWithClientUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getMyAppointments := getMyAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание записей ограничено по частоте с одного IP
	booking := api.PathPrefix("/appointments").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL()).
			WithTrustedProxies(cfg.RateLimit.TrustedProxies...)
		go limiter.Run(stopCh)
		booking.Use(limiter.Middleware(log))
		log.Info("Rate limit enabled: rps=%.2f, burst=%d, trusted proxies=%d",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(cfg.RateLimit.TrustedProxies))
	}
	booking.HandleFunc("", createAppointment.Handle).Methods(http.MethodPost)
	booking.HandleFunc("/with-client", createWithClient.Handle).Methods(http.MethodPost)

	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId:[0-9]+}", getService.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(auth.NewVerifier(cfg.Auth.JWTSecret), log))

	protected.HandleFunc("/appointments/my", getMyAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", deleteAppointment.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи (статистика пула, очистка лимитов)
	close(stopCh)

	log.Info("Server stopped gracefully")
}
