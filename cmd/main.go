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
	_ "time/tzdata"

	chimw "github.com/go-chi/chi/v5/middleware"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/autoshop/garage-booking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/autoshop/garage-booking/internal/api/handlers/create_appointment"
	exportAppointmentsHandler "github.com/autoshop/garage-booking/internal/api/handlers/export_appointments"
	getAppointmentHandler "github.com/autoshop/garage-booking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/autoshop/garage-booking/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/autoshop/garage-booking/internal/api/handlers/get_business_hours"
	healthHandler "github.com/autoshop/garage-booking/internal/api/handlers/health"
	listAppointmentsHandler "github.com/autoshop/garage-booking/internal/api/handlers/list_appointments"
	listServicesHandler "github.com/autoshop/garage-booking/internal/api/handlers/list_services"
	updateStatusHandler "github.com/autoshop/garage-booking/internal/api/handlers/update_appointment_status"
	updateBusinessHoursHandler "github.com/autoshop/garage-booking/internal/api/handlers/update_business_hours"
	"github.com/autoshop/garage-booking/internal/api/middleware"
	"github.com/autoshop/garage-booking/internal/catalog"
	"github.com/autoshop/garage-booking/internal/config"
	"github.com/autoshop/garage-booking/internal/domain"
	"github.com/autoshop/garage-booking/internal/export"
	"github.com/autoshop/garage-booking/internal/infra/lock"
	appointmentRepo "github.com/autoshop/garage-booking/internal/infra/storage/appointment"
	hoursRepo "github.com/autoshop/garage-booking/internal/infra/storage/hours"
	appointmentsService "github.com/autoshop/garage-booking/internal/service/appointments"
	hoursService "github.com/autoshop/garage-booking/internal/service/hours"
	createAppointmentUC "github.com/autoshop/garage-booking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/autoshop/garage-booking/internal/usecase/get_available_slots"
	"github.com/autoshop/garage-booking/pkg/dbmetrics"
	"github.com/autoshop/garage-booking/pkg/logger"
	"github.com/autoshop/garage-booking/pkg/metrics"
	"github.com/autoshop/garage-booking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting garage-booking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid shop timezone: %v", err)
	}
	shopDefaults, err := cfg.ShopDefaults()
	if err != nil {
		log.Fatal("Invalid shop defaults: %v", err)
	}

	// Каталог услуг
	services := make([]domain.Service, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		services = append(services, domain.Service{Key: s.Key, Name: s.Name, DurationMinutes: s.DurationMinutes})
	}
	serviceCatalog, err := catalog.New(services, cfg.Catalog.DefaultDurationMinutes, cfg.Catalog.Strict)
	if err != nil {
		log.Fatal("Invalid service catalog: %v", err)
	}
	log.Info("Service catalog loaded: %d services, strict=%t", len(services), serviceCatalog.IsStrict())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	registry := prometheus.NewRegistry()
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, registry)
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

	// Обёртка снимает метрики запросов; без метрик работает как обычный *sql.DB
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Блокировка дат в Redis (если включена)
	checks := map[string]healthHandler.Checker{"postgres": wrappedDB.PingContext}
	var locker createAppointmentUC.Locker = lock.NopLocker{}

	if cfg.Redis.Enabled {
		redisClient, err := lock.Connect(context.Background(), cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		redisLocker := lock.NewRedisLocker(redisClient)
		locker = redisLocker
		checks["redis"] = redisLocker.Ping
		log.Info("Redis date lock enabled (address=%s, ttl=%s)", cfg.Redis.Address, cfg.LockTTL())
	} else {
		log.Warn("Redis is disabled, booking relies on serializable transactions only")
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	hoursRepository := hoursRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		serviceCatalog,
		export.NewScheduleWriter(serviceCatalog),
		log,
	)
	hoursSvc := hoursService.NewService(hoursRepository, shopDefaults, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		hoursRepository,
		serviceCatalog,
		locker,
		cfg.LockTTL(),
		txMgr,
		shopDefaults,
		location,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		hoursRepository,
		serviceCatalog,
		shopDefaults,
		location,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(serviceCatalog)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	exportAppointments := exportAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(hoursSvc, log)
	health := healthHandler.NewHandler(checks, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(chimw.RequestID, middleware.ClientAddress(cfg.Server.TrustProxyHeaders), middleware.Logging(log), chimw.Recoverer)
	if cfg.Server.TrustProxyHeaders {
		log.Info("Client address is taken from X-Forwarded-For/X-Real-IP")
	}

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/business-hours/{date}", getBusinessHours.Handle).Methods(http.MethodGet)

	// Создание записи ограничено по частоте с одного IP
	var createHandler http.Handler = http.HandlerFunc(createAppointment.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		createHandler = limiter.Middleware(createHandler)
		log.Info("Rate limit enabled: %.0f req/min, burst=%d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	api.Handle("/appointments", createHandler).Methods(http.MethodPost)

	api.HandleFunc("/appointments/{reference}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{reference}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/export", exportAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id:[0-9]+}", getAppointment.HandleByID).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id:[0-9]+}/status", updateStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id:[0-9]+}/cancel", cancelAppointment.HandleByID).Methods(http.MethodPatch)

	// --- Часы работы ---
	admin.HandleFunc("/business-hours", getBusinessHours.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/business-hours/{date}", updateBusinessHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/business-hours/{date}", updateBusinessHours.HandleDelete).Methods(http.MethodDelete)

	// CORS для виджета записи на сайте мастерской
	var rootHandler http.Handler = r
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		rootHandler = gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(cfg.Server.CORSAllowedOrigins),
			gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}),
			gorillahandlers.AllowedHeaders([]string{"Content-Type", "X-Admin-Token", "X-Request-Id"}),
			gorillahandlers.MaxAge(int((12 * time.Hour).Seconds())),
		)(r)
		log.Info("CORS enabled for origins: %v", cfg.Server.CORSAllowedOrigins)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      rootHandler,
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
