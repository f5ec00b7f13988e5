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

	"github.com/m04kA/SMC-HeliTourService/internal/api/handlers"
	cancelReservationHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/cancel_reservation"
	changeSlotStatusHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/change_slot_status"
	createReservationHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/delete_reservation"
	generateSlotsHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/generate_slots"
	getCancellationPolicyHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/get_cancellation_policy"
	getCancellationQuoteHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/get_cancellation_quote"
	getReservationHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/get_reservation"
	getSlotHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/get_slot"
	issueRefundHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/issue_refund"
	listSlotsHandler "github.com/m04kA/SMC-HeliTourService/internal/api/handlers/list_slots"
	"github.com/m04kA/SMC-HeliTourService/internal/api/middleware"
	"github.com/m04kA/SMC-HeliTourService/internal/config"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/cache/policycache"
	"github.com/m04kA/SMC-HeliTourService/internal/infra/events"
	courseRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/course"
	policyRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/policy"
	refundRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/refund"
	reservationRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-HeliTourService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-HeliTourService/internal/integrations/opsnotifier"
	"github.com/m04kA/SMC-HeliTourService/internal/integrations/paymentgateway"
	cancellationService "github.com/m04kA/SMC-HeliTourService/internal/service/cancellation"
	capacityService "github.com/m04kA/SMC-HeliTourService/internal/service/capacity"
	refundsService "github.com/m04kA/SMC-HeliTourService/internal/service/refunds"
	reservationsService "github.com/m04kA/SMC-HeliTourService/internal/service/reservations"
	slotsService "github.com/m04kA/SMC-HeliTourService/internal/service/slots"
	cancelReservationUC "github.com/m04kA/SMC-HeliTourService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-HeliTourService/internal/usecase/create_reservation"
	deleteReservationUC "github.com/m04kA/SMC-HeliTourService/internal/usecase/delete_reservation"
	generateSlotsUC "github.com/m04kA/SMC-HeliTourService/internal/usecase/generate_slots"
	getCancellationQuoteUC "github.com/m04kA/SMC-HeliTourService/internal/usecase/get_cancellation_quote"
	issueRefundUC "github.com/m04kA/SMC-HeliTourService/internal/usecase/issue_refund"
	"github.com/m04kA/SMC-HeliTourService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HeliTourService/pkg/logger"
	"github.com/m04kA/SMC-HeliTourService/pkg/metrics"
	"github.com/m04kA/SMC-HeliTourService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-HeliTourService/pkg/txmanager"
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

	log.Info("Starting SMC-HeliTourService...")
	log.Info("Configuration loaded from config.toml")

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Репозитории работают с обёрткой метрик или напрямую с *sql.DB
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	slotRepository := slotRepo.NewRepository(executor)
	reservationRepository := reservationRepo.NewRepository(executor)
	refundRepository := refundRepo.NewRepository(executor)
	policyRepository := policyRepo.NewRepository(executor)
	courseRepository := courseRepo.NewRepository(executor)

	// Инициализируем интеграционных клиентов
	gatewayClient := paymentgateway.NewClient(
		cfg.PaymentGateway.URL,
		cfg.PaymentGateway.SecretKey,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Timeout)

	// Кеш политики отмены. Без Redis политика читается из БД
	var policyCache cancellationService.PolicyCache
	if cfg.Redis.Enabled {
		redisClient, err := policycache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Redis unavailable, policy cache disabled: %v", err)
		} else {
			defer redisClient.Close()
			policyCache = policycache.New(redisClient, time.Duration(cfg.Redis.TTL)*time.Second, log)
			log.Info("Policy cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// События бронирований
	var eventsChannel events.Channel
	if cfg.RabbitMQ.Enabled {
		conn, err := events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Warn("RabbitMQ unavailable, events disabled: %v", err)
		} else {
			defer conn.Close()
			eventsChannel = conn.Channel
			log.Info("Publishing events to exchange %s", cfg.RabbitMQ.Exchange)
		}
	}
	publisher := events.NewPublisher(eventsChannel, cfg.RabbitMQ.Exchange, log)

	// Оповещения операторов
	var sender opsnotifier.MessageSender
	if cfg.Discord.Enabled {
		session, err := opsnotifier.NewSession(cfg.Discord.BotToken)
		if err != nil {
			log.Warn("Discord unavailable, ops alerts disabled: %v", err)
		} else {
			sender = session
			log.Info("Ops alerts enabled (channel=%s)", cfg.Discord.ChannelID)
		}
	}
	notifier := opsnotifier.NewNotifier(sender, cfg.Discord.ChannelID, log)

	// Инициализируем сервисы
	capacitySvc := capacityService.NewService(slotRepository, metricsCollector, log)
	slotsSvc := slotsService.NewService(slotRepository, cfg.Booking.MaxGenerationDays, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, refundRepository, log)
	cancellationSvc := cancellationService.NewService(
		policyRepository,
		policyCache,
		reservationRepository,
		capacitySvc,
		txMgr,
		loc,
		log,
	)
	refundsSvc := refundsService.NewService(
		reservationRepository,
		refundRepository,
		gatewayClient,
		notifier,
		publisher,
		metricsCollector,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		courseRepository,
		capacitySvc,
		publisher,
		txMgr,
		createReservationUC.Config{
			TaxPercent:          cfg.Booking.TaxPercent,
			BookingNumberPrefix: cfg.Booking.BookingNumberPrefix,
		},
		log,
	)

	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		courseRepository,
		notifier,
		metricsCollector,
		generateSlotsUC.Config{
			DefaultMaxPax: cfg.Booking.DefaultMaxPax,
			MaxRangeDays:  cfg.Booking.MaxGenerationDays,
			ChunkSize:     cfg.Booking.GenerationChunkSize,
		},
		log,
	)

	getCancellationQuoteUseCase := getCancellationQuoteUC.NewUseCase(reservationRepository, cancellationSvc, log)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		cancellationSvc,
		refundsSvc,
		publisher,
		metricsCollector,
		cancelReservationUC.Config{RefundOnCancel: cfg.Booking.RefundOnCustomerCancel},
		log,
	)

	issueRefundUseCase := issueRefundUC.NewUseCase(refundsSvc, log)

	deleteReservationUseCase := deleteReservationUC.NewUseCase(reservationRepository, capacitySvc, txMgr, log)

	// Инициализируем handlers
	listSlots := listSlotsHandler.NewHandler(slotsSvc, log)
	getSlot := getSlotHandler.NewHandler(slotsSvc, log)
	changeSlotStatus := changeSlotStatusHandler.NewHandler(slotsSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getCancellationPolicy := getCancellationPolicyHandler.NewHandler(cancellationSvc, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getCancellationQuote := getCancellationQuoteHandler.NewHandler(getCancellationQuoteUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	issueRefund := issueRefundHandler.NewHandler(issueRefundUseCase, log)
	deleteReservation := deleteReservationHandler.NewHandler(deleteReservationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// Политика отмены для витрины
	api.HandleFunc("/cancellation-policy", getCancellationPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancellation-quote", getCancellationQuote.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminOnly)

	// --- Слоты ---
	admin.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}/close", changeSlotStatus.HandleClose).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}/reopen", changeSlotStatus.HandleReopen).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}/suspend", changeSlotStatus.HandleSuspend).Methods(http.MethodPost)

	// --- Бронирования ---
	admin.HandleFunc("/reservations/{reservationId}/refunds", issueRefund.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
