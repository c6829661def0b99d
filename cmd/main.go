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

	bookSlotHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/book_slot"
	confirmPaymentHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/confirm_payment"
	generateSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/generate_slots"
	getAdminSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_admin_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_available_slots"
	getUserBookingsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_user_bookings"
	getUserPaymentsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_user_payments"
	getUsersHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_users"
	onboardingInputHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/onboarding_input"
	refundPaymentHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/refund_payment"
	rejectPaymentHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/reject_payment"
	setSlotActiveHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/set_slot_active"
	updateCategoryRateHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/update_category_rate"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/events"
	onboardingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/onboarding"
	paymentRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/payment"
	rateRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/rate"
	slotRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/telegram"
	adminService "github.com/m04kA/SMC-FieldBookingService/internal/service/admin"
	bookingService "github.com/m04kA/SMC-FieldBookingService/internal/service/booking"
	catalogService "github.com/m04kA/SMC-FieldBookingService/internal/service/catalog"
	onboardingService "github.com/m04kA/SMC-FieldBookingService/internal/service/onboarding"
	bookSlotUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/book_slot"
	confirmPaymentUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/confirm_payment"
	refundPaymentUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/refund_payment"
	rejectPaymentUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/reject_payment"
	"github.com/m04kA/SMC-FieldBookingService/migrations"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

// Интервал фоновой чистки брошенных сессий онбординга
const abandonedSessionsSweepInterval = time.Hour

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

	log.Info("Starting SMC-FieldBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Prometheus metrics enabled")
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Database connection established")

	// Применяем миграции
	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Публикация доменных событий (если включена)
	var publisher events.EventPublisher
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Domain events exchange %q connected", cfg.Events.Exchange)
	} else {
		publisher = events.NopPublisher{}
		log.Info("Domain events disabled")
	}

	// Контекст фоновых задач, отменяется при остановке сервиса
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Telegram: уведомления, инвойсы и чистка диалогов (если включен)
	var (
		notifier      telegram.Notifier
		invoices      telegram.InvoiceOpener
		dialogCleaner *telegram.Cleaner
	)
	if cfg.Telegram.Enabled {
		tgClient, err := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ProviderToken, cfg.Telegram.Currency, log)
		if err != nil {
			log.Fatal("Failed to initialize telegram client: %v", err)
		}
		notifier = tgClient
		invoices = tgClient
		dialogCleaner = telegram.NewCleaner(tgClient, log)
		defer dialogCleaner.Stop()
		go tgClient.ListenPreCheckout(bgCtx)
		log.Info("Telegram integration enabled")
	} else {
		notifier = telegram.NopClient{}
		invoices = telegram.NopClient{}
		log.Info("Telegram integration disabled")
	}

	// Инициализируем репозитории
	slotRepository := slotRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)
	userRepository := userRepo.NewRepository(db)
	onboardingRepository := onboardingRepo.NewRepository(db)
	rateRepository := rateRepo.NewRepository(db)

	txMgr := txmanager.NewManager(db)

	// Инициализируем сервисы
	bookingSvc := bookingService.NewService(slotRepository, log)
	catalogSvc := catalogService.NewService(slotRepository, rateRepository, txMgr, log)
	onboardingSvc := onboardingService.NewService(onboardingRepository, userRepository, txMgr, log)
	adminSvc := adminService.NewService(userRepository, slotRepository, paymentRepository, log)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(
		userRepository,
		bookingSvc,
		catalogSvc,
		paymentRepository,
		invoices,
		txMgr,
		metricsCollector,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		paymentRepository,
		bookingSvc,
		publisher,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	rejectPaymentUseCase := rejectPaymentUC.NewUseCase(
		paymentRepository,
		bookingSvc,
		publisher,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)
	refundPaymentUseCase := refundPaymentUC.NewUseCase(
		userRepository,
		paymentRepository,
		bookingSvc,
		publisher,
		notifier,
		txMgr,
		metricsCollector,
		log,
	)

	// Окна дня и горизонт генерации из конфигурации
	timeWindows := make([]domain.TimeWindow, 0, len(cfg.Catalog.TimeWindows))
	for _, w := range cfg.Catalog.TimeWindows {
		timeWindows = append(timeWindows, domain.TimeWindow(w))
	}
	horizonDays := cfg.Catalog.HorizonDays
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(catalogSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, cfg.Telegram.ProviderToken, log)
	rejectPayment := rejectPaymentHandler.NewHandler(rejectPaymentUseCase, cfg.Telegram.ProviderToken, log)
	refundPayment := refundPaymentHandler.NewHandler(refundPaymentUseCase, log)
	generateSlots := generateSlotsHandler.NewHandler(catalogSvc, horizonDays, timeWindows, metricsCollector, log)
	getAdminSlots := getAdminSlotsHandler.NewHandler(adminSvc, log)
	setSlotActive := setSlotActiveHandler.NewHandler(bookingSvc, log)
	getUsers := getUsersHandler.NewHandler(adminSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(adminSvc, log)
	getUserPayments := getUserPaymentsHandler.NewHandler(adminSvc, log)
	updateCategoryRate := updateCategoryRateHandler.NewHandler(catalogSvc, log)

	var onboardingCleaner onboardingInputHandler.DialogCleaner
	if dialogCleaner != nil {
		onboardingCleaner = dialogCleaner
	}
	onboardingInput := onboardingInputHandler.NewHandler(onboardingSvc, onboardingCleaner, metricsCollector, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Свободные слоты для бронирования
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Вебхуки платёжного провайдера (авторизация по X-Provider-Token)
	api.HandleFunc("/payments/confirm", confirmPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/reject", rejectPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Бронирование слота
	protected.HandleFunc("/bookings", bookSlot.Handle).Methods(http.MethodPost)

	// История пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/payments", getUserPayments.Handle).Methods(http.MethodGet)

	// Онбординг
	protected.HandleFunc("/onboarding/start", onboardingInput.HandleStart).Methods(http.MethodPost)
	protected.HandleFunc("/onboarding/input", onboardingInput.HandleInput).Methods(http.MethodPost)

	// ============================================================
	// OPERATOR ROUTES (требуют роль оператора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.RequireOperator(userRepository, log))

	admin.HandleFunc("/slots", getAdminSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}/active", setSlotActive.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/payments/{paymentId}/refund", refundPayment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/users", getUsers.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rates", updateCategoryRate.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/rates/{category}", updateCategoryRate.HandleUpdate).Methods(http.MethodPut)

	// Фоновая чистка брошенных сессий онбординга
	go func() {
		ticker := time.NewTicker(abandonedSessionsSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-bgCtx.Done():
				return
			case <-ticker.C:
				if _, err := onboardingSvc.CleanupAbandoned(bgCtx, time.Now()); err != nil {
					log.Error("Abandoned sessions sweep failed: %v", err)
				}
			}
		}
	}()

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
	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
