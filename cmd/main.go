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

	cancelBookingHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/cancel_booking"
	checkDiscountHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/check_discount"
	createBookingHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/create_booking"
	createDiscountRuleHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/create_discount_rule"
	createSlotHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/create_slot"
	deleteBookingHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/delete_booking"
	deleteDiscountRuleHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/delete_discount_rule"
	deleteSlotHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/delete_slot"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/get_booking"
	getDiscountRulesHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/get_discount_rules"
	getDiscountSettingsHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/get_discount_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/get_user_bookings"
	syncUserHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/sync_user"
	updateBookingStatusHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/update_booking_status"
	updateDiscountSettingsHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/update_discount_settings"
	updateUserHandler "github.com/m04kA/SMC-TherapyService/internal/api/handlers/update_user"
	"github.com/m04kA/SMC-TherapyService/internal/api/middleware"
	"github.com/m04kA/SMC-TherapyService/internal/config"
	bookingRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/booking"
	discountRuleRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/discountrule"
	settingsRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/user"
	authServiceClient "github.com/m04kA/SMC-TherapyService/internal/integrations/authservice"
	mailServiceClient "github.com/m04kA/SMC-TherapyService/internal/integrations/mailservice"
	bookingsService "github.com/m04kA/SMC-TherapyService/internal/service/bookings"
	discountsService "github.com/m04kA/SMC-TherapyService/internal/service/discounts"
	notificationsService "github.com/m04kA/SMC-TherapyService/internal/service/notifications"
	slotsService "github.com/m04kA/SMC-TherapyService/internal/service/slots"
	usersService "github.com/m04kA/SMC-TherapyService/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-TherapyService/internal/usecase/create_booking"
	resolveDiscountUC "github.com/m04kA/SMC-TherapyService/internal/usecase/resolve_discount"
	"github.com/m04kA/SMC-TherapyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyService/pkg/logger"
	"github.com/m04kA/SMC-TherapyService/pkg/metrics"
	"github.com/m04kA/SMC-TherapyService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TherapyService/pkg/txmanager"
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

	log.Info("Starting SMC-TherapyService...")
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

	// Инициализируем интеграционных клиентов
	authClient := authServiceClient.NewClient(
		cfg.AuthService.URL,
		time.Duration(cfg.AuthService.Timeout)*time.Second,
		log,
	)
	mailClient := mailServiceClient.NewClient(
		cfg.MailService.URL,
		time.Duration(cfg.MailService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (AuthService=%s timeout=%ds, MailService=%s timeout=%ds)",
		cfg.AuthService.URL, cfg.AuthService.Timeout, cfg.MailService.URL, cfg.MailService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		slotRepository         *slotRepo.Repository
		userRepository         *userRepo.Repository
		discountRuleRepository *discountRuleRepo.Repository
		settingsRepository     *settingsRepo.Repository
	)

	// Интерфейс transaction manager, общий для usecase и сервисов
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		discountRuleRepository = discountRuleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		discountRuleRepository = discountRuleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	notifier := notificationsService.NewService(mailClient, cfg.MailService.AdminEmail, log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		userRepository,
		notifier,
		txMgr,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)
	discountSvc := discountsService.NewService(
		discountRuleRepository,
		settingsRepository,
		log,
	)
	userSvc := usersService.NewService(
		userRepository,
		authClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		userRepository,
		bookingRepository,
		slotRepository,
		notifier,
		txMgr,
		createBookingUC.Limits{
			MaxActiveBookings: cfg.Booking.ActiveLimit(),
			Cooldown:          cfg.Booking.Cooldown(),
		},
		log,
	)
	resolveDiscountUseCase := resolveDiscountUC.NewUseCase(
		bookingRepository,
		discountRuleRepository,
		settingsRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	checkDiscount := checkDiscountHandler.NewHandler(resolveDiscountUseCase, log)
	createDiscountRule := createDiscountRuleHandler.NewHandler(discountSvc, log)
	getDiscountRules := getDiscountRulesHandler.NewHandler(discountSvc, log)
	deleteDiscountRule := deleteDiscountRuleHandler.NewHandler(discountSvc, log)
	getDiscountSettings := getDiscountSettingsHandler.NewHandler(discountSvc, log)
	updateDiscountSettings := updateDiscountSettingsHandler.NewHandler(discountSvc, log)
	syncUser := syncUserHandler.NewHandler(userSvc, log)
	updateUser := updateUserHandler.NewHandler(userSvc, log)

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

	// Свободные слоты расписания
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Синхронизация идентичности (токен в Authorization header)
	api.HandleFunc("/users/sync", syncUser.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Скидка пользователя
	protected.HandleFunc("/users/me/discount", checkDiscount.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.Admin)

	// Управление бронированиями
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// Управление слотами
	admin.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// Правила скидок
	admin.HandleFunc("/discount-rules", createDiscountRule.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/discount-rules", getDiscountRules.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/discount-rules/{ruleId}", deleteDiscountRule.Handle).Methods(http.MethodDelete)

	// Настройки скидок
	admin.HandleFunc("/settings/discounts", getDiscountSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings/discounts", updateDiscountSettings.Handle).Methods(http.MethodPut)

	// Управление пользователями
	admin.HandleFunc("/users/{userId}", updateUser.Handle).Methods(http.MethodPatch)

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
	notifier.Wait()

	log.Info("Server stopped gracefully")
}
