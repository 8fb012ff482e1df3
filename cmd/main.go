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

	adminActivityHandler "github.com/parkease/parkease-backend/internal/api/handlers/admin_activity"
	adminAlertsHandler "github.com/parkease/parkease-backend/internal/api/handlers/admin_alerts"
	adminPeakHoursHandler "github.com/parkease/parkease-backend/internal/api/handlers/admin_peak_hours"
	adminReviewsHandler "github.com/parkease/parkease-backend/internal/api/handlers/admin_reviews"
	adminStatsHandler "github.com/parkease/parkease-backend/internal/api/handlers/admin_stats"
	archiveLotHandler "github.com/parkease/parkease-backend/internal/api/handlers/archive_lot"
	createBookingHandler "github.com/parkease/parkease-backend/internal/api/handlers/create_booking"
	createLotHandler "github.com/parkease/parkease-backend/internal/api/handlers/create_lot"
	createPaymentHandler "github.com/parkease/parkease-backend/internal/api/handlers/create_payment"
	createReviewHandler "github.com/parkease/parkease-backend/internal/api/handlers/create_review"
	deleteLotHandler "github.com/parkease/parkease-backend/internal/api/handlers/delete_lot"
	endBookingHandler "github.com/parkease/parkease-backend/internal/api/handlers/end_booking"
	extendBookingHandler "github.com/parkease/parkease-backend/internal/api/handlers/extend_booking"
	getBookingHandler "github.com/parkease/parkease-backend/internal/api/handlers/get_booking"
	getLotHandler "github.com/parkease/parkease-backend/internal/api/handlers/get_lot"
	getLotSlotsHandler "github.com/parkease/parkease-backend/internal/api/handlers/get_lot_slots"
	getLotsHandler "github.com/parkease/parkease-backend/internal/api/handlers/get_lots"
	getMyBookingsHandler "github.com/parkease/parkease-backend/internal/api/handlers/get_my_bookings"
	getPaymentsHandler "github.com/parkease/parkease-backend/internal/api/handlers/get_payments"
	getReviewsHandler "github.com/parkease/parkease-backend/internal/api/handlers/get_reviews"
	loginUserHandler "github.com/parkease/parkease-backend/internal/api/handlers/login_user"
	registerUserHandler "github.com/parkease/parkease-backend/internal/api/handlers/register_user"
	toggleLotHandler "github.com/parkease/parkease-backend/internal/api/handlers/toggle_lot"
	updateLotHandler "github.com/parkease/parkease-backend/internal/api/handlers/update_lot"
	updateSlotStatusHandler "github.com/parkease/parkease-backend/internal/api/handlers/update_slot_status"
	"github.com/parkease/parkease-backend/internal/api/middleware"
	"github.com/parkease/parkease-backend/internal/config"
	"github.com/parkease/parkease-backend/internal/infra/realtime"
	activityRepo "github.com/parkease/parkease-backend/internal/infra/storage/activity"
	bookingRepo "github.com/parkease/parkease-backend/internal/infra/storage/booking"
	lotRepo "github.com/parkease/parkease-backend/internal/infra/storage/lot"
	paymentRepo "github.com/parkease/parkease-backend/internal/infra/storage/payment"
	reviewRepo "github.com/parkease/parkease-backend/internal/infra/storage/review"
	slotRepo "github.com/parkease/parkease-backend/internal/infra/storage/slot"
	userRepo "github.com/parkease/parkease-backend/internal/infra/storage/user"
	adminService "github.com/parkease/parkease-backend/internal/service/admin"
	authService "github.com/parkease/parkease-backend/internal/service/auth"
	bookingsService "github.com/parkease/parkease-backend/internal/service/bookings"
	lotsService "github.com/parkease/parkease-backend/internal/service/lots"
	paymentsService "github.com/parkease/parkease-backend/internal/service/payments"
	reviewsService "github.com/parkease/parkease-backend/internal/service/reviews"
	slotsService "github.com/parkease/parkease-backend/internal/service/slots"
	autoReleaseUC "github.com/parkease/parkease-backend/internal/usecase/auto_release"
	createBookingUC "github.com/parkease/parkease-backend/internal/usecase/create_booking"
	extendBookingUC "github.com/parkease/parkease-backend/internal/usecase/extend_booking"
	"github.com/parkease/parkease-backend/pkg/dbmetrics"
	"github.com/parkease/parkease-backend/pkg/logger"
	"github.com/parkease/parkease-backend/pkg/metrics"
	"github.com/parkease/parkease-backend/pkg/simpletxmanager"
	"github.com/parkease/parkease-backend/pkg/txmanager"
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

	log.Info("Starting ParkEase backend...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		userRepository     *userRepo.Repository
		lotRepository      *lotRepo.Repository
		slotRepository     *slotRepo.Repository
		bookingRepository  *bookingRepo.Repository
		reviewRepository   *reviewRepo.Repository
		paymentRepository  *paymentRepo.Repository
		activityRepository *activityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		userRepository = userRepo.NewRepository(wrappedDB)
		lotRepository = lotRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		activityRepository = activityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		userRepository = userRepo.NewRepository(db)
		lotRepository = lotRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		reviewRepository = reviewRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		activityRepository = activityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Контекст жизненного цикла фоновых задач (hub, авторелиз)
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// WebSocket hub для событий slot_update / new_booking
	hub := realtime.NewHub(log)
	go hub.Run()

	// Инициализируем сервисы
	authSvc := authService.NewService(
		userRepository,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		hub,
		log,
	)
	lotSvc := lotsService.NewService(
		lotRepository,
		slotRepository,
		reviewRepository,
		activityRepository,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		lotRepository,
		activityRepository,
		hub,
		log,
	)
	reviewSvc := reviewsService.NewService(reviewRepository, lotRepository, log)
	paymentSvc := paymentsService.NewService(paymentRepository, bookingRepository, log)
	adminSvc := adminService.NewService(
		lotRepository,
		slotRepository,
		bookingRepository,
		paymentRepository,
		activityRepository,
		reviewRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		lotRepository,
		userRepository,
		txMgr,
		hub,
		log,
	)
	extendBookingUseCase := extendBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		lotRepository,
		txMgr,
		log,
	)
	autoReleaseUseCase := autoReleaseUC.NewUseCase(
		bookingRepository,
		slotRepository,
		hub,
		log,
	)

	// Фоновый авторелиз просроченных бронирований
	scheduler := autoReleaseUC.NewScheduler(
		autoReleaseUseCase,
		time.Duration(cfg.AutoRelease.IntervalSeconds)*time.Second,
		log,
	)
	go scheduler.Run(appCtx)

	// Инициализируем handlers
	registerUser := registerUserHandler.NewHandler(authSvc, log)
	loginUser := loginUserHandler.NewHandler(authSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	extendBooking := extendBookingHandler.NewHandler(extendBookingUseCase, log)
	endBooking := endBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentSvc, log)
	getPayments := getPaymentsHandler.NewHandler(paymentSvc, log)
	getLots := getLotsHandler.NewHandler(lotSvc, log)
	getLot := getLotHandler.NewHandler(lotSvc, log)
	createLot := createLotHandler.NewHandler(lotSvc, log)
	updateLot := updateLotHandler.NewHandler(lotSvc, log)
	deleteLot := deleteLotHandler.NewHandler(lotSvc, log)
	toggleLot := toggleLotHandler.NewHandler(lotSvc, log)
	archiveLot := archiveLotHandler.NewHandler(lotSvc, log)
	getLotSlots := getLotSlotsHandler.NewHandler(slotSvc, log)
	updateSlotStatus := updateSlotStatusHandler.NewHandler(slotSvc, log)
	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	getReviews := getReviewsHandler.NewHandler(reviewSvc, log)
	adminStats := adminStatsHandler.NewHandler(adminSvc, log)
	adminAlerts := adminAlertsHandler.NewHandler(adminSvc, log)
	adminPeakHours := adminPeakHoursHandler.NewHandler(adminSvc, log)
	adminActivity := adminActivityHandler.NewHandler(adminSvc, log)
	adminReviews := adminReviewsHandler.NewHandler(adminSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// WebSocket подписка на события слотов и бронирований
	r.HandleFunc("/ws", hub.HandleWS)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация и вход
	api.HandleFunc("/auth/register", registerUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", loginUser.Handle).Methods(http.MethodPost)

	// Каталог парковок: администратор с токеном и ?all=true видит скрытые
	api.Handle("/lots",
		middleware.OptionalAuth(authSvc)(http.HandlerFunc(getLots.Handle))).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}", getLot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}/slots", getLotSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lotId}/reviews", getReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя (до {bookingId}, иначе "my" уйдёт в параметр)
	protected.HandleFunc("/bookings/my", getMyBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Продление бронирования
	protected.HandleFunc("/bookings/{bookingId}/extend", extendBooking.Handle).Methods(http.MethodPatch)

	// Досрочное завершение бронирования
	protected.HandleFunc("/bookings/{bookingId}/end", endBooking.Handle).Methods(http.MethodPatch)

	// --- Платежи ---
	protected.HandleFunc("/bookings/{bookingId}/payments", createPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/payments", getPayments.Handle).Methods(http.MethodGet)

	// --- Управление парковками (владельцы и администраторы) ---
	protected.HandleFunc("/lots", createLot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/lots/{lotId}", updateLot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/lots/{lotId}", deleteLot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/lots/{lotId}/toggle", toggleLot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/lots/{lotId}/archive", archiveLot.Handle).Methods(http.MethodPatch)

	// --- Отзывы ---
	protected.HandleFunc("/lots/{lotId}/reviews", createReview.Handle).Methods(http.MethodPost)

	// --- Слоты (ручное переключение статуса администратором) ---
	protected.HandleFunc("/slots/{slotId}/status", updateSlotStatus.Handle).Methods(http.MethodPatch)

	// --- Административная аналитика ---
	protected.HandleFunc("/admin/stats", adminStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/alerts", adminAlerts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/peak-hours", adminPeakHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/activity", adminActivity.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/reviews", adminReviews.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые задачи
	appCancel()

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
