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

	cancelReservationHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/cancel_reservation"
	editSlotFieldHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/edit_slot_field"
	generateSlotsHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/get_available_slots"
	getDoctorSlotsHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/get_doctor_slots"
	getPatientSlotsHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/get_patient_slots"
	getUsersHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/get_users"
	markAttendedHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/mark_attended"
	reassignSpecialtyHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/reassign_specialty"
	repairAssignmentsHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/repair_assignments"
	requestSlotHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/request_slot"
	reserveSlotHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/reserve_slot"
	saveNoteHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/save_note"
	updateUserRoleHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/update_user_role"
	updateUserStatusHandler "github.com/m04kA/Clinic-AppointmentService/internal/api/handlers/update_user_status"
	"github.com/m04kA/Clinic-AppointmentService/internal/api/middleware"
	"github.com/m04kA/Clinic-AppointmentService/internal/app"
	"github.com/m04kA/Clinic-AppointmentService/internal/config"
	slotRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/user"
	slotsService "github.com/m04kA/Clinic-AppointmentService/internal/service/slots"
	usersService "github.com/m04kA/Clinic-AppointmentService/internal/service/users"
	generateSlotsUC "github.com/m04kA/Clinic-AppointmentService/internal/usecase/generate_slots"
	repairAssignmentsUC "github.com/m04kA/Clinic-AppointmentService/internal/usecase/repair_assignments"
	reserveSlotUC "github.com/m04kA/Clinic-AppointmentService/internal/usecase/reserve_slot"
	"github.com/m04kA/Clinic-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/Clinic-AppointmentService/pkg/logger"
	"github.com/m04kA/Clinic-AppointmentService/pkg/metrics"
	"github.com/m04kA/Clinic-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/Clinic-AppointmentService/pkg/txmanager"
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

	log.Info("Starting Clinic-AppointmentService...")
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

	// Применяем миграции
	if cfg.Database.MigrationsDir != "" {
		migrator, err := app.NewMigrator(db, cfg.Database.MigrationsDir)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrator.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to read migration version: %v", err)
		}
		log.Info("Migrations applied (version=%d)", version)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository *slotRepo.Repository
		userRepository *userRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(slotRepository, userRepository, log)
	usersSvc := usersService.NewService(userRepository, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(slotRepository, userRepository, log)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(slotRepository, txMgr, log)
	repairAssignmentsUseCase := repairAssignmentsUC.NewUseCase(slotRepository, userRepository, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotsSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, cfg.Generation.HorizonDays, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	requestSlot := requestSlotHandler.NewHandler(slotsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(slotsSvc, log)
	markAttended := markAttendedHandler.NewHandler(slotsSvc, log)
	saveNote := saveNoteHandler.NewHandler(slotsSvc, log)
	editSlotField := editSlotFieldHandler.NewHandler(slotsSvc, log)
	repairAssignments := repairAssignmentsHandler.NewHandler(repairAssignmentsUseCase, log)
	reassignSpecialty := reassignSpecialtyHandler.NewHandler(slotsSvc, log)
	getPatientSlots := getPatientSlotsHandler.NewHandler(slotsSvc, log)
	getDoctorSlots := getDoctorSlotsHandler.NewHandler(slotsSvc, log)
	getUsers := getUsersHandler.NewHandler(usersSvc, log)
	updateUserRole := updateUserRoleHandler.NewHandler(usersSvc, log)
	updateUserStatus := updateUserStatusHandler.NewHandler(usersSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Доступные слоты для записи
	api.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Слоты ---
	// Генерация расписания (админ)
	protected.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Запись на приём (пациент)
	protected.HandleFunc("/slots/reserve", reserveSlot.Handle).Methods(http.MethodPost)

	// Заявка на приём вне сетки (пациент)
	protected.HandleFunc("/slots/request", requestSlot.Handle).Methods(http.MethodPost)

	// Отмена записи
	protected.HandleFunc("/slots/{slotId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Отметка о проведённом приёме (врач)
	protected.HandleFunc("/slots/{slotId}/attend", markAttended.Handle).Methods(http.MethodPatch)

	// Заметка врача по приёму
	protected.HandleFunc("/slots/{slotId}/note", saveNote.Handle).Methods(http.MethodPut)

	// Точечное редактирование слота (админ)
	protected.HandleFunc("/slots/{slotId}/field", editSlotField.Handle).Methods(http.MethodPatch)

	// Доназначение врачей на неназначенные слоты (админ)
	protected.HandleFunc("/slots/repair-assignments", repairAssignments.Handle).Methods(http.MethodPost)

	// Перевод слотов специальности на врача (админ)
	protected.HandleFunc("/specialties/reassign", reassignSpecialty.Handle).Methods(http.MethodPost)

	// --- Расписания пользователей ---
	protected.HandleFunc("/patients/{userId}/slots", getPatientSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{userId}/slots", getDoctorSlots.Handle).Methods(http.MethodGet)

	// --- Управление пользователями (админ) ---
	protected.HandleFunc("/users", getUsers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/role", updateUserRole.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/status", updateUserStatus.Handle).Methods(http.MethodPatch)

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
