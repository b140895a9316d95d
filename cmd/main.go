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

	calendarAppointmentsHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/calendar_appointments"
	cancelAppointmentHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/delete_appointment"
	employeeAvailabilityHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/employee_availability"
	getAppointmentHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/get_appointment"
	getAvailableTimesHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/get_available_times"
	listAppointmentsHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/list_appointments"
	publicBusinessInfoHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/public_business_info"
	publicCreateAppointmentHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/public_create_appointment"
	updateAppointmentHandler "github.com/devsign-cl/appointment-service/internal/api/handlers/update_appointment"
	"github.com/devsign-cl/appointment-service/internal/api/middleware"
	"github.com/devsign-cl/appointment-service/internal/config"
	"github.com/devsign-cl/appointment-service/internal/dispatch"
	appointmentRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/appointment"
	businessRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/business"
	clientRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/client"
	employeeRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/employee"
	serviceRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/service"
	"github.com/devsign-cl/appointment-service/internal/integrations/googlecalendar"
	"github.com/devsign-cl/appointment-service/internal/notifications"
	appointmentsService "github.com/devsign-cl/appointment-service/internal/service/appointments"
	createAppointmentUC "github.com/devsign-cl/appointment-service/internal/usecase/create_appointment"
	employeeAvailabilityUC "github.com/devsign-cl/appointment-service/internal/usecase/employee_availability"
	getAvailableTimesUC "github.com/devsign-cl/appointment-service/internal/usecase/get_available_times"
	publicBookingUC "github.com/devsign-cl/appointment-service/internal/usecase/public_booking"
	updateAppointmentUC "github.com/devsign-cl/appointment-service/internal/usecase/update_appointment"
	"github.com/devsign-cl/appointment-service/pkg/dbmetrics"
	"github.com/devsign-cl/appointment-service/pkg/logger"
	"github.com/devsign-cl/appointment-service/pkg/metrics"
	"github.com/devsign-cl/appointment-service/pkg/simpletxmanager"
	"github.com/devsign-cl/appointment-service/pkg/txmanager"
	"github.com/devsign-cl/appointment-service/pkg/types"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting appointment-service...")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Repositories and transaction manager, instrumented when metrics are on
	var (
		appointmentRepository *appointmentRepo.Repository
		businessRepository    *businessRepo.Repository
		clientRepository      *clientRepo.Repository
		employeeRepository    *employeeRepo.Repository
		serviceRepository     *serviceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		businessRepository = businessRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		employeeRepository = employeeRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		businessRepository = businessRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		employeeRepository = employeeRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Side-effect pipeline: calendar sync + notifications
	var calendarClient dispatch.CalendarSync
	if cfg.GoogleCalendar.Enabled {
		calendarClient = googlecalendar.NewClient(
			cfg.GoogleCalendar.BaseURL,
			cfg.GoogleCalendar.AccessToken,
			cfg.Business.Timezone,
			time.Duration(cfg.GoogleCalendar.Timeout)*time.Second,
			log,
		)
		log.Info("Google Calendar sync enabled")
	} else {
		log.Info("Google Calendar sync disabled")
	}

	notifier := notifications.NewDispatcher(notifications.Config{
		BusinessName:   cfg.Business.Name,
		AdminEmail:     cfg.Notifications.AdminEmail,
		FromEmail:      cfg.Notifications.FromEmail,
		SMTPHost:       cfg.Notifications.SMTPHost,
		SMTPPort:       cfg.Notifications.SMTPPort,
		WebhookURL:     cfg.Notifications.WebhookURL,
		WebhookToken:   cfg.Notifications.WebhookToken,
		WebhookTimeout: time.Duration(cfg.Notifications.WebhookTimeout) * time.Second,
	}, log)

	pipeline := dispatch.New(
		dispatch.Config{
			Workers:   cfg.Dispatch.Workers,
			QueueSize: cfg.Dispatch.QueueSize,
		},
		calendarClient,
		notifier,
		employeeRepository,
		appointmentRepository,
		metricsOrNoop(metricsCollector),
		log,
	)
	pipeline.Start()

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		employeeRepository,
		clientRepository,
		txMgr,
		pipeline,
		log,
	)
	publicBookingUseCase := publicBookingUC.NewUseCase(
		appointmentRepository,
		businessRepository,
		serviceRepository,
		employeeRepository,
		clientRepository,
		txMgr,
		pipeline,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		employeeRepository,
		txMgr,
		pipeline,
		log,
	)
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		appointmentRepository,
		getAvailableTimesUC.SlotsConfig{
			OpenTime:           types.TimeString(cfg.Business.OpenTime),
			CloseTime:          types.TimeString(cfg.Business.CloseTime),
			GranularityMinutes: cfg.Business.GranularityMinutes,
		},
		log,
	)
	employeeAvailabilityUseCase := employeeAvailabilityUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		employeeRepository,
		log,
	)

	appointmentsSvc := appointmentsService.NewService(appointmentRepository, pipeline, log)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	publicCreateAppointment := publicCreateAppointmentHandler.NewHandler(publicBookingUseCase, log)
	publicBusinessInfo := publicBusinessInfoHandler.NewHandler(businessRepository, serviceRepository, employeeRepository, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, businessRepository, log)
	employeeAvailability := employeeAvailabilityHandler.NewHandler(employeeAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	calendarAppointments := calendarAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes, addressed by business slug
	api.HandleFunc("/public/{slug}", publicBusinessInfo.Handle).Methods(http.MethodGet)
	api.HandleFunc("/public/{slug}/available-times", getAvailableTimes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/public/{slug}/appointments", publicCreateAppointment.Handle).Methods(http.MethodPost)

	// Protected routes, scoped by the identity headers
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// The calendar route registers before the {id} route so mux never
	// parses "calendar" as an id
	protected.HandleFunc("/appointments/calendar", calendarAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/employees/availability", employeeAvailability.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

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

	// Drain the pipeline after the server stops accepting work
	pipeline.Stop()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}

// metricsOrNoop returns real collectors when metrics are enabled and a
// no-op sink otherwise, so the pipeline never nil-checks
func metricsOrNoop(m *metrics.Metrics) dispatch.Metrics {
	if m != nil {
		return m
	}
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) IncDispatchTask(string)           {}
func (noopMetrics) IncDispatchBranch(string, string) {}
func (noopMetrics) IncDispatchDropped()              {}
func (noopMetrics) SetDispatchQueueDepth(int)        {}
