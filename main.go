// File: vetassist/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vetassist/config"
	"vetassist/cron"
	"vetassist/database"
	appointmentRepo "vetassist/database/repository/appointment"
	sessionRepo "vetassist/database/repository/session"
	"vetassist/handlers"
	"vetassist/routes"
	appointmentSvc "vetassist/services/appointment"
	"vetassist/services/booking"
	"vetassist/services/chat"
	ai "vetassist/services/intelligence"
	"vetassist/services/metrics"
	"vetassist/services/tasks"
	"vetassist/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := utils.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("main: mongo unavailable", zap.Error(err))
	}
	defer func() { _ = database.Disconnect(mongoClient) }()
	db := mongoClient.Database(cfg.DatabaseName)

	cacheClient, err := utils.NewCacheClient(ctx, cfg)
	if err != nil {
		logger.Fatal("main: redis unavailable", zap.Error(err))
	}
	defer cacheClient.Close()

	// repositories.
	sessions := sessionRepo.NewMongoSessionRepo(db)
	appointments := appointmentRepo.NewMongoAppointmentRepo(db)
	for _, ix := range []interface{ EnsureIndexes(context.Context) error }{sessions, appointments} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			logger.Warn("main: index creation failed", zap.Error(err))
		}
	}

	// booking dialogue.
	machine := booking.NewMachine(sessions, appointments, booking.NewDateTimeParser(cfg.Location()), logger.Named("booking"))
	machine.IdleTimeout = cfg.BookingIdleTimeout

	var reminderWorker *asynq.Server
	if cfg.RemindersEnabled {
		queue := asynq.NewClient(cron.QueueRedisOpt(cfg))
		defer queue.Close()
		machine.Reminders = tasks.NewReminderScheduler(queue, cfg.ReminderLead, logger.Named("reminders"))
		reminderWorker = cron.InitReminderWorker(cfg, appointments, logger.Named("reminder-worker"))
	}

	// generative model.
	var generator ai.Generator = ai.UnavailableGenerator{}
	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger.Named("gemini"))
	if err != nil {
		logger.Warn("main: Gemini disabled, general questions will fail", zap.Error(err))
	} else {
		defer gemini.Close()
		generator = gemini
	}

	// services.
	registry := prometheus.NewRegistry()
	chatMetrics := metrics.NewChatMetrics(registry)

	chatService := chat.NewService(
		sessions,
		appointments,
		machine,
		generator,
		chat.NewRedisSessionLock(cacheClient, cfg.SessionLockTTL),
		chatMetrics,
		logger.Named("chat"),
	)
	chatService.Location = cfg.Location()
	appointmentService := appointmentSvc.NewService(appointments, logger.Named("appointments"))

	health := utils.NewHealthMonitor(cacheClient, mongoClient, 30*time.Second)
	health.Start(ctx)

	handlerBundle := handlers.NewHandlerBundle(
		&handlers.ChatHandler{Service: chatService, Logger: logger},
		&handlers.AppointmentHandler{Service: appointmentService, Logger: logger},
		health,
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle, cfg, logger)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}

	logger.Info("main: server stopped gracefully")
}
