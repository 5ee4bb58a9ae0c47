package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"crm/internal/config"
	"crm/internal/jobs"
	"crm/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	client := jobs.NewClient(cfg.Jobs.APIBaseURL, cfg.Jobs.Retries)

	heartbeat := jobs.NewHeartbeatJob(
		client,
		jobs.NewLogWriter(cfg.Jobs.HeartbeatLog),
		cfg.Jobs.HeartbeatInterval,
		zapLogger,
	)
	reminders := jobs.NewOrderRemindersJob(
		client,
		jobs.NewLogWriter(cfg.Jobs.RemindersLog),
		cfg.Jobs.RemindersInterval,
		cfg.Jobs.ReminderWindow,
		zapLogger,
	)
	report := jobs.NewReportJob(
		client,
		jobs.NewLogWriter(cfg.Jobs.ReportLog),
		cfg.Jobs.ReportInterval,
		zapLogger,
	)

	scheduler := jobs.NewScheduler(zapLogger, heartbeat, reminders, report)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		zapLogger.Info("received shutdown signal")
		cancel()
	}()

	zapLogger.Info("starting job scheduler",
		zap.String("api", cfg.Jobs.APIBaseURL))
	scheduler.Start(ctx)
	zapLogger.Info("job scheduler stopped")
}
