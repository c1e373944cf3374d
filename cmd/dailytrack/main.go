package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dailytrack/internal/model"
	"dailytrack/internal/reminder"
	"dailytrack/internal/rollover"
	"dailytrack/internal/scheduler"
	"dailytrack/internal/storage"
	"dailytrack/internal/tracker"
	"dailytrack/internal/update"
	"dailytrack/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dailytrack failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	log, err := logger.New(logger.Config{
		Level: os.Getenv("DAILYTRACK_LOG_LEVEL"),
		File:  cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = repo.Close() }()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	svc := tracker.New(repo, tracker.NoopReminderSink{})

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	var notifier reminder.Notifier = reminder.NoopNotifier{}
	if cfg.DesktopNotifications {
		notifier = reminder.ExecNotifier{}
	}
	mgr := reminder.NewManager(engine, svc, notifier, repo, log, reminder.Config{
		LeadWindow:  time.Duration(cfg.LeadMinutes) * time.Minute,
		RepeatEvery: time.Duration(cfg.RepeatMinutes) * time.Minute,
	})
	svc.SetReminderSink(mgr)
	mgr.Start()
	defer mgr.Stop()

	roll := rollover.NewRunner(svc, repo, log)
	ctx := context.Background()
	if _, err := roll.Run(ctx); err != nil {
		log.Warn("startup rollover failed", zap.Error(err))
	}

	if tasks, err := svc.TasksOn(ctx, model.DateString(time.Now())); err == nil {
		open := make([]model.Task, 0, len(tasks))
		for _, task := range tasks {
			if !task.Completed {
				open = append(open, task)
			}
		}
		mgr.ScheduleAll(open)
	}

	ticker := rollover.NewTicker(time.Local)
	if _, err := ticker.Every(time.Duration(cfg.RolloverPollSeconds)*time.Second, func() {
		if _, err := roll.Run(context.Background()); err != nil {
			log.Warn("rollover failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("register rollover job: %w", err)
	}
	ticker.Start()
	defer ticker.Stop()

	log.Info("dailytrack starting",
		zap.String("db", cfg.DBPath),
		zap.Int("lead_minutes", cfg.LeadMinutes),
		zap.Int("repeat_minutes", cfg.RepeatMinutes),
	)

	program := tea.NewProgram(update.NewModel(svc, mgr, roll))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
