// The scheduler binary runs the asynq worker that delivers delayed review
// reminders. It shares the database and redis configuration with the API
// server but serves no HTTP traffic.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leadtrack_backend/internal/email"
	"leadtrack_backend/internal/scheduler"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/db"
	"leadtrack_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	sender := initEmailSender(cfg, log)

	worker, err := scheduler.NewWorker(cfg, pool, sender, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("scheduler worker stopped")
}

func initEmailSender(cfg config.EmailConfig, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email disabled; review reminders will be dropped")
		return email.NoopSender{}
	}

	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
