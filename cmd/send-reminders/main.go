// Command send-reminders emails every client with a pending or confirmed
// appointment scheduled for tomorrow. Intended to run once a day from cron.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/devsign-cl/appointment-service/internal/config"
	"github.com/devsign-cl/appointment-service/internal/domain"
	appointmentRepo "github.com/devsign-cl/appointment-service/internal/infra/storage/appointment"
	"github.com/devsign-cl/appointment-service/internal/notifications"
	"github.com/devsign-cl/appointment-service/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
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

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	appointments := appointmentRepo.NewRepository(db)
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

	ctx := context.Background()
	tomorrow := time.Now().AddDate(0, 0, 1)

	rows, err := appointments.ListByDateAndStatuses(ctx, tomorrow, []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
	})
	if err != nil {
		log.Fatal("Failed to list tomorrow's appointments: %v", err)
	}

	if len(rows) == 0 {
		log.Info("send-reminders: no appointments scheduled for %s", tomorrow.Format("2006-01-02"))
		fmt.Println("No appointments scheduled for tomorrow")
		return
	}

	var sent, skipped, failed int
	for _, appointment := range rows {
		if appointment.ClientEmail == "" {
			log.Warn("send-reminders: appointment id=%d has no client email, skipping", appointment.ID)
			skipped++
			continue
		}

		// A single broken address must not abort the batch.
		if err := notifier.SendReminder(ctx, appointment); err != nil {
			log.Error("send-reminders: appointment id=%d: %v", appointment.ID, err)
			failed++
			continue
		}
		sent++
	}

	log.Info("send-reminders: %d sent, %d skipped, %d failed for %s",
		sent, skipped, failed, tomorrow.Format("2006-01-02"))
	fmt.Printf("Done: %d sent, %d skipped, %d failed\n", sent, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
