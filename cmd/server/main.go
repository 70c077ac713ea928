package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/polyhub/timetable-back/internal/api"
	"github.com/polyhub/timetable-back/internal/config"
	"github.com/polyhub/timetable-back/internal/cron"
	"github.com/polyhub/timetable-back/internal/notify"
	"github.com/polyhub/timetable-back/internal/storage"
	"github.com/polyhub/timetable-back/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system env")
	}

	cfg := config.Load()

	st, err := storage.OpenPostgres(cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	notifications := store.NewNotificationStore(st, notify.LogSink{})
	timetable := store.NewTimetableStore(context.Background(), st, notifications, cfg.ConfirmTTL)

	h := &api.Handler{
		Timetable:     timetable,
		Notifications: notifications,
		Storage:       st,
	}
	r := api.SetupRouter(cfg, h)

	// Start cron jobs
	jobs := cron.StartJobs(cfg, timetable, notifications)
	defer jobs.Stop()

	log.Println("Server running on", cfg.Addr)
	r.Run(cfg.Addr)
}
