package cron

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/polyhub/timetable-back/internal/config"
	"github.com/polyhub/timetable-back/internal/excel"
	"github.com/polyhub/timetable-back/internal/store"
)

// StartJobs schedules the background timers: the confirmation expiry sweep,
// the notification storage poll, and (when a workbook URL is configured) the
// daily timetable import. The returned cron must be stopped on shutdown so
// the timers never outlive the session.
func StartJobs(cfg *config.Config, timetable *store.TimetableStore, notifications *store.NotificationStore) *cron.Cron {
	c := cron.New()

	c.AddFunc(fmt.Sprintf("@every %s", cfg.SweepInterval), func() {
		if expired := timetable.ExpireStale(context.Background()); expired > 0 {
			log.Printf("Expired %d stale confirmations\n", expired)
		}
	})

	c.AddFunc(fmt.Sprintf("@every %s", cfg.SyncInterval), func() {
		notifications.Sync(context.Background())
	})

	if cfg.SheetURL != "" {
		c.AddFunc("@daily", func() {
			log.Println("Running timetable import job...")

			path, err := excel.Download(cfg.SheetURL)
			if err != nil {
				log.Println("❌ Failed to download workbook:", err)
				return
			}

			slots, err := excel.ParseWorkbook(path)
			if err != nil {
				log.Println("❌ Failed to parse workbook:", err)
				return
			}

			count := timetable.Replace(context.Background(), slots)
			log.Printf("✅ Imported %d slots\n", count)
		})
	}

	c.Start()
	return c
}
