package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dogoods/donation-scheduler/internal/advancer"
	"github.com/robfig/cron/v3"
)

// Run starts a blocking cron loop that executes one processing pass at each
// tick of cronSpec. Each pass gets its own deadline; a failed pass is logged
// and the loop keeps going, so one bad day never stalls the schedule.
func Run(cronSpec string, timeout time.Duration, run func(ctx context.Context) (advancer.Summary, error)) error {
	c := cron.New()

	_, err := c.AddFunc(cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		sum, err := run(ctx)
		if err != nil {
			log.Printf("scheduler: processing run failed: %v", err)
			return
		}
		log.Printf("scheduler: run complete scanned=%d reminders=%d advanced=%d errors=%d",
			sum.SchedulesScanned, sum.RemindersCreated, sum.SchedulesAdvanced, len(sum.Errors))
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", cronSpec, err)
	}

	log.Printf("scheduler: started with spec %q", cronSpec)
	c.Start()
	select {}
}
