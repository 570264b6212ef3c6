// Package advancer implements the donation schedule processing pass: one
// sweep over all active schedules that emits due reminders and rolls due
// schedules forward one cadence step each.
package advancer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dogoods/donation-scheduler/internal/metrics"
	"github.com/dogoods/donation-scheduler/internal/models"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Store is the collaborator surface the processor needs: a filtered read over
// active schedules and the two write effects. repo.Store implements it; tests
// substitute an in-memory fake.
type Store interface {
	ListActiveSchedules(ctx context.Context) ([]models.Schedule, error)
	CreateNotification(ctx context.Context, n models.Notification) error
	AdvanceSchedule(ctx context.Context, adv models.ScheduleAdvance) error
}

// ItemError records a single schedule's processing failure. Item failures
// never abort the run.
type ItemError struct {
	ScheduleID uuid.UUID `json:"scheduleId"`
	Message    string    `json:"message"`
}

// Summary is the aggregate result of one processing run.
type Summary struct {
	SchedulesScanned  int         `json:"schedulesScanned"`
	RemindersCreated  int         `json:"remindersCreated"`
	SchedulesAdvanced int         `json:"schedulesAdvanced"`
	Errors            []ItemError `json:"errors"`
}

// Advancer runs the processing pass. Safe for concurrent Runs, though
// overlapping runs over the same day are not guarded against.
type Advancer struct {
	store   Store
	workers int
	limiter *rate.Limiter
	now     func() time.Time
}

// Option configures an Advancer.
type Option func(*Advancer)

// WithWorkers bounds how many schedules are processed concurrently.
func WithWorkers(n int) Option {
	return func(a *Advancer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithWriteRate paces store writes across all workers to perSec per second.
// Zero or negative disables pacing.
func WithWriteRate(perSec int) Option {
	return func(a *Advancer) {
		if perSec > 0 {
			a.limiter = rate.NewLimiter(rate.Limit(perSec), perSec)
		} else {
			a.limiter = nil
		}
	}
}

// WithNow injects the clock. The calendar date of now() is "today" for the
// whole run.
func WithNow(now func() time.Time) Option {
	return func(a *Advancer) {
		if now != nil {
			a.now = now
		}
	}
}

// New returns an Advancer over the given store. Defaults: 4 workers, 50
// writes/sec, wall clock.
func New(store Store, opts ...Option) *Advancer {
	a := &Advancer{
		store:   store,
		workers: 4,
		limiter: rate.NewLimiter(50, 50),
		now:     time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run executes one processing pass. A failure to list schedules is fatal and
// returned as the error; per-schedule failures are collected in the summary.
// When ctx expires mid-run, schedules not yet reached are reported as errors
// and the partial summary is returned.
func (a *Advancer) Run(ctx context.Context) (Summary, error) {
	start := a.now()

	schedules, err := a.store.ListActiveSchedules(ctx)
	if err != nil {
		metrics.RecordRun("failed", time.Since(start).Seconds(), 0, 0, 0, 0)
		return Summary{}, fmt.Errorf("list active schedules: %w", err)
	}

	today := dateOnly(a.now())
	sum := Summary{SchedulesScanned: len(schedules), Errors: []ItemError{}}

	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan models.Schedule)

	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				reminded, advanced, err := a.processOne(ctx, today, s)
				mu.Lock()
				if reminded {
					sum.RemindersCreated++
				}
				if advanced {
					sum.SchedulesAdvanced++
				}
				if err != nil {
					sum.Errors = append(sum.Errors, ItemError{ScheduleID: s.ID, Message: err.Error()})
					slog.Warn("schedule processing failed",
						"schedule_id", s.ID,
						"error", err.Error())
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for i, s := range schedules {
		select {
		case jobs <- s:
		case <-ctx.Done():
			mu.Lock()
			for _, rest := range schedules[i:] {
				sum.Errors = append(sum.Errors, ItemError{ScheduleID: rest.ID, Message: "run deadline exceeded"})
			}
			mu.Unlock()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	metrics.RecordRun("success", time.Since(start).Seconds(),
		sum.SchedulesScanned, sum.RemindersCreated, sum.SchedulesAdvanced, len(sum.Errors))
	slog.Info("processing run complete",
		"scanned", sum.SchedulesScanned,
		"reminders", sum.RemindersCreated,
		"advanced", sum.SchedulesAdvanced,
		"errors", len(sum.Errors))
	return sum, nil
}

// processOne applies the reminder check and the due check to a single
// schedule. The checks are sequential and independent, so a schedule due
// today with reminder_days_before = 0 fires both in the same run.
func (a *Advancer) processOne(ctx context.Context, today time.Time, s models.Schedule) (reminded, advanced bool, err error) {
	days := daysUntil(today, s.NextDonationDate)

	// Strict equality: a missed run on the exact reminder day skips that
	// reminder rather than firing late.
	if s.ReminderEnabled && days == s.ReminderDaysBefore {
		if err := a.waitWrite(ctx); err != nil {
			return false, false, err
		}
		n := models.Notification{
			UserID:  s.UserID,
			Type:    models.NotificationTypeDonationReminder,
			Title:   "Donation Reminder",
			Message: reminderMessage(s),
		}
		if err := a.store.CreateNotification(ctx, n); err != nil {
			return false, false, fmt.Errorf("create reminder: %w", err)
		}
		reminded = true
	}

	if days <= 0 {
		// Exactly one cadence step per run, however far overdue the
		// schedule is. A 40-day-dormant weekly schedule moves one week.
		next, err := NextOccurrence(s.NextDonationDate, s.Frequency)
		if err != nil {
			return reminded, false, err
		}
		if err := a.waitWrite(ctx); err != nil {
			return reminded, false, err
		}
		adv := models.ScheduleAdvance{
			ScheduleID:  s.ID,
			UserID:      s.UserID,
			Amount:      s.Amount,
			NewNextDate: next,
			ProcessedAt: a.now(),
		}
		if err := a.store.AdvanceSchedule(ctx, adv); err != nil {
			return reminded, false, fmt.Errorf("advance schedule: %w", err)
		}
		advanced = true
	}

	return reminded, advanced, nil
}

func (a *Advancer) waitWrite(ctx context.Context) error {
	if a.limiter == nil {
		return nil
	}
	return a.limiter.Wait(ctx)
}

func reminderMessage(s models.Schedule) string {
	return fmt.Sprintf("Your %s donation of $%s is due on %s.",
		s.Frequency,
		s.Amount.StringFixed(2),
		s.NextDonationDate.Format("January 2, 2006"))
}
