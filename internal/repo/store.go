package repo

import (
	"context"
	"database/sql"

	"github.com/dogoods/donation-scheduler/internal/models"
)

// Store bundles the three repositories behind the collaborator surface the
// schedule processor needs: one filtered read, two kinds of writes.
type Store struct {
	Schedules     *ScheduleRepo
	Notifications *NotificationRepo
	Donations     *DonationRepo
}

// NewStore returns a Store over the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{
		Schedules:     NewScheduleRepo(db),
		Notifications: NewNotificationRepo(db),
		Donations:     NewDonationRepo(db),
	}
}

// ListActiveSchedules returns all schedules the processor must consider.
func (s *Store) ListActiveSchedules(ctx context.Context) ([]models.Schedule, error) {
	return s.Schedules.ListActive(ctx)
}

// CreateNotification inserts one reminder notification.
func (s *Store) CreateNotification(ctx context.Context, n models.Notification) error {
	return s.Notifications.Create(ctx, n)
}

// AdvanceSchedule applies one cadence step transactionally.
func (s *Store) AdvanceSchedule(ctx context.Context, adv models.ScheduleAdvance) error {
	return s.Schedules.Advance(ctx, adv)
}
