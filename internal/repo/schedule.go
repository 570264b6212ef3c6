package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dogoods/donation-scheduler/internal/models"
	"github.com/google/uuid"
)

const scheduleColumns = `id, user_id, amount, frequency, next_donation_date,
		reminder_enabled, reminder_days_before, status, total_donated,
		donation_count, last_processed_at, created_at`

// ScheduleRepo persists donation schedules.
type ScheduleRepo struct {
	DB *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{DB: db}
}

func scanSchedule(row interface {
	Scan(dest ...interface{}) error
}) (models.Schedule, error) {
	var s models.Schedule
	var last sql.NullTime
	err := row.Scan(&s.ID, &s.UserID, &s.Amount, &s.Frequency, &s.NextDonationDate,
		&s.ReminderEnabled, &s.ReminderDaysBefore, &s.Status, &s.TotalDonated,
		&s.DonationCount, &last, &s.CreatedAt)
	if err != nil {
		return s, err
	}
	if last.Valid {
		t := last.Time
		s.LastProcessedAt = &t
	}
	return s, nil
}

// CountActive returns the number of active schedules.
func (r *ScheduleRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM donation_schedules WHERE status = $1`,
		models.ScheduleStatusActive).Scan(&n)
	return n, err
}

// ListActive returns every active schedule, soonest due first. This is the
// read the processing job runs against; schedules in any other status are
// never returned and therefore never touched.
func (r *ScheduleRepo) ListActive(ctx context.Context) ([]models.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM donation_schedules
		WHERE status = $1
		ORDER BY next_donation_date, id
	`
	rows, err := r.DB.QueryContext(ctx, query, models.ScheduleStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// List returns active schedules for the ops endpoint. limit/offset for pagination.
func (r *ScheduleRepo) List(ctx context.Context, limit, offset int) ([]models.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM donation_schedules
		WHERE status = $1
		ORDER BY next_donation_date, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, models.ScheduleStatusActive, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetByID returns one schedule by id, or nil when it does not exist.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM donation_schedules
		WHERE id = $1
	`
	s, err := scanSchedule(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Advance rolls a schedule forward one cadence step and appends the matching
// donation_history row. Both writes happen in one transaction so a schedule
// can never end up advanced without its ledger entry, or the reverse.
func (r *ScheduleRepo) Advance(ctx context.Context, adv models.ScheduleAdvance) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE donation_schedules
		SET next_donation_date = $1,
		    last_processed_at = $2,
		    total_donated = total_donated + $3,
		    donation_count = donation_count + 1
		WHERE id = $4`,
		adv.NewNextDate, adv.ProcessedAt, adv.Amount, adv.ScheduleID,
	)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("schedule %s not found", adv.ScheduleID)
	}

	if err := insertDonation(ctx, tx, models.Donation{
		ID:          uuid.New(),
		ScheduleID:  adv.ScheduleID,
		UserID:      adv.UserID,
		Amount:      adv.Amount,
		Status:      models.DonationStatusPending,
		ProcessedAt: adv.ProcessedAt,
	}); err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
