package repo

import (
	"context"
	"database/sql"

	"github.com/dogoods/donation-scheduler/internal/models"
	"github.com/google/uuid"
)

// DonationRepo reads the append-only donation ledger.
type DonationRepo struct {
	DB *sql.DB
}

// NewDonationRepo returns a new DonationRepo.
func NewDonationRepo(db *sql.DB) *DonationRepo {
	return &DonationRepo{DB: db}
}

// execer is satisfied by *sql.DB and *sql.Tx so the ledger insert can run
// inside the schedule-advance transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertDonation(ctx context.Context, e execer, d models.Donation) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO donation_history (id, schedule_id, user_id, amount, status, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.ScheduleID, d.UserID, d.Amount, d.Status, d.ProcessedAt,
	)
	return err
}

// Count returns the total number of ledger entries.
func (r *DonationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM donation_history`).Scan(&n)
	return n, err
}

// ListRecent returns ledger entries, most recent first. limit/offset for pagination.
func (r *DonationRepo) ListRecent(ctx context.Context, limit, offset int) ([]models.Donation, error) {
	query := `
		SELECT id, schedule_id, user_id, amount, status, processed_at, created_at
		FROM donation_history
		ORDER BY processed_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.ScheduleID, &d.UserID, &d.Amount, &d.Status, &d.ProcessedAt, &d.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListBySchedule returns a single schedule's ledger entries, most recent first.
func (r *DonationRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, limit, offset int) ([]models.Donation, error) {
	query := `
		SELECT id, schedule_id, user_id, amount, status, processed_at, created_at
		FROM donation_history
		WHERE schedule_id = $1
		ORDER BY processed_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, scheduleID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.ScheduleID, &d.UserID, &d.Amount, &d.Status, &d.ProcessedAt, &d.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
