package repo

import (
	"context"
	"database/sql"

	"github.com/dogoods/donation-scheduler/internal/models"
	"github.com/google/uuid"
)

// NotificationRepo inserts in-app notifications. The processor never reads
// them back; that side belongs to the user-facing app.
type NotificationRepo struct {
	DB *sql.DB
}

// NewNotificationRepo returns a new NotificationRepo.
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{DB: db}
}

// Create inserts one notification. A zero ID is filled in.
func (r *NotificationRepo) Create(ctx context.Context, n models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, read)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Read,
	)
	return err
}
