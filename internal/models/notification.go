package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationTypeDonationReminder marks reminders emitted by the schedule processor.
const NotificationTypeDonationReminder = "donation_reminder"

// Notification is an in-app notification row. The processor only ever inserts
// unread reminders; reading and dismissal belong to the user-facing app.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
