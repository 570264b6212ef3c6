package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DonationStatusPending is the status every ledger row starts in. Payment
// settlement updates it downstream.
const DonationStatusPending = "pending"

// Donation is one append-only ledger entry, written each time a schedule is
// rolled forward one cadence step.
type Donation struct {
	ID          uuid.UUID       `json:"id"`
	ScheduleID  uuid.UUID       `json:"schedule_id"`
	UserID      uuid.UUID       `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	ProcessedAt time.Time       `json:"processed_at"`
	CreatedAt   time.Time       `json:"created_at"`
}
