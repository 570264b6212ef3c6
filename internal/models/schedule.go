package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frequency is the cadence of a recurring donation.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is one of the supported cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// ScheduleStatusActive is the only status the processing job considers.
const ScheduleStatusActive = "active"

// Schedule represents a recurring donation schedule. The processing job reads
// active schedules and mutates next_donation_date, last_processed_at and the
// running aggregates; creation and deactivation happen elsewhere.
type Schedule struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	Amount             decimal.Decimal `json:"amount"`
	Frequency          Frequency       `json:"frequency"`
	NextDonationDate   time.Time       `json:"next_donation_date"`
	ReminderEnabled    bool            `json:"reminder_enabled"`
	ReminderDaysBefore int             `json:"reminder_days_before"`
	Status             string          `json:"status"`
	TotalDonated       decimal.Decimal `json:"total_donated"`
	DonationCount      int             `json:"donation_count"`
	LastProcessedAt    *time.Time      `json:"last_processed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ScheduleAdvance carries one cadence step for a schedule: the new due date
// plus the ledger fields for the donation row appended alongside the update.
type ScheduleAdvance struct {
	ScheduleID  uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	NewNextDate time.Time
	ProcessedAt time.Time
}
