package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateFormat is the day-precision format used for tracking dates across
// the API, the tracking log keys and the database layer.
const DateFormat = "2006-01-02"

type HabitKind string

const (
	KindBad  HabitKind = "bad"
	KindGood HabitKind = "good"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	UPIID        string
	PasswordHash string
}

type Habit struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"uid"`
	Name            string    `json:"name"`
	Kind            HabitKind `json:"kind"`
	PenaltyAmount   int       `json:"penalty_amount"`
	GracePeriodDays int       `json:"grace_period_days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type TrackingEntry struct {
	ID        int
	UserID    uuid.UUID
	HabitID   uuid.UUID
	Date      time.Time
	Completed bool
	CreatedAt time.Time
}

// TrackingLog is the in-memory form of a user's completion history,
// keyed "habitID_date". A missing key means not completed.
type TrackingLog map[string]bool

// TrackingKey builds the log key for a habit and a day.
func TrackingKey(habitID uuid.UUID, date time.Time) string {
	return habitID.String() + "_" + date.Format(DateFormat)
}

// DayStatus is one element of the 7-day completion strip.
type DayStatus struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Profile is the denormalized view returned for the signed-in user and
// for read-only friend lookups. PenaltyTotal is derived from today's
// tracking entries on every read, never read from storage.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	UPIID        string    `json:"upi_id"`
	Habits       []*Habit  `json:"habits"`
	PenaltyTotal int       `json:"penalty_total"`
}
