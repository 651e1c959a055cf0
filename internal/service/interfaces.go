package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JinuOffl/accountability-partner/pkg/entity"
	"github.com/JinuOffl/accountability-partner/pkg/upi"
)

type RegisterRequest struct {
	Email    string `validate:"required,email,max=254"`
	Name     string `validate:"max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateHabitRequest struct {
	Name            string `validate:"required,max=100"`
	Kind            string `validate:"required,oneof=bad good"`
	PenaltyAmount   int    `validate:"required,min=10,penalty_step"`
	GracePeriodDays int    `validate:"min=0,max=7"`
}

// UpdateHabitRequest merges provided fields over the stored habit. Nil
// means keep the current value. Edits are not re-validated.
type UpdateHabitRequest struct {
	Name            *string
	Kind            *string
	PenaltyAmount   *int
	GracePeriodDays *int
}

type UserServiceI interface {
	// Validates credentials, creates new user row. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type ProfileServiceI interface {
	// Habits plus penalty total recomputed from today's completions
	GetProfile(ctx context.Context, uid uuid.UUID) (*entity.Profile, error)
	// Same shape for a peer, read-only
	GetFriendProfile(ctx context.Context, friendID uuid.UUID) (*entity.Profile, error)
	UpdateUPI(ctx context.Context, uid uuid.UUID, upiID string) error
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	UpdateHabit(ctx context.Context, habitID, uid uuid.UUID, req *UpdateHabitRequest) (*entity.Habit, error)
	DeleteHabit(ctx context.Context, habitID, uid uuid.UUID) error
	GetUserHabits(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	GetHabit(ctx context.Context, habitID, uid uuid.UUID) (*entity.Habit, error)
}

type TrackingServiceI interface {
	// Flips completion for a day, returns the new state
	Toggle(ctx context.Context, uid, habitID uuid.UUID, date time.Time) (bool, error)
	GetAll(ctx context.Context, uid uuid.UUID) (entity.TrackingLog, error)
	GetRange(ctx context.Context, uid, habitID uuid.UUID, from, to time.Time) (map[string]bool, error)
	// 7-day strip ending today
	GetWeek(ctx context.Context, uid, habitID uuid.UUID, today time.Time) ([]entity.DayStatus, error)
	// 365-day per-kind completion counts ending today
	GetHeatmap(ctx context.Context, uid uuid.UUID, kind entity.HabitKind, today time.Time) (map[string]int, error)
}

type PaymentServiceI interface {
	// Builds the deep link and fetches its QR image. The image is nil
	// when the rendering service fails, the uri is still usable as a
	// textual fallback
	GenerateQR(ctx context.Context, req upi.Request) (png []byte, uri string, err error)
}
