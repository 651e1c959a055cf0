package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JinuOffl/accountability-partner/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates user row. No-op when a user with the same email already
	// exists; reports existence through ErrUserExists
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Replaces user's payment address
	UpdateUPI(ctx context.Context, uid uuid.UUID, upiID string) error
}

type HabitsRepositoryI interface {
	// Creates new habit. Only UserID, Name, Kind, PenaltyAmount,
	// GracePeriodDays are consulted. Returns the generated id
	Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error)
	// Searches habit with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error)
	// Lists habits owned by user with uid in creation order
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Updates habit by ID (ID in habit is necessary). Free-form merge,
	// the caller decides what the new field values are
	Update(ctx context.Context, habit *entity.Habit) error
	// Deletes habit with id. Tracking rows cascade at the DB level
	Delete(ctx context.Context, id uuid.UUID) error
}

type TrackingRepositoryI interface {
	// Flips the completion flag for (uid, habitID, date), creating the
	// entry with completed=true when none exists. Returns the NEW state
	Toggle(ctx context.Context, uid, habitID uuid.UUID, date time.Time) (bool, error)
	// Full completion log for a user, keyed "habitID_date"
	GetAll(ctx context.Context, uid uuid.UUID) (entity.TrackingLog, error)
	// Completion flags of one habit for [from, to], keyed by date
	GetRange(ctx context.Context, uid, habitID uuid.UUID, from, to time.Time) (map[string]bool, error)
	// Completion flags of all habits on a single day, keyed by habit id
	GetByDate(ctx context.Context, uid uuid.UUID, date time.Time) (map[uuid.UUID]bool, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
