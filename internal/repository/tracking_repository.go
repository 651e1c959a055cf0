package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/pkg/cleanup"
	"github.com/JinuOffl/accountability-partner/pkg/entity"
)

// TrackingRepository stores one row per (user, habit, day). The unique
// constraint on that triple is what makes Toggle a flip instead of an
// append.
type TrackingRepository struct {
	conn PgConnection
}

func NewTrackingRepo(cfg DBConfig) *TrackingRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for trackingRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for trackingRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing trackingRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &TrackingRepository{
		conn: pool,
	}
}

func NewTrackingRepoWithConn(conn PgConnection) *TrackingRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for trackingRepo: " + err.Error())
	}
	return &TrackingRepository{
		conn: conn,
	}
}

// Toggle creates the entry with completed=true when absent, otherwise
// flips the stored flag. Single statement, so two clients racing on the
// same day still end up with a plain flip each. Returns the new state.
func (tr *TrackingRepository) Toggle(ctx context.Context, uid, habitID uuid.UUID, date time.Time) (bool, error) {
	var completed bool
	row := tr.conn.QueryRow(
		ctx,
		`INSERT INTO tracking (user_id, habit_id, date, completed) VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (user_id, habit_id, date) DO UPDATE SET completed = NOT tracking.completed
		RETURNING completed;`,
		uid,
		habitID,
		date,
	)
	if err := row.Scan(&completed); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return false, errorvalues.ErrHabitNotFound
			}
		}
		return false, errors.New("toggling tracking entry error: " + err.Error())
	}
	return completed, nil
}

func (tr *TrackingRepository) GetAll(ctx context.Context, uid uuid.UUID) (entity.TrackingLog, error) {
	rows, err := tr.conn.Query(
		ctx,
		`SELECT habit_id, date, completed FROM tracking WHERE user_id = $1;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting tracking log error: " + err.Error())
	}
	defer rows.Close()
	log := entity.TrackingLog{}
	for rows.Next() {
		var (
			habitID   uuid.UUID
			date      time.Time
			completed bool
		)
		if err = rows.Scan(&habitID, &date, &completed); err != nil {
			return nil, errors.New("tracking row parsing error: " + err.Error())
		}
		log[entity.TrackingKey(habitID, date)] = completed
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected tracking rows error: " + rows.Err().Error())
	}
	return log, nil
}

func (tr *TrackingRepository) GetRange(ctx context.Context, uid, habitID uuid.UUID, from, to time.Time) (map[string]bool, error) {
	rows, err := tr.conn.Query(
		ctx,
		`SELECT date, completed FROM tracking WHERE user_id = $1 AND habit_id = $2 AND date >= $3 AND date <= $4;`,
		uid,
		habitID,
		from,
		to,
	)
	if err != nil {
		return nil, errors.New("getting tracking range error: " + err.Error())
	}
	defer rows.Close()
	result := map[string]bool{}
	for rows.Next() {
		var (
			date      time.Time
			completed bool
		)
		if err = rows.Scan(&date, &completed); err != nil {
			return nil, errors.New("tracking row parsing error: " + err.Error())
		}
		result[date.Format(entity.DateFormat)] = completed
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected tracking rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (tr *TrackingRepository) GetByDate(ctx context.Context, uid uuid.UUID, date time.Time) (map[uuid.UUID]bool, error) {
	rows, err := tr.conn.Query(
		ctx,
		`SELECT habit_id, completed FROM tracking WHERE user_id = $1 AND date = $2;`,
		uid,
		date,
	)
	if err != nil {
		return nil, errors.New("getting tracking by date error: " + err.Error())
	}
	defer rows.Close()
	result := map[uuid.UUID]bool{}
	for rows.Next() {
		var (
			habitID   uuid.UUID
			completed bool
		)
		if err = rows.Scan(&habitID, &completed); err != nil {
			return nil, errors.New("tracking row parsing error: " + err.Error())
		}
		result[habitID] = completed
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected tracking rows error: " + rows.Err().Error())
	}
	return result, nil
}
