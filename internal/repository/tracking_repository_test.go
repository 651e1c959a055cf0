package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/internal/repository"
	"github.com/JinuOffl/accountability-partner/pkg/entity"
)

func TestToggle(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTrackingRepoWithConn(conn)
	uid := uuid.New()
	habitID := uuid.New()
	date := time.Now()
	query := `INSERT INTO tracking`
	t.Run("first toggle completes", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, habitID, date).
			WillReturnRows(pgxmock.NewRows([]string{"completed"}).AddRow(true))
		completed, err := repo.Toggle(ctx, uid, habitID, date)
		assert.NoError(t, err)
		assert.True(t, completed)
	})
	t.Run("second toggle flips back", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, habitID, date).
			WillReturnRows(pgxmock.NewRows([]string{"completed"}).AddRow(false))
		completed, err := repo.Toggle(ctx, uid, habitID, date)
		assert.NoError(t, err)
		assert.False(t, completed)
	})
	t.Run("unexist habit", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, habitID, date).
			WillReturnError(&pgconn.PgError{
				Code: "23503",
			})
		_, err := repo.Toggle(ctx, uid, habitID, date)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, habitID, date).
			WillReturnError(errors.New("db error"))
		_, err := repo.Toggle(ctx, uid, habitID, date)
		assert.Error(t, err)
	})
}

func TestGetAllTracking(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTrackingRepoWithConn(conn)
	uid := uuid.New()
	habitID := uuid.New()
	day1, _ := time.Parse(entity.DateFormat, "2025-06-09")
	day2, _ := time.Parse(entity.DateFormat, "2025-06-10")
	query := `SELECT habit_id, date, completed FROM tracking WHERE user_id`
	t.Run("builds keyed log", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"habit_id", "date", "completed"}).
				AddRow(habitID, day1, true).
				AddRow(habitID, day2, false))
		log, err := repo.GetAll(ctx, uid)
		assert.NoError(t, err)
		assert.Len(t, log, 2)
		assert.True(t, log[habitID.String()+"_2025-06-09"])
		assert.False(t, log[habitID.String()+"_2025-06-10"])
	})
	t.Run("empty log", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnRows(pgxmock.NewRows([]string{"habit_id", "date", "completed"}))
		log, err := repo.GetAll(ctx, uid)
		assert.NoError(t, err)
		assert.Empty(t, log)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetAll(ctx, uid)
		assert.Error(t, err)
	})
}

func TestGetTrackingRange(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTrackingRepoWithConn(conn)
	uid := uuid.New()
	habitID := uuid.New()
	from, _ := time.Parse(entity.DateFormat, "2025-06-04")
	to, _ := time.Parse(entity.DateFormat, "2025-06-10")
	query := `SELECT date, completed FROM tracking WHERE user_id`
	t.Run("keyed by date", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, habitID, from, to).
			WillReturnRows(pgxmock.NewRows([]string{"date", "completed"}).
				AddRow(from, true).
				AddRow(to, false))
		flags, err := repo.GetRange(ctx, uid, habitID, from, to)
		assert.NoError(t, err)
		assert.True(t, flags["2025-06-04"])
		assert.False(t, flags["2025-06-10"])
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, habitID, from, to).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetRange(ctx, uid, habitID, from, to)
		assert.Error(t, err)
	})
}

func TestGetTrackingByDate(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewTrackingRepoWithConn(conn)
	uid := uuid.New()
	habitA := uuid.New()
	habitB := uuid.New()
	date, _ := time.Parse(entity.DateFormat, "2025-06-10")
	query := `SELECT habit_id, completed FROM tracking WHERE user_id`
	t.Run("keyed by habit", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, date).
			WillReturnRows(pgxmock.NewRows([]string{"habit_id", "completed"}).
				AddRow(habitA, true).
				AddRow(habitB, false))
		flags, err := repo.GetByDate(ctx, uid, date)
		assert.NoError(t, err)
		assert.True(t, flags[habitA])
		assert.False(t, flags[habitB])
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectQuery(query).
			WithArgs(uid, date).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetByDate(ctx, uid, date)
		assert.Error(t, err)
	})
}
