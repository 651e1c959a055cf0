package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/internal/repository"
	"github.com/JinuOffl/accountability-partner/internal/service"
	"github.com/JinuOffl/accountability-partner/pkg/entity"
)

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("partner"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	err = goose.Up(conn, "../../migrations")
	if err != nil {
		t.Fatal(err)
	}

	conn.Close()
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	return &testPGConfig{
		connStr: connStr,
	}
}

func TestTrackingServiceIntegrational(t *testing.T) {
	dbCfg := setupTestDB(t)
	usersRepo := repository.NewUsersRepo(dbCfg)
	habitsRepo := repository.NewHabitsRepo(dbCfg)
	trackingRepo := repository.NewTrackingRepo(dbCfg)
	us := service.NewUserService(usersRepo)
	hs := service.NewHabitsService(habitsRepo)
	ts := service.NewTrackingService(habitsRepo, trackingRepo)
	ps := service.NewProfileService(usersRepo, habitsRepo, trackingRepo)
	ctx := context.Background()

	user, err := us.Register(ctx, &service.RegisterRequest{
		Email:    "partner@example.com",
		Password: "test_password",
	})
	require.NoError(t, err)
	smoking, err := hs.CreateHabit(ctx, user.ID, &service.CreateHabitRequest{
		Name:          "Smoking",
		Kind:          "bad",
		PenaltyAmount: 50,
	})
	require.NoError(t, err)
	reading, err := hs.CreateHabit(ctx, user.ID, &service.CreateHabitRequest{
		Name:          "Reading",
		Kind:          "good",
		PenaltyAmount: 10,
	})
	require.NoError(t, err)

	today := time.Now()
	t.Run("first toggle creates completed entry", func(t *testing.T) {
		completed, err := ts.Toggle(ctx, user.ID, smoking.ID, today)
		assert.NoError(t, err)
		assert.True(t, completed)
	})
	t.Run("penalty total reflects today's lapse", func(t *testing.T) {
		profile, err := ps.GetProfile(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, 50, profile.PenaltyTotal)
		assert.Len(t, profile.Habits, 2)
	})
	t.Run("good habit completion doesn't raise penalty", func(t *testing.T) {
		completed, err := ts.Toggle(ctx, user.ID, reading.ID, today)
		assert.NoError(t, err)
		assert.True(t, completed)
		profile, err := ps.GetProfile(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, 50, profile.PenaltyTotal)
	})
	t.Run("second toggle flips back", func(t *testing.T) {
		completed, err := ts.Toggle(ctx, user.ID, smoking.ID, today)
		assert.NoError(t, err)
		assert.False(t, completed)
		profile, err := ps.GetProfile(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, profile.PenaltyTotal)
	})
	t.Run("future date rejected", func(t *testing.T) {
		_, err := ts.Toggle(ctx, user.ID, smoking.ID, today.AddDate(0, 0, 2))
		assert.ErrorIs(t, err, errorvalues.ErrFutureDate)
	})
	t.Run("wrong owner can't toggle", func(t *testing.T) {
		_, err := ts.Toggle(ctx, uuid.New(), smoking.ID, today)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("week strip covers sparse log", func(t *testing.T) {
		_, err := ts.Toggle(ctx, user.ID, smoking.ID, today.AddDate(0, 0, -2))
		require.NoError(t, err)
		days, err := ts.GetWeek(ctx, user.ID, smoking.ID, today)
		assert.NoError(t, err)
		assert.Len(t, days, 7)
		assert.Equal(t, today.Format(entity.DateFormat), days[6].Date)
		assert.True(t, days[4].Completed)
		assert.False(t, days[6].Completed)
	})
	t.Run("full tracking log keyed by habit and date", func(t *testing.T) {
		log, err := ts.GetAll(ctx, user.ID)
		assert.NoError(t, err)
		assert.True(t, log[entity.TrackingKey(smoking.ID, today.AddDate(0, 0, -2))])
		assert.False(t, log[entity.TrackingKey(smoking.ID, today)])
	})
	t.Run("heatmap counts per kind", func(t *testing.T) {
		counts, err := ts.GetHeatmap(ctx, user.ID, entity.KindBad, today)
		assert.NoError(t, err)
		assert.Len(t, counts, 365)
		assert.Equal(t, 1, counts[today.AddDate(0, 0, -2).Format(entity.DateFormat)])
		assert.Equal(t, 0, counts[today.Format(entity.DateFormat)])
		goodCounts, err := ts.GetHeatmap(ctx, user.ID, entity.KindGood, today)
		assert.NoError(t, err)
		assert.Equal(t, 1, goodCounts[today.Format(entity.DateFormat)])
	})
	t.Run("habit deletion drops its tracking rows", func(t *testing.T) {
		err := hs.DeleteHabit(ctx, smoking.ID, user.ID)
		assert.NoError(t, err)
		log, err := ts.GetAll(ctx, user.ID)
		assert.NoError(t, err)
		for key := range log {
			assert.NotContains(t, key, smoking.ID.String())
		}
	})
	t.Run("upi update lands on profile", func(t *testing.T) {
		err := ps.UpdateUPI(ctx, user.ID, "partner@upi")
		assert.NoError(t, err)
		profile, err := ps.GetProfile(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, "partner@upi", profile.UPIID)
	})
	t.Run("invalid upi rejected", func(t *testing.T) {
		err := ps.UpdateUPI(ctx, user.ID, "  ")
		assert.ErrorIs(t, err, errorvalues.ErrInvalidUPI)
	})
	t.Run("friend view matches owner view", func(t *testing.T) {
		profile, err := ps.GetFriendProfile(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, profile.ID)
		assert.Equal(t, "partner@upi", profile.UPIID)
	})
	t.Run("unexist friend", func(t *testing.T) {
		_, err := ps.GetFriendProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}
