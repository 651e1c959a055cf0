package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/internal/service"
	"github.com/JinuOffl/accountability-partner/pkg/entity"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type habitsRepoFake struct {
	habits map[uuid.UUID]*entity.Habit
}

func newHabitsRepoFake() *habitsRepoFake {
	return &habitsRepoFake{habits: map[uuid.UUID]*entity.Habit{}}
}

func (f *habitsRepoFake) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	id := uuid.New()
	stored := *habit
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.habits[id] = &stored
	return id, nil
}

func (f *habitsRepoFake) GetByID(ctx context.Context, id uuid.UUID) (*entity.Habit, error) {
	h, ok := f.habits[id]
	if !ok {
		return nil, errorvalues.ErrHabitNotFound
	}
	copied := *h
	return &copied, nil
}

func (f *habitsRepoFake) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	result := make([]*entity.Habit, 0)
	for _, h := range f.habits {
		if h.UserID == uid {
			copied := *h
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *habitsRepoFake) Update(ctx context.Context, habit *entity.Habit) error {
	if _, ok := f.habits[habit.ID]; !ok {
		return errorvalues.ErrHabitNotFound
	}
	copied := *habit
	f.habits[habit.ID] = &copied
	return nil
}

func (f *habitsRepoFake) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.habits[id]; !ok {
		return errorvalues.ErrHabitNotFound
	}
	delete(f.habits, id)
	return nil
}

func TestCreateHabitValidation(t *testing.T) {
	repo := newHabitsRepoFake()
	hs := service.NewHabitsService(repo)
	ctx := context.Background()
	uid := uuid.New()

	t.Run("empty name rejected, nothing stored", func(t *testing.T) {
		_, err := hs.CreateHabit(ctx, uid, &service.CreateHabitRequest{
			Name:          "",
			Kind:          "bad",
			PenaltyAmount: 50,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
		assert.Empty(t, repo.habits)
	})
	t.Run("penalty below minimum rejected", func(t *testing.T) {
		_, err := hs.CreateHabit(ctx, uid, &service.CreateHabitRequest{
			Name:          "Smoking",
			Kind:          "bad",
			PenaltyAmount: 5,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
		assert.Empty(t, repo.habits)
	})
	t.Run("penalty not a multiple of 10 rejected", func(t *testing.T) {
		_, err := hs.CreateHabit(ctx, uid, &service.CreateHabitRequest{
			Name:          "Smoking",
			Kind:          "bad",
			PenaltyAmount: 15,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("unknown kind rejected", func(t *testing.T) {
		_, err := hs.CreateHabit(ctx, uid, &service.CreateHabitRequest{
			Name:          "Smoking",
			Kind:          "ugly",
			PenaltyAmount: 50,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("grace period above a week rejected", func(t *testing.T) {
		_, err := hs.CreateHabit(ctx, uid, &service.CreateHabitRequest{
			Name:            "Reading",
			Kind:            "good",
			PenaltyAmount:   10,
			GracePeriodDays: 8,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("valid habit created", func(t *testing.T) {
		habit, err := hs.CreateHabit(ctx, uid, &service.CreateHabitRequest{
			Name:            "Reading",
			Kind:            "good",
			PenaltyAmount:   10,
			GracePeriodDays: 3,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Reading", habit.Name)
		assert.Equal(t, entity.KindGood, habit.Kind)
		assert.Equal(t, uid, habit.UserID)
		assert.Len(t, repo.habits, 1)
	})
}

func TestUpdateHabit(t *testing.T) {
	repo := newHabitsRepoFake()
	hs := service.NewHabitsService(repo)
	ctx := context.Background()
	uid := uuid.New()
	habit, err := hs.CreateHabit(ctx, uid, &service.CreateHabitRequest{
		Name:          "Smoking",
		Kind:          "bad",
		PenaltyAmount: 50,
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("merges provided fields only", func(t *testing.T) {
		newName := "Vaping"
		updated, err := hs.UpdateHabit(ctx, habit.ID, uid, &service.UpdateHabitRequest{
			Name: &newName,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Vaping", updated.Name)
		assert.Equal(t, 50, updated.PenaltyAmount)
		assert.Equal(t, entity.KindBad, updated.Kind)
	})
	t.Run("edits bypass create-time validation", func(t *testing.T) {
		badPenalty := 5
		updated, err := hs.UpdateHabit(ctx, habit.ID, uid, &service.UpdateHabitRequest{
			PenaltyAmount: &badPenalty,
		})
		assert.NoError(t, err)
		assert.Equal(t, 5, updated.PenaltyAmount)
	})
	t.Run("wrong owner can't edit", func(t *testing.T) {
		name := "Hijacked"
		_, err := hs.UpdateHabit(ctx, habit.ID, uuid.New(), &service.UpdateHabitRequest{
			Name: &name,
		})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("unexist habit", func(t *testing.T) {
		name := "Ghost"
		_, err := hs.UpdateHabit(ctx, uuid.New(), uid, &service.UpdateHabitRequest{
			Name: &name,
		})
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}

func TestDeleteHabit(t *testing.T) {
	repo := newHabitsRepoFake()
	hs := service.NewHabitsService(repo)
	ctx := context.Background()
	uid := uuid.New()
	habit, err := hs.CreateHabit(ctx, uid, &service.CreateHabitRequest{
		Name:          "Smoking",
		Kind:          "bad",
		PenaltyAmount: 50,
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("wrong owner can't delete", func(t *testing.T) {
		err := hs.DeleteHabit(ctx, habit.ID, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
		assert.Len(t, repo.habits, 1)
	})
	t.Run("deleted", func(t *testing.T) {
		err := hs.DeleteHabit(ctx, habit.ID, uid)
		assert.NoError(t, err)
		assert.Empty(t, repo.habits)
	})
	t.Run("unexist habit", func(t *testing.T) {
		err := hs.DeleteHabit(ctx, habit.ID, uid)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
}
