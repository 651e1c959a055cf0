package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/internal/repository"
	"github.com/JinuOffl/accountability-partner/pkg/entity"
)

type TrackingService struct {
	habitsRepo   repository.HabitsRepositoryI
	trackingRepo repository.TrackingRepositoryI
}

func NewTrackingService(habitsRepo repository.HabitsRepositoryI, trackingRepo repository.TrackingRepositoryI) *TrackingService {
	if habitsRepo == nil || trackingRepo == nil {
		log.Fatal("on tracking service provided nil repos")
	}
	return &TrackingService{
		habitsRepo:   habitsRepo,
		trackingRepo: trackingRepo,
	}
}

// Toggle flips the completion flag for (habit, date) and returns the new
// state, so callers can patch their in-memory log instead of re-fetching.
func (serv *TrackingService) Toggle(ctx context.Context, uid, habitID uuid.UUID, date time.Time) (bool, error) {
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return false, err
		}
		return false, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != uid {
		return false, errorvalues.ErrWrongOwner
	}
	if date.After(time.Now()) {
		return false, errorvalues.ErrFutureDate
	}
	completed, err := serv.trackingRepo.Toggle(ctx, uid, habitID, date)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return false, err
		}
		return false, errors.New("repository error: " + err.Error())
	}
	return completed, nil
}

func (serv *TrackingService) GetAll(ctx context.Context, uid uuid.UUID) (entity.TrackingLog, error) {
	log, err := serv.trackingRepo.GetAll(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return log, nil
}

func (serv *TrackingService) GetRange(ctx context.Context, uid, habitID uuid.UUID, from, to time.Time) (map[string]bool, error) {
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	flags, err := serv.trackingRepo.GetRange(ctx, uid, habitID, from, to)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return flags, nil
}

func (serv *TrackingService) GetWeek(ctx context.Context, uid, habitID uuid.UUID, today time.Time) ([]entity.DayStatus, error) {
	habit, err := serv.habitsRepo.GetByID(ctx, habitID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if habit.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	flags, err := serv.trackingRepo.GetRange(ctx, uid, habitID, today.AddDate(0, 0, -6), today)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	log := make(entity.TrackingLog, len(flags))
	for date, completed := range flags {
		log[habitID.String()+"_"+date] = completed
	}
	return Last7Days(habitID, log, today), nil
}

func (serv *TrackingService) GetHeatmap(ctx context.Context, uid uuid.UUID, kind entity.HabitKind, today time.Time) (map[string]int, error) {
	habits, err := serv.habitsRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	log, err := serv.trackingRepo.GetAll(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return HeatmapCounts(kind, habits, log, today), nil
}
