package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/internal/repository"
	"github.com/JinuOffl/accountability-partner/pkg/entity"
)

// ProfileService assembles the denormalized user view: habits plus the
// penalty total recomputed from today's tracking entries. Earlier
// revisions of this application stored a running totalPenalty per user;
// this version derives it on every read.
type ProfileService struct {
	usersRepo    repository.UsersRepositoryI
	habitsRepo   repository.HabitsRepositoryI
	trackingRepo repository.TrackingRepositoryI
}

func NewProfileService(
	usersRepo repository.UsersRepositoryI,
	habitsRepo repository.HabitsRepositoryI,
	trackingRepo repository.TrackingRepositoryI,
) *ProfileService {
	if usersRepo == nil || habitsRepo == nil || trackingRepo == nil {
		log.Fatal("on profile service provided nil repos")
	}
	return &ProfileService{
		usersRepo:    usersRepo,
		habitsRepo:   habitsRepo,
		trackingRepo: trackingRepo,
	}
}

func (ps *ProfileService) GetProfile(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	return ps.assemble(ctx, uid)
}

// GetFriendProfile is the read-only peer view behind the friend share
// link. Same assembly as the owner's profile.
func (ps *ProfileService) GetFriendProfile(ctx context.Context, friendID uuid.UUID) (*entity.Profile, error) {
	return ps.assemble(ctx, friendID)
}

func (ps *ProfileService) UpdateUPI(ctx context.Context, uid uuid.UUID, upiID string) error {
	upiID = strings.TrimSpace(upiID)
	if upiID == "" || !strings.Contains(upiID, "@") {
		return errorvalues.ErrInvalidUPI
	}
	err := ps.usersRepo.UpdateUPI(ctx, uid, upiID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return err
		}
		return errors.New("repository error: " + err.Error())
	}
	return nil
}

func (ps *ProfileService) assemble(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	user, err := ps.usersRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	habits, err := ps.habitsRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	today := time.Now()
	flags, err := ps.trackingRepo.GetByDate(ctx, uid, today)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	log := make(entity.TrackingLog, len(flags))
	for habitID, completed := range flags {
		log[entity.TrackingKey(habitID, today)] = completed
	}
	return &entity.Profile{
		ID:           user.ID,
		Name:         user.Name,
		UPIID:        user.UPIID,
		Habits:       habits,
		PenaltyTotal: TodaysPenaltyTotal(habits, log, today),
	}, nil
}
