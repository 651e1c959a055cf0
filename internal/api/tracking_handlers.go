package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	errorvalues "github.com/JinuOffl/accountability-partner/internal/error_values"
	"github.com/JinuOffl/accountability-partner/pkg/entity"
	"github.com/JinuOffl/accountability-partner/pkg/httputil"
)

type ToggleCompletionRequest struct {
	Date string `json:"date"`
}

type ToggleCompletionResponse struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type WeekResponse struct {
	HabitID string             `json:"habit_id"`
	Days    []entity.DayStatus `json:"days"`
}

type TrackingRangeResponse struct {
	HabitID  string          `json:"habit_id"`
	Tracking map[string]bool `json:"tracking"`
}

type AllTrackingResponse struct {
	UserID   string             `json:"uid"`
	Tracking entity.TrackingLog `json:"tracking"`
}

type HeatmapResponse struct {
	Kind   string         `json:"kind"`
	Counts map[string]int `json:"counts"`
}

func parseDay(value string) (time.Time, error) {
	return time.Parse(entity.DateFormat, value)
}

func (s *Server) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("toggle error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	habitID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("toggle error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	var req ToggleCompletionRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("toggle error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	date := time.Now()
	if req.Date != "" {
		date, err = parseDay(req.Date)
		if err != nil {
			logger.Error("toggle error: invalid date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
			return
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	completed, err := s.trackingService.Toggle(ctx, uid, habitID, date)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("toggle error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrFutureDate):
			logger.Error("toggle error: future date")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "cannot toggle a future date", nil)
		default:
			logger.Error("toggle error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while toggling completion", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ToggleCompletionResponse{
		HabitID:   habitID.String(),
		Date:      date.Format(entity.DateFormat),
		Completed: completed,
	})
	logger.Info("completion toggled", slog.Bool("completed", completed))
}

func (s *Server) GetWeek(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get week error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	habitID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get week error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	days, err := s.trackingService.GetWeek(ctx, uid, habitID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get week error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("get week error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting week", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, WeekResponse{
		HabitID: habitID.String(),
		Days:    days,
	})
	logger.Info("week provided")
}

func (s *Server) GetTrackingRange(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get tracking range error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	habitID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get tracking range error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return
	}
	from, err := parseDay(r.URL.Query().Get("from"))
	if err != nil {
		logger.Error("get tracking range error: invalid from date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := parseDay(r.URL.Query().Get("to"))
	if err != nil {
		logger.Error("get tracking range error: invalid to date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	flags, err := s.trackingService.GetRange(ctx, uid, habitID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get tracking range error: unexist habit")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("get tracking range error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting tracking range", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, TrackingRangeResponse{
		HabitID:  habitID.String(),
		Tracking: flags,
	})
	logger.Info("tracking range provided")
}

func (s *Server) GetAllTracking(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get tracking error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	trackingLog, err := s.trackingService.GetAll(ctx, uid)
	if err != nil {
		logger.Error("get tracking error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting tracking log", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, AllTrackingResponse{
		UserID:   uid.String(),
		Tracking: trackingLog,
	})
	logger.Info("tracking log provided")
}

func (s *Server) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get heatmap error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	kind := entity.HabitKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = entity.KindBad
	}
	if kind != entity.KindBad && kind != entity.KindGood {
		logger.Error("get heatmap error: invalid kind")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "kind must be 'bad' or 'good'", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	counts, err := s.trackingService.GetHeatmap(ctx, uid, kind, time.Now())
	if err != nil {
		logger.Error("get heatmap error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building heatmap", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, HeatmapResponse{
		Kind:   string(kind),
		Counts: counts,
	})
	logger.Info("heatmap provided")
}
