package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/JinuOffl/accountability-partner/pkg/entity"
)

// Pure folds over the tracking log. No I/O, no clock reads: callers pass
// "today" in, so repeated calls with the same inputs give the same views.

const heatmapDays = 365

// Last7Days returns the completion strip for today and the 6 preceding
// days in ascending order. Days without a tracking entry come back as
// not completed.
func Last7Days(habitID uuid.UUID, log entity.TrackingLog, today time.Time) []entity.DayStatus {
	days := make([]entity.DayStatus, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		days = append(days, entity.DayStatus{
			Date:      date.Format(entity.DateFormat),
			Completed: log[entity.TrackingKey(habitID, date)],
		})
	}
	return days
}

// HeatmapCounts counts, for each of the 365 days ending today, how many
// habits of the given kind were completed on that day. Habits of the
// other kind never contribute. Every day appears in the result, zero
// counts included.
func HeatmapCounts(kind entity.HabitKind, habits []*entity.Habit, log entity.TrackingLog, today time.Time) map[string]int {
	heatmap := make(map[string]int, heatmapDays)
	for i := 0; i < heatmapDays; i++ {
		date := today.AddDate(0, 0, -i)
		count := 0
		for _, h := range habits {
			if h.Kind == kind && log[entity.TrackingKey(h.ID, date)] {
				count++
			}
		}
		heatmap[date.Format(entity.DateFormat)] = count
	}
	return heatmap
}

// TodaysPenaltyTotal sums the penalty amount of every bad habit with a
// completed entry dated today. Good habits contribute nothing no matter
// their completion state.
func TodaysPenaltyTotal(habits []*entity.Habit, log entity.TrackingLog, today time.Time) int {
	total := 0
	for _, h := range habits {
		if h.Kind != entity.KindBad {
			continue
		}
		if log[entity.TrackingKey(h.ID, today)] {
			total += h.PenaltyAmount
		}
	}
	return total
}
