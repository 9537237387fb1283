package stats

import (
	"time"

	"github.com/ganot/pomodoom/internal/domain/session"
)

// DayCount is the number of completed work sessions on one day.
type DayCount struct {
	Day      string `json:"day"`
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
}

// WeekSummary aggregates completed work sessions around a reference time.
type WeekSummary struct {
	Days      []DayCount `json:"days"`
	ThisWeek  int        `json:"this_week"`
	Today     int        `json:"today"`
	Total     int        `json:"total"`
	DailyGoal int        `json:"daily_goal"`
	GoalMet   bool       `json:"goal_met"`
}

// Weekly counts completed work sessions per day of the Monday-first week
// containing now, using now's location. Sessions are bucketed by start time.
func Weekly(history []session.Session, now time.Time, dailyGoal int) WeekSummary {
	loc := now.Location()
	today := startOfDay(now)
	monday := today.AddDate(0, 0, -weekdayIndex(today.Weekday()))
	nextMonday := monday.AddDate(0, 0, 7)

	summary := WeekSummary{
		Days:      make([]DayCount, 7),
		DailyGoal: max(dailyGoal, 0),
	}
	for i := range summary.Days {
		day := monday.AddDate(0, 0, i)
		summary.Days[i] = DayCount{
			Day:  day.Weekday().String()[:3],
			Date: day.Format(time.DateOnly),
		}
	}

	for _, sess := range history {
		if !sess.Completed() || !sess.Kind.IsWork() {
			continue
		}
		summary.Total++

		started := time.UnixMilli(sess.Start).In(loc)
		if started.Before(monday) || !started.Before(nextMonday) {
			continue
		}
		idx := weekdayIndex(started.Weekday())
		summary.Days[idx].Sessions++
		summary.ThisWeek++
		if sameDay(started, today) {
			summary.Today++
		}
	}

	summary.GoalMet = summary.DailyGoal > 0 && summary.Today >= summary.DailyGoal
	return summary
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// weekdayIndex maps Monday to 0 and Sunday to 6.
func weekdayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}
