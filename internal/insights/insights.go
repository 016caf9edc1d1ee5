// Package insights derives advice and statistics from a user's workout log.
package insights

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/myrjola/macrofit/internal/recommend"
)

const (
	recoveryWindowDays     = 3
	highIntensityThreshold = 3
	streakThreshold        = 5
)

// LoggedWorkout is one completed session.
type LoggedWorkout struct {
	Name           string
	Kind           recommend.Category
	PerformedOn    time.Time
	Duration       int
	CaloriesBurned int
	Intensity      recommend.Intensity
}

// RecoveryAdvice tells whether the user should rest.
type RecoveryAdvice struct {
	RestNeeded     bool   `json:"rest_needed"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation,omitempty"`
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(earlier, later time.Time) int {
	return int(day(later).Sub(day(earlier)).Hours() / 24) //nolint:mnd // hours per day.
}

// Recovery advises rest after three hard sessions within three days or a five day streak.
func Recovery(history []LoggedWorkout, now time.Time) RecoveryAdvice {
	if len(history) == 0 {
		return RecoveryAdvice{RestNeeded: false, Message: "No recent workouts found", Recommendation: ""}
	}

	hard := 0
	for _, w := range history {
		d := daysBetween(w.PerformedOn, now)
		if d >= 0 && d <= recoveryWindowDays &&
			(w.Intensity == recommend.IntensityHigh || w.Intensity == recommend.IntensityVeryHigh) {
			hard++
		}
	}
	if hard >= highIntensityThreshold {
		return RecoveryAdvice{
			RestNeeded:     true,
			Message:        "Consider taking a rest day or doing light cardio/stretching",
			Recommendation: "Your body needs time to recover after intense workouts",
		}
	}

	if streak(history) >= streakThreshold {
		return RecoveryAdvice{
			RestNeeded:     true,
			Message:        "Take a rest day to prevent overtraining",
			Recommendation: "You've been consistent! Rest is crucial for progress",
		}
	}
	return RecoveryAdvice{
		RestNeeded:     false,
		Message:        "You're good to continue with your workout routine",
		Recommendation: "Keep up the great work!",
	}
}

// streak counts consecutive training days ending at the most recent one. Several sessions on one day count once.
func streak(history []LoggedWorkout) int {
	days := make([]time.Time, 0, len(history))
	for _, w := range history {
		days = append(days, day(w.PerformedOn))
	}
	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })
	days = slices.Compact(days)
	n := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		n++
	}
	return n
}

// Stats summarises the log over a period.
type Stats struct {
	TotalWorkouts  int    `json:"total_workouts"`
	TotalDuration  int    `json:"total_duration"`
	TotalCalories  int    `json:"total_calories"`
	AvgDuration    int    `json:"avg_duration"`
	AvgCalories    int    `json:"avg_calories"`
	MostCommonType string `json:"most_common_type"`
	// ConsistencyScore is the percentage of days in the period with at least one workout.
	ConsistencyScore float64 `json:"consistency_score"`
}

// WorkoutStats summarises the workouts of the last days days.
func WorkoutStats(history []LoggedWorkout, now time.Time, days int) Stats {
	stats := Stats{
		TotalWorkouts:    0,
		TotalDuration:    0,
		TotalCalories:    0,
		AvgDuration:      0,
		AvgCalories:      0,
		MostCommonType:   "None",
		ConsistencyScore: 0,
	}
	kinds := map[recommend.Category]int{}
	activeDays := map[time.Time]struct{}{}
	for _, w := range history {
		if d := daysBetween(w.PerformedOn, now); d < 0 || d > days {
			continue
		}
		stats.TotalWorkouts++
		stats.TotalDuration += w.Duration
		stats.TotalCalories += w.CaloriesBurned
		kinds[w.Kind]++
		activeDays[day(w.PerformedOn)] = struct{}{}
	}
	if stats.TotalWorkouts == 0 {
		return stats
	}

	stats.AvgDuration = int(math.Round(float64(stats.TotalDuration) / float64(stats.TotalWorkouts)))
	stats.AvgCalories = int(math.Round(float64(stats.TotalCalories) / float64(stats.TotalWorkouts)))
	if days > 0 {
		stats.ConsistencyScore = math.Round(float64(len(activeDays))/float64(days)*1000) / 10 //nolint:mnd // one decimal percent.
	}

	type kindCount struct {
		kind  recommend.Category
		count int
	}
	counts := make([]kindCount, 0, len(kinds))
	for k, c := range kinds {
		counts = append(counts, kindCount{kind: k, count: c})
	}
	slices.SortFunc(counts, func(a, b kindCount) int {
		return cmp.Or(cmp.Compare(b.count, a.count), cmp.Compare(a.kind, b.kind))
	})
	if k := string(counts[0].kind); k != "" {
		stats.MostCommonType = strings.ToUpper(k[:1]) + k[1:]
	}
	return stats
}
