package recommend

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/myrjola/macrofit/internal/errors"
)

const (
	// DefaultWeightLb is assumed when the user has not told their weight.
	DefaultWeightLb = 150

	secondsPerSet      = 45
	defaultRestSeconds = 60
	defaultSets        = 3
)

// ErrNoExercises is returned when a custom workout is built from nothing.
var ErrNoExercises = errors.NewSentinel("no exercises")

//nolint:gochecknoglobals // static lookup table.
var caloriesPerMinute = map[Intensity]float64{
	IntensityLow:          3.5,
	IntensityLowModerate:  4.5,
	IntensityModerate:     6.0,
	IntensityModerateHigh: 7.5,
	IntensityHigh:         9.0,
	IntensityVeryHigh:     11.0,
}

// EstimateCaloriesBurned estimates the burn of a session normalised to a 150 lb person. Unknown intensities count
// as moderate and a non-positive weight as [DefaultWeightLb].
func EstimateCaloriesBurned(minutes int, weightLb float64, intensity Intensity) int {
	if weightLb <= 0 {
		weightLb = DefaultWeightLb
	}
	rate, ok := caloriesPerMinute[intensity]
	if !ok {
		rate = caloriesPerMinute[IntensityModerate]
	}
	return int(math.Round(rate * float64(minutes) * weightLb / DefaultWeightLb))
}

// CustomExercise is an exercise picked by the user together with what it needs.
type CustomExercise struct {
	Exercise
	Equipment    []Equipment
	MuscleGroups []string
}

// CustomWorkout is the derived shape of a user-built strength workout.
type CustomWorkout struct {
	Name           string
	Exercises      []Exercise
	Duration       int
	CaloriesBurned int
	Intensity      Intensity
	Equipment      []Equipment
	MuscleGroups   []string
}

// restSeconds parses rest strings like "60s" or "90". Anything else counts as the default rest.
func restSeconds(rest string) int {
	s, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(rest), "s"))
	if err != nil || s < 0 {
		return defaultRestSeconds
	}
	return s
}

// BuildCustomWorkout estimates duration, calories and equipment of a workout made of exercises. Each set takes
// 45 seconds plus the rest between sets. The duration is at least one minute.
func BuildCustomWorkout(name string, exercises []CustomExercise, weightLb float64) (CustomWorkout, error) {
	if len(exercises) == 0 {
		return CustomWorkout{}, ErrNoExercises
	}
	w := CustomWorkout{
		Name:           name,
		Exercises:      make([]Exercise, 0, len(exercises)),
		Duration:       0,
		CaloriesBurned: 0,
		Intensity:      IntensityModerate,
		Equipment:      nil,
		MuscleGroups:   nil,
	}
	seconds := 0
	equipment := EquipmentSet{}
	muscles := NewNameSet()
	for _, ex := range exercises {
		if ex.Sets <= 0 {
			ex.Sets = defaultSets
		}
		seconds += ex.Sets*secondsPerSet + (ex.Sets-1)*restSeconds(ex.Rest)
		equipment.add(ex.Equipment...)
		for _, m := range ex.MuscleGroups {
			if !muscles.Has(m) {
				muscles.Add(m)
				w.MuscleGroups = append(w.MuscleGroups, m)
			}
		}
		w.Exercises = append(w.Exercises, ex.Exercise)
	}
	if len(equipment) == 0 {
		equipment.add(EquipmentNone)
	}
	if len(equipment) > 1 {
		delete(equipment, EquipmentNone)
	}
	w.Equipment = equipment.Sorted()
	w.Duration = max(seconds/60, 1) //nolint:mnd // seconds per minute.
	w.CaloriesBurned = EstimateCaloriesBurned(w.Duration, weightLb, w.Intensity)
	if !slices.ContainsFunc(w.Exercises, func(e Exercise) bool { return e.Name != "" }) {
		return CustomWorkout{}, errors.Wrap(ErrNoExercises, "all exercises unnamed")
	}
	return w, nil
}
