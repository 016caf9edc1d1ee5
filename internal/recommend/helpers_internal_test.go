package recommend

import (
	"math/rand/v2"
	"slices"
	"time"
)

func testItem(name string, category Category, minutes int, intensity Intensity, equipment ...Equipment) Item {
	if len(equipment) == 0 {
		equipment = []Equipment{EquipmentNone}
	}
	it := Item{
		ID:             "",
		Name:           name,
		Category:       category,
		Kind:           category,
		Experience:     ExperienceBeginner,
		Focus:          FocusFullBody,
		Description:    "",
		Duration:       minutes,
		CaloriesBurned: minutes * 6, //nolint:mnd // moderate burn.
		Intensity:      intensity,
		Equipment:      equipment,
		MuscleGroups:   nil,
		Payload:        Routine{Instructions: "Keep moving."},
		CreatedAt:      time.Time{},
	}
	switch category {
	case CategoryStrength:
		it.Payload = Strength{Exercises: []Exercise{{Name: "Squat", Sets: 3, Reps: "10", Rest: "60s", Difficulty: 1}}}
	case CategoryCardio:
		it.Focus = FocusCardio
	case CategoryFlexibility:
		it.Focus = FocusFlexibility
	case CategoryCustom:
	}
	return it
}

// testCatalog has a few beginner items per category at the default 30 minute target.
func testCatalog() *Catalog {
	return NewCatalog([]Item{
		testItem("Push-Up Progression", CategoryStrength, 25, IntensityLowModerate),
		testItem("Beginner Upper Body", CategoryStrength, 35, IntensityModerate, "dumbbells", "bench"),
		testItem("Cable Basics", CategoryStrength, 30, IntensityModerate, "cable_machine"),
		testItem("Walking Program", CategoryCardio, 30, IntensityLow),
		testItem("Stationary Bike", CategoryCardio, 30, IntensityLowModerate, "exercise_bike"),
		testItem("Basic Stretching", CategoryFlexibility, 20, IntensityLow),
		testItem("Morning Yoga", CategoryFlexibility, 30, IntensityLow, "mat"),
	}, nil)
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1)) //nolint:gosec // deterministic tests.
}

func beginnerProfile() *UserProfile {
	return &UserProfile{
		Experience:        ExperienceBeginner,
		Styles:            nil,
		Goals:             nil,
		AvoidedCategories: nil,
		TargetMinutes:     30,
		Equipment:         EquipmentAccess{FullFacility: false, Owned: nil},
		WeightLb:          0,
	}
}

func names(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Item.Name)
	}
	return out
}

func withoutFallbacks(recs []Recommendation) []Recommendation {
	var out []Recommendation
	for _, r := range recs {
		if !r.Fallback {
			out = append(out, r)
		}
	}
	return out
}

func sorted(s []string) []string {
	return slices.Sorted(slices.Values(s))
}
