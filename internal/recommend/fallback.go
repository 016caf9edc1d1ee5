package recommend

const fallbackReason = "Equipment-free quick option"

//nolint:gochecknoglobals // fixed set, never mutated.
var fallbackItems = []Item{
	{
		Name:           "Desk Break Stretch",
		Category:       CategoryFlexibility,
		Kind:           CategoryFlexibility,
		Focus:          FocusFlexibility,
		Duration:       5,
		CaloriesBurned: 15,
		Intensity:      IntensityLow,
		Equipment:      []Equipment{EquipmentNone},
		Payload: Routine{Instructions: "Neck rolls, shoulder shrugs, seated twist and standing hamstring reach. " +
			"Hold each stretch for 30 seconds."},
	},
	{
		Name:           "Bodyweight Basics",
		Category:       CategoryStrength,
		Kind:           CategoryStrength,
		Focus:          FocusFullBody,
		Duration:       7,
		CaloriesBurned: 35,
		Intensity:      IntensityLowModerate,
		Equipment:      []Equipment{EquipmentNone},
		Payload: Strength{Exercises: []Exercise{
			{Name: "Bodyweight Squats", Sets: 2, Reps: "12", Rest: "30s", Difficulty: 1},
			{Name: "Wall Push-Ups", Sets: 2, Reps: "10", Rest: "30s", Difficulty: 1},
			{Name: "Glute Bridges", Sets: 2, Reps: "12", Rest: "30s", Difficulty: 1},
		}},
	},
	{
		Name:           "Brisk Walk",
		Category:       CategoryCardio,
		Kind:           CategoryCardio,
		Focus:          FocusCardio,
		Duration:       10,
		CaloriesBurned: 45,
		Intensity:      IntensityLowModerate,
		Equipment:      []Equipment{EquipmentNone},
		Payload:        Routine{Instructions: "Walk at a pace where talking is possible but takes some effort."},
	},
	{
		Name:           "Core Quickie",
		Category:       CategoryStrength,
		Kind:           CategoryStrength,
		Focus:          FocusCore,
		Duration:       6,
		CaloriesBurned: 30,
		Intensity:      IntensityLowModerate,
		Equipment:      []Equipment{EquipmentNone},
		Payload: Strength{Exercises: []Exercise{
			{Name: "Plank", Sets: 2, Reps: "30s", Rest: "30s", Difficulty: 1},
			{Name: "Dead Bug", Sets: 2, Reps: "10", Rest: "30s", Difficulty: 1},
			{Name: "Bird Dog", Sets: 2, Reps: "10", Rest: "30s", Difficulty: 1},
		}},
	},
	{
		Name:           "Breathing & Mobility Flow",
		Category:       CategoryFlexibility,
		Kind:           CategoryFlexibility,
		Focus:          FocusFlexibility,
		Duration:       5,
		CaloriesBurned: 12,
		Intensity:      IntensityLow,
		Equipment:      []Equipment{EquipmentNone},
		Payload: Routine{Instructions: "Box breathing for one minute, then cat-cow, hip circles and arm sweeps " +
			"synced with the breath."},
	},
}

// Fallbacks returns the universal fallback recommendations in their fixed order.
func Fallbacks() []Recommendation {
	return appendFallbacks(nil, nil, Preferences{})
}

// appendFallbacks appends the fallback items that are not excluded, disliked or already present.
func appendFallbacks(out []Recommendation, exclusions ExclusionSet, prefs Preferences) []Recommendation {
	present := NewNameSet()
	for _, r := range out {
		present.Add(r.Item.Name)
	}
	for _, it := range fallbackItems {
		if present.Has(it.Name) || excluded(it.Name, exclusions, prefs) {
			continue
		}
		b := ScoreBreakdown{Equipment: compatiblePoints}
		out = append(out, Recommendation{
			Item:           it,
			Score:          finalScore(b),
			MatchReason:    fallbackReason,
			SourceCategory: it.Category,
			Breakdown:      b,
			Fallback:       true,
		})
	}
	return out
}
