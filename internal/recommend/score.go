package recommend

import (
	"math"
	"strings"
)

// Term limits. Every term is clamped to [0, max] before summing.
const (
	maxDurationPoints  = 35
	durationStepPoints = 7
	durationStepMins   = 5

	compatiblePoints = 22
	premiumPoints    = 3

	stylePoints      = 10
	maxStylePoints   = 20
	noStyleBaseline  = 10
	maxGoalPoints    = 15
	partialGoalPoint = 8

	preferredIntensityPoints = 15
	adjacentIntensityPoints  = 8

	maxJitter = 5

	// CustomBonus is added to every admitted custom item.
	CustomBonus = 10
	// LikedBonus is added to items the user liked in the call context.
	LikedBonus = 5

	maxScore = 100
)

//nolint:gochecknoglobals // static lookup tables.
var (
	// styleModality maps a declared training style to the modality it aligns with.
	styleModality = map[string]Category{
		"weightlifting":     CategoryStrength,
		"strength_training": CategoryStrength,
		"powerlifting":      CategoryStrength,
		"cardio":            CategoryCardio,
		"running":           CategoryCardio,
		"hiit":              CategoryCardio,
		"cycling":           CategoryCardio,
		"swimming":          CategoryCardio,
		"yoga":              CategoryFlexibility,
		"pilates":           CategoryFlexibility,
		"stretching":        CategoryFlexibility,
		"mobility":          CategoryFlexibility,
	}

	goalModality = map[string]Category{
		"muscle_building": CategoryStrength,
		"strength":        CategoryStrength,
		"endurance":       CategoryCardio,
		"flexibility":     CategoryFlexibility,
		"mobility":        CategoryFlexibility,
		"stress_relief":   CategoryFlexibility,
	}

	preferredBand = map[Experience][]Intensity{
		ExperienceBeginner:     {IntensityLow, IntensityLowModerate},
		ExperienceIntermediate: {IntensityModerate, IntensityModerateHigh},
		ExperienceAdvanced:     {IntensityHigh, IntensityVeryHigh},
	}
)

// scoreInput carries what the scorer needs besides the item.
type scoreInput struct {
	profile   *UserProfile
	target    int
	available EquipmentSet
	prefs     Preferences
	// jitter returns a value in [0, 1).
	jitter func() float64
}

// scoreItem computes the bounded term breakdown of it.
func scoreItem(it Item, in scoreInput) ScoreBreakdown {
	b := ScoreBreakdown{
		Duration:  durationTerm(it.Duration, in.target),
		Equipment: equipmentTerm(it, in.profile, in.available),
		Style:     styleTerm(it, in.profile.Styles),
		Goal:      goalTerm(it, in.profile.Goals),
		Intensity: intensityTerm(it.Intensity, in.profile.Experience.orDefault()),
	}
	if in.jitter != nil {
		b.Jitter = clampTerm(in.jitter()*maxJitter, maxJitter)
	}
	if it.Category == CategoryCustom {
		b.Bonus += CustomBonus
	}
	if in.prefs.Liked.Has(it.Name) {
		b.Bonus += LikedBonus
	}
	return b
}

// finalScore clamps the unclamped total into [0, 100] and rounds it to one decimal.
func finalScore(b ScoreBreakdown) float64 {
	return math.Round(clampTerm(b.Total(), maxScore)*10) / 10 //nolint:mnd // one decimal.
}

func clampTerm(v, upper float64) float64 {
	return math.Max(0, math.Min(v, upper))
}

func durationTerm(duration, target int) float64 {
	diff := abs(duration - target)
	steps := (diff + durationStepMins - 1) / durationStepMins
	return clampTerm(float64(maxDurationPoints-steps*durationStepPoints), maxDurationPoints)
}

func equipmentTerm(it Item, profile *UserProfile, available EquipmentSet) float64 {
	if !Compatible(it.Equipment, available) {
		return 0
	}
	points := float64(compatiblePoints)
	if profile.Equipment.FullFacility && needsFacility(it.Equipment) {
		points += premiumPoints
	}
	return clampTerm(points, compatiblePoints+premiumPoints)
}

// modality is what the item trains. Custom items report their kind.
func modality(it Item) Category {
	if it.Category == CategoryCustom {
		return it.Kind
	}
	return it.Category
}

func styleAligned(it Item, style string) bool {
	style = normalizeName(style)
	if style == "bodyweight" {
		return modality(it) == CategoryStrength && equipmentFree(it.Equipment)
	}
	want, ok := styleModality[style]
	if !ok || want != modality(it) {
		return false
	}
	if want == CategoryStrength {
		return len(it.Exercises()) > 0
	}
	return true
}

func styleTerm(it Item, styles []string) float64 {
	if len(styles) == 0 {
		return noStyleBaseline
	}
	points := 0
	for _, s := range styles {
		if styleAligned(it, s) {
			points += stylePoints
		}
	}
	return clampTerm(float64(points), maxStylePoints)
}

func goalPoints(it Item, goal string) float64 {
	goal = normalizeName(goal)
	switch goal {
	case "weight_loss":
		switch {
		case it.CaloriesBurned >= 250: //nolint:mnd // high burn.
			return maxGoalPoints
		case it.CaloriesBurned >= 150: //nolint:mnd // moderate burn.
			return partialGoalPoint
		}
		return 0
	case "general_fitness":
		return partialGoalPoint
	}
	if want, ok := goalModality[goal]; ok && want == modality(it) {
		return maxGoalPoints
	}
	return 0
}

func goalTerm(it Item, goals []string) float64 {
	best := 0.0
	for _, g := range goals {
		best = math.Max(best, goalPoints(it, g))
	}
	return clampTerm(best, maxGoalPoints)
}

func intensityTerm(intensity Intensity, experience Experience) float64 {
	rank := intensity.rank()
	if rank < 0 {
		return 0
	}
	band := preferredBand[experience]
	lo, hi := band[0].rank(), band[len(band)-1].rank()
	switch {
	case rank >= lo && rank <= hi:
		return preferredIntensityPoints
	case rank == lo-1 || rank == hi+1:
		return adjacentIntensityPoints
	}
	return 0
}

// matchReason describes the strongest reasons an item was picked.
func matchReason(it Item, b ScoreBreakdown, in scoreInput) string {
	var reasons []string
	if it.Category == CategoryCustom {
		reasons = append(reasons, "your custom workout")
	}
	if in.prefs.Liked.Has(it.Name) {
		reasons = append(reasons, "you liked this before")
	}
	if b.Duration >= maxDurationPoints-durationStepPoints {
		reasons = append(reasons, "fits your time")
	}
	switch {
	case b.Equipment > compatiblePoints:
		reasons = append(reasons, "uses your gym access")
	case equipmentFree(it.Equipment):
		reasons = append(reasons, "no equipment needed")
	}
	if len(in.profile.Styles) > 0 && b.Style > 0 {
		reasons = append(reasons, "matches your training style")
	}
	if b.Goal >= maxGoalPoints {
		reasons = append(reasons, "supports your goals")
	}
	if b.Intensity >= preferredIntensityPoints {
		reasons = append(reasons, "right intensity for your level")
	}
	if len(reasons) == 0 {
		return "Good general option"
	}
	reason := strings.Join(reasons, ", ")
	return strings.ToUpper(reason[:1]) + reason[1:]
}
