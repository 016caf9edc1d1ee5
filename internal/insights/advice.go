package insights

import (
	"strings"

	"github.com/myrjola/macrofit/internal/recommend"
)

// Tips are form cues and safety advice for an exercise.
type Tips struct {
	FormTips []string `json:"form_tips"`
	Safety   []string `json:"safety"`
}

//nolint:gochecknoglobals // static lookup tables.
var (
	tipsByExercise = map[string]Tips{
		"squats": {
			FormTips: []string{
				"Keep your chest up and back straight",
				"Don't let knees cave inward",
				"Go down until thighs are parallel to floor",
				"Push through your heels to stand up",
			},
			Safety: []string{
				"Start with bodyweight before adding weight",
				"Don't round your back",
				"Keep weight on heels, not toes",
			},
		},
		"deadlifts": {
			FormTips: []string{
				"Keep the bar close to your body",
				"Maintain neutral spine throughout",
				"Drive through heels and squeeze glutes at top",
				"Lower the bar with control",
			},
			Safety: []string{
				"Always warm up thoroughly",
				"Use proper grip and stance",
				"Don't look up during the lift",
			},
		},
		"bench press": {
			FormTips: []string{
				"Keep shoulder blades pulled back",
				"Lower bar to chest, not neck",
				"Keep feet firmly planted",
				"Use full range of motion",
			},
			Safety: []string{
				"Always use a spotter for heavy weights",
				"Don't arch your back excessively",
				"Keep wrists straight",
			},
		},
		"push ups": {
			FormTips: []string{
				"Keep body in straight line",
				"Lower chest to floor",
				"Push through palms",
				"Keep core engaged",
			},
			Safety: []string{
				"Start with modified version if needed",
				"Don't let hips sag",
				"Land softly on push-up position",
			},
		},
		"pull ups": {
			FormTips: []string{
				"Use full range of motion",
				"Pull shoulder blades down and back",
				"Keep core tight",
				"Control the descent",
			},
			Safety: []string{
				"Use assistance if needed",
				"Don't swing or use momentum",
				"Warm up shoulders thoroughly",
			},
		},
	}

	defaultTips = Tips{
		FormTips: []string{"Focus on proper form over speed", "Use full range of motion", "Breathe consistently"},
		Safety:   []string{"Start with lighter weights", "Stop if you feel pain", "Warm up before exercising"},
	}

	progressions = map[recommend.Experience]map[recommend.Category]string{
		recommend.ExperienceBeginner: {
			recommend.CategoryStrength: "Focus on learning proper form. Add weight only when you can complete " +
				"all reps with perfect form.",
			recommend.CategoryCardio:      "Increase duration by 5 minutes each week. Build your aerobic base gradually.",
			recommend.CategoryFlexibility: "Hold stretches longer and try new poses. Consistency is key for flexibility gains.",
		},
		recommend.ExperienceIntermediate: {
			recommend.CategoryStrength:    "Try advanced variations, increase weight by 2.5-5%, or add more sets.",
			recommend.CategoryCardio:      "Add interval training, increase intensity, or try new cardio modalities.",
			recommend.CategoryFlexibility: "Work on deeper stretches and more challenging poses. Add balance challenges.",
		},
		recommend.ExperienceAdvanced: {
			recommend.CategoryStrength:    "Focus on compound movements, periodization, and specific strength goals.",
			recommend.CategoryCardio:      "Incorporate sport-specific training, advanced intervals, or endurance challenges.",
			recommend.CategoryFlexibility: "Master advanced poses, help others, or explore new flexibility disciplines.",
		},
	}
)

const defaultProgression = "Keep challenging yourself while maintaining good form!"

// ExerciseTips returns tips for name. Hyphens and case are ignored. Unknown exercises get generic tips.
func ExerciseTips(name string) Tips {
	key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "-", " ")))
	if tips, ok := tipsByExercise[key]; ok {
		return tips
	}
	return defaultTips
}

// Progression suggests how to make workouts of kind harder at the given experience.
func Progression(level recommend.Experience, kind recommend.Category) string {
	if advice, ok := progressions[level][kind]; ok {
		return advice
	}
	return defaultProgression
}
