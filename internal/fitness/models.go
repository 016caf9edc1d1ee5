package fitness

import (
	"time"

	"github.com/myrjola/macrofit/internal/recommend"
	"github.com/myrjola/macrofit/internal/sqlite"
)

// Domain separates workout and food preferences.
type Domain string

const (
	DomainWorkout Domain = "workout"
	DomainFood    Domain = "food"
)

const (
	verdictLiked    = "liked"
	verdictDisliked = "disliked"
)

// Profile is what a user tells about themselves. The zero Profile means the user has not filled it in.
type Profile struct {
	Experience        recommend.Experience  `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced"`
	Styles            []string              `json:"styles" validate:"max=10,dive,min=1,max=50"`
	Goals             []string              `json:"goals" validate:"max=10,dive,min=1,max=50"`
	AvoidedCategories []recommend.Category  `json:"avoided_categories" validate:"dive,oneof=strength cardio flexibility"`
	TargetMinutes     int                   `json:"target_minutes" validate:"omitempty,min=1,max=240"`
	FullFacility      bool                  `json:"full_facility"`
	OwnedEquipment    []recommend.Equipment `json:"owned_equipment" validate:"max=50,dive,min=1,max=50"`
	WeightLb          float64               `json:"weight_lb" validate:"gte=0,lte=1000"`
	// Daily nutrition goals. Zero means the default goal.
	CalorieGoal float64 `json:"calorie_goal" validate:"gte=0,lte=10000"`
	ProteinGoal float64 `json:"protein_goal" validate:"gte=0,lte=1000"`
	CarbsGoal   float64 `json:"carbs_goal" validate:"gte=0,lte=1000"`
	FatGoal     float64 `json:"fat_goal" validate:"gte=0,lte=1000"`
}

func (p Profile) nutritionGoals() recommend.NutritionGoals {
	return recommend.WithDefaults(recommend.NutritionGoals{
		Calories: p.CalorieGoal,
		Macros:   recommend.Macros{Protein: p.ProteinGoal, Carbs: p.CarbsGoal, Fat: p.FatGoal},
	})
}

func (p Profile) userProfile() *recommend.UserProfile {
	return &recommend.UserProfile{
		Experience:        p.Experience,
		Styles:            p.Styles,
		Goals:             p.Goals,
		AvoidedCategories: p.AvoidedCategories,
		TargetMinutes:     p.TargetMinutes,
		Equipment: recommend.EquipmentAccess{
			FullFacility: p.FullFacility,
			Owned:        p.OwnedEquipment,
		},
		WeightLb: p.WeightLb,
	}
}

// CustomExerciseInput is one exercise of a custom workout being created.
type CustomExerciseInput struct {
	Name         string                `json:"name" validate:"required,max=100"`
	Sets         int                   `json:"sets" validate:"gte=0,lte=20"`
	Reps         string                `json:"reps" validate:"max=20"`
	Rest         string                `json:"rest" validate:"max=20"`
	Difficulty   int                   `json:"difficulty" validate:"gte=0,lte=10"`
	Equipment    []recommend.Equipment `json:"equipment" validate:"max=10,dive,min=1,max=50"`
	MuscleGroups []string              `json:"muscle_groups" validate:"max=10,dive,min=1,max=50"`
}

// CustomWorkoutInput creates a custom workout. Kind defaults to strength. Empty instructions get written for the
// user.
type CustomWorkoutInput struct {
	Name         string                `json:"name" validate:"required,max=100"`
	Kind         recommend.Category    `json:"type" validate:"omitempty,oneof=strength cardio flexibility"`
	Exercises    []CustomExerciseInput `json:"exercises" validate:"required,min=1,max=30,dive"`
	Instructions string                `json:"instructions" validate:"max=20000"`
}

// CustomWorkout is a stored user-authored workout.
type CustomWorkout struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Kind           recommend.Category    `json:"type"`
	Duration       int                   `json:"duration"`
	CaloriesBurned int                   `json:"calories_burned"`
	Intensity      recommend.Intensity   `json:"intensity"`
	Equipment      []recommend.Equipment `json:"equipment"`
	Exercises      []recommend.Exercise  `json:"exercises"`
	MuscleGroups   []string              `json:"muscle_groups"`
	Instructions   string                `json:"instructions"`
	CreatedAt      time.Time             `json:"created_at"`
}

// Feedback is a like or dislike of a workout or food. Context is the workout context or the meal type and is
// ignored when Global is set.
type Feedback struct {
	Domain   Domain
	ItemName string
	Liked    bool
	Context  string
	Global   bool
}

// LogEntry is a completed workout. Zero calories are estimated from the profile weight.
type LogEntry struct {
	Name           string              `json:"name" validate:"required,max=100"`
	Kind           recommend.Category  `json:"type" validate:"required,oneof=strength cardio flexibility"`
	PerformedOn    time.Time           `json:"performed_on"`
	Duration       int                 `json:"duration" validate:"required,min=1,max=1440"`
	CaloriesBurned int                 `json:"calories_burned" validate:"gte=0,lte=10000"`
	Intensity      recommend.Intensity `json:"intensity" validate:"omitempty,oneof=low low-moderate moderate moderate-high high very_high"`
}

// QuickInput asks for quick suggestions.
type QuickInput struct {
	Duration   int                   `json:"duration" validate:"required,min=1,max=120"`
	Focus      recommend.Focus       `json:"focus" validate:"omitempty,oneof=full_body upper_body lower_body core cardio flexibility"`
	Equipment  []recommend.Equipment `json:"equipment" validate:"max=50,dive,min=1,max=50"`
	Excluded   []string              `json:"excluded_workouts" validate:"max=200,dive,max=100"`
	MaxResults int                   `json:"max_results" validate:"gte=0,lte=50"`
}

// FoodInput asks for food suggestions for a meal. The remaining calories and macro needs come from today's meal log.
type FoodInput struct {
	MealType   string `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snacks"`
	MaxResults int    `json:"max_results" validate:"gte=0,lte=50"`
}

// FoodSuggestions are scored foods together with the meal state they were scored against.
type FoodSuggestions struct {
	MealType          string
	RemainingCalories float64
	Needs             recommend.MacroNeeds
	Suggestions       []recommend.FoodSuggestion
}

// MealInput logs a food. Foods missing from the catalog need their nutrition per serving. Zero servings count as
// one and a zero date means today.
type MealInput struct {
	MealType string    `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snacks"`
	FoodName string    `json:"food_name" validate:"required,max=100"`
	Servings float64   `json:"servings" validate:"gte=0,lte=50"`
	EatenOn  time.Time `json:"eaten_on"`
	Calories float64   `json:"calories" validate:"gte=0,lte=10000"`
	Protein  float64   `json:"protein" validate:"gte=0,lte=1000"`
	Carbs    float64   `json:"carbohydrates" validate:"gte=0,lte=1000"`
	Fat      float64   `json:"fat" validate:"gte=0,lte=1000"`
}

// MealEntry is a logged food.
type MealEntry struct {
	ID       int64     `json:"id"`
	EatenOn  time.Time `json:"eaten_on"`
	MealType string    `json:"meal_type"`
	FoodName string    `json:"food_name"`
	Servings float64   `json:"servings"`
	recommend.Nutrition
}

// DailyNutrition is the state of one day of the meal log.
type DailyNutrition struct {
	Date      string                   `json:"date"`
	Goals     recommend.NutritionGoals `json:"goals"`
	Eaten     recommend.Nutrition      `json:"eaten"`
	Remaining recommend.Nutrition      `json:"remaining"`
	Meals     []recommend.MealProgress `json:"meals"`
	Entries   []MealEntry              `json:"entries"`
}

// Meal returns the progress of the meal type.
func (d DailyNutrition) Meal(mealType string) recommend.MealProgress {
	for _, m := range d.Meals {
		if m.MealType == mealType {
			return m
		}
	}
	return recommend.Progress(d.Goals, mealType, recommend.Nutrition{})
}

func summarizeDay(day time.Time, goals recommend.NutritionGoals, entries []MealEntry) DailyNutrition {
	perMeal := make(map[string]recommend.Nutrition, len(recommend.MealTypes))
	var eaten recommend.Nutrition
	for _, e := range entries {
		perMeal[e.MealType] = perMeal[e.MealType].Add(e.Nutrition)
		eaten = eaten.Add(e.Nutrition)
	}
	d := DailyNutrition{
		Date:      day.Format(sqlite.DateLayout),
		Goals:     goals,
		Eaten:     eaten,
		Remaining: goals.Sub(eaten),
		Meals:     make([]recommend.MealProgress, 0, len(recommend.MealTypes)),
		Entries:   entries,
	}
	if d.Entries == nil {
		d.Entries = []MealEntry{}
	}
	for _, meal := range recommend.MealTypes {
		d.Meals = append(d.Meals, recommend.Progress(goals, meal, perMeal[meal]))
	}
	return d
}
