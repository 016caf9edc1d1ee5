package recommend

import "math"

// Meal types foods are suggested and logged for.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnacks    = "snacks"
)

// MealTypes lists the meals of a day in order.
//
//nolint:gochecknoglobals // static lookup table.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// Nutrition is the calories and macros of an amount of food.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Macros
}

// Add returns the sum of n and o.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Macros: Macros{
			Protein: n.Protein + o.Protein,
			Carbs:   n.Carbs + o.Carbs,
			Fat:     n.Fat + o.Fat,
		},
	}
}

// Sub returns n minus o.
func (n Nutrition) Sub(o Nutrition) Nutrition {
	return n.Add(Nutrition{Calories: -o.Calories, Macros: Macros{Protein: -o.Protein, Carbs: -o.Carbs, Fat: -o.Fat}})
}

// NutritionGoals is a daily target. Zero fields fall back to DefaultNutritionGoals.
type NutritionGoals = Nutrition

// DefaultNutritionGoals is used for users who have not set their own goals.
//
//nolint:gochecknoglobals,mnd // static defaults.
var DefaultNutritionGoals = NutritionGoals{Calories: 2000, Macros: Macros{Protein: 150, Carbs: 250, Fat: 70}}

// WithDefaults replaces the non-positive fields of g with the defaults.
func WithDefaults(g NutritionGoals) NutritionGoals {
	pick := func(v, def float64) float64 {
		if v > 0 {
			return v
		}
		return def
	}
	d := DefaultNutritionGoals
	return NutritionGoals{
		Calories: pick(g.Calories, d.Calories),
		Macros: Macros{
			Protein: pick(g.Protein, d.Protein),
			Carbs:   pick(g.Carbs, d.Carbs),
			Fat:     pick(g.Fat, d.Fat),
		},
	}
}

// mealShares splits the daily calories over the meals as 500, 600, 700 and 200 of 2000.
//
//nolint:gochecknoglobals,mnd // static lookup table.
var mealShares = map[string]float64{
	MealBreakfast: 0.25,
	MealLunch:     0.30,
	MealDinner:    0.35,
	MealSnacks:    0.10,
}

// MealBudget is the share of the daily calories allocated to the meal. Unknown meals get the snack share.
func MealBudget(dailyCalories float64, mealType string) float64 {
	share, ok := mealShares[mealType]
	if !ok {
		share = mealShares[MealSnacks]
	}
	return math.Round(dailyCalories * share)
}

// ScaleFood returns the nutrition of servings of f rounded to one decimal. Non-positive servings count as one.
func ScaleFood(f Food, servings float64) Nutrition {
	if servings <= 0 {
		servings = 1
	}
	round := func(v float64) float64 {
		return math.Round(v*servings*10) / 10 //nolint:mnd // one decimal.
	}
	return Nutrition{
		Calories: round(f.Calories),
		Macros: Macros{
			Protein: round(f.Protein),
			Carbs:   round(f.Carbohydrates),
			Fat:     round(f.Fat),
		},
	}
}

// MealProgress is how much of a meal's calorie budget has been eaten.
type MealProgress struct {
	MealType  string    `json:"meal_type"`
	Allocated float64   `json:"calories_allocated"`
	Eaten     Nutrition `json:"eaten"`
	Remaining float64   `json:"calories_remaining"`
	Percent   float64   `json:"progress_percentage"`
}

// Progress compares what was eaten for the meal against its share of the daily goal.
func Progress(goals NutritionGoals, mealType string, eaten Nutrition) MealProgress {
	allocated := MealBudget(goals.Calories, mealType)
	p := MealProgress{
		MealType:  mealType,
		Allocated: allocated,
		Eaten:     eaten,
		Remaining: allocated - eaten.Calories,
	}
	if allocated > 0 {
		p.Percent = math.Round(eaten.Calories/allocated*1000) / 10 //nolint:mnd // percent with one decimal.
	}
	return p
}
