package recommend

import (
	"cmp"
	"slices"
	"strings"
)

// Food is a food with its nutrition per serving.
type Food struct {
	Name          string  `json:"name" yaml:"name"`
	Calories      float64 `json:"calories" yaml:"calories"`
	Protein       float64 `json:"protein" yaml:"protein"`
	Carbohydrates float64 `json:"carbohydrates" yaml:"carbohydrates"`
	Fat           float64 `json:"fat" yaml:"fat"`
	Serving       string  `json:"serving" yaml:"serving"`
	Category      string  `json:"category" yaml:"category"`
}

// Macros is an amount of each macronutrient in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// MacroNeeds tells which macronutrients are still short of the daily goal.
type MacroNeeds struct {
	Protein bool
	Carbs   bool
	Fat     bool
}

// macroShortfall is the eaten to goal ratio below which a macro counts as needed.
const macroShortfall = 0.8

// NeedsFrom compares what was eaten against the goal. A macro without a positive goal counts as needed.
func NeedsFrom(eaten, goal Macros) MacroNeeds {
	short := func(e, g float64) bool {
		return g <= 0 || e/g < macroShortfall
	}
	return MacroNeeds{
		Protein: short(eaten.Protein, goal.Protein),
		Carbs:   short(eaten.Carbs, goal.Carbs),
		Fat:     short(eaten.Fat, goal.Fat),
	}
}

// MealContext is the state of the user's day when foods are scored.
type MealContext struct {
	MealType          string
	RemainingCalories float64
	Needs             MacroNeeds
	Preferences       Preferences
}

// FoodSuggestion is a scored food.
type FoodSuggestion struct {
	Food  Food
	Score int
}

//nolint:gochecknoglobals // static lookup tables.
var (
	undesiredFoodKeywords = []string{"school lunch", "cafeteria", "nfs", "baby food", "infant"}

	mealCategories = map[string][]string{
		MealBreakfast: {"breakfast_special", "protein", "dairy"},
		MealLunch:     {"protein", "starch", "vegetable"},
		MealDinner:    {"protein", "starch", "vegetable"},
		MealSnacks:    {"snack", "fruit", "protein"},
	}
)

// ScoreFoods filters out disliked and unwanted foods and scores the rest for the meal. The result is sorted by
// score and truncated to maxResults when it is positive.
func ScoreFoods(foods []Food, meal MealContext, maxResults int) []FoodSuggestion {
	suggestions := make([]FoodSuggestion, 0, len(foods))
	for _, f := range foods {
		if meal.Preferences.Disliked.Has(f.Name) || undesiredFood(f.Name) {
			continue
		}
		suggestions = append(suggestions, FoodSuggestion{Food: f, Score: scoreFood(f, meal)})
	}
	slices.SortStableFunc(suggestions, func(a, b FoodSuggestion) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.Food.Name, b.Food.Name))
	})
	if maxResults > 0 && len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}
	return suggestions
}

func undesiredFood(name string) bool {
	name = strings.ToLower(name)
	return slices.ContainsFunc(undesiredFoodKeywords, func(k string) bool {
		return strings.Contains(name, k)
	})
}

//nolint:mnd // point values of the food heuristic.
func scoreFood(f Food, meal MealContext) int {
	score := 0
	diff := f.Calories - meal.RemainingCalories
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= meal.RemainingCalories*0.15:
		score += 10
	case diff <= meal.RemainingCalories*0.3:
		score += 5
	}
	if meal.Preferences.Liked.Has(f.Name) {
		score += 15
	}
	if meal.Needs.Protein && f.Protein > 10 {
		score += 8
	}
	if meal.Needs.Carbs && f.Carbohydrates > 20 {
		score += 6
	}
	if meal.Needs.Fat && f.Fat > 5 {
		score += 4
	}
	if slices.Contains(mealCategories[meal.MealType], f.Category) {
		score += 5
	}
	return score
}
