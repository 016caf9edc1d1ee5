package recommend_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/macrofit/internal/recommend"
)

func TestMealBudget(t *testing.T) {
	tests := []struct {
		meal string
		want float64
	}{
		{meal: recommend.MealBreakfast, want: 500},
		{meal: recommend.MealLunch, want: 600},
		{meal: recommend.MealDinner, want: 700},
		{meal: recommend.MealSnacks, want: 200},
		{meal: "brunch", want: 200},
	}
	total := 0.0
	for _, tt := range tests {
		t.Run(tt.meal, func(t *testing.T) {
			if got := recommend.MealBudget(2000, tt.meal); got != tt.want {
				t.Errorf("MealBudget(2000, %q) = %v, want %v", tt.meal, got, tt.want)
			}
		})
	}
	for _, meal := range recommend.MealTypes {
		total += recommend.MealBudget(2000, meal)
	}
	if total != 2000 {
		t.Errorf("meal budgets add up to %v, want 2000", total)
	}
}

func TestScaleFood(t *testing.T) {
	eggs := recommend.Food{Name: "Scrambled Eggs", Calories: 91, Protein: 6, Carbohydrates: 1.2, Fat: 7}
	tests := []struct {
		name     string
		servings float64
		want     recommend.Nutrition
	}{
		{name: "two servings", servings: 2,
			want: recommend.Nutrition{Calories: 182, Macros: recommend.Macros{Protein: 12, Carbs: 2.4, Fat: 14}}},
		{name: "half serving", servings: 0.5,
			want: recommend.Nutrition{Calories: 45.5, Macros: recommend.Macros{Protein: 3, Carbs: 0.6, Fat: 3.5}}},
		{name: "zero means one", servings: 0,
			want: recommend.Nutrition{Calories: 91, Macros: recommend.Macros{Protein: 6, Carbs: 1.2, Fat: 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recommend.ScaleFood(eggs, tt.servings)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScaleFood() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	got := recommend.WithDefaults(recommend.NutritionGoals{Calories: 1800, Macros: recommend.Macros{Protein: 120}})
	want := recommend.NutritionGoals{Calories: 1800, Macros: recommend.Macros{Protein: 120, Carbs: 250, Fat: 70}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WithDefaults() mismatch (-want +got):\n%s", diff)
	}
}

func TestProgress(t *testing.T) {
	eaten := recommend.Nutrition{Calories: 450, Macros: recommend.Macros{Protein: 30}}
	got := recommend.Progress(recommend.DefaultNutritionGoals, recommend.MealLunch, eaten)
	want := recommend.MealProgress{
		MealType:  recommend.MealLunch,
		Allocated: 600,
		Eaten:     eaten,
		Remaining: 150,
		Percent:   75,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Progress() mismatch (-want +got):\n%s", diff)
	}

	over := recommend.Progress(recommend.DefaultNutritionGoals, recommend.MealSnacks, recommend.Nutrition{Calories: 300})
	if over.Remaining != -100 {
		t.Errorf("Remaining = %v, want -100", over.Remaining)
	}
}
