package catalog_test

import (
	"errors"
	"testing"

	"github.com/myrjola/macrofit/internal/catalog"
	"github.com/myrjola/macrofit/internal/recommend"
)

func TestLoad(t *testing.T) {
	lib, err := catalog.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	counts := map[recommend.Category]map[recommend.Experience]int{}
	for _, it := range lib.Workouts.Items() {
		if counts[it.Category] == nil {
			counts[it.Category] = map[recommend.Experience]int{}
		}
		counts[it.Category][it.Experience]++
		if it.Category == recommend.CategoryStrength && len(it.Exercises()) == 0 {
			t.Errorf("%s has no exercises", it.Name)
		}
		if it.Category != recommend.CategoryStrength && it.Instructions() == "" {
			t.Errorf("%s has no instructions", it.Name)
		}
		for _, tag := range it.Equipment {
			if _, ok := lib.Equipment[string(tag)]; !ok {
				t.Errorf("%s uses undocumented equipment %s", it.Name, tag)
			}
		}
	}
	for _, c := range []recommend.Category{recommend.CategoryStrength, recommend.CategoryCardio, recommend.CategoryFlexibility} {
		for _, e := range []recommend.Experience{recommend.ExperienceBeginner, recommend.ExperienceIntermediate, recommend.ExperienceAdvanced} {
			if counts[c][e] == 0 {
				t.Errorf("no %s workouts for %s", c, e)
			}
		}
	}

	for d := 10; d <= 60; d += 5 {
		if len(lib.Workouts.QuickBucket(d)) == 0 {
			t.Errorf("quick bucket %d is empty", d)
		}
	}

	walk, ok := lib.Workouts.Find("Walking Program")
	if !ok {
		t.Fatalf("Walking Program not found")
	}
	if walk.Duration != 30 || walk.Focus != recommend.FocusCardio || walk.Intensity != recommend.IntensityLow {
		t.Errorf("unexpected Walking Program %+v", walk)
	}
}

func TestLibrary_MealFoods(t *testing.T) {
	lib, err := catalog.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	breakfast := lib.MealFoods("breakfast")
	if len(breakfast) == 0 {
		t.Fatalf("no breakfast foods")
	}
	if breakfast[0].Name != "scrambled eggs" {
		t.Errorf("first breakfast food = %q, want scrambled eggs", breakfast[0].Name)
	}
	for _, f := range breakfast {
		if f.Name == "protein smoothie" {
			t.Errorf("food without nutrition data returned")
		}
	}
	if got, want := len(lib.MealFoods("brunch")), len(lib.MealFoods("snacks")); got != want {
		t.Errorf("unknown meal type got %d foods, want the %d snacks", got, want)
	}
	if _, ok := lib.Food("  Greek Yogurt "); !ok {
		t.Errorf("food lookup should ignore case and spaces")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "unknown category",
			data: `
workouts:
  - {name: Dance, category: dance, experience: beginner, duration: 30, equipment: [none], instructions: Move.}
`,
		},
		{
			name: "strength without exercises",
			data: `
workouts:
  - {name: Lift, category: strength, experience: beginner, duration: 30, equipment: [none]}
`,
		},
		{
			name: "duplicate names",
			data: `
workouts:
  - {name: Walk, category: cardio, experience: beginner, duration: 30, equipment: [none], instructions: Walk.}
quick:
  - {name: walk, category: cardio, duration: 10, equipment: [none], instructions: Walk.}
`,
		},
		{
			name: "missing experience",
			data: `
workouts:
  - {name: Walk, category: cardio, duration: 30, equipment: [none], instructions: Walk.}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := catalog.Parse([]byte(tt.data)); !errors.Is(err, catalog.ErrInvalid) {
				t.Errorf("Parse() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParse_UnknownField(t *testing.T) {
	data := `
workouts:
  - {name: Walk, category: cardio, experience: beginner, duration: 30, equipment: [none], instructions: Walk., pace: fast}
`
	if _, err := catalog.Parse([]byte(data)); err == nil {
		t.Errorf("expected error for unknown field")
	}
}
