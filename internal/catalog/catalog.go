// Package catalog loads the built-in workout and food library.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/recommend"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// ErrInvalid is returned when the catalog data breaks an invariant.
var ErrInvalid = errors.NewSentinel("invalid catalog")

type workoutEntry struct {
	Name           string                `yaml:"name"`
	Category       recommend.Category    `yaml:"category"`
	Experience     recommend.Experience  `yaml:"experience"`
	Focus          recommend.Focus       `yaml:"focus"`
	Description    string                `yaml:"description"`
	Duration       int                   `yaml:"duration"`
	CaloriesBurned int                   `yaml:"calories_burned"`
	Intensity      recommend.Intensity   `yaml:"intensity"`
	Equipment      []recommend.Equipment `yaml:"equipment"`
	MuscleGroups   []string              `yaml:"muscle_groups"`
	Exercises      []recommend.Exercise  `yaml:"exercises"`
	Instructions   string                `yaml:"instructions"`
}

type file struct {
	Workouts        []workoutEntry      `yaml:"workouts"`
	Quick           []workoutEntry      `yaml:"quick"`
	Equipment       map[string]string   `yaml:"equipment"`
	MuscleGroups    map[string]string   `yaml:"muscle_groups"`
	Foods           []recommend.Food    `yaml:"foods"`
	MealSuggestions map[string][]string `yaml:"meal_suggestions"`
}

// Library is the immutable built-in content.
type Library struct {
	Workouts *recommend.Catalog
	// Equipment maps equipment tags to a human readable description.
	Equipment    map[string]string
	MuscleGroups map[string]string
	foods        map[string]recommend.Food
	meals        map[string][]string
}

// Load parses the embedded catalog.
func Load() (*Library, error) {
	return Parse(embedded)
}

// Parse parses catalog YAML. Unknown fields are rejected.
func Parse(data []byte) (*Library, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]struct{})
	items := make([]recommend.Item, 0, len(f.Workouts))
	for _, w := range f.Workouts {
		it, err := w.item(true)
		if err != nil {
			return nil, err
		}
		if err = unique(seen, it.Name); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	quick := make(map[int][]recommend.Item)
	for _, w := range f.Quick {
		it, err := w.item(false)
		if err != nil {
			return nil, err
		}
		if err = unique(seen, it.Name); err != nil {
			return nil, err
		}
		quick[it.Duration] = append(quick[it.Duration], it)
	}

	lib := &Library{
		Workouts:     recommend.NewCatalog(items, quick),
		Equipment:    f.Equipment,
		MuscleGroups: f.MuscleGroups,
		foods:        make(map[string]recommend.Food, len(f.Foods)),
		meals:        f.MealSuggestions,
	}
	for _, food := range f.Foods {
		key := strings.ToLower(food.Name)
		if _, ok := lib.foods[key]; ok {
			return nil, fmt.Errorf("%w: duplicate food %q", ErrInvalid, food.Name)
		}
		lib.foods[key] = food
	}
	return lib, nil
}

func unique(seen map[string]struct{}, name string) error {
	key := strings.ToLower(name)
	if _, ok := seen[key]; ok {
		return fmt.Errorf("%w: duplicate workout %q", ErrInvalid, name)
	}
	seen[key] = struct{}{}
	return nil
}

// item validates the entry and converts it. Quick entries suit every experience tier.
func (w workoutEntry) item(needsExperience bool) (recommend.Item, error) {
	switch {
	case w.Name == "":
		return recommend.Item{}, fmt.Errorf("%w: workout without name", ErrInvalid)
	case !w.Category.Valid():
		return recommend.Item{}, fmt.Errorf("%w: %s has category %q", ErrInvalid, w.Name, w.Category)
	case needsExperience && !w.Experience.Valid():
		return recommend.Item{}, fmt.Errorf("%w: %s has experience %q", ErrInvalid, w.Name, w.Experience)
	case w.Duration <= 0:
		return recommend.Item{}, fmt.Errorf("%w: %s has duration %d", ErrInvalid, w.Name, w.Duration)
	case !w.Intensity.Valid() && w.Intensity != "":
		return recommend.Item{}, fmt.Errorf("%w: %s has intensity %q", ErrInvalid, w.Name, w.Intensity)
	case len(w.Equipment) == 0:
		return recommend.Item{}, fmt.Errorf("%w: %s lists no equipment", ErrInvalid, w.Name)
	}

	intensity := w.Intensity
	if intensity == "" {
		intensity = recommend.IntensityModerate
	}
	focus := w.Focus
	switch {
	case focus != "" && !focus.Valid():
		return recommend.Item{}, fmt.Errorf("%w: %s has focus %q", ErrInvalid, w.Name, w.Focus)
	case focus == "" && w.Category == recommend.CategoryCardio:
		focus = recommend.FocusCardio
	case focus == "" && w.Category == recommend.CategoryFlexibility:
		focus = recommend.FocusFlexibility
	case focus == "":
		focus = recommend.FocusFullBody
	}

	it := recommend.Item{
		ID:             "",
		Name:           w.Name,
		Category:       w.Category,
		Kind:           w.Category,
		Experience:     w.Experience,
		Focus:          focus,
		Description:    w.Description,
		Duration:       w.Duration,
		CaloriesBurned: w.CaloriesBurned,
		Intensity:      intensity,
		Equipment:      w.Equipment,
		MuscleGroups:   w.MuscleGroups,
		Payload:        nil,
	}
	switch {
	case w.Category == recommend.CategoryStrength && len(w.Exercises) > 0:
		it.Payload = recommend.Strength{Exercises: w.Exercises}
	case w.Category == recommend.CategoryStrength:
		return recommend.Item{}, fmt.Errorf("%w: strength workout %s has no exercises", ErrInvalid, w.Name)
	case w.Instructions == "":
		return recommend.Item{}, fmt.Errorf("%w: %s has no instructions", ErrInvalid, w.Name)
	default:
		it.Payload = recommend.Routine{Instructions: w.Instructions}
	}
	return it, nil
}

// Food looks a food up by name, ignoring case.
func (l *Library) Food(name string) (recommend.Food, bool) {
	f, ok := l.foods[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// MealFoods returns the foods with nutrition data suggested for mealType. Unknown meal types get the snack list.
func (l *Library) MealFoods(mealType string) []recommend.Food {
	names, ok := l.meals[mealType]
	if !ok {
		names = l.meals["snacks"]
	}
	var foods []recommend.Food
	for _, n := range names {
		if f, found := l.Food(n); found && !slices.ContainsFunc(foods, func(x recommend.Food) bool {
			return x.Name == f.Name
		}) {
			foods = append(foods, f)
		}
	}
	return foods
}

// MealTypes lists the meal types with suggestions.
func (l *Library) MealTypes() []string {
	types := make([]string, 0, len(l.meals))
	for t := range l.meals {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
