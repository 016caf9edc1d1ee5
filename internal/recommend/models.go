// Package recommend selects workouts and foods that match a user's profile.
//
// The engine is a pure pipeline: equipment resolution, candidate generation, custom content merging, exclusion
// filtering, scoring and diversity selection. It performs no I/O; callers hand it an immutable snapshot.
package recommend

import (
	"slices"
	"time"
)

// Category tags catalog items. Custom is reserved for user-authored items.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibility"
	CategoryCustom      Category = "custom"
)

// trainingCategories lists the categories in the order they are interleaved in the final list.
var trainingCategories = []Category{CategoryStrength, CategoryCardio, CategoryFlexibility} //nolint:gochecknoglobals // read-only.

// Valid reports whether c is one of the training categories. Custom is not a training category.
func (c Category) Valid() bool {
	return slices.Contains(trainingCategories, c)
}

// Intensity is the effort level of an item.
type Intensity string

const (
	IntensityLow          Intensity = "low"
	IntensityLowModerate  Intensity = "low-moderate"
	IntensityModerate     Intensity = "moderate"
	IntensityModerateHigh Intensity = "moderate-high"
	IntensityHigh         Intensity = "high"
	IntensityVeryHigh     Intensity = "very_high"
)

var intensityOrder = []Intensity{ //nolint:gochecknoglobals // read-only.
	IntensityLow, IntensityLowModerate, IntensityModerate, IntensityModerateHigh, IntensityHigh, IntensityVeryHigh,
}

// rank returns the position of i on the intensity scale or -1 if unknown.
func (i Intensity) rank() int {
	return slices.Index(intensityOrder, i)
}

// Valid reports whether i is a known intensity.
func (i Intensity) Valid() bool {
	return i.rank() >= 0
}

// Experience is the training experience tier of a user or an item.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Valid reports whether e is a known tier.
func (e Experience) Valid() bool {
	return e == ExperienceBeginner || e == ExperienceIntermediate || e == ExperienceAdvanced
}

func (e Experience) orDefault() Experience {
	if e.Valid() {
		return e
	}
	return ExperienceBeginner
}

// Focus is the body area targeted by an item or requested by a quick suggestion.
type Focus string

const (
	FocusFullBody    Focus = "full_body"
	FocusUpperBody   Focus = "upper_body"
	FocusLowerBody   Focus = "lower_body"
	FocusCore        Focus = "core"
	FocusCardio      Focus = "cardio"
	FocusFlexibility Focus = "flexibility"
)

// Valid reports whether f is a known focus area.
func (f Focus) Valid() bool {
	switch f {
	case FocusFullBody, FocusUpperBody, FocusLowerBody, FocusCore, FocusCardio, FocusFlexibility:
		return true
	}
	return false
}

// Exercise is a single movement of a strength item.
type Exercise struct {
	Name       string `json:"name" yaml:"name"`
	Sets       int    `json:"sets" yaml:"sets"`
	Reps       string `json:"reps" yaml:"reps"`
	Rest       string `json:"rest" yaml:"rest"`
	Difficulty int    `json:"difficulty" yaml:"difficulty"`
}

// Payload is the category specific content of an item. It is either Strength or Routine.
type Payload interface {
	isPayload()
}

// Strength is the payload of items made of an ordered list of exercises.
type Strength struct {
	Exercises []Exercise
}

// Routine is the payload of items described by free-text instructions.
type Routine struct {
	Instructions string
}

func (Strength) isPayload() {}
func (Routine) isPayload()  {}

// Item is a workout template from the catalog or a user-authored custom workout.
type Item struct {
	// ID is empty for catalog items and set for custom items.
	ID       string
	Name     string
	Category Category
	// Kind is the training modality. It equals Category for catalog items and tells what a custom item trains.
	Kind           Category
	Experience     Experience
	Focus          Focus
	Description    string
	Duration       int
	CaloriesBurned int
	Intensity      Intensity
	Equipment      []Equipment
	MuscleGroups   []string
	Payload        Payload
	// CreatedAt orders custom items, most recent first.
	CreatedAt time.Time
}

// Exercises returns the exercises of a strength payload or nil.
func (it Item) Exercises() []Exercise {
	if s, ok := it.Payload.(Strength); ok {
		return s.Exercises
	}
	return nil
}

// Instructions returns the instructions of a routine payload or "".
func (it Item) Instructions() string {
	if r, ok := it.Payload.(Routine); ok {
		return r.Instructions
	}
	return ""
}

// Catalog is the immutable library of predefined items.
type Catalog struct {
	items []Item
	// quick is the curated sub-catalog for quick suggestions keyed by duration in minutes.
	quick map[int][]Item
}

// NewCatalog creates a catalog from items and the duration-keyed quick sub-catalog. The slices are copied.
func NewCatalog(items []Item, quick map[int][]Item) *Catalog {
	c := &Catalog{
		items: slices.Clone(items),
		quick: make(map[int][]Item, len(quick)),
	}
	for d, bucket := range quick {
		c.quick[d] = slices.Clone(bucket)
	}
	return c
}

// Items returns a copy of the catalog items.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	return slices.Clone(c.items)
}

// QuickBucket returns a copy of the quick items of exactly the given duration.
func (c *Catalog) QuickBucket(minutes int) []Item {
	if c == nil {
		return nil
	}
	return slices.Clone(c.quick[minutes])
}

// Find returns the catalog item with the given name.
func (c *Catalog) Find(name string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	for _, it := range c.items {
		if it.Name == name {
			return it, true
		}
	}
	for _, bucket := range c.quick {
		for _, it := range bucket {
			if it.Name == name {
				return it, true
			}
		}
	}
	return Item{}, false
}

// EquipmentAccess is what the user declared about equipment: full facility access or an explicit set.
type EquipmentAccess struct {
	FullFacility bool
	Owned        []Equipment
}

// UserProfile is the immutable input of one recommendation call.
type UserProfile struct {
	Experience Experience
	Styles     []string
	Goals      []string
	// AvoidedCategories are categories the user explicitly does not want recommended.
	AvoidedCategories []Category
	TargetMinutes     int
	Equipment         EquipmentAccess
	WeightLb          float64
}

// IsZero reports whether the profile carries no usable data.
func (p *UserProfile) IsZero() bool {
	return p == nil || (p.Experience == "" && len(p.Styles) == 0 && len(p.Goals) == 0 &&
		len(p.AvoidedCategories) == 0 && p.TargetMinutes == 0 && !p.Equipment.FullFacility &&
		len(p.Equipment.Owned) == 0 && p.WeightLb == 0)
}

func (p *UserProfile) targetMinutes() int {
	if p.TargetMinutes > 0 {
		return p.TargetMinutes
	}
	return DefaultTargetMinutes
}

func (p *UserProfile) avoids(c Category) bool {
	return slices.Contains(p.AvoidedCategories, c)
}

// ScoreBreakdown records the bounded contribution of every scoring term.
type ScoreBreakdown struct {
	Duration  float64
	Equipment float64
	Style     float64
	Goal      float64
	Intensity float64
	Jitter    float64
	// Bonus is the custom and liked bonus added on top of the terms.
	Bonus float64
	// Penalty is subtracted for quick suggestions taken from a neighbouring duration bucket.
	Penalty float64
}

// Total is the unclamped sum used for ranking.
func (b ScoreBreakdown) Total() float64 {
	return b.Duration + b.Equipment + b.Style + b.Goal + b.Intensity + b.Jitter + b.Bonus - b.Penalty
}

// Recommendation is one entry of the final ordered list.
type Recommendation struct {
	Item Item
	// Score is clamped to [0, 100].
	Score       float64
	MatchReason string
	// SourceCategory is the category the item was admitted under.
	SourceCategory Category
	Breakdown      ScoreBreakdown
	// Fallback marks items from the universal fallback set.
	Fallback bool
}

func (r Recommendation) rank() float64 {
	return r.Breakdown.Total()
}
