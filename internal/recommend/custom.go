package recommend

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/goccy/go-json"
	"github.com/myrjola/macrofit/internal/errors"
)

// CustomCap is the maximum number of custom items admitted per call.
const CustomCap = 3

// ErrCorruptCustomItem marks a custom item that could not be turned into a recommendation.
var ErrCorruptCustomItem = errors.NewSentinel("corrupt custom item")

// CustomItem is a user-authored workout as stored. Exercises holds the raw JSON exercise list.
type CustomItem struct {
	ID             string
	Name           string
	Kind           Category
	Duration       int
	CaloriesBurned int
	Intensity      Intensity
	Equipment      []Equipment
	Exercises      []byte
	Instructions   string
	CreatedAt      time.Time
}

// decode turns the stored representation into an Item.
func (c CustomItem) decode() (Item, error) {
	attrs := []slog.Attr{slog.String("custom_id", c.ID), slog.String("name", c.Name)}
	if c.Name == "" {
		return Item{}, errors.Wrap(ErrCorruptCustomItem, "empty name", attrs...)
	}
	if c.Duration <= 0 {
		return Item{}, errors.Wrap(ErrCorruptCustomItem, "non-positive duration", attrs...)
	}
	if !c.Kind.Valid() {
		return Item{}, errors.Wrap(ErrCorruptCustomItem, fmt.Sprintf("unknown kind %q", c.Kind), attrs...)
	}
	it := Item{
		ID:             c.ID,
		Name:           c.Name,
		Category:       CategoryCustom,
		Kind:           c.Kind,
		Duration:       c.Duration,
		CaloriesBurned: c.CaloriesBurned,
		Intensity:      c.Intensity,
		Equipment:      c.Equipment,
		CreatedAt:      c.CreatedAt,
	}
	if len(c.Exercises) > 0 {
		var exercises []Exercise
		if err := json.Unmarshal(c.Exercises, &exercises); err != nil {
			return Item{}, errors.Wrap(errors.Join(ErrCorruptCustomItem, err), "decode exercises", attrs...)
		}
		if len(exercises) > 0 {
			it.Payload = Strength{Exercises: exercises}
			return it, nil
		}
	}
	it.Payload = Routine{Instructions: c.Instructions}
	return it, nil
}

// mergeCustom decodes the custom items, drops the ones the user cannot do or does not want, and keeps the
// most recent CustomCap. Decoding failures are returned joined and do not stop the merge.
func mergeCustom(custom []CustomItem, available EquipmentSet, exclusions ExclusionSet, prefs Preferences) ([]Item, error) {
	var (
		items   []Item
		skipped []error
	)
	for _, c := range custom {
		it, err := c.decode()
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		if !Compatible(it.Equipment, available) || excluded(it.Name, exclusions, prefs) {
			continue
		}
		items = append(items, it)
	}
	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.Name, b.Name))
	})
	if len(items) > CustomCap {
		items = items[:CustomCap]
	}
	return items, errors.Join(skipped...)
}
