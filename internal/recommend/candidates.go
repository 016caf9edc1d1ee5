package recommend

// Duration tolerances per call context. Planned sessions are matched loosely and quick requests tightly.
const (
	// FullPlanToleranceMinutes applies to strength and cardio items in full recommendations.
	FullPlanToleranceMinutes = 10
	// FullPlanFlexibilityToleranceMinutes applies to flexibility items in full recommendations.
	FullPlanFlexibilityToleranceMinutes = 15
	// QuickToleranceMinutes applies to general catalog items pulled into quick suggestions.
	QuickToleranceMinutes = 5
	// DefaultTargetMinutes is used when the profile has no target duration.
	DefaultTargetMinutes = 30
)

// candidateRequest narrows candidate generation.
type candidateRequest struct {
	target    int
	available EquipmentSet
	// only restricts generation to a single category when set.
	only Category
	// tolerance returns the allowed duration difference for a category.
	tolerance func(Category) int
	// focus restricts strength items to a body focus when set.
	focus Focus
}

// fullPlanTolerance returns the tolerance for full recommendations.
func fullPlanTolerance(c Category) int {
	if c == CategoryFlexibility {
		return FullPlanFlexibilityToleranceMinutes
	}
	return FullPlanToleranceMinutes
}

func quickTolerance(Category) int {
	return QuickToleranceMinutes
}

// categoriesFor returns the categories to generate for the profile, in interleaving order.
func categoriesFor(profile *UserProfile, only Category) []Category {
	if only != "" {
		return []Category{only}
	}
	categories := make([]Category, 0, len(trainingCategories))
	for _, c := range trainingCategories {
		if profile.avoids(c) {
			continue
		}
		categories = append(categories, c)
	}
	return categories
}

// generateCandidates pulls catalog items matching the profile's experience, the available equipment and the
// duration tolerance. Categories without matches are skipped.
func generateCandidates(profile *UserProfile, catalog *Catalog, req candidateRequest) []Item {
	if catalog == nil {
		return nil
	}
	experience := profile.Experience.orDefault()
	var candidates []Item
	for _, category := range categoriesFor(profile, req.only) {
		for _, it := range catalog.items {
			if it.Category != category || it.Experience != experience {
				continue
			}
			if req.focus != "" && !matchesFocus(it, req.focus) {
				continue
			}
			if !Compatible(it.Equipment, req.available) {
				continue
			}
			if abs(it.Duration-req.target) > req.tolerance(category) {
				continue
			}
			candidates = append(candidates, it)
		}
	}
	return candidates
}

// matchesFocus reports whether an item serves the requested focus area.
func matchesFocus(it Item, focus Focus) bool {
	switch focus {
	case FocusCardio:
		return it.Kind == CategoryCardio
	case FocusFlexibility:
		return it.Kind == CategoryFlexibility
	case FocusCore:
		return it.Focus == FocusCore
	case FocusFullBody, FocusUpperBody, FocusLowerBody:
		return it.Kind == CategoryStrength && it.Focus == focus
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
