package recommend

const (
	// quickNeighbourMinutes is the distance to the neighbouring duration buckets.
	quickNeighbourMinutes = 5
	// quickPenaltyPerMinute is subtracted per minute an item's bucket is off the requested duration.
	quickPenaltyPerMinute = 2
)

// QuickRequest asks for short suggestions of a given length and focus.
type QuickRequest struct {
	DurationMinutes int
	// Focus is optional. An empty focus accepts every item.
	Focus Focus
	// Equipment is what the user has at hand right now. Empty means nothing.
	Equipment   []Equipment
	Excluded    []string
	Preferences PreferenceSet
	MaxResults  int
}

// QuickSuggest returns suggestions for a quick session. The duration-keyed sub-catalog is searched first, then the
// neighbouring buckets with a penalty, then the general catalog within [QuickToleranceMinutes].
func (e *Engine) QuickSuggest(profile *UserProfile, catalog *Catalog, req QuickRequest) Result {
	maxResults := resultSize(req.MaxResults, QuickMaxResults)
	eff := req.Preferences.Effective(ContextQuick)
	exclusions := NewNameSet(req.Excluded...)
	if profile.IsZero() {
		return Result{Recommendations: truncate(appendFallbacks(nil, exclusions, eff), maxResults), Skipped: nil}
	}

	target := req.DurationMinutes
	if target <= 0 {
		target = profile.targetMinutes()
	}
	available := ResolveEquipment(EquipmentAccess{FullFacility: false, Owned: req.Equipment})
	in := scoreInput{profile: profile, target: target, available: available, prefs: eff, jitter: e.jitterFunc()}

	seen := NewNameSet()
	var recs []Recommendation
	keep := func(items []Item) []Item {
		var kept []Item
		for _, it := range items {
			if seen.Has(it.Name) || excluded(it.Name, exclusions, eff) || !Compatible(it.Equipment, available) {
				continue
			}
			if req.Focus != "" && !matchesFocus(it, req.Focus) {
				continue
			}
			if profile.avoids(it.Category) {
				continue
			}
			seen.Add(it.Name)
			kept = append(kept, it)
		}
		return kept
	}

	recs = append(recs, e.score(keep(catalog.QuickBucket(target)), in, 0)...)
	for _, d := range []int{target - quickNeighbourMinutes, target + quickNeighbourMinutes} {
		penalty := float64(quickPenaltyPerMinute * abs(d-target))
		recs = append(recs, e.score(keep(catalog.QuickBucket(d)), in, penalty)...)
	}
	general := generateCandidates(profile, catalog, candidateRequest{
		target:    target,
		available: available,
		only:      "",
		tolerance: quickTolerance,
		focus:     req.Focus,
	})
	recs = append(recs, e.score(keep(general), in, 0)...)

	return Result{
		Recommendations: selectDiverse(selection{
			custom:         nil,
			catalog:        recs,
			singleCategory: req.Focus == FocusCardio || req.Focus == FocusFlexibility,
			maxResults:     maxResults,
			exclusions:     exclusions,
			prefs:          eff,
		}, e.rng),
		Skipped: nil,
	}
}
