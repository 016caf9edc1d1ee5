package recommend

import (
	"math/rand/v2"
	"time"
)

// Engine runs the recommendation pipeline. It is not safe for concurrent use because it owns its random source.
type Engine struct {
	rng    *rand.Rand
	jitter bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for jitter and shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithoutJitter disables the random scoring term.
func WithoutJitter() Option {
	return func(e *Engine) {
		e.jitter = false
	}
}

// NewEngine creates an Engine. Without [WithRand] it uses a time seeded source.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rng: nil, jitter: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano()) //nolint:gosec // not security sensitive.
		e.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return e
}

// Result is the outcome of one engine call.
type Result struct {
	Recommendations []Recommendation
	// Skipped joins the errors of custom items that could not be used. It is nil when nothing was skipped.
	Skipped error
}

func (e *Engine) jitterFunc() func() float64 {
	if !e.jitter {
		return nil
	}
	return e.rng.Float64
}

func resultSize(maxResults, def int) int {
	if maxResults <= 0 {
		return def
	}
	return maxResults
}

// Recommend returns the full recommendation list for profile.
//
// A nil or empty profile yields the fallback set only.
func (e *Engine) Recommend(
	profile *UserProfile,
	catalog *Catalog,
	custom []CustomItem,
	prefs PreferenceSet,
	exclusions ExclusionSet,
	maxResults int,
) Result {
	maxResults = resultSize(maxResults, FullMaxResults)
	eff := prefs.Effective(ContextPlan)
	if profile.IsZero() {
		return Result{Recommendations: truncate(appendFallbacks(nil, exclusions, eff), maxResults), Skipped: nil}
	}

	available := ResolveEquipment(profile.Equipment)
	target := profile.targetMinutes()
	in := scoreInput{profile: profile, target: target, available: available, prefs: eff, jitter: e.jitterFunc()}

	candidates := generateCandidates(profile, catalog, candidateRequest{
		target:    target,
		available: available,
		only:      "",
		tolerance: fullPlanTolerance,
		focus:     "",
	})
	candidates = filterExcluded(candidates, exclusions, eff)
	customItems, skipped := mergeCustom(custom, available, exclusions, eff)
	candidates = withoutNames(candidates, customItems)

	recs := selectDiverse(selection{
		custom:         e.score(customItems, in, 0),
		catalog:        e.score(candidates, in, 0),
		singleCategory: false,
		maxResults:     maxResults,
		exclusions:     exclusions,
		prefs:          eff,
	}, e.rng)
	return Result{Recommendations: recs, Skipped: skipped}
}

// score turns items into recommendations. penalty is subtracted from every item.
func (e *Engine) score(items []Item, in scoreInput, penalty float64) []Recommendation {
	recs := make([]Recommendation, 0, len(items))
	for _, it := range items {
		b := scoreItem(it, in)
		b.Penalty = penalty
		recs = append(recs, Recommendation{
			Item:           it,
			Score:          finalScore(b),
			MatchReason:    matchReason(it, b, in),
			SourceCategory: it.Category,
			Breakdown:      b,
			Fallback:       false,
		})
	}
	return recs
}

// withoutNames drops the items sharing a name with one of taken. A custom workout named like a catalog entry
// replaces it.
func withoutNames(items, taken []Item) []Item {
	if len(taken) == 0 {
		return items
	}
	names := NewNameSet()
	for _, it := range taken {
		names.Add(it.Name)
	}
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if !names.Has(it.Name) {
			kept = append(kept, it)
		}
	}
	return kept
}

func truncate(recs []Recommendation, n int) []Recommendation {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
}
