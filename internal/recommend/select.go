package recommend

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// Result sizes per call.
const (
	FullMaxResults  = 20
	QuickMaxResults = 8
	// PerCategoryCap bounds how many items of one category are admitted.
	PerCategoryCap = 6
)

// selection is the input of the diversity selector.
type selection struct {
	custom  []Recommendation
	catalog []Recommendation
	// singleCategory disables the one-per-category guarantee.
	singleCategory bool
	maxResults     int
	exclusions     ExclusionSet
	prefs          Preferences
}

func byRank(a, b Recommendation) int {
	return cmp.Or(cmp.Compare(b.rank(), a.rank()), cmp.Compare(a.Item.Name, b.Item.Name))
}

// selectDiverse picks and orders the final list.
func selectDiverse(sel selection, rng *rand.Rand) []Recommendation {
	custom := slices.SortedStableFunc(slices.Values(sel.custom), byRank)
	if len(custom) > CustomCap {
		custom = custom[:CustomCap]
	}
	pool := slices.SortedStableFunc(slices.Values(sel.catalog), byRank)

	slots := max(sel.maxResults-len(custom), 0)
	admitted := make([]bool, len(pool))
	perCategory := make(map[Category][]Recommendation)
	taken := 0
	admit := func(i int) {
		admitted[i] = true
		c := pool[i].SourceCategory
		perCategory[c] = append(perCategory[c], pool[i])
		taken++
	}

	if !sel.singleCategory {
		for _, c := range trainingCategories {
			if taken >= slots {
				break
			}
			if i := slices.IndexFunc(pool, func(r Recommendation) bool { return r.SourceCategory == c }); i >= 0 {
				admit(i)
			}
		}
	}
	for i, r := range pool {
		if taken >= slots {
			break
		}
		if admitted[i] || len(perCategory[r.SourceCategory]) >= PerCategoryCap {
			continue
		}
		admit(i)
	}

	out := make([]Recommendation, 0, sel.maxResults+len(fallbackItems))
	out = append(out, custom...)
	out = append(out, interleave(perCategory, rng)...)
	out = appendFallbacks(out, sel.exclusions, sel.prefs)
	if len(out) > sel.maxResults {
		out = out[:sel.maxResults]
	}
	return out
}

// interleave shuffles each category and merges them round-robin in training category order.
func interleave(perCategory map[Category][]Recommendation, rng *rand.Rand) []Recommendation {
	var out []Recommendation
	longest := 0
	for _, c := range trainingCategories {
		group := perCategory[c]
		if rng != nil {
			rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		}
		longest = max(longest, len(group))
	}
	for i := range longest {
		for _, c := range trainingCategories {
			if group := perCategory[c]; i < len(group) {
				out = append(out, group[i])
			}
		}
	}
	return out
}
