package recommend

import (
	"strings"
)

// Preference contexts for workouts. Food preferences use the meal type as context.
const (
	ContextPlan  = "plan"
	ContextQuick = "quick"
)

// NameSet is a case-insensitive set of item names.
type NameSet map[string]struct{}

// NewNameSet creates a set containing names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	s.Add(names...)
	return s
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add inserts names into the set.
func (s NameSet) Add(names ...string) {
	for _, n := range names {
		if key := normalizeName(n); key != "" {
			s[key] = struct{}{}
		}
	}
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[normalizeName(name)]
	return ok
}

// ExclusionSet holds names the caller wants omitted from a single call, for example workouts already shown today.
type ExclusionSet = NameSet

// Preferences are the liked and disliked item names of one context.
type Preferences struct {
	Liked    NameSet
	Disliked NameSet
}

// PreferenceSet holds per-context preferences and global preferences that apply everywhere.
type PreferenceSet struct {
	Contexts map[string]Preferences
	Global   Preferences
}

// Effective merges the context preferences with the global ones. A global dislike always wins over a like.
func (p PreferenceSet) Effective(context string) Preferences {
	ctxPrefs := p.Contexts[context]
	eff := Preferences{Liked: NameSet{}, Disliked: NameSet{}}
	for _, s := range []NameSet{ctxPrefs.Disliked, p.Global.Disliked} {
		for name := range s {
			eff.Disliked[name] = struct{}{}
		}
	}
	for _, s := range []NameSet{ctxPrefs.Liked, p.Global.Liked} {
		for name := range s {
			if !eff.Disliked.Has(name) {
				eff.Liked[name] = struct{}{}
			}
		}
	}
	return eff
}

// excluded reports whether name must never be returned.
func excluded(name string, exclusions ExclusionSet, prefs Preferences) bool {
	return exclusions.Has(name) || prefs.Disliked.Has(name)
}

// filterExcluded drops excluded and disliked items before scoring.
func filterExcluded(items []Item, exclusions ExclusionSet, prefs Preferences) []Item {
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if excluded(it.Name, exclusions, prefs) {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}
