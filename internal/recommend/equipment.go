package recommend

import (
	"slices"
	"strings"
)

// Equipment is a normalised equipment tag.
type Equipment string

const (
	EquipmentNone Equipment = "none"
	// EquipmentFullFacilityLite is unlocked by owning a barbell or a rack and satisfies compound-movement
	// requirements that otherwise need a gym.
	EquipmentFullFacilityLite Equipment = "full_facility_lite"
)

// EquipmentSet is the set of tags a user can use.
type EquipmentSet map[Equipment]struct{}

// Has reports whether tag is in the set.
func (s EquipmentSet) Has(tag Equipment) bool {
	_, ok := s[tag]
	return ok
}

// Sorted returns the tags in lexical order.
func (s EquipmentSet) Sorted() []Equipment {
	tags := make([]Equipment, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

func (s EquipmentSet) add(tags ...Equipment) {
	for _, tag := range tags {
		s[tag] = struct{}{}
	}
}

//nolint:gochecknoglobals // static lookup tables.
var (
	freeWeights    = []Equipment{"dumbbells", "barbell", "kettlebell", "bench", "squat_rack", "dip_station", "pull_up_bar", "mat", "resistance_bands"}
	cableMachines  = []Equipment{"cable_machine", "leg_press", "leg_curl_machine"}
	cardioMachines = []Equipment{"treadmill", "exercise_bike", "elliptical", "rowing_machine"}

	// facilityOnly are tags that in practice require a gym. Matching them for a facility user earns the premium bonus.
	facilityOnly = slices.Concat(cableMachines, cardioMachines, []Equipment{"squat_rack", "dip_station", "pool"})

	// liteSubstitutes are requirements satisfied by EquipmentFullFacilityLite.
	liteSubstitutes = []Equipment{"bench", "squat_rack"}

	// ownedEquipment maps what a user may declare to the tags it unlocks. EquipmentNone is always added.
	ownedEquipment = map[string][]Equipment{
		"none":             nil,
		"bodyweight":       nil,
		"dumbbells":        {"dumbbells"},
		"dumbbell":         {"dumbbells"},
		"barbell":          {"barbell", EquipmentFullFacilityLite},
		"squat_rack":       {"squat_rack", EquipmentFullFacilityLite},
		"bench":            {"bench"},
		"kettlebell":       {"kettlebell"},
		"mat":              {"mat"},
		"yoga_mat":         {"mat"},
		"resistance_bands": {"resistance_bands"},
		"pull_up_bar":      {"pull_up_bar"},
		"dip_station":      {"dip_station"},
		"exercise_bike":    {"exercise_bike"},
		"elliptical":       {"elliptical"},
		"rowing_machine":   {"rowing_machine"},
		"treadmill":        {"treadmill"},
		"cable_machine":    {"cable_machine"},
		"leg_press":        {"leg_press"},
		"leg_curl_machine": {"leg_curl_machine"},
		"pool":             {"pool"},
		"jump_rope":        {"jump_rope"},
		"stability_ball":   {"stability_ball"},
		"foam_roller":      {"foam_roller"},
	}
)

// ResolveEquipment expands what the user declared into the set of usable tags. The result always contains
// EquipmentNone. Unknown tags are ignored.
func ResolveEquipment(access EquipmentAccess) EquipmentSet {
	set := EquipmentSet{EquipmentNone: {}}
	if access.FullFacility {
		set.add(freeWeights...)
		set.add(cableMachines...)
		set.add(cardioMachines...)
		set.add(EquipmentFullFacilityLite)
	}
	for _, owned := range access.Owned {
		key := strings.ToLower(strings.TrimSpace(string(owned)))
		if tags, ok := ownedEquipment[key]; ok {
			set.add(tags...)
		}
	}
	return set
}

// Compatible reports whether every required tag is available. An empty requirement or one containing only
// EquipmentNone is always compatible.
func Compatible(required []Equipment, available EquipmentSet) bool {
	for _, tag := range required {
		if tag == EquipmentNone || available.Has(tag) {
			continue
		}
		if available.Has(EquipmentFullFacilityLite) && slices.Contains(liteSubstitutes, tag) {
			continue
		}
		return false
	}
	return true
}

// equipmentFree reports whether required needs nothing.
func equipmentFree(required []Equipment) bool {
	for _, tag := range required {
		if tag != EquipmentNone {
			return false
		}
	}
	return true
}

// needsFacility reports whether any required tag is facility-only.
func needsFacility(required []Equipment) bool {
	for _, tag := range required {
		if slices.Contains(facilityOnly, tag) {
			return true
		}
	}
	return false
}
