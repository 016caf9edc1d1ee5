package recommend_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/macrofit/internal/recommend"
)

func TestResolveEquipment(t *testing.T) {
	tests := []struct {
		name   string
		access recommend.EquipmentAccess
		want   []recommend.Equipment
	}{
		{
			name:   "nothing declared",
			access: recommend.EquipmentAccess{FullFacility: false, Owned: nil},
			want:   []recommend.Equipment{"none"},
		},
		{
			name:   "aliases normalise",
			access: recommend.EquipmentAccess{FullFacility: false, Owned: []recommend.Equipment{"yoga_mat", "Dumbbell"}},
			want:   []recommend.Equipment{"dumbbells", "mat", "none"},
		},
		{
			name:   "barbell unlocks compound movements",
			access: recommend.EquipmentAccess{FullFacility: false, Owned: []recommend.Equipment{"barbell"}},
			want:   []recommend.Equipment{"barbell", "full_facility_lite", "none"},
		},
		{
			name:   "unknown tags are ignored",
			access: recommend.EquipmentAccess{FullFacility: false, Owned: []recommend.Equipment{"trampoline"}},
			want:   []recommend.Equipment{"none"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recommend.ResolveEquipment(tt.access).Sorted()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveEquipment() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveEquipment_FullFacility(t *testing.T) {
	got := recommend.ResolveEquipment(recommend.EquipmentAccess{FullFacility: true, Owned: nil})
	for _, tag := range []recommend.Equipment{"none", "full_facility_lite", "barbell", "cable_machine", "treadmill", "mat"} {
		if !got.Has(tag) {
			t.Errorf("facility access is missing %s", tag)
		}
	}
	if got.Has("pool") {
		t.Errorf("facility access should not include a pool")
	}
}

func TestCompatible(t *testing.T) {
	barbellOwner := recommend.ResolveEquipment(recommend.EquipmentAccess{
		FullFacility: false,
		Owned:        []recommend.Equipment{"barbell"},
	})
	dumbbellOwner := recommend.ResolveEquipment(recommend.EquipmentAccess{
		FullFacility: false,
		Owned:        []recommend.Equipment{"dumbbells"},
	})

	tests := []struct {
		name      string
		required  []recommend.Equipment
		available recommend.EquipmentSet
		want      bool
	}{
		{name: "empty requirement", required: nil, available: dumbbellOwner, want: true},
		{name: "bodyweight", required: []recommend.Equipment{"none"}, available: dumbbellOwner, want: true},
		{name: "owned", required: []recommend.Equipment{"dumbbells"}, available: dumbbellOwner, want: true},
		{name: "bench through lite access", required: []recommend.Equipment{"barbell", "bench"}, available: barbellOwner, want: true},
		{name: "bench without lite access", required: []recommend.Equipment{"dumbbells", "bench"}, available: dumbbellOwner, want: false},
		{name: "machine", required: []recommend.Equipment{"cable_machine"}, available: barbellOwner, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommend.Compatible(tt.required, tt.available); got != tt.want {
				t.Errorf("Compatible() = %v, want %v", got, tt.want)
			}
		})
	}
}
