package recommend_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/macrofit/internal/recommend"
)

func keys(s recommend.NameSet) []string {
	return slices.Sorted(func(yield func(string) bool) {
		for k := range s {
			if !yield(k) {
				return
			}
		}
	})
}

func TestPreferenceSet_Effective(t *testing.T) {
	prefs := recommend.PreferenceSet{
		Contexts: map[string]recommend.Preferences{
			"breakfast": {
				Liked:    recommend.NewNameSet("Oatmeal", "Greek Yogurt"),
				Disliked: recommend.NewNameSet("Bacon"),
			},
		},
		Global: recommend.Preferences{
			Liked:    recommend.NewNameSet("Banana"),
			Disliked: recommend.NewNameSet("greek yogurt"),
		},
	}

	tests := []struct {
		name         string
		context      string
		wantLiked    []string
		wantDisliked []string
	}{
		{
			name:         "global dislike beats context like",
			context:      "breakfast",
			wantLiked:    []string{"banana", "oatmeal"},
			wantDisliked: []string{"bacon", "greek yogurt"},
		},
		{
			name:         "unknown context gets global preferences",
			context:      "dinner",
			wantLiked:    []string{"banana"},
			wantDisliked: []string{"greek yogurt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prefs.Effective(tt.context)
			if diff := cmp.Diff(tt.wantLiked, keys(got.Liked)); diff != "" {
				t.Errorf("liked mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantDisliked, keys(got.Disliked)); diff != "" {
				t.Errorf("disliked mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNameSet_CaseInsensitive(t *testing.T) {
	s := recommend.NewNameSet("  Morning Yoga ", "")
	if !s.Has("morning yoga") || !s.Has("MORNING YOGA") {
		t.Errorf("expected case insensitive match")
	}
	if len(s) != 1 {
		t.Errorf("empty names should be ignored, got %d entries", len(s))
	}
}
