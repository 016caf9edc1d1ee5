package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/myrjola/macrofit/internal/fitness"
)

func Test_application_customWorkouts(t *testing.T) {
	ctx := t.Context()
	client := startServer(t)
	saveProfile(t, client)

	input := fitness.CustomWorkoutInput{
		Name: "Garage Day",
		Kind: "",
		Exercises: []fitness.CustomExerciseInput{
			{Name: "Squat", Sets: 3, Reps: "10", Rest: "60s", Difficulty: 2, Equipment: nil, MuscleGroups: []string{"quads"}},
			{Name: "Push-up", Sets: 3, Reps: "12", Rest: "60s", Difficulty: 2, Equipment: nil, MuscleGroups: []string{"chest"}},
		},
		Instructions: "",
	}

	var created fitness.CustomWorkout
	t.Run("Create", func(t *testing.T) {
		status, err := client.JSON(ctx, http.MethodPost, "/api/custom-workouts", input, &created)
		if err != nil {
			t.Fatalf("create custom workout: %v", err)
		}
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want %d", status, http.StatusCreated)
		}
		if created.ID == "" || created.Name != input.Name || len(created.Exercises) != 2 {
			t.Errorf("unexpected created workout %+v", created)
		}
		if !strings.HasPrefix(created.Instructions, "## Garage Day") {
			t.Errorf("instructions were not written: %q", created.Instructions)
		}
	})

	t.Run("Reject empty exercises", func(t *testing.T) {
		status, err := client.JSON(ctx, http.MethodPost, "/api/custom-workouts",
			map[string]any{"name": "Nothing", "exercises": []any{}}, nil)
		if err != nil {
			t.Fatalf("create custom workout: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})

	t.Run("List", func(t *testing.T) {
		var resp customWorkoutsResponse
		if _, err := client.JSON(ctx, http.MethodGet, "/api/custom-workouts", nil, &resp); err != nil {
			t.Fatalf("list custom workouts: %v", err)
		}
		if len(resp.CustomWorkouts) != 1 || resp.CustomWorkouts[0].ID != created.ID {
			t.Errorf("unexpected custom workouts %+v", resp.CustomWorkouts)
		}
	})

	t.Run("Recommended first", func(t *testing.T) {
		var resp recommendationsResponse
		if _, err := client.JSON(ctx, http.MethodGet, "/api/recommendations", nil, &resp); err != nil {
			t.Fatalf("get recommendations: %v", err)
		}
		if len(resp.Recommendations) == 0 || resp.Recommendations[0].Workout.ID != created.ID {
			t.Errorf("custom workout is not the first recommendation: %v", names(resp))
		}
	})

	t.Run("Page", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/custom-workouts/"+created.ID)
		if err != nil {
			t.Fatalf("get custom workout page: %v", err)
		}
		if got := doc.Find("h1").Text(); got != "Garage Day" {
			t.Errorf("h1 = %q, want Garage Day", got)
		}
		if got := doc.Find("section.instructions ol li").Length(); got != 2 {
			t.Errorf("rendered %d exercise list items, want 2", got)
		}
		if got := doc.Find("section.instructions strong").First().Text(); got != "Squat" {
			t.Errorf("first exercise = %q, want Squat", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		status, err := client.JSON(ctx, http.MethodDelete, "/api/custom-workouts/"+created.ID, nil, nil)
		if err != nil {
			t.Fatalf("delete custom workout: %v", err)
		}
		if status != http.StatusNoContent {
			t.Errorf("status = %d, want %d", status, http.StatusNoContent)
		}
		if status, err = client.JSON(ctx, http.MethodDelete, "/api/custom-workouts/"+created.ID, nil, nil); err != nil {
			t.Fatalf("delete custom workout again: %v", err)
		}
		if status != http.StatusNotFound {
			t.Errorf("second delete status = %d, want %d", status, http.StatusNotFound)
		}
		resp, err := client.Get(ctx, "/custom-workouts/"+created.ID)
		if err != nil {
			t.Fatalf("get deleted page: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("deleted page status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})
}
