package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/myrjola/macrofit/internal/insights"
	"github.com/myrjola/macrofit/internal/sqlite"
)

func Test_application_workoutLog(t *testing.T) {
	ctx := t.Context()
	client := startServer(t)
	today := time.Now().Format(sqlite.DateLayout)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name: "cardio with calories",
			body: map[string]any{
				"name": "Morning Run", "type": "cardio", "performed_on": today, "duration": 30,
				"calories_burned": 300, "intensity": "high",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "strength with estimated calories",
			body:       map[string]any{"name": "Upper Body", "type": "strength", "duration": 45},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid date",
			body:       map[string]any{"name": "Yoga", "type": "flexibility", "duration": 20, "performed_on": "yesterday"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing duration",
			body:       map[string]any{"name": "Yoga", "type": "flexibility"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := client.JSON(ctx, http.MethodPost, "/api/workouts/log", tt.body, nil)
			if err != nil {
				t.Fatalf("log workout: %v", err)
			}
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
		})
	}

	t.Run("Stats", func(t *testing.T) {
		var stats insights.Stats
		status, err := client.JSON(ctx, http.MethodGet, "/api/workouts/stats?days=7", nil, &stats)
		if err != nil {
			t.Fatalf("get stats: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if stats.TotalWorkouts != 2 || stats.TotalDuration != 75 {
			t.Errorf("unexpected stats %+v", stats)
		}
		if stats.TotalCalories <= 300 {
			t.Errorf("total calories %d do not include the estimate", stats.TotalCalories)
		}
	})

	t.Run("Recovery", func(t *testing.T) {
		var advice insights.RecoveryAdvice
		if _, err := client.JSON(ctx, http.MethodGet, "/api/workouts/recovery", nil, &advice); err != nil {
			t.Fatalf("get recovery: %v", err)
		}
		if advice.RestNeeded || advice.Message != "You're good to continue with your workout routine" {
			t.Errorf("unexpected recovery advice %+v", advice)
		}
	})
}

func Test_application_advice(t *testing.T) {
	ctx := t.Context()
	client := startServer(t)

	t.Run("Tips", func(t *testing.T) {
		var tips insights.Tips
		if _, err := client.JSON(ctx, http.MethodGet, "/api/exercises/Push-Ups/tips", nil, &tips); err != nil {
			t.Fatalf("get tips: %v", err)
		}
		if len(tips.FormTips) == 0 || tips.FormTips[0] != "Keep body in straight line" {
			t.Errorf("unexpected tips %+v", tips)
		}
	})

	t.Run("Progression", func(t *testing.T) {
		var resp progressionResponse
		status, err := client.JSON(ctx, http.MethodGet, "/api/progression?level=intermediate&type=cardio", nil, &resp)
		if err != nil {
			t.Fatalf("get progression: %v", err)
		}
		if status != http.StatusOK || resp.Suggestion != insights.Progression("intermediate", "cardio") {
			t.Errorf("unexpected progression %d %+v", status, resp)
		}
	})

	t.Run("Progression defaults to beginner strength", func(t *testing.T) {
		var resp progressionResponse
		if _, err := client.JSON(ctx, http.MethodGet, "/api/progression", nil, &resp); err != nil {
			t.Fatalf("get progression: %v", err)
		}
		if resp.Level != "beginner" || resp.Type != "strength" {
			t.Errorf("unexpected defaults %+v", resp)
		}
	})

	t.Run("Invalid type", func(t *testing.T) {
		status, err := client.JSON(ctx, http.MethodGet, "/api/progression?type=swimming", nil, nil)
		if err != nil {
			t.Fatalf("get progression: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
		}
	})
}
