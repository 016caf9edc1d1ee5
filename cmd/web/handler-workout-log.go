package main

import (
	"net/http"
	"time"

	"github.com/myrjola/macrofit/internal/fitness"
	"github.com/myrjola/macrofit/internal/recommend"
	"github.com/myrjola/macrofit/internal/sqlite"
)

type workoutLogRequest struct {
	Name           string              `json:"name" validate:"required,max=100"`
	Kind           recommend.Category  `json:"type" validate:"required,oneof=strength cardio flexibility"`
	PerformedOn    string              `json:"performed_on" validate:"omitempty,datetime=2006-01-02"`
	Duration       int                 `json:"duration" validate:"required,min=1,max=1440"`
	CaloriesBurned int                 `json:"calories_burned" validate:"gte=0,lte=10000"`
	Intensity      recommend.Intensity `json:"intensity" validate:"omitempty,oneof=low low-moderate moderate moderate-high high very_high"` //nolint:lll // validator tag.
}

func (app *application) workoutLogPOST(w http.ResponseWriter, r *http.Request) {
	var req workoutLogRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	entry := fitness.LogEntry{
		Name:           req.Name,
		Kind:           req.Kind,
		PerformedOn:    time.Time{},
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Intensity:      req.Intensity,
	}
	if req.PerformedOn != "" {
		performedOn, err := time.Parse(sqlite.DateLayout, req.PerformedOn)
		if err != nil {
			app.badRequest(w, r, "performed_on must be a date like 2006-01-02")
			return
		}
		entry.PerformedOn = performedOn
	}
	if err := app.service.LogWorkout(r.Context(), entry); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, statusResponse{Status: "logged"})
}

func (app *application) workoutStatsGET(w http.ResponseWriter, r *http.Request) {
	days, ok := app.queryInt(w, r, "days", 0)
	if !ok {
		return
	}
	stats, err := app.service.Stats(r.Context(), days)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, stats)
}

func (app *application) workoutRecoveryGET(w http.ResponseWriter, r *http.Request) {
	advice, err := app.service.Recovery(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, advice)
}
