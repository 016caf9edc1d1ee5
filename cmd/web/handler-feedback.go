package main

import (
	"net/http"

	"github.com/myrjola/macrofit/internal/fitness"
)

type workoutFeedbackRequest struct {
	WorkoutName string `json:"workout_name" validate:"required,max=100"`
	Liked       *bool  `json:"liked" validate:"required"`
	Context     string `json:"context" validate:"omitempty,oneof=plan quick"`
	Global      bool   `json:"global"`
}

type foodFeedbackRequest struct {
	FoodName string `json:"food_name" validate:"required,max=100"`
	Liked    *bool  `json:"liked" validate:"required"`
	MealType string `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner snacks"`
	Global   bool   `json:"global"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (app *application) workoutFeedbackPOST(w http.ResponseWriter, r *http.Request) {
	var req workoutFeedbackRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	if err := app.service.SaveFeedback(r.Context(), fitness.Feedback{
		Domain:   fitness.DomainWorkout,
		ItemName: req.WorkoutName,
		Liked:    *req.Liked,
		Context:  req.Context,
		Global:   req.Global,
	}); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, statusResponse{Status: "saved"})
}

func (app *application) foodFeedbackPOST(w http.ResponseWriter, r *http.Request) {
	var req foodFeedbackRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	if err := app.service.SaveFeedback(r.Context(), fitness.Feedback{
		Domain:   fitness.DomainFood,
		ItemName: req.FoodName,
		Liked:    *req.Liked,
		Context:  req.MealType,
		Global:   req.Global,
	}); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, statusResponse{Status: "saved"})
}
