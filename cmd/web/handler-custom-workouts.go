package main

import (
	"net/http"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/fitness"
)

type customWorkoutsResponse struct {
	CustomWorkouts []fitness.CustomWorkout `json:"custom_workouts"`
}

func (app *application) customWorkoutsGET(w http.ResponseWriter, r *http.Request) {
	workouts, err := app.service.CustomWorkouts(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	if workouts == nil {
		workouts = []fitness.CustomWorkout{}
	}
	app.writeJSON(w, r, http.StatusOK, customWorkoutsResponse{CustomWorkouts: workouts})
}

func (app *application) customWorkoutPOST(w http.ResponseWriter, r *http.Request) {
	var in fitness.CustomWorkoutInput
	if !app.decodeJSON(w, r, &in) {
		return
	}
	created, err := app.service.CreateCustomWorkout(r.Context(), in)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/custom-workouts/"+created.ID)
	app.writeJSON(w, r, http.StatusCreated, created)
}

func (app *application) customWorkoutDELETE(w http.ResponseWriter, r *http.Request) {
	if err := app.service.DeleteCustomWorkout(r.Context(), r.PathValue("id")); err != nil {
		app.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type customWorkoutTemplateData struct {
	BaseTemplateData
	Workout fitness.CustomWorkout
}

// customWorkoutGET renders a printable page of a custom workout with its markdown instructions.
func (app *application) customWorkoutGET(w http.ResponseWriter, r *http.Request) {
	workout, err := app.service.CustomWorkout(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, fitness.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "custom-workout", customWorkoutTemplateData{
		BaseTemplateData: newBaseTemplateData(workout.Name),
		Workout:          workout,
	})
}
