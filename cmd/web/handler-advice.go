package main

import (
	"net/http"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/fitness"
	"github.com/myrjola/macrofit/internal/insights"
	"github.com/myrjola/macrofit/internal/recommend"
)

type progressionResponse struct {
	Level      recommend.Experience `json:"level"`
	Type       recommend.Category   `json:"type"`
	Suggestion string               `json:"suggestion"`
}

func (app *application) exerciseTipsGET(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, insights.ExerciseTips(r.PathValue("name")))
}

// progressionGET suggests how to progress. The level defaults to the profile experience.
func (app *application) progressionGET(w http.ResponseWriter, r *http.Request) {
	level := recommend.Experience(r.URL.Query().Get("level"))
	kind := recommend.Category(r.URL.Query().Get("type"))
	if kind != "" && !kind.Valid() {
		app.badRequest(w, r, "type must be strength, cardio or flexibility")
		return
	}
	if level == "" {
		p, err := app.service.Profile(r.Context())
		switch {
		case err == nil:
			level = p.Experience
		case !errors.Is(err, fitness.ErrNotFound):
			app.serviceError(w, r, err)
			return
		}
	}
	if level == "" {
		level = recommend.ExperienceBeginner
	}
	if kind == "" {
		kind = recommend.CategoryStrength
	}
	app.writeJSON(w, r, http.StatusOK, progressionResponse{
		Level:      level,
		Type:       kind,
		Suggestion: insights.Progression(level, kind),
	})
}
