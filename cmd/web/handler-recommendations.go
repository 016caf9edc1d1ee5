package main

import (
	"net/http"
	"time"

	"github.com/myrjola/macrofit/internal/fitness"
	"github.com/myrjola/macrofit/internal/recommend"
	"github.com/myrjola/macrofit/internal/sqlite"
)

const (
	sessionShownKey   = "shown"
	sessionShownOnKey = "shown_on"
)

type workoutResponse struct {
	ID             string                `json:"id,omitempty"`
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	Duration       int                   `json:"duration"`
	CaloriesBurned int                   `json:"calories_burned"`
	Equipment      []recommend.Equipment `json:"equipment"`
	Intensity      recommend.Intensity   `json:"intensity"`
	MuscleGroups   []string              `json:"muscle_groups,omitempty"`
	Exercises      []recommend.Exercise  `json:"exercises,omitempty"`
	Instructions   string                `json:"instructions,omitempty"`
}

type recommendationResponse struct {
	Type        recommend.Category `json:"type"`
	Workout     workoutResponse    `json:"workout"`
	MatchScore  float64            `json:"match_score"`
	MatchReason string             `json:"match_reason"`
	Fallback    bool               `json:"fallback,omitempty"`
}

type recommendationsResponse struct {
	Recommendations []recommendationResponse `json:"recommendations"`
}

func newRecommendationsResponse(recs []recommend.Recommendation) recommendationsResponse {
	out := make([]recommendationResponse, 0, len(recs))
	for _, rec := range recs {
		it := rec.Item
		equipment := it.Equipment
		if equipment == nil {
			equipment = []recommend.Equipment{}
		}
		out = append(out, recommendationResponse{
			Type: rec.SourceCategory,
			Workout: workoutResponse{
				ID:             it.ID,
				Name:           it.Name,
				Description:    it.Description,
				Duration:       it.Duration,
				CaloriesBurned: it.CaloriesBurned,
				Equipment:      equipment,
				Intensity:      it.Intensity,
				MuscleGroups:   it.MuscleGroups,
				Exercises:      it.Exercises(),
				Instructions:   it.Instructions(),
			},
			MatchScore:  rec.Score,
			MatchReason: rec.MatchReason,
			Fallback:    rec.Fallback,
		})
	}
	return recommendationsResponse{Recommendations: out}
}

// shownToday returns the names recommended earlier today in this session.
func (app *application) shownToday(r *http.Request) []string {
	ctx := r.Context()
	if app.sessionManager.GetString(ctx, sessionShownOnKey) != time.Now().Format(sqlite.DateLayout) {
		return nil
	}
	shown, _ := app.sessionManager.Get(ctx, sessionShownKey).([]string)
	return shown
}

func (app *application) rememberShown(r *http.Request, recs []recommend.Recommendation) {
	ctx := r.Context()
	shown := appendShown(app.shownToday(r), recs)
	app.sessionManager.Put(ctx, sessionShownOnKey, time.Now().Format(sqlite.DateLayout))
	app.sessionManager.Put(ctx, sessionShownKey, shown)
}

// appendShown adds the recommended names missing from shown, ignoring case.
func appendShown(shown []string, recs []recommend.Recommendation) []string {
	seen := recommend.NewNameSet(shown...)
	for _, rec := range recs {
		if seen.Has(rec.Item.Name) {
			continue
		}
		seen.Add(rec.Item.Name)
		shown = append(shown, rec.Item.Name)
	}
	return shown
}

// recommendationsGET returns the full recommendation list. With exclude_shown=true the workouts shown earlier today
// in this session are left out.
func (app *application) recommendationsGET(w http.ResponseWriter, r *http.Request) {
	maxResults, ok := app.queryInt(w, r, "max", 0)
	if !ok {
		return
	}
	var exclusions []string
	if r.URL.Query().Get("exclude_shown") == "true" {
		exclusions = app.shownToday(r)
	}
	recs, err := app.service.Recommend(r.Context(), exclusions, maxResults)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.rememberShown(r, recs)
	app.writeJSON(w, r, http.StatusOK, newRecommendationsResponse(recs))
}

func (app *application) quickSuggestionsPOST(w http.ResponseWriter, r *http.Request) {
	var in fitness.QuickInput
	if !app.decodeJSON(w, r, &in) {
		return
	}
	recs, err := app.service.QuickSuggest(r.Context(), in)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, newRecommendationsResponse(recs))
}
