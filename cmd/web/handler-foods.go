package main

import (
	"net/http"
	"time"

	"github.com/myrjola/macrofit/internal/fitness"
	"github.com/myrjola/macrofit/internal/recommend"
	"github.com/myrjola/macrofit/internal/sqlite"
)

type foodSuggestionResponse struct {
	recommend.Food

	Score int `json:"score"`
}

type macroNeedsResponse struct {
	Protein bool `json:"protein"`
	Carbs   bool `json:"carbs"`
	Fat     bool `json:"fat"`
}

type foodSuggestionsResponse struct {
	MealType          string                   `json:"meal_type"`
	RemainingCalories float64                  `json:"remaining_calories"`
	MacroNeeds        macroNeedsResponse       `json:"macro_needs"`
	Suggestions       []foodSuggestionResponse `json:"suggestions"`
}

func (app *application) foodSuggestionsPOST(w http.ResponseWriter, r *http.Request) {
	var in fitness.FoodInput
	if !app.decodeJSON(w, r, &in) {
		return
	}
	res, err := app.service.FoodSuggestions(r.Context(), in)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	out := make([]foodSuggestionResponse, 0, len(res.Suggestions))
	for _, s := range res.Suggestions {
		out = append(out, foodSuggestionResponse{Food: s.Food, Score: s.Score})
	}
	app.writeJSON(w, r, http.StatusOK, foodSuggestionsResponse{
		MealType:          res.MealType,
		RemainingCalories: res.RemainingCalories,
		MacroNeeds:        macroNeedsResponse(res.Needs),
		Suggestions:       out,
	})
}

type mealLogRequest struct {
	MealType string  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snacks"`
	FoodName string  `json:"food_name" validate:"required,max=100"`
	Servings float64 `json:"servings" validate:"gte=0,lte=50"`
	EatenOn  string  `json:"eaten_on" validate:"omitempty,datetime=2006-01-02"`
	Calories float64 `json:"calories" validate:"gte=0,lte=10000"`
	Protein  float64 `json:"protein" validate:"gte=0,lte=1000"`
	Carbs    float64 `json:"carbohydrates" validate:"gte=0,lte=1000"`
	Fat      float64 `json:"fat" validate:"gte=0,lte=1000"`
}

type mealLogResponse struct {
	Entry fitness.MealEntry      `json:"entry"`
	Day   fitness.DailyNutrition `json:"day"`
}

func (app *application) foodLogPOST(w http.ResponseWriter, r *http.Request) {
	var req mealLogRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	in := fitness.MealInput{
		MealType: req.MealType,
		FoodName: req.FoodName,
		Servings: req.Servings,
		EatenOn:  time.Time{},
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
	}
	if req.EatenOn != "" {
		eatenOn, err := time.Parse(sqlite.DateLayout, req.EatenOn)
		if err != nil {
			app.badRequest(w, r, "eaten_on must be a date like 2006-01-02")
			return
		}
		in.EatenOn = eatenOn
	}
	entry, err := app.service.LogMeal(r.Context(), in)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	day, err := app.service.DailyNutrition(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, mealLogResponse{Entry: entry, Day: day})
}

func (app *application) foodDailyGET(w http.ResponseWriter, r *http.Request) {
	day, err := app.service.DailyNutrition(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, day)
}

func (app *application) foodDailyDELETE(w http.ResponseWriter, r *http.Request) {
	if err := app.service.ResetDay(r.Context()); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, statusResponse{Status: "reset"})
}
