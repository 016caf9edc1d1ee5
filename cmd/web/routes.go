package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(next)))))
		}
		noSession = func(next http.Handler) http.Handler {
			return shared(app.timeout(next))
		}
		session = func(next http.Handler) http.Handler {
			return shared(noCache(app.sessionManager.LoadAndSave(app.identify(app.timeout(next)))))
		}
	)

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/slow", session(http.HandlerFunc(app.slowGET)))
	mux.Handle("GET /metrics", noSession(promhttp.Handler()))

	mux.Handle("GET /api/profile", session(http.HandlerFunc(app.profileGET)))
	mux.Handle("PUT /api/profile", session(http.HandlerFunc(app.profilePUT)))

	mux.Handle("GET /api/recommendations", session(http.HandlerFunc(app.recommendationsGET)))
	mux.Handle("POST /api/quick-suggestions", session(http.HandlerFunc(app.quickSuggestionsPOST)))
	mux.Handle("POST /api/workouts/feedback", session(http.HandlerFunc(app.workoutFeedbackPOST)))

	mux.Handle("GET /api/custom-workouts", session(http.HandlerFunc(app.customWorkoutsGET)))
	mux.Handle("POST /api/custom-workouts", session(http.HandlerFunc(app.customWorkoutPOST)))
	mux.Handle("DELETE /api/custom-workouts/{id}", session(http.HandlerFunc(app.customWorkoutDELETE)))
	mux.Handle("GET /custom-workouts/{id}", session(http.HandlerFunc(app.customWorkoutGET)))

	mux.Handle("POST /api/workouts/log", session(http.HandlerFunc(app.workoutLogPOST)))
	mux.Handle("GET /api/workouts/stats", session(http.HandlerFunc(app.workoutStatsGET)))
	mux.Handle("GET /api/workouts/recovery", session(http.HandlerFunc(app.workoutRecoveryGET)))

	mux.Handle("GET /api/exercises/{name}/tips", noSession(http.HandlerFunc(app.exerciseTipsGET)))
	mux.Handle("GET /api/progression", session(http.HandlerFunc(app.progressionGET)))

	mux.Handle("POST /api/foods/suggestions", session(http.HandlerFunc(app.foodSuggestionsPOST)))
	mux.Handle("POST /api/foods/feedback", session(http.HandlerFunc(app.foodFeedbackPOST)))
	mux.Handle("POST /api/foods/log", session(http.HandlerFunc(app.foodLogPOST)))
	mux.Handle("GET /api/foods/daily", session(http.HandlerFunc(app.foodDailyGET)))
	mux.Handle("DELETE /api/foods/daily", session(http.HandlerFunc(app.foodDailyDELETE)))

	mux.Handle("/", noSession(http.HandlerFunc(app.notFound)))

	return mux, nil
}
