package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/macrofit/internal/errors"
)

const maxSlowDelay = 10 * time.Second

type healthResponse struct {
	Status   string `json:"status"`
	Workouts int    `json:"workouts"`
}

// healthy reports whether the database answers and how many catalog workouts are served.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	if err := app.service.Ping(r.Context()); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "health check failed", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Workouts: 0})
		return
	}
	app.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:   "ok",
		Workouts: len(app.service.Library().Workouts.Items()),
	})
}

type slowResponse struct {
	Status string `json:"status"`
	Slept  string `json:"slept"`
}

// slowGET waits for the delay query parameter, e.g. delay=3s, before answering. It exists to exercise the
// request timeout.
func (app *application) slowGET(w http.ResponseWriter, r *http.Request) {
	delay := time.Duration(0)
	if raw := r.URL.Query().Get("delay"); raw != "" {
		var err error
		if delay, err = time.ParseDuration(raw); err != nil || delay < 0 || delay > maxSlowDelay {
			app.badRequest(w, r, "delay must be a duration between 0s and 10s")
			return
		}
	}
	time.Sleep(delay)
	app.writeJSON(w, r, http.StatusOK, slowResponse{Status: "completed", Slept: delay.String()})
}
