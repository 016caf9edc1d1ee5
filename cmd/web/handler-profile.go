package main

import (
	"net/http"

	"github.com/myrjola/macrofit/internal/fitness"
)

func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	p, err := app.service.Profile(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, p)
}

func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	var p fitness.Profile
	if !app.decodeJSON(w, r, &p) {
		return
	}
	if err := app.service.SaveProfile(r.Context(), p); err != nil {
		app.serviceError(w, r, err)
		return
	}
	saved, err := app.service.Profile(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, saved)
}
