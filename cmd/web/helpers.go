package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/fitness"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: msg})
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
}

// serviceError maps service errors to responses.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, fitness.ErrNotFound):
		app.notFound(w, r)
	case errors.Is(err, fitness.ErrInvalidInput):
		app.badRequest(w, r, err.Error())
	default:
		app.serverError(w, r, err)
	}
}

// decodeJSON reads a JSON body into dst and validates it. It writes a 400 response and returns false on failure.
func (app *application) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		app.badRequest(w, r, "request body too large")
		return false
	}
	if len(body) == 0 {
		app.badRequest(w, r, "request body is empty")
		return false
	}
	if err = json.Unmarshal(body, dst); err != nil {
		app.badRequest(w, r, "invalid JSON: "+err.Error())
		return false
	}
	if err = app.validate.Struct(dst); err != nil {
		app.badRequest(w, r, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %s", fe.Namespace(), fe.Tag()))
	}
	return "invalid request: " + strings.Join(msgs, ", ")
}

// queryInt parses an optional integer query parameter. ok is false after a 400 response was written.
func (app *application) queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		app.badRequest(w, r, fmt.Sprintf("%s must be a non-negative integer", name))
		return 0, false
	}
	return n, true
}
