package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/myrjola/macrofit/internal/catalog"
	"github.com/myrjola/macrofit/internal/fitness"
	"github.com/myrjola/macrofit/internal/sqlite"
	"github.com/myrjola/macrofit/internal/testhelpers"
)

type timeoutResponseWriter struct {
	httptest.ResponseRecorder
}

func newTimeoutResponseWriter() *timeoutResponseWriter {
	return &timeoutResponseWriter{
		ResponseRecorder: *httptest.NewRecorder(),
	}
}

// SetWriteDeadline is needed to not get "feature not implemented" error.
func (w *timeoutResponseWriter) SetWriteDeadline(_ time.Time) error {
	return nil
}

// newTestApplication wires the application to an in-memory database and the real session store.
func newTestApplication(t *testing.T) (*application, *sqlite.Database) {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	dbCtx, stopOptimizer := context.WithCancel(t.Context())
	db, err := sqlite.NewDatabase(dbCtx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	// The background optimizer must not hold the single write connection while a synctest bubble waits for it.
	stopOptimizer()
	if err = db.ReadWrite.PingContext(t.Context()); err != nil {
		t.Fatalf("ping database: %v", err)
	}
	library, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	return &application{ //nolint:exhaustruct // this is a test
		logger:         logger,
		sessionManager: initializeSessionManager(db, false),
		service:        fitness.NewService(db, logger, library),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}, db
}

func countUsers(t *testing.T, db *sqlite.Database) int {
	t.Helper()
	var n int
	if err := db.ReadOnly.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		t.Fatalf("count users: %v", err)
	}
	return n
}

func sessionCookie(app *application, w *timeoutResponseWriter) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == app.sessionManager.Cookie.Name {
			return c
		}
	}
	return nil
}

func Test_application_timeout(t *testing.T) {
	tests := []struct {
		name       string
		delay      time.Duration
		wantStatus int
	}{
		{
			name:       "completes within timeout",
			delay:      500 * time.Millisecond,
			wantStatus: http.StatusOK,
		},
		{
			name:       "times out",
			delay:      3 * time.Second,
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The database and the session store start goroutines of their own, so they are created outside the bubble.
			app, db := newTestApplication(t)
			handler, err := app.routes()
			if err != nil {
				t.Fatalf("Failed to set up routes: %v", err)
			}

			var w *timeoutResponseWriter
			synctest.Test(t, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, "/api/test/slow?delay="+tt.delay.String(), nil)
				w = newTimeoutResponseWriter()

				handler.ServeHTTP(w, req)

				time.Sleep(tt.delay)
			})

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusServiceUnavailable && !strings.Contains(w.Body.String(), "timed out") {
				t.Errorf("expected timeout message in response body, got: %s", w.Body.String())
			}
			// The user is registered before the handler starts, so even a timed out request keeps its session.
			if sessionCookie(app, w) == nil {
				t.Errorf("no %s cookie set", app.sessionManager.Cookie.Name)
			}
			if n := countUsers(t, db); n != 1 {
				t.Errorf("got %d users, want 1", n)
			}
		})
	}
}

func Test_application_identify(t *testing.T) {
	app, db := newTestApplication(t)
	handler, err := app.routes()
	if err != nil {
		t.Fatalf("Failed to set up routes: %v", err)
	}

	first := newTimeoutResponseWriter()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/test/slow", nil))
	cookie := sessionCookie(app, first)
	if cookie == nil {
		t.Fatalf("first request got no session cookie")
	}

	tests := []struct {
		name      string
		cookie    *http.Cookie
		wantUsers int
	}{
		{name: "known session keeps its user", cookie: cookie, wantUsers: 1},
		{
			name:      "unknown session gets a new user",
			cookie:    &http.Cookie{Name: cookie.Name, Value: "not-a-session-token"}, //nolint:exhaustruct // test
			wantUsers: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/test/slow", nil)
			req.AddCookie(tt.cookie)
			w := newTimeoutResponseWriter()
			handler.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if n := countUsers(t, db); n != tt.wantUsers {
				t.Errorf("got %d users, want %d", n, tt.wantUsers)
			}
		})
	}
}

func Test_secureHeaders(t *testing.T) {
	handler := secureHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := w.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'none'") || !strings.Contains(csp, "'nonce-") {
		t.Errorf("unexpected CSP %q", csp)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "deny" {
		t.Errorf("X-Frame-Options = %q, want deny", got)
	}
}
