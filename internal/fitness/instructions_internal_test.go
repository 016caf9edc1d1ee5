package fitness

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/recommend"
	"github.com/myrjola/macrofit/internal/testhelpers"
	"golang.org/x/time/rate"
)

func testWorkout() CustomWorkout {
	return CustomWorkout{
		ID:             "c1",
		Name:           "Garage Session",
		Kind:           recommend.CategoryStrength,
		Duration:       9,
		CaloriesBurned: 54,
		Intensity:      recommend.IntensityModerate,
		Equipment:      []recommend.Equipment{"none"},
		Exercises: []recommend.Exercise{
			{Name: "Squat", Sets: 3, Reps: "10", Rest: "60s", Difficulty: 2},
			{Name: "Plank", Sets: 2, Reps: "", Rest: "", Difficulty: 1},
		},
		MuscleGroups: []string{"quads", "core"},
		Instructions: "",
	}
}

func TestTemplateWriter(t *testing.T) {
	got, err := TemplateWriter{}.Write(t.Context(), testWorkout())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "## Garage Session\n\n" +
		"About 9 minutes at moderate intensity.\n\n" +
		"1. **Squat**: 3 sets of 10, rest 60s\n" +
		"2. **Plank**: 2 sets\n" +
		"\nWarm up for five minutes before the first set and stop if anything hurts.\n"
	if got != want {
		t.Errorf("Write() = %q, want %q", got, want)
	}
}

const completionBody = `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",` +
	`"choices":[{"index":0,"finish_reason":"stop","logprobs":null,` +
	`"message":{"role":"assistant","content":"## Warm-up\n\nEasy jog.","refusal":null}}],` +
	`"usage":{"prompt_tokens":12,"completion_tokens":6,"total_tokens":18}}`

func newTestOpenAIWriter(t *testing.T, handler http.HandlerFunc) *OpenAIWriter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	w := NewOpenAIWriter("test-key", srv.URL+"/", testhelpers.NewLogger(testhelpers.NewWriter(t)))
	w.limiter = rate.NewLimiter(rate.Inf, 1)
	return w
}

func TestOpenAIWriter_Write(t *testing.T) {
	var prompt string
	w := newTestOpenAIWriter(t, func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(rw, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			rw.WriteHeader(http.StatusUnauthorized)
			return
		}
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		prompt = body.String()
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write([]byte(completionBody))
	})

	got, err := w.Write(t.Context(), testWorkout())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got != "## Warm-up\n\nEasy jog." {
		t.Errorf("Write() = %q", got)
	}
	if !strings.Contains(prompt, "Squat") {
		t.Errorf("request does not describe the workout: %s", prompt)
	}
}

func TestOpenAIWriter_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	w := newTestOpenAIWriter(t, func(rw http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusInternalServerError)
		_, _ = rw.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	for range openAIFailureTrip {
		if _, err := w.Write(t.Context(), testWorkout()); err == nil {
			t.Fatalf("Write() succeeded against a failing server")
		}
	}
	_, err := w.Write(t.Context(), testWorkout())
	if !errors.Is(err, ErrWriterUnavailable) {
		t.Errorf("Write() with open breaker error = %v, want ErrWriterUnavailable", err)
	}
	if got := calls.Load(); got != openAIFailureTrip {
		t.Errorf("server called %d times, want %d", got, openAIFailureTrip)
	}
}
