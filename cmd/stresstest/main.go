package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/myrjola/macrofit/internal/e2etest"
	"github.com/myrjola/macrofit/internal/logging"
	"github.com/myrjola/macrofit/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	defaultUsers            = 50
	maxConcurrentOperations = 20
	scenarioTimeout         = 30 * time.Second
	historyDays             = 28
	successRateThreshold    = 95.0
	percentageMultiplier    = 100
	percentile95            = 0.95
)

//nolint:gochecknoglobals // test fixtures.
var (
	experiences = []string{"beginner", "intermediate", "advanced"}
	styles      = []string{"strength", "cardio", "yoga", "hiit", "running"}
	goals       = []string{"build muscle", "lose weight", "endurance", "flexibility"}
	kinds       = []string{"strength", "cardio", "flexibility"}
	intensities = []string{"low", "moderate", "high"}
	meals       = []string{"breakfast", "lunch", "dinner", "snacks"}
)

// latencies collects request durations from concurrent scenarios.
type latencies struct {
	mu        sync.Mutex
	durations []time.Duration
}

func (l *latencies) observe(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.durations = append(l.durations, d)
}

func (l *latencies) p95() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.durations) == 0 {
		return 0
	}
	sorted := slices.Clone(l.durations)
	slices.Sort(sorted)
	return sorted[int(float64(len(sorted)-1)*percentile95)]
}

type user struct {
	client *e2etest.Client
	rng    *rand.Rand
	index  int
}

func (u *user) pick(options []string) string {
	return options[u.rng.IntN(len(options))]
}

// call sends one request and records its latency. Non-2xx responses are errors.
func (u *user) call(ctx context.Context, lat *latencies, method, path string, body any) error {
	start := time.Now()
	status, err := u.client.JSON(ctx, method, path, body, nil)
	lat.observe(time.Since(start))
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return fmt.Errorf("%s %s: status %d", method, path, status)
	}
	return nil
}

// Scenario fills in a profile, logs a few weeks of workouts and asks for every kind of suggestion.
func Scenario(ctx context.Context, u *user, lat *latencies) error {
	profile := map[string]any{
		"experience":     u.pick(experiences),
		"styles":         []string{u.pick(styles), u.pick(styles)},
		"goals":          []string{u.pick(goals)},
		"target_minutes": 15 + u.rng.IntN(46), //nolint:mnd // 15 to 60 minutes.
		"full_facility":  u.rng.IntN(2) == 0,
		"weight_lb":      120 + u.rng.IntN(100), //nolint:mnd // plausible weights.
	}
	if err := u.call(ctx, lat, http.MethodPut, "/api/profile", profile); err != nil {
		return err
	}

	today := time.Now()
	for day := historyDays; day > 0; day-- {
		if u.rng.IntN(3) == 0 { //nolint:mnd // rest on a third of the days.
			continue
		}
		entry := map[string]any{
			"name":         fmt.Sprintf("Session %d", day),
			"type":         u.pick(kinds),
			"performed_on": today.AddDate(0, 0, -day).Format(time.DateOnly),
			"duration":     20 + u.rng.IntN(40), //nolint:mnd // 20 to 60 minutes.
			"intensity":    u.pick(intensities),
		}
		if err := u.call(ctx, lat, http.MethodPost, "/api/workouts/log", entry); err != nil {
			return err
		}
	}

	custom := map[string]any{
		"name": fmt.Sprintf("Custom %d", u.index),
		"exercises": []map[string]any{
			{"name": "Goblet Squat", "sets": 3, "reps": "10", "rest": "60s", "equipment": []string{"dumbbells"}},
			{"name": "Push-up", "sets": 3, "reps": "12", "rest": "45s"},
		},
	}
	if err := u.call(ctx, lat, http.MethodPost, "/api/custom-workouts", custom); err != nil {
		return err
	}

	for i := range 3 {
		path := "/api/recommendations"
		if i > 0 {
			path += "?exclude_shown=true"
		}
		if err := u.call(ctx, lat, http.MethodGet, path, nil); err != nil {
			return err
		}
	}
	feedback := map[string]any{"workout_name": "Brisk Walk", "liked": u.rng.IntN(2) == 0}
	if err := u.call(ctx, lat, http.MethodPost, "/api/workouts/feedback", feedback); err != nil {
		return err
	}
	quick := map[string]any{"duration": 10 + 5*u.rng.IntN(4), "focus": "core"} //nolint:mnd // 10 to 25 minutes.
	if err := u.call(ctx, lat, http.MethodPost, "/api/quick-suggestions", quick); err != nil {
		return err
	}
	mealType := u.pick(meals)
	eaten := map[string]any{"meal_type": mealType, "food_name": "oatmeal", "servings": 1 + u.rng.IntN(2)}
	if err := u.call(ctx, lat, http.MethodPost, "/api/foods/log", eaten); err != nil {
		return err
	}
	if err := u.call(ctx, lat, http.MethodPost, "/api/foods/suggestions", map[string]any{"meal_type": mealType}); err != nil {
		return err
	}
	if err := u.call(ctx, lat, http.MethodGet, "/api/workouts/stats?days=30", nil); err != nil {
		return err
	}
	return u.call(ctx, lat, http.MethodGet, "/api/workouts/recovery", nil)
}

// RunLoadTest runs the scenario for numUsers anonymous users concurrently.
func RunLoadTest(ctx context.Context, url string, numUsers int, logger *slog.Logger) error {
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test", slog.Int("num_users", numUsers))

	var (
		successCount, failureCount atomic.Int64
		lat                        latencies
		start                      = time.Now()
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)

	for i := range numUsers {
		g.Go(func() error {
			client, err := e2etest.NewClient(url)
			if err != nil {
				return fmt.Errorf("new client for user %d: %w", i, err)
			}
			u := &user{client: client, rng: rand.New(rand.NewPCG(uint64(i), 0)), index: i} //nolint:gosec // test data.

			scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
			defer cancel()
			if err = Scenario(scenarioCtx, u, &lat); err != nil {
				failureCount.Add(1)
				logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
					slog.Int("user", i), slog.Any("error", err))
				return nil
			}
			successCount.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}

	successRate := float64(successCount.Load()) / float64(numUsers) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount.Load()),
		slog.Int64("failed", failureCount.Load()),
		slog.Float64("success_rate", successRate),
		slog.Duration("p95_latency", lat.p95()),
		slog.Duration("duration", time.Since(start)))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) < 2 || len(os.Args) > 3 { //nolint:mnd // hostname and optional user count.
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname> [users]")
		os.Exit(1)
	}

	hostname := os.Args[1]
	numUsers := defaultUsers
	if len(os.Args) == 3 { //nolint:mnd // user count given.
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			logger.LogAttrs(ctx, slog.LevelError, "users must be a positive integer", slog.String("users", os.Args[2]))
			os.Exit(1)
		}
		numUsers = n
	}

	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	if err = RunLoadTest(ctx, url, numUsers, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌")
}
