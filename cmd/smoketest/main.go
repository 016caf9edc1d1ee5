package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/myrjola/macrofit/internal/e2etest"
	"github.com/myrjola/macrofit/internal/logging"
	"github.com/myrjola/macrofit/internal/testhelpers"
)

type recommendations struct {
	Recommendations []struct {
		Workout struct {
			Name string `json:"name"`
		} `json:"workout"`
	} `json:"recommendations"`
}

// checkStatus sends a request and fails unless the response has the wanted status.
func checkStatus(ctx context.Context, client *e2etest.Client, method, path string, body, out any, want int) error {
	status, err := client.JSON(ctx, method, path, body, out)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if status != want {
		return fmt.Errorf("%s %s: status %d, want %d", method, path, status, want)
	}
	return nil
}

func TestRecommendations(client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	profile := map[string]any{
		"experience":     "beginner",
		"styles":         []string{"strength"},
		"goals":          []string{"build muscle"},
		"target_minutes": 30,
		"full_facility":  true,
	}
	if err := checkStatus(ctx, client, http.MethodPut, "/api/profile", profile, nil, http.StatusOK); err != nil {
		return err
	}

	var recs recommendations
	if err := checkStatus(ctx, client, http.MethodGet, "/api/recommendations", nil, &recs, http.StatusOK); err != nil {
		return err
	}
	if len(recs.Recommendations) == 0 {
		return errors.New("no recommendations")
	}

	quick := map[string]any{"duration": 15, "focus": "core"}
	if err := checkStatus(ctx, client, http.MethodPost, "/api/quick-suggestions", quick, &recs, http.StatusOK); err != nil {
		return err
	}

	meal := map[string]any{"meal_type": "lunch"}
	if err := checkStatus(ctx, client, http.MethodPost, "/api/foods/suggestions", meal, nil, http.StatusOK); err != nil {
		return err
	}
	return checkStatus(ctx, client, http.MethodGet, "/api/foods/daily", nil, nil, http.StatusOK)
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = TestRecommendations(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing recommendations", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
