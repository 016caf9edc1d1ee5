package fitness

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// InstructionWriter writes markdown coaching notes for a custom workout.
type InstructionWriter interface {
	Write(ctx context.Context, w CustomWorkout) (string, error)
	Name() string
}

// TemplateWriter lists the exercises with their sets, reps and rest. It never fails.
type TemplateWriter struct{}

func (TemplateWriter) Name() string { return "template" }

func (TemplateWriter) Write(_ context.Context, w CustomWorkout) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", w.Name)
	fmt.Fprintf(&b, "About %d minutes at %s intensity.\n\n", w.Duration, strings.ReplaceAll(string(w.Intensity), "_", " "))
	for i, ex := range w.Exercises {
		fmt.Fprintf(&b, "%d. **%s**: %d sets", i+1, ex.Name, ex.Sets)
		if ex.Reps != "" {
			fmt.Fprintf(&b, " of %s", ex.Reps)
		}
		if ex.Rest != "" {
			fmt.Fprintf(&b, ", rest %s", ex.Rest)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nWarm up for five minutes before the first set and stop if anything hurts.\n")
	return b.String(), nil
}

// ErrWriterUnavailable is returned while the circuit breaker is open.
var ErrWriterUnavailable = errors.NewSentinel("instruction writer unavailable")

const (
	openAITimeout        = 30 * time.Second
	openAIRequestsPerMin = 20
	openAIFailureTrip    = 3
	openAIBreakerReset   = time.Minute
	instructionsPrompt   = `Write short markdown coaching notes for the workout below. Use a "## Warm-up" section, ` +
		`a "## Workout" section with one bullet per exercise giving a form cue, and a "## Cool-down" section. ` +
		`Do not add exercises.`
)

// OpenAIWriter asks a chat model for instructions. Calls are rate limited and guarded by a circuit breaker so that
// an unavailable API fails fast.
type OpenAIWriter struct {
	client  openai.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
	logger  *slog.Logger
}

// NewOpenAIWriter creates a writer. An empty baseURL uses the public API.
func NewOpenAIWriter(apiKey, baseURL string, logger *slog.Logger) *OpenAIWriter {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	w := &OpenAIWriter{
		client:  openai.NewClient(opts...),
		limiter: rate.NewLimiter(rate.Every(time.Minute/openAIRequestsPerMin), 1),
		breaker: nil,
		logger:  logger,
	}
	w.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "openai-instructions",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     openAIBreakerReset,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= openAIFailureTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.LogAttrs(context.Background(), slog.LevelWarn, "circuit breaker state changed",
				slog.String("name", name), slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})
	return w
}

func (w *OpenAIWriter) Name() string { return "openai" }

func (w *OpenAIWriter) Write(ctx context.Context, workout CustomWorkout) (string, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "wait for rate limiter")
	}
	outline, err := TemplateWriter{}.Write(ctx, workout)
	if err != nil {
		return "", err
	}
	text, err := w.breaker.Execute(func() (string, error) {
		ctx, cancel := context.WithTimeout(ctx, openAITimeout)
		defer cancel()
		completion, err := w.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModelGPT4oMini,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(instructionsPrompt),
				openai.UserMessage(outline),
			},
		})
		if err != nil {
			return "", errors.Wrap(err, "chat completion")
		}
		if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
			return "", errors.New("empty completion")
		}
		w.logger.LogAttrs(ctx, slog.LevelDebug, "wrote instructions",
			slog.Int64("prompt_tokens", completion.Usage.PromptTokens),
			slog.Int64("completion_tokens", completion.Usage.CompletionTokens))
		return completion.Choices[0].Message.Content, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errors.Wrap(ErrWriterUnavailable, err.Error())
	}
	if err != nil {
		return "", err
	}
	return text, nil
}
