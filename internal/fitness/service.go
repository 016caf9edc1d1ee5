// Package fitness is the tracker service: it stores what users tell about themselves and runs the recommendation
// engine against a consistent snapshot of that data.
package fitness

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/macrofit/internal/catalog"
	"github.com/myrjola/macrofit/internal/contexthelpers"
	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/insights"
	"github.com/myrjola/macrofit/internal/recommend"
	"github.com/myrjola/macrofit/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

const (
	defaultStatsDays = 30
	maxStatsDays     = 365
	recoveryLookback = 14
	kindFull         = "full"
	kindQuick        = "quick"
	kindFood         = "food"
)

var (
	// ErrInvalidInput is returned for input the handlers could not validate upfront.
	ErrInvalidInput = errors.NewSentinel("invalid input")
	// ErrNoUser is returned when the context carries no user.
	ErrNoUser = errors.NewSentinel("no user in context")
)

// Service handles the business logic of the tracker.
type Service struct {
	repo    *repository
	library *catalog.Library
	logger  *slog.Logger
	writer  InstructionWriter
	newRand func() *rand.Rand
	jitter  bool
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSeed makes every engine call use the same seed so that identical snapshots give identical results.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // not security sensitive.
		}
	}
}

// WithoutJitter disables the random scoring term.
func WithoutJitter() Option {
	return func(s *Service) {
		s.jitter = false
	}
}

// WithInstructionWriter replaces the TemplateWriter used for custom workouts without instructions.
func WithInstructionWriter(w InstructionWriter) Option {
	return func(s *Service) {
		s.writer = w
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new tracker service.
func NewService(db *sqlite.Database, logger *slog.Logger, library *catalog.Library, opts ...Option) *Service {
	s := &Service{
		repo:    newRepositoryFactory(db, logger).newRepository(),
		library: library,
		logger:  logger,
		writer:  TemplateWriter{},
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // not security sensitive.
		},
		jitter: true,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Library returns the catalog the service recommends from.
func (s *Service) Library() *catalog.Library {
	return s.library
}

func userID(ctx context.Context) (string, error) {
	id := contexthelpers.UserID(ctx)
	if id == "" {
		return "", ErrNoUser
	}
	return id, nil
}

// RegisterUser creates a new anonymous user and returns its ID.
func (s *Service) RegisterUser(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.repo.users.Create(ctx, id); err != nil {
		return "", errors.Wrap(err, "register user")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "registered user", slog.String("user_id", id))
	return id, nil
}

// UserExists reports whether id belongs to a registered user.
func (s *Service) UserExists(ctx context.Context, id string) (bool, error) {
	exists, err := s.repo.users.Exists(ctx, id)
	if err != nil {
		return false, errors.Wrap(err, "check user", slog.String("user_id", id))
	}
	return exists, nil
}

// Ping checks that the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.users.Ping(ctx)
}

// Profile returns ErrNotFound when the user has not saved a profile yet.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	uid, err := userID(ctx)
	if err != nil {
		return Profile{}, err
	}
	p, err := s.repo.profiles.Get(ctx, uid)
	if err != nil {
		return Profile{}, errors.Wrap(err, "get profile")
	}
	return p, nil
}

func (s *Service) SaveProfile(ctx context.Context, p Profile) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}
	if err = s.repo.profiles.Set(ctx, uid, p, formatTime(s.now())); err != nil {
		return errors.Wrap(err, "save profile")
	}
	return nil
}

// snapshot is everything one engine call reads. It is not modified after loading.
type snapshot struct {
	profile *recommend.UserProfile
	custom  []recommend.CustomItem
	prefs   recommend.PreferenceSet
}

func (s *Service) loadSnapshot(ctx context.Context, uid string, domain Domain, withCustom bool) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.repo.profiles.Get(gctx, uid)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "load profile")
		}
		snap.profile = p.userProfile()
		return nil
	})
	g.Go(func() error {
		prefs, err := s.repo.prefs.Load(gctx, uid, domain)
		if err != nil {
			return errors.Wrap(err, "load preferences")
		}
		snap.prefs = prefs
		return nil
	})
	if withCustom {
		g.Go(func() error {
			records, err := s.repo.custom.List(gctx, uid)
			if err != nil {
				return errors.Wrap(err, "load custom workouts")
			}
			snap.custom = make([]recommend.CustomItem, 0, len(records))
			for _, r := range records {
				snap.custom = append(snap.custom, r.customItem())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return snapshot{}, err //nolint:wrapcheck // wrapped in the goroutines.
	}
	return snap, nil
}

func (s *Service) engine() *recommend.Engine {
	opts := []recommend.Option{recommend.WithRand(s.newRand())}
	if !s.jitter {
		opts = append(opts, recommend.WithoutJitter())
	}
	return recommend.NewEngine(opts...)
}

func (s *Service) observe(ctx context.Context, kind string, start time.Time, res recommend.Result) {
	recommendationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	fallbackOnly := true
	for _, r := range res.Recommendations {
		if !r.Fallback {
			fallbackOnly = false
			break
		}
	}
	recommendationsTotal.WithLabelValues(kind, strconv.FormatBool(fallbackOnly)).Inc()
	if res.Skipped != nil {
		customItemsSkipped.Inc()
		s.logger.LogAttrs(ctx, slog.LevelWarn, "skipped custom workouts", errors.SlogError(res.Skipped))
	}
}

// Recommend returns the full recommendation list. Names in exclusions are left out.
func (s *Service) Recommend(ctx context.Context, exclusions []string, maxResults int) ([]recommend.Recommendation, error) {
	start := time.Now()
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(ctx, uid, DomainWorkout, true)
	if err != nil {
		return nil, errors.Wrap(err, "recommend")
	}
	res := s.engine().Recommend(snap.profile, s.library.Workouts, snap.custom, snap.prefs,
		recommend.NewNameSet(exclusions...), maxResults)
	s.observe(ctx, kindFull, start, res)
	return res.Recommendations, nil
}

// QuickSuggest returns suggestions for a short session with the equipment at hand.
func (s *Service) QuickSuggest(ctx context.Context, in QuickInput) ([]recommend.Recommendation, error) {
	start := time.Now()
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := s.loadSnapshot(ctx, uid, DomainWorkout, false)
	if err != nil {
		return nil, errors.Wrap(err, "quick suggest")
	}
	res := s.engine().QuickSuggest(snap.profile, s.library.Workouts, recommend.QuickRequest{
		DurationMinutes: in.Duration,
		Focus:           in.Focus,
		Equipment:       in.Equipment,
		Excluded:        in.Excluded,
		Preferences:     snap.prefs,
		MaxResults:      in.MaxResults,
	})
	s.observe(ctx, kindQuick, start, res)
	return res.Recommendations, nil
}

// FoodSuggestions scores the foods suggested for the meal against what is left of the meal's calorie budget and the
// macros still short of today's goals.
func (s *Service) FoodSuggestions(ctx context.Context, in FoodInput) (FoodSuggestions, error) {
	start := time.Now()
	uid, err := userID(ctx)
	if err != nil {
		return FoodSuggestions{}, err
	}
	meal := strings.ToLower(in.MealType)
	var (
		prefs recommend.PreferenceSet
		day   DailyNutrition
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		if prefs, loadErr = s.repo.prefs.Load(gctx, uid, DomainFood); loadErr != nil {
			return errors.Wrap(loadErr, "load food preferences")
		}
		return nil
	})
	g.Go(func() error {
		var loadErr error
		day, loadErr = s.day(gctx, uid, s.now())
		return loadErr
	})
	if err = g.Wait(); err != nil {
		return FoodSuggestions{}, errors.Wrap(err, "food suggestions")
	}

	remaining := max(day.Meal(meal).Remaining, 0)
	needs := recommend.NeedsFrom(day.Eaten.Macros, day.Goals.Macros)
	suggestions := recommend.ScoreFoods(s.library.MealFoods(meal), recommend.MealContext{
		MealType:          meal,
		RemainingCalories: remaining,
		Needs:             needs,
		Preferences:       prefs.Effective(meal),
	}, in.MaxResults)
	recommendationDuration.WithLabelValues(kindFood).Observe(time.Since(start).Seconds())
	recommendationsTotal.WithLabelValues(kindFood, "false").Inc()
	return FoodSuggestions{
		MealType:          meal,
		RemainingCalories: remaining,
		Needs:             needs,
		Suggestions:       suggestions,
	}, nil
}

// day loads the goals and the meal log of the day.
func (s *Service) day(ctx context.Context, uid string, day time.Time) (DailyNutrition, error) {
	goals := recommend.DefaultNutritionGoals
	p, err := s.repo.profiles.Get(ctx, uid)
	switch {
	case err == nil:
		goals = p.nutritionGoals()
	case !errors.Is(err, ErrNotFound):
		return DailyNutrition{}, errors.Wrap(err, "load profile")
	}
	entries, err := s.repo.meals.Day(ctx, uid, day)
	if err != nil {
		return DailyNutrition{}, errors.Wrap(err, "load meal log")
	}
	return summarizeDay(day, goals, entries), nil
}

// LogMeal records a food eaten. Catalog foods are scaled by the servings. Other foods need their calories per
// serving and return ErrInvalidInput without them.
func (s *Service) LogMeal(ctx context.Context, in MealInput) (MealEntry, error) {
	uid, err := userID(ctx)
	if err != nil {
		return MealEntry{}, err
	}
	name := strings.TrimSpace(in.FoodName)
	if name == "" {
		return MealEntry{}, errors.Wrap(ErrInvalidInput, "empty food name")
	}
	food, known := s.library.Food(name)
	switch {
	case in.Calories > 0:
		food = recommend.Food{
			Name:          name,
			Calories:      in.Calories,
			Protein:       in.Protein,
			Carbohydrates: in.Carbs,
			Fat:           in.Fat,
		}
	case !known:
		return MealEntry{}, errors.Wrap(ErrInvalidInput, "unknown food needs calories", slog.String("food", name))
	}
	servings := in.Servings
	if servings <= 0 {
		servings = 1
	}
	e := MealEntry{
		EatenOn:   in.EatenOn,
		MealType:  strings.ToLower(in.MealType),
		FoodName:  food.Name,
		Servings:  servings,
		Nutrition: recommend.ScaleFood(food, servings),
	}
	if e.EatenOn.IsZero() {
		e.EatenOn = s.now()
	}
	y, m, d := e.EatenOn.Date()
	e.EatenOn = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if e.ID, err = s.repo.meals.Add(ctx, uid, e, formatTime(s.now())); err != nil {
		return MealEntry{}, errors.Wrap(err, "log meal")
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "logged meal",
		slog.String("meal_type", e.MealType), slog.Float64("calories", e.Calories))
	return e, nil
}

// DailyNutrition summarises today's meal log against the user's goals.
func (s *Service) DailyNutrition(ctx context.Context) (DailyNutrition, error) {
	uid, err := userID(ctx)
	if err != nil {
		return DailyNutrition{}, err
	}
	day, err := s.day(ctx, uid, s.now())
	if err != nil {
		return DailyNutrition{}, errors.Wrap(err, "daily nutrition")
	}
	return day, nil
}

// ResetDay clears today's meal log.
func (s *Service) ResetDay(ctx context.Context) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}
	n, err := s.repo.meals.ClearDay(ctx, uid, s.now())
	if err != nil {
		return errors.Wrap(err, "reset day")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "reset day", slog.Int64("entries", n))
	return nil
}

// SaveFeedback stores a like or dislike. Workout feedback defaults to the plan context.
func (s *Service) SaveFeedback(ctx context.Context, f Feedback) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}
	f.ItemName = strings.TrimSpace(f.ItemName)
	if f.ItemName == "" {
		return errors.Wrap(ErrInvalidInput, "empty item name")
	}
	f.Context = strings.ToLower(strings.TrimSpace(f.Context))
	switch {
	case f.Global:
		f.Context = ""
	case f.Domain == DomainWorkout && f.Context == "":
		f.Context = recommend.ContextPlan
	case f.Domain == DomainWorkout && f.Context != recommend.ContextPlan && f.Context != recommend.ContextQuick:
		return errors.Wrap(ErrInvalidInput, "unknown workout context", slog.String("context", f.Context))
	case f.Domain == DomainFood && f.Context == "":
		return errors.Wrap(ErrInvalidInput, "food feedback needs a meal type")
	}
	if err = s.repo.prefs.Set(ctx, uid, f); err != nil {
		return errors.Wrap(err, "save feedback")
	}
	return nil
}

// CustomWorkouts lists the user's custom workouts, most recent first.
func (s *Service) CustomWorkouts(ctx context.Context) ([]CustomWorkout, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.custom.List(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(err, "list custom workouts")
	}
	workouts := make([]CustomWorkout, 0, len(records))
	for _, r := range records {
		w, decodeErr := r.workout()
		if decodeErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "skipped corrupt custom workout", errors.SlogError(decodeErr))
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// CustomWorkout returns ErrNotFound when the user has no workout with the id.
func (s *Service) CustomWorkout(ctx context.Context, id string) (CustomWorkout, error) {
	uid, err := userID(ctx)
	if err != nil {
		return CustomWorkout{}, err
	}
	r, err := s.repo.custom.Get(ctx, uid, id)
	if err != nil {
		return CustomWorkout{}, errors.Wrap(err, "get custom workout")
	}
	return r.workout()
}

// CreateCustomWorkout derives duration, calories and equipment from the exercises and stores the workout. Missing
// instructions are written by the configured InstructionWriter, falling back to the TemplateWriter.
func (s *Service) CreateCustomWorkout(ctx context.Context, in CustomWorkoutInput) (CustomWorkout, error) {
	uid, err := userID(ctx)
	if err != nil {
		return CustomWorkout{}, err
	}
	weight := 0.0
	if p, profileErr := s.repo.profiles.Get(ctx, uid); profileErr == nil {
		weight = p.WeightLb
	} else if !errors.Is(profileErr, ErrNotFound) {
		return CustomWorkout{}, errors.Wrap(profileErr, "get profile")
	}

	exercises := make([]recommend.CustomExercise, 0, len(in.Exercises))
	for _, ex := range in.Exercises {
		exercises = append(exercises, recommend.CustomExercise{
			Exercise: recommend.Exercise{
				Name:       ex.Name,
				Sets:       ex.Sets,
				Reps:       ex.Reps,
				Rest:       ex.Rest,
				Difficulty: ex.Difficulty,
			},
			Equipment:    ex.Equipment,
			MuscleGroups: ex.MuscleGroups,
		})
	}
	built, err := recommend.BuildCustomWorkout(strings.TrimSpace(in.Name), exercises, weight)
	if errors.Is(err, recommend.ErrNoExercises) {
		return CustomWorkout{}, errors.Wrap(errors.Join(ErrInvalidInput, err), "build custom workout")
	}
	if err != nil {
		return CustomWorkout{}, errors.Wrap(err, "build custom workout")
	}

	kind := in.Kind
	if kind == "" {
		kind = recommend.CategoryStrength
	}
	w := CustomWorkout{
		ID:             uuid.NewString(),
		Name:           built.Name,
		Kind:           kind,
		Duration:       built.Duration,
		CaloriesBurned: built.CaloriesBurned,
		Intensity:      built.Intensity,
		Equipment:      built.Equipment,
		Exercises:      built.Exercises,
		MuscleGroups:   built.MuscleGroups,
		Instructions:   strings.TrimSpace(in.Instructions),
		CreatedAt:      s.now().UTC().Truncate(time.Millisecond),
	}
	if w.Instructions == "" {
		w.Instructions = s.writeInstructions(ctx, w)
	}
	if err = s.repo.custom.Create(ctx, uid, w); err != nil {
		return CustomWorkout{}, errors.Wrap(err, "create custom workout")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "created custom workout",
		slog.String("custom_id", w.ID), slog.Int("duration", w.Duration))
	return w, nil
}

func (s *Service) writeInstructions(ctx context.Context, w CustomWorkout) string {
	text, err := s.writer.Write(ctx, w)
	if err == nil {
		instructionWrites.WithLabelValues(s.writer.Name(), "ok").Inc()
		return text
	}
	instructionWrites.WithLabelValues(s.writer.Name(), "error").Inc()
	s.logger.LogAttrs(ctx, slog.LevelWarn, "falling back to template instructions", errors.SlogError(err))
	text, _ = TemplateWriter{}.Write(ctx, w)
	instructionWrites.WithLabelValues(TemplateWriter{}.Name(), "ok").Inc()
	return text
}

// DeleteCustomWorkout returns ErrNotFound when the user has no workout with the id.
func (s *Service) DeleteCustomWorkout(ctx context.Context, id string) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}
	if err = s.repo.custom.Delete(ctx, uid, id); err != nil {
		return errors.Wrap(err, "delete custom workout")
	}
	return nil
}

// LogWorkout records a completed workout. A zero date means today, a zero intensity moderate and zero calories
// are estimated from the duration and the profile weight.
func (s *Service) LogWorkout(ctx context.Context, e LogEntry) error {
	uid, err := userID(ctx)
	if err != nil {
		return err
	}
	if e.PerformedOn.IsZero() {
		e.PerformedOn = s.now()
	}
	if e.Intensity == "" {
		e.Intensity = recommend.IntensityModerate
	}
	if e.CaloriesBurned == 0 {
		weight := 0.0
		if p, profileErr := s.repo.profiles.Get(ctx, uid); profileErr == nil {
			weight = p.WeightLb
		}
		e.CaloriesBurned = recommend.EstimateCaloriesBurned(e.Duration, weight, e.Intensity)
	}
	if err = s.repo.log.Add(ctx, uid, e); err != nil {
		return errors.Wrap(err, "log workout")
	}
	return nil
}

// Stats summarises the last days of the workout log. Non-positive days mean 30.
func (s *Service) Stats(ctx context.Context, days int) (insights.Stats, error) {
	uid, err := userID(ctx)
	if err != nil {
		return insights.Stats{}, err
	}
	if days <= 0 {
		days = defaultStatsDays
	}
	days = min(days, maxStatsDays)
	now := s.now()
	history, err := s.repo.log.Since(ctx, uid, now.AddDate(0, 0, -days))
	if err != nil {
		return insights.Stats{}, errors.Wrap(err, "workout stats")
	}
	return insights.WorkoutStats(history, now, days), nil
}

// Recovery tells whether the user should take a rest day.
func (s *Service) Recovery(ctx context.Context) (insights.RecoveryAdvice, error) {
	uid, err := userID(ctx)
	if err != nil {
		return insights.RecoveryAdvice{}, err
	}
	now := s.now()
	history, err := s.repo.log.Since(ctx, uid, now.AddDate(0, 0, -recoveryLookback))
	if err != nil {
		return insights.RecoveryAdvice{}, errors.Wrap(err, "recovery advice")
	}
	return insights.Recovery(history, now), nil
}
