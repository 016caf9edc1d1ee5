package fitness

import (
	"context"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/recommend"
)

type sqliteCustomWorkoutRepository struct {
	baseRepository
}

// customRecord is a custom workout row. The exercises stay encoded so that the engine can skip corrupt rows.
type customRecord struct {
	CustomWorkout
	exercisesJSON []byte
}

func (c customRecord) customItem() recommend.CustomItem {
	return recommend.CustomItem{
		ID:             c.ID,
		Name:           c.Name,
		Kind:           c.Kind,
		Duration:       c.Duration,
		CaloriesBurned: c.CaloriesBurned,
		Intensity:      c.Intensity,
		Equipment:      c.Equipment,
		Exercises:      c.exercisesJSON,
		Instructions:   c.Instructions,
		CreatedAt:      c.CreatedAt,
	}
}

func (c customRecord) workout() (CustomWorkout, error) {
	w := c.CustomWorkout
	if err := json.Unmarshal(c.exercisesJSON, &w.Exercises); err != nil {
		return CustomWorkout{}, errors.Wrap(err, "unmarshal exercises", slog.String("custom_id", c.ID))
	}
	return w, nil
}

const customColumns = `id, name, kind, duration_minutes, calories_burned, intensity, equipment, exercises, muscle_groups,
		instructions_markdown, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCustom(row scanner) (customRecord, error) {
	var c customRecord
	var equipment, muscles, born string
	if err := row.Scan(&c.ID, &c.Name, &c.Kind, &c.Duration, &c.CaloriesBurned, &c.Intensity, &equipment,
		&c.exercisesJSON, &muscles, &c.Instructions, &born); err != nil {
		return customRecord{}, notFound(err)
	}
	var err error
	if c.Equipment, err = decodeList[recommend.Equipment](equipment); err != nil {
		return customRecord{}, errors.Wrap(err, "decode equipment", slog.String("custom_id", c.ID))
	}
	if c.MuscleGroups, err = decodeList[string](muscles); err != nil {
		return customRecord{}, errors.Wrap(err, "decode muscle groups", slog.String("custom_id", c.ID))
	}
	if c.CreatedAt, err = parseTime(born); err != nil {
		return customRecord{}, err
	}
	return c, nil
}

// List returns the user's custom workouts, most recent first.
func (r *sqliteCustomWorkoutRepository) List(ctx context.Context, userID string) ([]customRecord, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT `+customColumns+`
		FROM custom_workouts
		WHERE user_id = ?
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query custom workouts")
	}
	defer rows.Close()

	var records []customRecord
	for rows.Next() {
		var c customRecord
		if c, err = scanCustom(rows); err != nil {
			return nil, errors.Wrap(err, "scan custom workout")
		}
		records = append(records, c)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate custom workouts")
	}
	return records, nil
}

func (r *sqliteCustomWorkoutRepository) Get(ctx context.Context, userID, id string) (customRecord, error) {
	c, err := scanCustom(r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT `+customColumns+`
		FROM custom_workouts
		WHERE user_id = ? AND id = ?`, userID, id))
	if err != nil {
		return customRecord{}, errors.Wrap(err, "query custom workout", slog.String("custom_id", id))
	}
	return c, nil
}

func (r *sqliteCustomWorkoutRepository) Create(ctx context.Context, userID string, w CustomWorkout) error {
	var (
		equipment, muscles string
		exercises          []byte
		err                error
	)
	if equipment, err = encodeList(w.Equipment); err != nil {
		return err
	}
	if muscles, err = encodeList(w.MuscleGroups); err != nil {
		return err
	}
	if exercises, err = json.Marshal(w.Exercises); err != nil {
		return errors.Wrap(err, "marshal exercises")
	}
	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO custom_workouts (`+customColumns+`, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, w.Kind, w.Duration, w.CaloriesBurned, w.Intensity, equipment, string(exercises), muscles,
		w.Instructions, formatTime(w.CreatedAt), userID)
	if err != nil {
		return errors.Wrap(err, "insert custom workout", slog.String("custom_id", w.ID))
	}
	return nil
}

// Delete returns ErrNotFound when the user has no such workout.
func (r *sqliteCustomWorkoutRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ReadWrite.ExecContext(ctx,
		`DELETE FROM custom_workouts WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.Wrap(err, "delete custom workout", slog.String("custom_id", id))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return errors.Wrap(ErrNotFound, "delete custom workout", slog.String("custom_id", id))
	}
	return nil
}
