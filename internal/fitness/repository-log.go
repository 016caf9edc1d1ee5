package fitness

import (
	"context"
	"time"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/insights"
	"github.com/myrjola/macrofit/internal/sqlite"
)

type sqliteLogRepository struct {
	baseRepository
}

func (r *sqliteLogRepository) Add(ctx context.Context, userID string, e LogEntry) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_log (user_id, performed_on, name, kind, duration_minutes, calories_burned, intensity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, e.PerformedOn.Format(sqlite.DateLayout), e.Name, e.Kind, e.Duration, e.CaloriesBurned,
		e.Intensity); err != nil {
		return errors.Wrap(err, "insert workout log entry")
	}
	return nil
}

// Since returns the workouts performed on or after the given day, most recent first.
func (r *sqliteLogRepository) Since(ctx context.Context, userID string, since time.Time) ([]insights.LoggedWorkout, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT performed_on, name, kind, duration_minutes, calories_burned, intensity
		FROM workout_log
		WHERE user_id = ? AND performed_on >= ?
		ORDER BY performed_on DESC, id DESC`, userID, since.Format(sqlite.DateLayout))
	if err != nil {
		return nil, errors.Wrap(err, "query workout log")
	}
	defer rows.Close()

	var history []insights.LoggedWorkout
	for rows.Next() {
		var (
			w           insights.LoggedWorkout
			performedOn string
		)
		if err = rows.Scan(&performedOn, &w.Name, &w.Kind, &w.Duration, &w.CaloriesBurned, &w.Intensity); err != nil {
			return nil, errors.Wrap(err, "scan workout log entry")
		}
		if w.PerformedOn, err = time.Parse(sqlite.DateLayout, performedOn); err != nil {
			return nil, errors.Wrap(err, "parse performed_on")
		}
		history = append(history, w)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate workout log")
	}
	return history, nil
}
