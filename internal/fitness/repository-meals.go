package fitness

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/sqlite"
)

type sqliteMealRepository struct {
	baseRepository
}

func (r *sqliteMealRepository) Add(ctx context.Context, userID string, e MealEntry, now string) (int64, error) {
	var id int64
	err := r.db.ReadWrite.QueryRowContext(ctx, `
		INSERT INTO meal_log (user_id, eaten_on, meal_type, food_name, servings, calories, protein, carbs, fat, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		userID, e.EatenOn.Format(sqlite.DateLayout), e.MealType, e.FoodName, e.Servings, e.Calories, e.Protein,
		e.Carbs, e.Fat, now).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert meal log entry")
	}
	return id, nil
}

// Day returns the foods eaten on the day in the order they were logged.
func (r *sqliteMealRepository) Day(ctx context.Context, userID string, day time.Time) ([]MealEntry, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, eaten_on, meal_type, food_name, servings, calories, protein, carbs, fat
		FROM meal_log
		WHERE user_id = ? AND eaten_on = ?
		ORDER BY id`, userID, day.Format(sqlite.DateLayout))
	if err != nil {
		return nil, errors.Wrap(err, "query meal log")
	}
	defer rows.Close()

	var entries []MealEntry
	for rows.Next() {
		var (
			e       MealEntry
			eatenOn string
		)
		if err = rows.Scan(&e.ID, &eatenOn, &e.MealType, &e.FoodName, &e.Servings, &e.Calories, &e.Protein,
			&e.Carbs, &e.Fat); err != nil {
			return nil, errors.Wrap(err, "scan meal log entry")
		}
		if e.EatenOn, err = time.Parse(sqlite.DateLayout, eatenOn); err != nil {
			return nil, errors.Wrap(err, "parse eaten_on")
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate meal log")
	}
	return entries, nil
}

// ClearDay deletes the foods logged for the day and returns how many there were.
func (r *sqliteMealRepository) ClearDay(ctx context.Context, userID string, day time.Time) (int64, error) {
	date := day.Format(sqlite.DateLayout)
	res, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM meal_log WHERE user_id = ? AND eaten_on = ?`,
		userID, date)
	if err != nil {
		return 0, errors.Wrap(err, "delete meal log", slog.String("date", date))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "rows affected")
	}
	return n, nil
}
