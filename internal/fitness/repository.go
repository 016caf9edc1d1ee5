package fitness

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.NewSentinel("not found")

type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{db: db, logger: logger}
}

// repository aggregates the per-table repositories.
type repository struct {
	users    *sqliteUserRepository
	profiles *sqliteProfileRepository
	custom   *sqliteCustomWorkoutRepository
	prefs    *sqlitePreferenceRepository
	log      *sqliteLogRepository
	meals    *sqliteMealRepository
}

type repositoryFactory struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepositoryFactory(db *sqlite.Database, logger *slog.Logger) *repositoryFactory {
	return &repositoryFactory{db: db, logger: logger}
}

func (f *repositoryFactory) newRepository() *repository {
	base := newBaseRepository(f.db, f.logger)
	return &repository{
		users:    &sqliteUserRepository{baseRepository: base},
		profiles: &sqliteProfileRepository{baseRepository: base},
		custom:   &sqliteCustomWorkoutRepository{baseRepository: base},
		prefs:    &sqlitePreferenceRepository{baseRepository: base},
		log:      &sqliteLogRepository{baseRepository: base},
		meals:    &sqliteMealRepository{baseRepository: base},
	}
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// encodeList stores a slice as a JSON array. Nil becomes an empty array.
func encodeList[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", errors.Wrap(err, "marshal list")
	}
	return string(data), nil
}

func decodeList[T any](data string) ([]T, error) {
	var list []T
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, errors.Wrap(err, "unmarshal list", slog.String("data", data))
	}
	return list, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqlite.TimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqlite.TimeLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parse timestamp", slog.String("value", s))
	}
	return t, nil
}
