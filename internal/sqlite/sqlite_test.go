package sqlite_test

import (
	"testing"

	"github.com/myrjola/macrofit/internal/sqlite"
	"github.com/myrjola/macrofit/internal/testhelpers"
)

func TestNewDatabase(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	var version int
	if err = db.ReadOnly.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("query user_version: %v", err)
	}
	if version != 1 {
		t.Errorf("user_version = %d, want 1", version)
	}

	for _, table := range []string{
		"users", "profiles", "custom_workouts", "preferences", "global_preferences", "workout_log", "meal_log",
		"sessions",
	} {
		var name string
		err = db.ReadOnly.QueryRowContext(ctx,
			"SELECT name FROM sqlite_schema WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	if _, err = db.ReadOnly.ExecContext(ctx, "INSERT INTO users (id) VALUES ('u1')"); err == nil {
		t.Errorf("read-only pool accepted a write")
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "INSERT INTO users (id) VALUES ('u1')"); err != nil {
		t.Errorf("insert user: %v", err)
	}
	if _, err = db.ReadWrite.ExecContext(ctx,
		"INSERT INTO profiles (user_id, experience) VALUES ('u1', 'expert')"); err == nil {
		t.Errorf("check constraint on experience not enforced")
	}
	if _, err = db.ReadWrite.ExecContext(ctx,
		"INSERT INTO profiles (user_id) VALUES ('missing')"); err == nil {
		t.Errorf("foreign key not enforced")
	}
}

func TestNewDatabase_InMemoryIsolation(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	first, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	defer first.Close()
	second, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	defer second.Close()

	if _, err = first.ReadWrite.ExecContext(ctx, "INSERT INTO users (id) VALUES ('u1')"); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	var count int
	if err = second.ReadOnly.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Errorf("second database sees %d users from the first", count)
	}
}
