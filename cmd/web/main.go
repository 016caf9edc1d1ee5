package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/myrjola/macrofit/internal/catalog"
	"github.com/myrjola/macrofit/internal/e2etest"
	"github.com/myrjola/macrofit/internal/envstruct"
	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/fitness"
	"github.com/myrjola/macrofit/internal/flightrecorder"
	"github.com/myrjola/macrofit/internal/logging"
	"github.com/myrjola/macrofit/internal/sqlite"
	"github.com/yuin/goldmark"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	templateFS     fs.FS
	service        *fitness.Service
	validate       *validator.Validate
	markdown       goldmark.Markdown
	flightRecorder *flightrecorder.Recorder
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"MACROFIT_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"MACROFIT_SQLITE_URL" envDefault:"./macrofit.sqlite3"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"MACROFIT_TEMPLATE_PATH" envDefault:""`
	// OpenAIAPIKey enables generated instructions for custom workouts. Without it a template is used.
	OpenAIAPIKey string `env:"MACROFIT_OPENAI_API_KEY" envDefault:""`
	// OpenAIBaseURL overrides the OpenAI API endpoint, for example for a compatible proxy.
	OpenAIBaseURL string `env:"MACROFIT_OPENAI_BASE_URL" envDefault:""`
	// Seed makes recommendations reproducible when non-zero.
	Seed int64 `env:"MACROFIT_SEED" envDefault:"0"`
	// TracesDirectory enables the flight recorder. Execution traces of timed out requests are written there.
	TracesDirectory string `env:"MACROFIT_TRACES_DIRECTORY" envDefault:""`
	// SecureCookies should only be disabled when serving plain HTTP during development.
	SecureCookies bool `env:"MACROFIT_SECURE_COOKIES" envDefault:"true"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveAndVerifyTemplatePath(cfg.TemplatePath); err != nil {
		return errors.Wrap(err, "resolve template path")
	}

	library, err := catalog.Load()
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var opts []fitness.Option
	if cfg.OpenAIAPIKey != "" {
		opts = append(opts, fitness.WithInstructionWriter(
			fitness.NewOpenAIWriter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, logger)))
	}
	if cfg.Seed != 0 {
		opts = append(opts, fitness.WithSeed(uint64(cfg.Seed))) //nolint:gosec // any seed will do.
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db, cfg.SecureCookies),
		templateFS:     os.DirFS(htmlTemplatePath),
		service:        fitness.NewService(db, logger, library, opts...),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		markdown:       goldmark.New(),
		flightRecorder: nil,
	}

	if cfg.TracesDirectory != "" {
		if app.flightRecorder, err = flightrecorder.New(logger, cfg.TracesDirectory); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = app.flightRecorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer app.flightRecorder.Stop(ctx)
	}

	handler, err := app.routes()
	if err != nil {
		return errors.Wrap(err, "routes")
	}
	if err = app.configureAndStartServer(ctx, cfg.Addr, handler); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database, secure bool) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 30 * 24 * time.Hour                                           //nolint:mnd // a month
	sessionManager.Cookie.Name = e2etest.SessionCookieName
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = secure
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
