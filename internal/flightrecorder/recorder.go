// Package flightrecorder keeps a rolling execution trace in memory and writes it to disk when a request times out.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync"
	"time"

	"github.com/myrjola/macrofit/internal/errors"
)

const (
	window    = time.Minute
	maxBytes  = 32 << 20
	cooldown  = 15 * time.Minute
	dirPerm   = 0o750
	filePerm  = 0o640
	stampForm = "20060102-150405"
)

// Recorder dumps the recent execution trace of the process into a directory.
type Recorder struct {
	logger *slog.Logger
	fr     *trace.FlightRecorder
	dir    string
	now    func() time.Time

	mu       sync.Mutex
	lastDump time.Time
}

// New creates a recorder writing into dir. The directory is created when missing.
func New(logger *slog.Logger, dir string) (*Recorder, error) {
	if dir == "" {
		return nil, errors.New("traces directory is required")
	}
	stat, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err = os.MkdirAll(dir, dirPerm); err != nil {
			return nil, errors.Wrap(err, "create traces directory", slog.String("dir", dir))
		}
	case err != nil:
		return nil, errors.Wrap(err, "stat traces directory", slog.String("dir", dir))
	case !stat.IsDir():
		return nil, errors.Wrap(errors.New("not a directory"), "open traces directory", slog.String("dir", dir))
	}

	return &Recorder{
		logger: logger,
		fr:     trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: window, MaxBytes: maxBytes}),
		dir:    dir,
		now:    time.Now,
	}, nil
}

func (r *Recorder) Start(ctx context.Context) error {
	if err := r.fr.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("dir", r.dir), slog.Duration("window", window))
	return nil
}

func (r *Recorder) Stop(ctx context.Context) {
	r.fr.Stop()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Dump writes the trace window to a file named after reason. Dumps closer together than the cooldown are skipped
// and reported with an empty path.
func (r *Recorder) Dump(ctx context.Context, reason string) (string, error) {
	r.mu.Lock()
	now := r.now()
	if !r.lastDump.IsZero() && now.Sub(r.lastDump) < cooldown {
		r.mu.Unlock()
		r.logger.LogAttrs(ctx, slog.LevelDebug, "skipped trace dump during cooldown",
			slog.Time("last_dump", r.lastDump))
		return "", nil
	}
	r.lastDump = now
	r.mu.Unlock()

	path := filepath.Join(r.dir, fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format(stampForm)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, filePerm)
	if err != nil {
		return "", errors.Wrap(err, "create trace file", slog.String("path", path))
	}
	n, err := r.fr.WriteTo(f)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return "", errors.Wrap(err, "write trace", slog.String("path", path))
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, "dumped execution trace",
		slog.String("path", path), slog.Int64("bytes", n))
	return path, nil
}
