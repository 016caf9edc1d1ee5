package errors_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/myrjola/macrofit/internal/errors"
	"github.com/myrjola/macrofit/internal/testhelpers"
)

var errCatalogMissing = errors.NewSentinel("catalog missing")

func TestWrap_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel",
			err:  errCatalogMissing,
			want: "catalog missing",
		},
		{
			name: "wrapped once",
			err:  errors.Wrap(errCatalogMissing, "load catalog", slog.String("path", "catalog.yaml")),
			want: "load catalog: catalog missing",
		},
		{
			name: "wrapped twice",
			err:  errors.Wrap(errors.Wrap(errCatalogMissing, "load catalog"), "start service"),
			want: "start service: load catalog: catalog missing",
		},
		{
			name: "wrapped nil",
			err:  errors.Wrap(nil, "nothing underneath"),
			want: "nothing underneath",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap_IsAndAs(t *testing.T) {
	wrapped := errors.Wrap(fmt.Errorf("decode: %w", errCatalogMissing), "recommend")
	if !errors.Is(wrapped, errCatalogMissing) {
		t.Error("expected wrapped error to match sentinel")
	}
	if errors.Is(wrapped, errors.NewSentinel("catalog missing")) {
		t.Error("expected distinct sentinels with the same text not to match")
	}

	root := &quotaError{category: "cardio"}
	var target *quotaError
	if !errors.As(errors.Wrap(root, "select"), &target) {
		t.Fatal("expected As to find quotaError")
	}
	if target != root {
		t.Errorf("As() target = %v, want %v", target, root)
	}
	if errors.Unwrap(errCatalogMissing) != nil {
		t.Error("expected sentinel to have nothing to unwrap")
	}
}

func TestSlogError(t *testing.T) {
	_, file, line, _ := runtime.Caller(0)
	err := errors.Wrap(errCatalogMissing, "load catalog", slog.String("path", "catalog.yaml"), slog.Duration("elapsed", time.Second))
	wantSource := fmt.Sprintf("%s:%s", file[strings.LastIndex(file, "/")+1:], strconv.Itoa(line+1))

	var buf bytes.Buffer
	testhelpers.NewLogger(&buf).Info("test", errors.SlogError(err))
	logLine := buf.String()
	for _, want := range []string{
		"error.annotations.path=catalog.yaml",
		"error.annotations.elapsed=1s",
		wantSource,
	} {
		if !strings.Contains(logLine, want) {
			t.Errorf("expected log line %q to contain %q", logLine, want)
		}
	}
	if strings.Contains(logLine, "annotatederror.go") {
		t.Error("expected source to point at the caller, not the errors package")
	}

	// None of these may panic.
	errors.SlogError(nil)
	errors.SlogError(errors.Join(nil, errCatalogMissing, errors.New("plain")))
	errors.SlogError(errors.Wrap(errors.Join(nil, nil), "empty join"))
}

func TestDecoratePanic(t *testing.T) {
	if errors.DecoratePanic(nil) != nil {
		t.Error("expected nil for nil panic value")
	}

	defer func() {
		err := errors.DecoratePanic(recover())
		if err == nil {
			t.Fatal("expected error")
		}
		if got, want := err.Error(), "panic: selector exploded"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if got := errors.SlogError(err).String(); !strings.Contains(got, "annotatederror_test.go") {
			t.Errorf("expected %q to reference the test file", got)
		}
	}()
	panic("selector exploded")
}

type quotaError struct {
	category string
}

func (e *quotaError) Error() string {
	return "quota exceeded for " + e.category
}
