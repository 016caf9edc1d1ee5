package e2etest

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	_ "github.com/mattn/go-sqlite3" // the sqlite3 driver for DB.
	"github.com/myrjola/macrofit/internal/logging"
)

const (
	// LogAddrKey is the log key the server reports its listen address under.
	LogAddrKey = "addr"
	// LogDsnKey is the log key the database reports its read-write DSN under.
	LogDsnKey = "sqlDsn"
	// SessionCookieName names the cookie that carries the anonymous user's session.
	SessionCookieName = "macrofit_session"
)

// Env returns a lookup function for a test server: an in-memory database, a dynamic port, session cookies over
// plain HTTP and a fixed seed so that recommendations repeat. overrides take precedence.
func Env(overrides map[string]string) func(string) (string, bool) {
	env := map[string]string{
		"MACROFIT_SQLITE_URL":     ":memory:",
		"MACROFIT_ADDR":           "localhost:0",
		"MACROFIT_SECURE_COOKIES": "false",
		"MACROFIT_SEED":           "42",
	}
	for k, v := range overrides {
		env[k] = v
	}
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// Server is a macrofit server running in the test process.
type Server struct {
	client     *Client
	db         *sql.DB
	cancel     context.CancelCauseFunc
	serverDone chan struct{}
}

// StartServer runs the server with Env(overrides) and waits until /api/healthy answers. The server is shut down
// when the test ends.
//
// logSink receives the server logs, usually testhelpers.NewWriter. run must log the listen address under
// LogAddrKey and the database DSN under LogDsnKey, each once.
func StartServer(
	t *testing.T,
	logSink io.Writer,
	run func(context.Context, *slog.Logger, func(string) (string, bool)) error,
	overrides map[string]string,
) (*Server, error) {
	var server *Server
	t.Cleanup(func() {
		if server != nil {
			server.Shutdown()
		}
	})
	ctx, cancel := context.WithCancelCause(t.Context())
	serverDone := make(chan struct{})

	addrCh := make(chan string, 1)
	dsnCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case LogAddrKey:
				addrCh <- a.Value.String()
			case LogDsnKey:
				dsnCh <- a.Value.String()
			}
			return a
		},
	})))

	go func() {
		defer close(serverDone)
		if err := run(ctx, logger, Env(overrides)); err != nil {
			cancel(err)
		}
	}()
	var addr, dsn string
	for dsn == "" || addr == "" {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("server stopped before listening: %w", context.Cause(ctx))
		case addr = <-addrCh:
		case dsn = <-dsnCh:
		}
	}

	client, err := NewClient("http://" + addr)
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return nil, fmt.Errorf("wait for ready: %w", err)
	}
	// The shared cache DSN of an in-memory database reaches the same data as long as the server holds it open.
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	server = &Server{
		client:     client,
		db:         db,
		cancel:     cancel,
		serverDone: serverDone,
	}
	return server, nil
}

func (s *Server) Client() *Client {
	return s.client
}

// DB is a connection to the server's database for asserting what the handlers stored.
func (s *Server) DB() *sql.DB {
	return s.db
}

// SessionCookie returns the client's session cookie, or nil when no request has started a session.
func (s *Server) SessionCookie() *http.Cookie {
	return s.client.Cookie(SessionCookieName)
}

func (s *Server) Shutdown() {
	_ = s.db.Close()
	s.cancel(nil)
	<-s.serverDone
}
