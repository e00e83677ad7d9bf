package repository

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/storefront-catalog/internal/config"
)

func TestPgxLogger_ArgsOnlyAtTrace(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "SELECT 1",
		"args": []any{"secret@example.com"},
		"time": 3 * time.Millisecond,
	})
	out := buf.String()
	assert.Contains(t, out, `"component":"pgx"`)
	assert.Contains(t, out, `"sql":"SELECT 1"`)
	assert.Contains(t, out, `"took"`)
	assert.NotContains(t, out, "secret@example.com")

	buf.Reset()
	l.Log(context.Background(), tracelog.LogLevelTrace, "Query", map[string]any{"args": []any{"visible"}})
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", nil)
	assert.Empty(t, buf.String())
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.ErrorLevel))
}

func TestDSN_EscapesCredentials(t *testing.T) {
	dsn := DSN(config.PostgresConfig{
		Host: "db", Port: 5433, User: "shop", Password: "p@ss/word", DBName: "catalog", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://shop:p%40ss%2Fword@db:5433/catalog?sslmode=disable", dsn)
}
