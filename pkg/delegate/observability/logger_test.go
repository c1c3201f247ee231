package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newJSONLogger returns a debug-level JSON logger writing to a buffer.
func newJSONLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// parseLogLines decodes one JSON object per line.
func parseLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

type namedHandle struct{ id string }

// session is a pointer handle whose String reads its receiver.
type session struct {
	id          string
	stringCalls atomic.Int64
	seen        []int
}

func (s *session) String() string {
	s.stringCalls.Add(1)
	return "session:" + s.id
}

func (s *session) OnValue(n int) {
	s.seen = append(s.seen, n)
}

func (n namedHandle) String() string { return "named:" + n.id }

func TestEnrichLogger(t *testing.T) {
	t.Run("nil logger stays nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "x"))
	})

	t.Run("adds delegate name", func(t *testing.T) {
		logger, buf := newJSONLogger()
		EnrichLogger(logger, "orders").Info("hello")

		lines := parseLogLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "orders", lines[0]["delegate"])
	})
}

func TestLogHelpersNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogRegister(nil, "h", 1)
		LogRemove(nil, "h", 1, 0)
		LogNotifyStart(nil, 1)
		LogNotifyComplete(nil, 1, 0.5)
		LogNotifyPanic(nil, 1, 0.5)
	})
}

func TestLogHelpers(t *testing.T) {
	logger, buf := newJSONLogger()

	LogRegister(logger, "audit", 3)
	LogRemove(logger, namedHandle{"a"}, 2, 1)
	LogNotifyStart(logger, 1)
	LogNotifyComplete(logger, 1, 1.5)
	LogNotifyPanic(logger, 1, 0.25)

	lines := parseLogLines(t, buf)
	require.Len(t, lines, 5)

	assert.Equal(t, "delegate registered", lines[0]["msg"])
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "audit", lines[0]["handle"])
	assert.Equal(t, float64(3), lines[0]["entries"])

	assert.Equal(t, "delegates removed", lines[1]["msg"])
	assert.Equal(t, "named:a", lines[1]["handle"])
	assert.Equal(t, float64(2), lines[1]["removed"])
	assert.Equal(t, float64(1), lines[1]["entries"])

	assert.Equal(t, "notify starting", lines[2]["msg"])

	assert.Equal(t, "notify completed", lines[3]["msg"])
	assert.Equal(t, "INFO", lines[3]["level"])
	assert.Equal(t, 1.5, lines[3]["duration_ms"])

	assert.Equal(t, "notify panicked", lines[4]["msg"])
	assert.Equal(t, "ERROR", lines[4]["level"])
}

func TestFormatHandle(t *testing.T) {
	tests := []struct {
		name   string
		handle any
		want   string
	}{
		{"nil", nil, "<nil>"},
		{"string", "abc", "abc"},
		{"stringer", namedHandle{"x"}, "named:x"},
		{"int", 42, "42"},
	}

	p := &struct{ secret string }{"x"}
	assert.True(t, strings.HasPrefix(formatHandle(p), "0x"))

	var nilSession *session
	assert.NotPanics(t, func() {
		assert.Equal(t, "0x0", formatHandle(nilSession))
	})

	s := &session{id: "s1"}
	assert.True(t, strings.HasPrefix(formatHandle(s), "0x"))
	assert.Equal(t, int64(0), s.stringCalls.Load(), "pointer handles must not be called")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatHandle(tt.handle))
		})
	}
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), float64(5))
}
