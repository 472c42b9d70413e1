package helper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	t.Run("Create PrettyHandler with default options", func(t *testing.T) {
		var buf bytes.Buffer

		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		require.NotNil(t, handler)
		assert.NotNil(t, handler.Handler)
		assert.NotNil(t, handler.l)
	})

	t.Run("Create PrettyHandler with custom level", func(t *testing.T) {
		var buf bytes.Buffer
		opts := PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
		}

		handler := NewPrettyHandler(&buf, opts)

		require.NotNil(t, handler)
		assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
	})
}

func TestPrettyHandlerHandle(t *testing.T) {
	ctx := context.Background()

	levels := []struct {
		level slog.Level
		tag   string
	}{
		{slog.LevelDebug, "DEBUG:"},
		{slog.LevelInfo, "INFO:"},
		{slog.LevelWarn, "WARN:"},
		{slog.LevelError, "ERROR:"},
	}

	for _, l := range levels {
		t.Run("Handle "+l.tag[:len(l.tag)-1]+" level log", func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
				SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
			})

			record := slog.NewRecord(time.Now(), l.level, "retrieval finished", 0)
			record.AddAttrs(slog.String("question", "who wrote it"), slog.Int("candidates", 3))

			err := handler.Handle(ctx, record)

			require.NoError(t, err)
			output := buf.String()
			assert.Contains(t, output, l.tag)
			assert.Contains(t, output, "retrieval finished")
			assert.Contains(t, output, "question")
			assert.Contains(t, output, "who wrote it")
			assert.Contains(t, output, "3")
		})
	}

	t.Run("Handle log with no attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "plain message", 0)

		err := handler.Handle(ctx, record)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "plain message")
		assert.Contains(t, buf.String(), "{}")
	})

	t.Run("Handle formats timestamp as [HH:MM:SS.mmm]", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "time test", 0)

		err := handler.Handle(ctx, record)

		require.NoError(t, err)
		assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, buf.String())
	})
}
