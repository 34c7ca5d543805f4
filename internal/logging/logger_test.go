package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/xmlchunk/internal/logging"
)

func TestNew(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf)).Info("hello", "key", "value")
		assert.Contains(t, buf.String(), "hello")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("debug filtered", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf)).Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("debug enabled", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf), WithDebug(true)).Debug("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf), WithJSON(true)).Info("structured", "count", 42)
		var parsed map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed), "must parse json log line")
		assert.Equal(t, "structured", parsed["msg"])
		assert.EqualValues(t, 42, parsed["count"])
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf), WithPretty(true)).Info("pretty output")
		assert.Contains(t, buf.String(), "pretty output")
	})

	t.Run("discard", func(t *testing.T) {
		assert.False(t, Discard().Handler().Enabled(context.Background(), slog.LevelError), "discard logger is never enabled")
	})
}
