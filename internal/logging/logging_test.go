package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", "json", &buf)
	l.Info("hidden")
	l.Warn("rows skipped", "count", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "rows skipped", rec["msg"])
	assert.Equal(t, float64(2), rec["count"])
}

func TestNewTextAndDiscard(t *testing.T) {
	var buf bytes.Buffer
	New("debug", "text", &buf).Debug("loaded", "rows", 3)
	assert.Contains(t, buf.String(), "msg=loaded rows=3")

	Discard().Error("nothing")
	assert.NotNil(t, OrDefault(nil))
}
