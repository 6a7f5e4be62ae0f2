package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriter_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "info").With(String("component", "test"))

	l.Info("report built",
		String("symbol", "AAPL"),
		Int("points", 97),
		Float64("volatility", 0.0123),
		Uint64("seed", 42),
		Bool("cached", false),
		Error(errors.New("boom")),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "report built", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "AAPL", entry["symbol"])
	assert.EqualValues(t, 97, entry["points"])
	assert.InDelta(t, 0.0123, entry["volatility"], 1e-12)
	assert.EqualValues(t, 42, entry["seed"])
	assert.Equal(t, false, entry["cached"])
	assert.Equal(t, "boom", entry["error"])
}

func TestNewWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")

	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	require.Error(t, err)
}

func TestNop_DiscardsEverything(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Error("nothing", String("k", "v"))
	})
}
