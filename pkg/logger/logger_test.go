package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBeforeInitIsDisabled(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	l := Get()
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestInitTagsServiceAndComponent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Service: "shipping-api", Output: &buf})

	dl := For("dispatcher")
	dl.Debug().Msg("started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shipping-api", entry["service"])
	assert.Equal(t, "dispatcher", entry["component"])
	assert.Equal(t, "started", entry["message"])
}

func TestInitIsIdempotent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	gl := Get()
	gl.Info().Msg("hello")
	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
