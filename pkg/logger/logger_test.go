package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNew_JSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "staffdir", Out: &buf})

	l.Debug().Msg("oculto")
	l.Info().Str("k", "v").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["message"])
	assert.Equal(t, "staffdir", line["service"])
	assert.Equal(t, "v", line["k"])
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Out: &buf})

	ctx := l.WithContext(context.Background(), map[string]any{"request_id": "abc"})
	zerolog.Ctx(ctx).Info().Msg("hola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["request_id"])
}
